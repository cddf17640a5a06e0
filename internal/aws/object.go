// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"io"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/graphdiff/internal/log"
)

// ObjectGetter is the subset of the S3 client used to read objects.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Object is a fetched S3 object.
type Object struct {
	Bucket    string
	Key       string
	VersionID string
	Body      []byte
}

// GetObject reads bucket/key in full. An empty versionID reads the latest
// version. The returned VersionID is the one S3 served, which is empty for
// unversioned buckets.
func GetObject(ctx context.Context, client ObjectGetter, bucket, key, versionID string) (*Object, error) {
	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(bucket),
		Key:    awsv2.String(key),
	}
	if versionID != "" {
		input.VersionId = awsv2.String(versionID)
	}

	out, err := client.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}

	obj := &Object{
		Bucket:    bucket,
		Key:       key,
		VersionID: awsv2.ToString(out.VersionId),
		Body:      body,
	}
	log.Debugf("fetched s3://%s/%s version=%q size=%s", bucket, key, obj.VersionID, humanize.Bytes(uint64(len(body))))
	return obj, nil
}
