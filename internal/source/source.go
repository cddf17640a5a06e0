// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/graphdiff/internal/aws"
	"github.com/tfctl/graphdiff/internal/cacheutil"
	"github.com/tfctl/graphdiff/internal/log"
)

const (
	// Stdin is the reference for standard input.
	Stdin = "-"

	// None stands for an absent document, such as the base of something newly
	// created.
	None = "-none"

	s3Scheme       = "s3"
	cacheNamespace = "s3"
)

// ErrInvalidReference is returned for references that cannot be resolved.
var ErrInvalidReference = errors.New("invalid document reference")

// Source is a raw document and where it came from.
type Source struct {
	// Name identifies the document in messages and drives format detection.
	Name string
	Data []byte
}

// Loader resolves references. The zero value reads files only.
type Loader struct {
	// Stdin is read for the "-" reference. Nil means os.Stdin.
	Stdin io.Reader

	// S3 returns the client for s3:// references. It is called at most once
	// per Load.
	S3 func(ctx context.Context) (aws.ObjectGetter, error)
}

// Load reads the document ref points at. It returns nil for None.
func (l Loader) Load(ctx context.Context, ref string) (*Source, error) {
	switch {
	case ref == None:
		return nil, nil
	case ref == Stdin:
		return l.loadStdin()
	case strings.HasPrefix(ref, s3Scheme+"://"):
		return l.loadS3(ctx, ref)
	}
	return loadFile(ref)
}

func (l Loader) loadStdin() (*Source, error) {
	r := l.Stdin
	if r == nil {
		r = os.Stdin
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return &Source{Name: Stdin, Data: data}, nil
}

func loadFile(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document does not exist: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("document cannot be a directory: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	log.Debugf("read %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return &Source{Name: path, Data: data}, nil
}

// S3Ref is a parsed s3:// reference.
type S3Ref struct {
	Bucket    string
	Key       string
	VersionID string
}

// ParseS3 parses s3://bucket/key with an optional versionId query parameter.
func ParseS3(ref string) (S3Ref, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return S3Ref{}, fmt.Errorf("%w %q: %w", ErrInvalidReference, ref, err)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != s3Scheme || u.Host == "" || key == "" {
		return S3Ref{}, fmt.Errorf("%w %q: want s3://bucket/key", ErrInvalidReference, ref)
	}

	return S3Ref{
		Bucket:    u.Host,
		Key:       key,
		VersionID: u.Query().Get("versionId"),
	}, nil
}

// String formats the reference back into its s3:// form.
func (r S3Ref) String() string {
	s := "s3://" + r.Bucket + "/" + r.Key
	if r.VersionID != "" {
		s += "?versionId=" + url.QueryEscape(r.VersionID)
	}
	return s
}

func (r S3Ref) cacheKey(versionID string) string {
	return r.Bucket + "/" + r.Key + "@" + versionID
}

func (l Loader) loadS3(ctx context.Context, ref string) (*Source, error) {
	s3ref, err := ParseS3(ref)
	if err != nil {
		return nil, err
	}

	// Only pinned versions are immutable, so only they are served from cache.
	if s3ref.VersionID != "" {
		if entry, ok := cacheutil.Read(cacheNamespace, s3ref.cacheKey(s3ref.VersionID)); ok {
			return &Source{Name: s3ref.Key, Data: entry.Data}, nil
		}
	}

	if l.S3 == nil {
		return nil, fmt.Errorf("%w %q: s3 is not configured", ErrInvalidReference, ref)
	}
	client, err := l.S3(ctx)
	if err != nil {
		return nil, err
	}

	obj, err := aws.GetObject(ctx, client, s3ref.Bucket, s3ref.Key, s3ref.VersionID)
	if err != nil {
		return nil, err
	}

	if obj.VersionID != "" {
		if err := cacheutil.Write(cacheNamespace, s3ref.cacheKey(obj.VersionID), obj.Body); err != nil {
			log.Warnf("failed to cache %s: %v", s3ref, err)
		}
	}

	return &Source{Name: s3ref.Key, Data: obj.Body}, nil
}
