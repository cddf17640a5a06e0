// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/graphdiff/internal/aws"
	"github.com/tfctl/graphdiff/internal/cacheutil"
)

type fakeS3 struct {
	calls   int
	body    string
	version string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.calls++
	version := f.version
	if in.VersionId != nil {
		version = *in.VersionId
	}
	return &s3v2.GetObjectOutput{
		Body:      io.NopCloser(strings.NewReader(f.body)),
		VersionId: awsv2.String(version),
	}, nil
}

func loaderFor(fake *fakeS3) Loader {
	return Loader{
		S3: func(context.Context) (aws.ObjectGetter, error) {
			return fake, nil
		},
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o600))

	src, err := Loader{}.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, src.Name)
	assert.Equal(t, []byte(`{"a":1}`), src.Data)
}

func TestLoad_FileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Loader{}.Load(context.Background(), filepath.Join(dir, "absent.json"))
	assert.ErrorContains(t, err, "does not exist")

	_, err = Loader{}.Load(context.Background(), dir)
	assert.ErrorContains(t, err, "cannot be a directory")
}

func TestLoad_Stdin(t *testing.T) {
	l := Loader{Stdin: strings.NewReader("a: 1\n")}

	src, err := l.Load(context.Background(), Stdin)
	require.NoError(t, err)
	assert.Equal(t, Stdin, src.Name)
	assert.Equal(t, "a: 1\n", string(src.Data))
}

func TestLoad_None(t *testing.T) {
	src, err := Loader{}.Load(context.Background(), None)
	require.NoError(t, err)
	assert.Nil(t, src)
}

func TestParseS3(t *testing.T) {
	tests := []struct {
		ref      string
		expected S3Ref
		wantErr  bool
	}{
		{"s3://bucket/state.json", S3Ref{Bucket: "bucket", Key: "state.json"}, false},
		{"s3://bucket/a/b/c.yaml?versionId=v1", S3Ref{Bucket: "bucket", Key: "a/b/c.yaml", VersionID: "v1"}, false},
		{"s3://bucket/", S3Ref{}, true},
		{"s3:///key", S3Ref{}, true},
		{"gs://bucket/key", S3Ref{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseS3(tt.ref)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReference)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.ref, got.String())
		})
	}
}

func TestLoad_S3(t *testing.T) {
	t.Setenv(cacheutil.EnvDir, t.TempDir())
	t.Setenv(cacheutil.EnvEnabled, "")

	fake := &fakeS3{body: `{"a":1}`, version: "latest-v"}
	l := loaderFor(fake)

	src, err := l.Load(context.Background(), "s3://bucket/state.json")
	require.NoError(t, err)
	assert.Equal(t, "state.json", src.Name)
	assert.Equal(t, `{"a":1}`, string(src.Data))
	assert.Equal(t, 1, fake.calls)

	// The latest version is fetched again, but the served version was cached.
	_, err = l.Load(context.Background(), "s3://bucket/state.json")
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls)

	src, err = l.Load(context.Background(), "s3://bucket/state.json?versionId=latest-v")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(src.Data))
	assert.Equal(t, 2, fake.calls)
}

func TestLoad_S3PinnedVersionCached(t *testing.T) {
	t.Setenv(cacheutil.EnvDir, t.TempDir())
	t.Setenv(cacheutil.EnvEnabled, "")

	fake := &fakeS3{body: "old"}
	l := loaderFor(fake)

	for range 3 {
		src, err := l.Load(context.Background(), "s3://bucket/doc.yaml?versionId=v1")
		require.NoError(t, err)
		assert.Equal(t, "old", string(src.Data))
	}
	assert.Equal(t, 1, fake.calls)
}

func TestLoad_S3Errors(t *testing.T) {
	t.Setenv(cacheutil.EnvEnabled, "false")

	_, err := Loader{}.Load(context.Background(), "s3://bucket/key")
	assert.ErrorIs(t, err, ErrInvalidReference)

	cause := errors.New("no credentials")
	l := Loader{S3: func(context.Context) (aws.ObjectGetter, error) { return nil, cause }}
	_, err = l.Load(context.Background(), "s3://bucket/key")
	assert.ErrorIs(t, err, cause)

	_, err = Loader{}.Load(context.Background(), "s3://bucket")
	assert.ErrorIs(t, err, ErrInvalidReference)
}
