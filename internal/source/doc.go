// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source reads raw documents from local files, standard input or S3.
//
// References are resolved as follows:
//   - "-" reads standard input
//   - s3://bucket/key reads the latest object version
//   - s3://bucket/key?versionId=v reads a pinned version, cached on disk
//   - anything else is a local file path
package source
