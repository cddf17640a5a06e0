// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output writes documents and diffs as plain or coloured text, as a
// JSON array or as a YAML list.
//
// Diff colours follow the usual convention: removed lines red, added lines
// green, hunk headers cyan and file headers bold. Each can be overridden in
// the configuration under colors.removed, colors.added, colors.hunk and
// colors.header.
package output
