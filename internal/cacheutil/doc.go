// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil keeps immutable remote documents, such as versioned S3
// objects, on local disk so repeated diffs against the same revision do not
// fetch it again.
//
// Entries live below GRAPHDIFF_CACHE_DIR, or the user cache directory, in
// per-source namespaces and are named by the SHA-256 of their key. Setting
// GRAPHDIFF_CACHE to 0 or false disables the cache.
package cacheutil
