// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package log wraps apex/log with graphdiff's compact line format and a trace
// level below debug. Output goes to stderr because stdout carries documents
// and diffs.
package log
