// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package document decodes JSON, YAML and HCL attribute files into generic
// value trees that the differ can flatten.
//
// Objects decode to map[string]any, with the root object typed as Document
// so diff lines read Document['spec']['replicas']='3'. Arrays decode to
// []any. Scalars are strings, bools, float64 (JSON, HCL) or int and float64
// (YAML). Configuration returns a differ configuration covering all of these.
package document
