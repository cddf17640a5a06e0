// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package linepath builds the hierarchical paths that prefix every line of a
// flattened document, e.g. User.address.street, User.credentials[0] or
// Document['spec'], and the final path=value lines.
package linepath
