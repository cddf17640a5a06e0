// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads graphdiff's optional user configuration and offers
// typed accessors over it. The configuration is a YAML document named
// graphdiff.yaml in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/graphdiff.yaml or $HOME/.config/graphdiff.yaml
//   - macOS: $HOME/Library/Application Support/graphdiff.yaml
//   - Windows: %AppData%/graphdiff.yaml
//
// GRAPHDIFF_CFG_FILE names a different file. Keys are addressed with dotted
// paths such as diff.labels.base or cache.clean.
package config
