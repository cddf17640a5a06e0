// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other graphdiff packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version graphdiff was built from, or dev.
var Version = fromBuildInfo(debug.ReadBuildInfo())

// Revision is the short VCS revision recorded at build time, if any.
var Revision = revision(debug.ReadBuildInfo())

func fromBuildInfo(info *debug.BuildInfo, ok bool) string {
	if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

func revision(info *debug.BuildInfo, ok bool) string {
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

// String combines Version and Revision for display.
func String() string {
	if Revision == "" {
		return Version
	}
	return Version + " (" + Revision + ")"
}
