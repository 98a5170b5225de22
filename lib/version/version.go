// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version identifies the assetpack build, so a regenerated
// Form.h can be traced to the packer that wrote it.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Release builds inject these with -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/assetpack/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/assetpack
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the release version, bumped by hand.
	Version = "0.1.0-dev"
)

// Info returns the one-line form printed by "assetpack --version".
func Info() string {
	commit, dirty := revision()
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Full is Info plus the Go toolchain and platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// revision prefers the injected commit. Plain "go build" and
// "go install" builds carry none, so it falls back to the VCS stamp the
// toolchain embeds.
func revision() (commit string, dirty bool) {
	if GitCommit != "unknown" {
		return GitCommit, GitDirty == "true"
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit, GitDirty == "true"
	}
	commit = GitCommit
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			commit = setting.Value
			if len(commit) > 7 {
				commit = commit[:7]
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	return commit, dirty
}
