package main

import "runtime/debug"

var version = getVersion()

// getVersion prefers the module version (go install pkg@vX) and falls back to
// the VCS revision of a local build.
func getVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	var revision string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	if revision == "" {
		return "dev"
	}
	revision = revision[:min(len(revision), 7)]
	if dirty {
		return revision + "-dirty"
	}
	return revision
}
