package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/ludo-technologies/hashscan/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// Short returns the version. Binaries installed with go install carry no
// ldflags, so the module version is used for them.
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// Info returns the multi-line description printed by `hashscan version`
func Info() string {
	return fmt.Sprintf("hashscan %s\nCommit: %s\nBuilt: %s by %s\nGo: %s\nOS/Arch: %s/%s",
		Short(), Commit, Date, BuiltBy, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
