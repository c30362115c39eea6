package version

import (
	"runtime/debug"
	"strings"
	"sync"
)

// Set at build time with -ldflags "-X github.com/kbukum/restwire/version.Version=...".
var (
	Version   = "dev"
	GitCommit = ""
)

// Product is the product token of the default User-Agent.
const Product = "restwire"

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
}

var buildInfo = sync.OnceValue(func() *debug.BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return bi
})

// Get returns the build information. Values set through ldflags win over
// the VCS stamps of the Go toolchain.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	bi := buildInfo()
	if bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

// Short renders "version[-commit][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// UserAgent returns the default User-Agent, e.g. "restwire/1.2.0 (infrastructure)".
// The comment is omitted when client is empty.
func UserAgent(client string) string {
	ua := Product + "/" + Get().Version
	if client != "" {
		ua += " (" + client + ")"
	}
	return ua
}
