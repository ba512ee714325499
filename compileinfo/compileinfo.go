// Package compileinfo reports the module, toolchain and VCS state that an
// ibdlinkage binary was built from.
package compileinfo

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

type CompileInfo struct {
	Package    string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "Build information is not available for this binary."
	}

	mod := ""
	if c.Modified {
		mod = " Files in the repo were modified after that commit."
	}

	commit := c.Commit
	if commit == "" {
		commit = "unknown"
	}

	return fmt.Sprintf("%s %s built with %s at commit %s (%s).%s", c.Package, c.Version, c.GoVersion, commit, c.CommitTime, mod)
}

// Fields renders the build information for structured logs.
func (c CompileInfo) Fields() logrus.Fields {
	return logrus.Fields{
		"package":  c.Package,
		"version":  c.Version,
		"go":       c.GoVersion,
		"commit":   c.Commit,
		"modified": c.Modified,
	}
}

func Get() CompileInfo {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return CompileInfo{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) CompileInfo {
	out := CompileInfo{
		GoVersion: z.GoVersion,
		Package:   z.Path,
		Version:   z.Main.Version,
	}
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
