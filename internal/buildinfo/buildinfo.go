// Package buildinfo holds release metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/linux-command-library/lcl/internal/buildinfo.Version=v0.3.0"
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
