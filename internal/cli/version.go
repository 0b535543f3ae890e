package cli

import (
	"cmp"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linux-command-library/lcl/internal/buildinfo"
	"github.com/linux-command-library/lcl/internal/ui"
)

const defaultModulePath = "github.com/linux-command-library/lcl"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show lcl version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Println(ui.AccentBold.Render("lcl") + " " + info.Version)
		tbl := ui.NewTable(2)
		tbl.AddRow("module", info.ModulePath)
		if info.Commit != "" {
			commit := info.Commit
			if info.Modified {
				commit += " (modified)"
			}
			tbl.AddRow("commit", commit)
		}
		if info.CommitTime != "" {
			tbl.AddRow("built", info.CommitTime)
		}
		tbl.AddRow("go", info.GoVersion)
		tbl.AddRow("platform", info.GOOS+"/"+info.GOARCH)
		fmt.Print(tbl.String())
		return nil
	},
}

// currentVersionInfo reads module and VCS data embedded by the Go toolchain.
// Values given with -ldflags (see internal/buildinfo) fill whatever the build
// info leaves empty, e.g. for release builds made outside a git checkout.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}

		info.ModulePath = cmp.Or(bi.Main.Path, info.ModulePath)
		info.Version = normalizeVersion(bi.Main.Version)
		info.GoVersion = cmp.Or(bi.GoVersion, info.GoVersion)
		info.GOOS = cmp.Or(settings["GOOS"], info.GOOS)
		info.GOARCH = cmp.Or(settings["GOARCH"], info.GOARCH)
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	if info.Version == "devel" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	info.Commit = cmp.Or(info.Commit, buildinfo.Commit)
	info.CommitTime = cmp.Or(info.CommitTime, buildinfo.Date)
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
