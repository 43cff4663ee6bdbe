package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/prreview/prdesk/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", styleBrand.Render(buildinfo.AppName), styleVersion.Render(buildinfo.Version))
		fmt.Fprintln(out, field("Commit", buildinfo.CommitHash))
		fmt.Fprintln(out, field("Built", buildinfo.BuildDate))
		fmt.Fprintln(out, field("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH))
		fmt.Fprintln(out, field("Go", runtime.Version()))
	},
}
