package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prreview/prdesk/internal/config"
	"github.com/prreview/prdesk/internal/shell/backend"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show config, log and sidecar locations",
	RunE:  runPaths,
}

func runPaths(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	dir, err := config.GlobalDir()
	if err != nil {
		return err
	}
	settingsFile, err := config.GlobalSettingsFile()
	if err != nil {
		return err
	}
	logFile, err := config.GlobalLogFile()
	if err != nil {
		return err
	}
	shellFile, err := config.GlobalShellFile()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, field("Config", dir))
	fmt.Fprintln(out, field("Settings", settingsFile))
	fmt.Fprintln(out, field("Shell", shellFile))
	fmt.Fprintln(out, field("Log", logFile))

	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintln(out, styleError.Render("settings: "+err.Error()))
		return nil
	}
	resolver := backend.Resolver{Name: settings.Backend.Name, Override: settings.Backend.Path}
	candidates, err := resolver.Candidates()
	if err != nil {
		fmt.Fprintln(out, styleError.Render("sidecar: "+err.Error()))
		return nil
	}

	fmt.Fprintln(out, "\n"+styleLabel.Render("Sidecar candidates:"))
	for _, c := range candidates {
		mark := styleHint.Render("missing")
		if config.FileExists(c) {
			mark = styleSuccess.Render("found")
		}
		fmt.Fprintf(out, "  %s %s\n", styleValue.Render(c), mark)
	}
	return nil
}
