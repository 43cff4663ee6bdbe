package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/prreview/prdesk/internal/config"
	"github.com/prreview/prdesk/internal/models"
)

const healthTimeout = 2 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show shell and backend status",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsShellRunning()
	if err != nil {
		return fmt.Errorf("failed to check shell status: %w", err)
	}

	port := models.DefaultBackendPort
	if running && info != nil {
		fmt.Fprintln(out, styleSuccess.Render("Shell is running."))
		fmt.Fprintln(out, field("PID", strconv.Itoa(info.PID)))
		fmt.Fprintln(out, field("Run ID", info.RunID))
		fmt.Fprintln(out, field("Uptime", time.Since(info.StartedAt).Truncate(time.Second).String()))
		if info.ManualBackend {
			fmt.Fprintln(out, field("Backend", "manual"))
		} else if info.BackendPID > 0 {
			fmt.Fprintln(out, field("Backend PID", strconv.Itoa(info.BackendPID)))
		} else {
			fmt.Fprintln(out, field("Backend", "not spawned"))
		}
		if info.BackendPort > 0 {
			port = info.BackendPort
		}
	} else {
		fmt.Fprintln(out, styleHint.Render("Shell is not running."))
		if settings, err := config.LoadSettings(); err == nil {
			port = settings.Backend.Port
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), healthTimeout)
	defer cancel()

	url := healthURL(port)
	if err := checkHealth(ctx, http.DefaultClient, url); err != nil {
		fmt.Fprintf(out, "\n%s %s\n", styleWarning.Render("Backend unreachable"), styleHint.Render("("+url+")"))
		fmt.Fprintln(out, field("Error", err.Error()))
		return nil
	}
	fmt.Fprintf(out, "\n%s %s\n", styleSuccess.Render("Backend healthy"), styleHint.Render("("+url+")"))
	return nil
}

func healthURL(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d/api/health", port)
}

// checkHealth issues a GET and treats any 2xx response as healthy.
func checkHealth(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}
