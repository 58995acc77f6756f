// Command dashboard-watch follows the admin dashboard statistics from a terminal.
// It polls the API while "visible"; SIGUSR1 hides the view and SIGUSR2 shows it again.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"notary_admin_go/config"
	"notary_admin_go/logging"
	"notary_admin_go/metrics"
	"notary_admin_go/models"
	"notary_admin_go/services/apiclient"
	"notary_admin_go/services/poller"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	apiBaseURL   string
	pollInterval time.Duration
	logLevel     string
	jsonOutput   bool
	once         bool
)

var rootCmd = &cobra.Command{
	Use:   "dashboard-watch",
	Short: "Watch the notary dashboard statistics",
	Long: `Open a dashboard session against the admin API and print every new
statistics snapshot. Identical snapshots are not printed twice.

Signals:
  SIGUSR1  hide the dashboard (polling pauses)
  SIGUSR2  show the dashboard (polling resumes)
  SIGINT   leave the dashboard and exit`,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	cfg := config.Load()

	rootCmd.Flags().StringVar(&apiBaseURL, "api", cfg.APIBaseURL, "Base URL of the admin API")
	rootCmd.Flags().DurationVar(&pollInterval, "interval", cfg.PollInterval, "Silent refresh interval")
	rootCmd.Flags().StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print snapshots as JSON lines")
	rootCmd.Flags().BoolVar(&once, "once", false, "Fetch a single snapshot and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	if pollInterval < config.MinPollInterval {
		return fmt.Errorf("interval must be at least %s", config.MinPollInterval)
	}

	logger, err := logging.New(logLevel, "development")
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()
	client := apiclient.New(apiBaseURL, 30*time.Second)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if once {
		snapshot, err := client.GetStats(ctx)
		if err != nil {
			return err
		}
		return printSnapshot(out, &snapshot)
	}

	session := poller.NewSession(client, pollInterval,
		poller.WithSessionLogger(logger),
		poller.WithSessionMetrics(metrics.NewNop()),
	)
	session.OnPublish(func(snapshot *models.StatSnapshot) {
		if err := printSnapshot(out, snapshot); err != nil {
			logger.Warn("failed to print snapshot", zap.Error(err))
		}
	})
	defer session.ExitView()

	if err := session.EnterView(poller.ViewDashboard); err != nil {
		return err
	}

	// First load shows the loading state, later ones are silent
	if result := session.Refresh(ctx, false); !result.Success {
		logger.Warn("initial statistics load failed", zap.Error(result.Error))
	}

	visibility := make(chan os.Signal, 1)
	signal.Notify(visibility, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(visibility)

	for {
		select {
		case <-ctx.Done():
			logger.Info("leaving dashboard")
			return nil
		case sig := <-visibility:
			visible := sig == syscall.SIGUSR2
			if err := session.SetVisible(visible); err != nil {
				return err
			}
			logger.Info("dashboard visibility changed",
				zap.Bool("visible", visible),
				zap.String("scheduler", string(session.SchedulerState())))
		}
	}
}

func printSnapshot(w io.Writer, s *models.StatSnapshot) error {
	if jsonOutput {
		return json.NewEncoder(w).Encode(s)
	}
	_, err := fmt.Fprintf(w,
		"[%s] notaries=%d active=%d expiring=%d expired=%d | appointments pending=%d completed=%d total=%d | revenue monthly=%.2f annual=%.2f projected=%.2f\n",
		time.Now().Format(time.TimeOnly),
		s.Notaries.Total, s.Notaries.ActiveLicenses, s.Notaries.ExpiringSoon, s.Notaries.ExpiredLicenses,
		s.Appointments.Pending, s.Appointments.Completed, s.Appointments.Total,
		s.Revenue.Monthly, s.Revenue.Annual, s.Revenue.ProjectedAnnual,
	)
	return err
}
