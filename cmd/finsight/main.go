package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/soltixdb/finsight/internal/config"
	"github.com/soltixdb/finsight/internal/ingest"
	"github.com/soltixdb/finsight/internal/logging"
	"github.com/soltixdb/finsight/internal/render"
	"github.com/soltixdb/finsight/internal/services"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

// app carries what every subcommand needs once flags and config are read.
type app struct {
	cfgFile  string
	logLevel string
	asJSON   bool

	cfg      *config.Config
	out      *render.Renderer
	opts     ingest.Options
	trends   *services.TrendService
	insights *services.InsightService
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "finsight",
		Short: "Trend analysis and insights for personal finance data",
		Long: `finsight analyzes transaction exports (CSV, JSON, OFX/QFX) or plain time
series: trend classification and forecasts, period comparison, anomaly
detection, and spending insights.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, stdout)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./finsight.yaml, ./configs, $HOME/.config/finsight)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "write JSON instead of text")

	root.AddCommand(
		trendCmd(a),
		compareCmd(a),
		anomaliesCmd(a),
		insightsCmd(a),
		versionCmd(stdout),
	)
	return root
}

func (a *app) init(cmd *cobra.Command, stdout io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetGlobal(logger)

	opts, err := ingest.OptionsFromConfig(cfg.Ingest)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.out = render.New(stdout)
	a.opts = opts
	a.trends = services.NewTrendService(logger, cfg.Trend)
	a.insights = services.NewInsightService(logger, cfg.Insights)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)
	ctx = logging.WithRequestID(ctx, uuid.NewString())
	cmd.SetContext(ctx)

	logging.DebugCtx(ctx, "finsight starting",
		"command", cmd.Name(), "version", Version, "config", a.cfgFile)
	return nil
}

func versionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(stdout, "finsight %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
			return err
		},
	}
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
