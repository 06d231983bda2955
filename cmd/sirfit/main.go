package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ja7ad/epidemic/pkg/logging"
	"github.com/ja7ad/epidemic/pkg/scenario"
)

// globals holds the persistent flags and the state built from them.
type globals struct {
	configPath string
	logLevel   string
	dbPath     string

	file *scenario.File
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "sirfit",
		Short: "Compare weekly epidemic case counts with an SIR model",
		Long: `sirfit runs SIR (Susceptible-Infectious-Recovered) simulations, with or
without births and deaths, and overlays them on weekly case counts stored
from WHO situation reports and patient databases.

Examples:
  sirfit simulate                                  # both study scenarios
  sirfit simulate --population 1000 --days 120 --contact-rate 0.3 --format bars
  sirfit reports import --country Guinea guinea_weekly.json
  sirfit reports show --country Guinea --collection guinea_weekly.json --html out.html
  sirfit compare --country Guinea --collection guinea_weekly.json --scenario non-vital`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML scenario file (defaults to the built-in study scenarios)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: info, debug, trace")
	root.PersistentFlags().StringVar(&g.dbPath, "db", "", "weekly report database (default from scenario file, then sirfit.db)")

	root.AddCommand(
		newSimulateCmd(g),
		newReportsCmd(g),
		newCompareCmd(g),
	)
	return root
}

func (g *globals) init(cmd *cobra.Command) error {
	f, err := scenario.Load(g.configPath)
	if err != nil {
		return err
	}
	g.file = f

	level := f.Logging.Level
	if g.logLevel != "" {
		level = g.logLevel
	}
	slog.SetDefault(logging.NewLogger(level, cmd.ErrOrStderr()))

	if g.dbPath == "" {
		g.dbPath = f.Database
	}
	slog.Debug("configuration loaded", "config", g.configPath, "scenarios", len(f.Scenarios), "db", g.dbPath)
	return nil
}
