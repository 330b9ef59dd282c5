package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"stavis/cmd/stavis/tui"
	"stavis/internal/config"
	"stavis/internal/logging"
	"stavis/internal/server"
	"stavis/internal/session"
	"stavis/internal/store"
)

const version = "1.2.0"

var (
	cfgPath string
	verbose bool
)

// rootCmd launches the interactive visualizer.
var rootCmd = &cobra.Command{
	Use:   "stavis",
	Short: "stavis - interactive setup-timing visualizer",
	Long: `stavis is a teaching tool for static timing analysis.

It models one data path between a launch flop and a capture flop. Insert
buffers into the net, toggle the setup check, and watch the arrival time,
required time, and slack update against the clock waveforms.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

// reportCmd prints a one-shot timing report for a scripted buffer chain.
var reportCmd = &cobra.Command{
	Use:   "report [variant]...",
	Short: "Print a timing path report for a scripted chain",
	Long: `Builds a buffer chain from the arguments and prints the path report.

Each argument is a buffer variant: normal, lvt, or hvt.

Example:
  stavis report normal lvt hvt --setup`,
	RunE: runReport,
}

// serveCmd runs the JSON API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the timing engine over a JSON API",
	Long: `Starts an HTTP server exposing per-session timing paths.

Each client creates its own session and gets its own buffer chain; sessions
never share state. The config file is watched, so constant changes apply to
a running server without a restart.`,
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the stavis version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stavis %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "stavis.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	reportCmd.Flags().Bool("setup", false, "enable the setup check")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func runTUI() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := logging.NewTUI()
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var journal *store.Journal
	if cfg.Journal.Enabled {
		journal, err = store.NewJournal(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
	}

	p := tea.NewProgram(tui.New(cfg, journal, log), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	log, err := logging.New(verbose || cfg.Logging.Verbose)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var journal *store.Journal
	if cfg.Journal.Enabled {
		journal, err = store.NewJournal(cfg.Journal.Path)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer journal.Close()
	}

	manager := session.NewManager(cfg.Catalog(), cfg.Constants(), cfg.Path.MaxChainLength,
		log.Named("session"))
	srv := server.New(cfg.Server.Addr, manager, journal, log.Named("server"))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := config.NewWatcher(cfgPath, log.Named("watch"), func(next config.Config) {
		manager.Reconfigure(next.Catalog(), next.Constants(), next.Path.MaxChainLength)
		srv.InvalidateWaveform()
	})
	if err != nil {
		log.Warn("config watcher unavailable", zap.Error(err))
	} else {
		if err := watcher.Start(ctx); err != nil {
			log.Warn("config watcher failed to start", zap.Error(err))
		}
		defer watcher.Stop()
	}

	return srv.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
