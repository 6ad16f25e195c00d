package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/config"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/metrics"
	"github.com/san-kum/pathviz/internal/viz"
)

var (
	configFile  string
	preset      string
	serviceURL  string
	algorithm   string
	speed       int
	pathFactor  int
	timeout     time.Duration
	theme       string
	logLevel    string
	logFile     string
	metricsAddr string
	overrides   []string
	// Headless run options
	layoutFile string
	outJSON    string
	outCSV     string
	outSVG     string
	svgScale   float64
	plain      bool
	save       bool
	dataDir    string
	force      bool
)

// main registers the commands and launches the interactive visualizer when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "pathviz",
		Short:        "terminal pathfinding visualizer",
		SilenceUsage: true,
		RunE:         runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use playback preset")
	pf.StringVar(&serviceURL, "service", client.DefaultBaseURL, "algorithm service base URL")
	pf.StringVar(&algorithm, "algorithm", string(client.BFS), "algorithm (bfs, dfs, dijkstra, astar)")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "per-step delay in ms (5-100, step 5)")
	pf.IntVar(&pathFactor, "path-factor", config.DefaultPathFactor, "path phase slowdown factor")
	pf.DurationVar(&timeout, "timeout", client.DefaultTimeout, "service request timeout")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file (interactive mode logs nowhere by default)")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	pf.StringArrayVar(&overrides, "set", nil, "override a config key (key=value, repeatable)")
	pf.StringVar(&dataDir, "data", "./runs", "run archive directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one algorithm headlessly and print the result",
		Args:  cobra.NoArgs,
		RunE:  runOnce,
	}
	addLayoutFlags(runCmd)
	runCmd.Flags().StringVar(&outJSON, "out", "", "write the run trace as JSON")
	runCmd.Flags().StringVar(&outCSV, "csv", "", "write the replay schedule as CSV")
	runCmd.Flags().StringVar(&outSVG, "svg", "", "write the final board as SVG")
	runCmd.Flags().Float64Var(&svgScale, "scale", 12, "SVG cell size in pixels")
	runCmd.Flags().BoolVar(&save, "save", false, "archive the run under --data")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run-id]",
		Short: "print the final board of an archived run",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}
	replayCmd.Flags().BoolVar(&plain, "plain", false, "print the board without colors")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run every algorithm on the same grid",
		Args:  cobra.NoArgs,
		RunE:  compareAlgorithms,
	}
	addLayoutFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list playback presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("playback presets:")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-8s speed=%dms path-factor=%d\n", name, p.SpeedMs, p.PathFactor)
			}
			fmt.Printf("themes: %s\n", strings.Join(viz.ThemeNames(), ", "))
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return printYAML(cfg)
		},
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(runCmd, compareCmd, runsCmd, replayCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&layoutFile, "layout", "", "text layout file ('.' open, '#' wall, 'S' start, 'F' finish)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the board without colors")
}

// loadConfig merges defaults, config file, preset, flags and --set overrides,
// in that order. Flags only win when set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p, ok := config.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.ApplyPreset(p)
	}

	flags := cmd.Flags()
	if flags.Changed("service") {
		cfg.ServiceURL = serviceURL
	}
	if flags.Changed("algorithm") {
		cfg.Algorithm = algorithm
	}
	if flags.Changed("speed") {
		cfg.SpeedMs = speed
	}
	if flags.Changed("path-factor") {
		cfg.PathFactor = pathFactor
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}

	if err := cfg.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newClient builds the service client and, when configured, starts the
// metrics endpoint for the lifetime of ctx.
func newClient(ctx context.Context, cfg *config.Config, log *slog.Logger) *client.Client {
	opts := []client.Option{
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(log),
	}
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, client.WithObserver(metrics.NewCollector(reg)))
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				log.Error("metrics server stopped", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
		log.Info("serving metrics", "addr", cfg.MetricsAddr)
	}
	return client.New(cfg.ServiceURL, opts...)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, closer, err := logging.OpenFile(cfg.LogFile, level)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := viz.NewApp(cfg, newClient(ctx, cfg, log), viz.WithLogger(log), viz.WithContext(ctx))
	if err != nil {
		return err
	}
	log.Info("starting visualizer", "service", cfg.ServiceURL, "algorithm", cfg.Algorithm, "speed_ms", cfg.SpeedMs)
	return viz.Run(ctx, app)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "pathviz.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
