package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/pathviz/internal/anim"
	"github.com/san-kum/pathviz/internal/client"
	"github.com/san-kum/pathviz/internal/config"
	"github.com/san-kum/pathviz/internal/export"
	"github.com/san-kum/pathviz/internal/grid"
	"github.com/san-kum/pathviz/internal/logging"
	"github.com/san-kum/pathviz/internal/metrics"
	"github.com/san-kum/pathviz/internal/storage"
	"github.com/san-kum/pathviz/internal/store"
	"github.com/san-kum/pathviz/internal/viz"
)

// headless prepares the shared state of the non-interactive commands. Logs go
// to stderr unless a log file is configured.
func headless(cmd *cobra.Command) (*config.Config, grid.Grid, *slog.Logger, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, grid.Grid{}, nil, nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, grid.Grid{}, nil, nil, err
	}

	log := logging.New(os.Stderr, level)
	cleanup := func() {}
	if cfg.LogFile != "" {
		l, closer, err := logging.OpenFile(cfg.LogFile, level)
		if err != nil {
			return nil, grid.Grid{}, nil, nil, fmt.Errorf("open log file: %w", err)
		}
		log = l
		cleanup = func() { closer.Close() }
	}

	g, err := loadGrid(cfg)
	if err != nil {
		cleanup()
		return nil, grid.Grid{}, nil, nil, err
	}
	return cfg, g, log, cleanup, nil
}

func loadGrid(cfg *config.Config) (grid.Grid, error) {
	if layoutFile == "" {
		return cfg.NewGrid()
	}
	f, err := os.Open(layoutFile)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	g, err := grid.ParseLayout(f)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("parse layout %s: %w", layoutFile, err)
	}
	return g, nil
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, g, log, cleanup, err := headless(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	algo := cfg.GetAlgorithm()
	res, err := newClient(ctx, cfg, log).Run(ctx, g, algo)
	if err != nil {
		return fmt.Errorf("run %s: %w", algo, err)
	}

	tl := anim.Plan(res.Visited, res.Path, g.Start(), g.Finish(), cfg.Speed(), cfg.PathFactor)
	marks := anim.NewMarks()
	marks.Apply(tl.Steps...)
	cells := viz.Cells(g, marks)

	printBoard(cells, cfg.Theme)
	printSummary(metrics.Summarize(g, algo, res), tl)

	data := store.NewExport(g, algo, res, tl)
	if outJSON != "" {
		if err := store.ExportJSON(outJSON, data); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
		fmt.Printf("trace written to %s\n", outJSON)
	}
	if outCSV != "" {
		if err := store.ExportCSVFile(outCSV, data); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		fmt.Printf("schedule written to %s\n", outCSV)
	}
	if outSVG != "" {
		if err := os.WriteFile(outSVG, []byte(export.BoardToSVG(cells, svgScale)), 0644); err != nil {
			return fmt.Errorf("export svg: %w", err)
		}
		fmt.Printf("board written to %s\n", outSVG)
	}
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(data)
		if err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
		log.Info("run archived", "id", id, "dir", dataDir)
		fmt.Printf("archived as %s\n", id)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tGRID\tWALLS\tVISITED\tPATH\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Algorithm, r.Width, r.Height, r.Walls, r.Visited, r.PathLength,
			r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func replayRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := storage.New(dataDir).LoadTrace(args[0])
	if err != nil {
		return fmt.Errorf("load run: %w", err)
	}
	g, res, err := storage.Restore(data)
	if err != nil {
		return err
	}

	algo, err := client.ParseAlgorithm(data.Algorithm)
	if err != nil {
		return err
	}
	speed := time.Duration(data.SpeedMs) * time.Millisecond
	factor := cfg.PathFactor
	if data.SpeedMs > 0 && data.PathMs > 0 {
		factor = int(data.PathMs / data.SpeedMs)
	}
	tl := anim.Plan(res.Visited, res.Path, g.Start(), g.Finish(), speed, factor)
	marks := anim.NewMarks()
	marks.Apply(tl.Steps...)

	printBoard(viz.Cells(g, marks), cfg.Theme)
	printSummary(metrics.Summarize(g, algo, res), tl)
	return nil
}

// printBoard colors the board unless stdout cannot show colors.
func printBoard(cells [][]viz.Category, themeName string) {
	if plain || termenv.ColorProfile() == termenv.Ascii {
		fmt.Print(viz.PlainBoard(cells))
		return
	}
	fmt.Println(viz.RenderBoard(cells, viz.NewPalette(viz.GetTheme(themeName))))
}

func printSummary(s metrics.Summary, tl anim.Timeline) {
	p := termenv.ColorProfile()
	status := termenv.String("path found").Foreground(p.Color("#00c853"))
	if !s.Found {
		status = termenv.String("no path").Foreground(p.Color("#d50000"))
	}

	fmt.Println()
	fmt.Printf("%s: %s\n", client.Algorithm(s.Algorithm).Label(), status)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  visited\t%d\n", s.Visited)
	fmt.Fprintf(w, "  path length\t%d\n", s.PathLength)
	fmt.Fprintf(w, "  coverage\t%.1f%%\n", s.Coverage*100)
	fmt.Fprintf(w, "  efficiency\t%.3f\n", s.Efficiency)
	fmt.Fprintf(w, "  replay\t%s\n", tl.Done)
	w.Flush()
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	cfg, g, log, cleanup, err := headless(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newClient(ctx, cfg, log)
	fmt.Printf("comparing %d algorithms on a %dx%d grid with %d walls\n\n",
		len(client.Algorithms()), g.Width(), g.Height(), g.WallCount())

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ALGORITHM\tVISITED\tPATH\tCOVERAGE\tREPLAY\tSTATUS")

	var visited []float64
	failures := 0
	for _, o := range c.RunAll(ctx, g, client.Algorithms()...) {
		if o.Err != nil {
			failures++
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t%v\n", o.Algorithm.Label(), o.Err)
			visited = append(visited, 0)
			continue
		}
		s := metrics.Summarize(g, o.Algorithm, o.Result)
		tl := anim.Plan(o.Result.Visited, o.Result.Path, g.Start(), g.Finish(), cfg.Speed(), cfg.PathFactor)
		status := "found"
		if !s.Found {
			status = "no path"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f%%\t%s\t%s\n",
			o.Algorithm.Label(), s.Visited, s.PathLength, s.Coverage*100, tl.Done, status)
		visited = append(visited, float64(s.Visited))
	}
	w.Flush()

	if failures == len(visited) {
		return fmt.Errorf("all %d runs failed", failures)
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(visited,
		asciigraph.Height(8),
		asciigraph.Width(40),
		asciigraph.Caption("visited nodes: bfs, dfs, dijkstra, astar"),
	))
	return nil
}

func printYAML(cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
