package main

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/windfield/internal/analysis"
	"github.com/san-kum/windfield/internal/config"
	"github.com/san-kum/windfield/internal/export"
	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/gui"
	"github.com/san-kum/windfield/internal/logging"
	"github.com/san-kum/windfield/internal/loop"
	"github.com/san-kum/windfield/internal/noise"
	"github.com/san-kum/windfield/internal/page"
	"github.com/san-kum/windfield/internal/storage"
	"github.com/san-kum/windfield/internal/surface"
	"github.com/san-kum/windfield/internal/visibility"
	"github.com/san-kum/windfield/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	styleFile  string
	pageFile   string
	noiseKind  string
	seed       int64
	viewport   float64
	frameRate  int
	logLevel   string
	logFile    string
	// render
	outDir   string
	format   string
	frame    int
	saveRun  bool
	dumpJSON bool
	// record
	frames     int
	background string
	// live
	containerRows int
	theme         string
	// gui
	showHUD bool

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "windfield",
		Short:         "noise-driven line field renderer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Name() == "live" && logFile == "" && cfg.Log.File == "" {
				// keep the terminal clean while the view owns it
				cfg.Log.Level = "fatal"
			}
			logger, err = logging.New(cfg.Log.Level, cfg.Log.File)
			if err != nil {
				return err
			}
			applyStyle(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".windfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset tunables")
	pf.StringVar(&styleFile, "style", "", "stylesheet with --_windfield---wf_* properties")
	pf.StringVar(&pageFile, "page", "", "html page with .wf_container elements")
	pf.StringVar(&noiseKind, "noise", config.DefaultNoise, fmt.Sprintf("noise kind (%s)", strings.Join(noise.Kinds(), ", ")))
	pf.Int64Var(&seed, "seed", 0, "noise seed")
	pf.Float64Var(&viewport, "viewport", config.DefaultViewportWidth, "viewport width for cell size tiers")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.StringVar(&logFile, "log-file", "", "log file (default stderr)")

	renderCmd := &cobra.Command{
		Use:   "render [instance]",
		Short: "render fields to png or svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	renderCmd.Flags().StringVar(&format, "format", "png", "png or svg")
	renderCmd.Flags().IntVar(&frame, "frame", 0, "frame counter to render (0 draws the static frame)")
	renderCmd.Flags().BoolVar(&saveRun, "save", false, "store the render as a run")
	renderCmd.Flags().BoolVar(&dumpJSON, "json", false, "also write segments as json")

	recordCmd := &cobra.Command{
		Use:   "record [instance]",
		Short: "record an animated field to gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	recordCmd.Flags().IntVar(&frames, "frames", 120, "number of frames")
	recordCmd.Flags().StringVar(&background, "background", "#ffffff", "background color")

	liveCmd := &cobra.Command{
		Use:   "live [instance]",
		Short: "scroll a page with a live field in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&containerRows, "rows", 12, "field height in terminal rows")
	liveCmd.Flags().StringVar(&theme, "theme", "sky", "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui [instance]",
		Short: "show a field in a native window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	guiCmd.Flags().BoolVar(&showHUD, "hud", true, "show status overlay")

	inspectCmd := &cobra.Command{
		Use:   "inspect [instance]",
		Short: "summarize a field and its noise over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().IntVar(&frame, "frame", 0, "frame counter to inspect (0 draws the static frame)")
	inspectCmd.Flags().IntVar(&frames, "frames", 600, "frames of noise history")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tLENGTH\tWEIGHT\tROTATION\tTIME\tCOLOR")
			for _, name := range config.ListPresets() {
				t := config.Presets[name]
				fmt.Fprintf(w, "%s\t%.2f-%.2f\t%.1f-%.1f\t%.2f\t%.4f\t%s\n",
					name, t.LengthMin, t.LengthMax, t.WeightMin, t.WeightMax,
					t.RotationFactor, t.TimeScale, t.StrokeColor)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(renderCmd, recordCmd, liveCmd, guiCmd, inspectCmd, listCmd, showCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file, preset, page and changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}

	if preset != "" {
		t := config.GetPreset(preset)
		if t == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		c.Tunables = *t
	}

	flags := cmd.Flags()
	if flags.Changed("style") {
		c.Style = styleFile
	}
	if flags.Changed("page") {
		c.Page = pageFile
	}
	if flags.Changed("noise") {
		c.Noise.Kind = noiseKind
	}
	if flags.Changed("seed") {
		c.Noise.Seed = seed
	}
	if flags.Changed("viewport") {
		c.ViewportWidth = viewport
	}
	if flags.Changed("fps") {
		c.FPS = frameRate
	}
	if flags.Changed("log-level") {
		c.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		c.Log.File = logFile
	}

	if c.Page != "" {
		f, err := os.Open(c.Page)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		opts, err := page.Containers(f, page.Defaults{Width: config.DefaultWidth, Height: config.DefaultHeight})
		if err != nil {
			return nil, err
		}
		c.Instances = c.Instances[:0]
		for _, o := range opts {
			c.Instances = append(c.Instances, config.InstanceConfig{
				ID:          o.ID,
				Width:       o.Width,
				Height:      o.Height,
				Autoplay:    o.Autoplay,
				StrokeColor: o.StrokeColor,
			})
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// applyStyle overrides the tunables from the stylesheet. A stylesheet that
// cannot be read or lacks a property leaves no instance to render.
func applyStyle(c *config.Config) {
	if c.Style == "" {
		return
	}
	err := func() error {
		f, err := os.Open(c.Style)
		if err != nil {
			return err
		}
		defer f.Close()
		props, err := config.ParseStyle(f)
		if err != nil {
			return err
		}
		return config.ApplyStyle(&c.Tunables, props)
	}()
	if err != nil {
		logger.Warn("style rejected, no fields will render", zap.String("style", c.Style), zap.Error(err))
		c.Instances = nil
	}
}

func selectInstances(args []string) ([]field.Options, error) {
	if len(args) == 0 {
		return cfg.Options(), nil
	}
	ic, ok := cfg.Instance(args[0])
	if !ok {
		return nil, fmt.Errorf("unknown instance: %s", args[0])
	}
	return []field.Options{ic.Options()}, nil
}

func firstInstance(args []string) (field.Options, error) {
	opts, err := selectInstances(args)
	if err != nil {
		return field.Options{}, err
	}
	if len(opts) == 0 {
		return field.Options{}, fmt.Errorf("no instances configured")
	}
	return opts[0], nil
}

func viewportWidth() float64 { return cfg.ViewportWidth }

func runRender(cmd *cobra.Command, args []string) error {
	if format != "png" && format != "svg" {
		return fmt.Errorf("unknown format: %s", format)
	}
	opts, err := selectInstances(args)
	if err != nil {
		return err
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	rasters := make(map[string]*surface.Raster)
	vectors := make(map[string]*surface.Vector)
	build := func(o field.Options) (field.Deps, error) {
		var surf surface.Surface
		if format == "svg" {
			v := surface.NewVector(0, 0)
			vectors[o.ID] = v
			surf = v
		} else {
			r := surface.NewRaster(0, 0)
			rasters[o.ID] = r
			surf = r
		}
		return field.Deps{Surface: surf, Sampler: sampler, ViewportWidth: viewportWidth}, nil
	}

	for i := range opts {
		opts[i].Autoplay = false
		opts[i].StartFrame = frame
	}
	instances := field.Mount(cfg.Tunables, opts, build, logger)
	if len(instances) == 0 {
		fmt.Println("no fields rendered")
		return nil
	}

	var st *storage.Store
	if saveRun {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	paths := make([]string, len(instances))
	err = loop.Each(len(instances), func(i int) error {
		id := instances[i].ID()
		paths[i] = filepath.Join(outDir, id+"."+format)
		if format == "svg" {
			return export.WriteSVG(paths[i], vectors[id])
		}
		return export.WritePNG(paths[i], rasters[id])
	})
	if err != nil {
		return err
	}

	for i, inst := range instances {
		path := paths[i]
		l := inst.Layout()
		fmt.Printf("%s: %dx%d cells of %.1fpx -> %s\n", inst.ID(), l.Columns, l.Rows, l.CellSize, path)

		if dumpJSON {
			jsonPath := filepath.Join(outDir, inst.ID()+".json")
			if err := export.WriteJSON(jsonPath, export.NewSnapshot(inst)); err != nil {
				return err
			}
		}

		if st != nil {
			w, h := inst.Size()
			runID, err := st.Save(storage.RunMetadata{
				Instance:    inst.ID(),
				Width:       w,
				Height:      h,
				Frame:       inst.Frame(),
				Noise:       cfg.Noise.Kind,
				Seed:        cfg.Noise.Seed,
				StrokeColor: surface.Hex(inst.StrokeColor()),
			}, l, inst.Segments())
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
		}
	}
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	o, err := firstInstance(args)
	if err != nil {
		return err
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return err
	}
	bg, err := field.ParseColor(background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	raster := surface.NewRaster(0, 0)
	ticker := loop.NewTicker(cfg.FPS)
	o.Autoplay = true

	inst, err := field.New(cfg.Tunables, o, field.Deps{
		Surface:       raster,
		Sampler:       sampler,
		Host:          ticker,
		Visibility:    visibility.Always{},
		ViewportWidth: viewportWidth,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	inst.Start()
	defer inst.Close()
	ticker.SetDraw(inst.Tick)

	rec := export.NewGIFRecorder(inst.StrokeColor(), bg, ticker.FPS())
	for i := 0; i < frames; i++ {
		if !ticker.Step() {
			break
		}
		rec.Add(raster.Image())
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	path := filepath.Join(outDir, inst.ID()+".gif")
	if err := rec.WriteFile(path); err != nil {
		return err
	}
	fmt.Printf("%s: %d frames -> %s\n", inst.ID(), rec.Frames(), path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	o, err := firstInstance(args)
	if err != nil {
		return err
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return err
	}
	return viz.Run(viz.Options{
		Tunables:      cfg.Tunables,
		Sampler:       sampler,
		Instance:      field.Options{ID: o.ID, Autoplay: o.Autoplay, StrokeColor: o.StrokeColor, CellSize: o.CellSize},
		Presets:       config.ListPresets(),
		Lookup:        config.GetPreset,
		ContainerRows: containerRows,
		Above:         30,
		Below:         30,
		FPS:           cfg.FPS,
		Theme:         theme,
		Logger:        logger,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	o, err := firstInstance(args)
	if err != nil {
		return err
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return err
	}
	w, h := int32(o.Width), int32(o.Height)
	o.Width, o.Height = 0, 0
	return gui.Run(gui.Options{
		Tunables:   cfg.Tunables,
		Sampler:    sampler,
		Instance:   o,
		Width:      w,
		Height:     h,
		FPS:        cfg.FPS,
		Background: color.Black,
		ShowHUD:    showHUD,
		Logger:     logger,
	})
}

func runInspect(cmd *cobra.Command, args []string) error {
	o, err := firstInstance(args)
	if err != nil {
		return err
	}
	sampler, err := cfg.Sampler()
	if err != nil {
		return err
	}

	o.Autoplay = false
	o.StartFrame = frame
	inst, err := field.New(cfg.Tunables, o, field.Deps{
		Surface:       surface.NewRecorder(0, 0),
		Sampler:       sampler,
		ViewportWidth: viewportWidth,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	inst.Start()

	l := inst.Layout()
	fmt.Printf("instance: %s\n", inst.ID())
	fmt.Printf("noise: %s (seed %d)\n", cfg.Noise.Kind, cfg.Noise.Seed)
	fmt.Printf("grid: %dx%d cells of %.2fpx, offset (%.2f, %.2f)\n\n", l.Columns, l.Rows, l.CellSize, l.OffsetX, l.OffsetY)

	s := analysis.Summarize(inst.Segments())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, row := range []struct {
		name string
		st   analysis.Stats
	}{
		{"noise", s.Noise}, {"angle", s.Angle}, {"length", s.Length}, {"weight", s.Weight},
	} {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", row.name, row.st.Mean, row.st.StdDev, row.st.Min, row.st.Max)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(analysis.NoiseMap(l, inst.Segments()))
	fmt.Println()

	if l.Cells() == 0 {
		return nil
	}
	x, y := l.Origin(l.Rows/2, l.Columns/2)
	series := analysis.CellSeries(sampler, cfg.Tunables, x, y, frames)
	fmt.Println(analysis.Plot(series, 10, fmt.Sprintf("noise at cell (%d, %d) over %d frames", l.Rows/2, l.Columns/2, frames)))
	fmt.Println()
	if hz := analysis.DominantFrequency(series, float64(cfg.FPS)); hz > 0 {
		fmt.Printf("dominant frequency: %.3f hz (period %.2f s)\n", hz, 1/hz)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINSTANCE\tTIME\tSIZE\tGRID\tFRAME\tNOISE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fx%.0f\t%dx%d\t%d\t%s/%d\n",
			run.ID,
			run.Instance,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width, run.Height,
			run.Columns, run.Rows,
			run.Frame,
			run.Noise, run.Seed,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	records, err := st.LoadSegments(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return err
	}

	segs := storage.Segments(records)
	layout := field.Layout{Columns: meta.Columns, Rows: meta.Rows, CellSize: meta.CellSize}
	fmt.Println()
	fmt.Print(analysis.NoiseMap(layout, segs))

	s := analysis.Summarize(segs)
	fmt.Printf("\nangle mean %.3f rad, weight mean %.2f px over %d segments\n", s.Angle.Mean, s.Weight.Mean, s.Count)
	return nil
}
