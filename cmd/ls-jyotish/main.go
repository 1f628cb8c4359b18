// Command ls-jyotish is a terminal UI and CLI for sidereal chart
// calculation: natal charts, panchanga, Vimshottari dasha, Shadbala and
// Gochara transits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/litescript/ls-jyotish/internal/aspect"
	"github.com/litescript/ls-jyotish/internal/astro"
	"github.com/litescript/ls-jyotish/internal/chart"
	"github.com/litescript/ls-jyotish/internal/config"
	"github.com/litescript/ls-jyotish/internal/dasha"
	"github.com/litescript/ls-jyotish/internal/ephem"
	"github.com/litescript/ls-jyotish/internal/export"
	"github.com/litescript/ls-jyotish/internal/gochara"
	"github.com/litescript/ls-jyotish/internal/logging"
	"github.com/litescript/ls-jyotish/internal/panchanga"
	"github.com/litescript/ls-jyotish/internal/state"
	"github.com/litescript/ls-jyotish/internal/storage"
	"github.com/litescript/ls-jyotish/internal/strength"
	"github.com/litescript/ls-jyotish/internal/ui"
	"github.com/litescript/ls-jyotish/internal/varga"
)

// CLI flags
var (
	// Birth data
	nameFlag  string
	birthFlag string
	tzFlag    string
	latFlag   float64
	lonFlag   float64
	placeFlag string

	// Headless output modes
	summaryMode   bool
	panchangaMode bool
	dashaMode     bool
	shadbalaMode  bool
	transitMode   bool
	snapshotPath  string
	watchInterval time.Duration

	// Storage operations
	saveFlag bool
	listFlag bool
	loadID   string
	deleteID string
)

const birthLayout = "2006-01-02 15:04"

func main() {
	flag.StringVar(&nameFlag, "name", "", "Name for the chart")
	flag.StringVar(&birthFlag, "birth", "", "Birth date and time, '2006-01-02 15:04' in local civil time")
	flag.StringVar(&tzFlag, "tz", "UTC", "IANA timezone of birth")
	flag.Float64Var(&latFlag, "lat", 0, "Birth latitude, degrees north")
	flag.Float64Var(&lonFlag, "lon", 0, "Birth longitude, degrees east")
	flag.StringVar(&placeFlag, "place", "", "Free-form place label")

	flag.BoolVar(&summaryMode, "summary", false, "Print the chart table instead of TUI")
	flag.BoolVar(&panchangaMode, "panchanga", false, "Print today's panchanga")
	flag.BoolVar(&dashaMode, "dasha", false, "Print the Vimshottari timeline")
	flag.BoolVar(&shadbalaMode, "shadbala", false, "Print the Shadbala table")
	flag.BoolVar(&transitMode, "transit", false, "Print the Gochara report")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON analysis snapshot to file (use - for stdout)")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 10m)")

	flag.BoolVar(&saveFlag, "save", false, "Save the chart to the local database")
	flag.BoolVar(&listFlag, "list", false, "List saved charts")
	flag.StringVar(&loadID, "load", "", "Load a saved chart by id")
	flag.StringVar(&deleteID, "delete", "", "Delete a saved chart by id")

	providerFlag := flag.String("provider", "", "Ephemeris provider override (horizons, static)")
	ayanamsaFlag := flag.String("ayanamsa", "", "Ayanamsa override (lahiri, raman, krishnamurti)")
	houseFlag := flag.String("house", "", "House system override (placidus, equal, whole-sign)")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *providerFlag != "" {
		cfg.Provider = *providerFlag
	}
	if *ayanamsaFlag != "" {
		cfg.Ayanamsa = *ayanamsaFlag
	}
	if *houseFlag != "" {
		cfg.HouseSystem = *houseFlag
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	logger := logging.New("ls-jyotish", cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := ephem.Setup(cfg.DataDir); err != nil {
		logger.Warn("ephemeris data directory unavailable, continuing uncached", "error", err)
	}

	app, err := newApp(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer app.close()

	// Storage-only operations
	if listFlag {
		if err := app.listCharts(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if deleteID != "" {
		if err := app.deleteChart(ctx, deleteID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	natal, err := app.resolveNatal(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	if saveFlag {
		id, err := app.store.SaveChart(ctx, natal)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved chart %s\n", id)
	}

	headless := summaryMode || panchangaMode || dashaMode || shadbalaMode ||
		transitMode || snapshotPath != ""
	if headless {
		app.runHeadless(ctx, natal)
		return
	}
	if saveFlag {
		return
	}

	// Without a terminal the TUI cannot run; print the summary instead.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		summaryMode = true
		app.runHeadless(ctx, natal)
		return
	}

	// TUI mode
	stateCfg := state.DefaultConfig()
	stateMgr := state.NewManager(stateCfg)

	model := ui.New(stateMgr)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go app.runComputeLoop(ctx, natal, stateMgr, p)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the calculators behind one construction path so headless
// and TUI modes share identical results.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	adapter  *ephem.Adapter
	builder  *chart.Builder
	almanac  *panchanga.Calculator
	analyzer *gochara.Analyzer
	store    *storage.Store
	houses   chart.HouseSystem
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	var provider ephem.Provider
	switch strings.ToLower(cfg.Provider) {
	case "static":
		provider = ephem.NewStaticProvider()
	case "horizons", "":
		provider = ephem.NewHorizonsProvider().WithTimeout(cfg.HTTPTimeout)
	default:
		return nil, fmt.Errorf("unknown ephemeris provider %q", cfg.Provider)
	}

	adapter := ephem.NewAdapter(provider, astro.ParseAyanamsa(cfg.Ayanamsa), logger)
	builder := chart.NewBuilder(adapter, logger)

	store, err := storage.Open(cfg.DBPath(), logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      logger,
		adapter:  adapter,
		builder:  builder,
		almanac:  panchanga.NewCalculator(adapter, logger),
		analyzer: gochara.NewAnalyzer(builder, aspect.DefaultOrbConfig(), logger),
		store:    store,
		houses:   chart.ParseHouseSystem(cfg.HouseSystem),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing chart store", "error", err)
	}
}

// resolveNatal loads a saved chart or builds one from the birth flags.
func (a *app) resolveNatal(ctx context.Context) (*chart.VedicChart, error) {
	if loadID != "" {
		return a.store.GetChart(ctx, loadID)
	}

	if birthFlag == "" {
		return nil, fmt.Errorf("birth data required: pass -birth (with -tz, -lat, -lon) or -load <id>")
	}
	dt, err := time.Parse(birthLayout, birthFlag)
	if err != nil {
		return nil, fmt.Errorf("parse -birth %q: %w", birthFlag, err)
	}

	name := nameFlag
	if name == "" {
		name = "chart"
	}
	birth, err := chart.NewBirthData(name, dt, tzFlag, latFlag, lonFlag, placeFlag)
	if err != nil {
		return nil, err
	}

	return a.builder.Build(ctx, birth, a.houses)
}

// compute runs one full analysis pass against the natal chart. The
// provider-backed analyses run concurrently; the pure calculators are
// cheap enough to share one goroutine.
func (a *app) compute(ctx context.Context, natal *chart.VedicChart) (*state.Data, error) {
	now := time.Now()

	moon, ok := natal.Position(chart.Moon)
	if !ok {
		return nil, fmt.Errorf("natal chart has no Moon position")
	}

	data := &state.Data{Natal: natal, Timestamp: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pan, err := a.almanac.Calculate(gctx, now, natal.Birth.Latitude, natal.Birth.Longitude)
		if err != nil {
			return fmt.Errorf("panchanga: %w", err)
		}
		data.Panchanga = pan
		return nil
	})
	g.Go(func() error {
		transit, err := a.analyzer.Analyze(gctx, natal, now)
		if err != nil {
			return fmt.Errorf("transits: %w", err)
		}
		data.Transit = transit
		return nil
	})
	g.Go(func() error {
		data.Vargas = varga.BuildAll(natal)
		data.Dasha = dasha.Calculate(natal.Birth.UTC(), moon.Longitude)
		data.Strengths = strength.Calculate(natal, aspect.DefaultOrbConfig())
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

func (a *app) runComputeLoop(ctx context.Context, natal *chart.VedicChart, stateMgr *state.Manager, p *tea.Program) {
	doCompute := func() {
		start := time.Now()
		data, err := a.compute(ctx, natal)
		elapsed := time.Since(start)

		if err != nil {
			a.log.Error("compute failed", "error", err)
			stateMgr.Update(nil, elapsed, err)
			p.Send(ui.ErrorMsg{Error: err})
			return
		}

		a.log.Debug("compute complete", "duration", elapsed)
		stateMgr.Update(data, elapsed, nil)
		p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
	}

	doCompute()

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Debug("compute loop shutting down")
			return
		case <-ticker.C:
			doCompute()
		}
	}
}

// runHeadless handles all headless modes without starting the TUI.
func (a *app) runHeadless(ctx context.Context, natal *chart.VedicChart) {
	outputOnce := func() error {
		data, err := a.compute(ctx, natal)
		if err != nil {
			return err
		}

		if snapshotPath != "" {
			snap := export.ExportAnalysis(data)
			if snapshotPath == "-" {
				if err := snap.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				f, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer f.Close()
				if err := snap.WriteJSON(f); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			export.WriteChartTable(os.Stdout, data.Natal)
		}
		if panchangaMode {
			fmt.Println()
			export.WritePanchanga(os.Stdout, data.Panchanga)
		}
		if dashaMode {
			fmt.Println()
			export.WriteDashaTable(os.Stdout, data.Dasha, time.Now())
		}
		if shadbalaMode {
			fmt.Println()
			export.WriteShadbalaTable(os.Stdout, data.Strengths)
		}
		if transitMode {
			fmt.Println()
			export.WriteTransitReport(os.Stdout, data.Transit)
		}

		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

func (a *app) listCharts(ctx context.Context) error {
	recs, err := a.store.ListCharts(ctx)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No saved charts.")
		return nil
	}

	fmt.Printf("%-36s  %-16s  %-17s  %s\n", "ID", "Name", "Birth", "Place")
	for _, r := range recs {
		birth := r.BirthTime
		if t, err := time.Parse(time.RFC3339, r.BirthTime); err == nil {
			birth = t.Format(birthLayout)
		}
		fmt.Printf("%-36s  %-16s  %-17s  %s\n", r.ID, r.Name, birth, r.Location)
	}
	return nil
}

func (a *app) deleteChart(ctx context.Context, id string) error {
	if err := a.store.DeleteChart(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted chart %s\n", id)
	return nil
}
