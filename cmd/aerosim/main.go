package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/aerosim/internal/aircraft"
	"github.com/san-kum/aerosim/internal/analysis"
	"github.com/san-kum/aerosim/internal/config"
	"github.com/san-kum/aerosim/internal/dynamo"
	"github.com/san-kum/aerosim/internal/flight"
	"github.com/san-kum/aerosim/internal/integrators"
	"github.com/san-kum/aerosim/internal/logging"
	"github.com/san-kum/aerosim/internal/metrics"
	"github.com/san-kum/aerosim/internal/optim"
	"github.com/san-kum/aerosim/internal/storage"
	"github.com/san-kum/aerosim/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	dt         float64
	duration   float64
	integrator string
	configFile string
	preset     string
	// plot / analyze
	column  string
	xColumn string
	yColumn string
	pngPath string
	// polar
	surfaceName string
	flapDeg     float64
	fromDeg     float64
	toDeg       float64
	stepDeg     float64
	// balance
	airspeed float64
	// bench
	numRuns int
	// tune
	tuneMetric string
	tuneParams []string
	// export-svg
	svgView string
)

var log zerolog.Logger

// main registers the aerosim commands and runs the root command. With no
// subcommand it opens the live view on the preset menu.
func main() {
	rootCmd := &cobra.Command{
		Use:   "aerosim",
		Short: "rigid-body flight simulation with per-surface aerodynamics",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initSettings()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgram(viz.NewModel())
		},
	}

	rootCmd.PersistentFlags().String("data", ".aerosim", "data directory")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "fly an airframe and store the telemetry",
		RunE:  runFlight,
	}
	aircraftFlags(runCmd)
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(integrators.Names(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot telemetry columns of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "y,airspeed", "comma separated telemetry columns")
	plotCmd.Flags().StringVar(&pngPath, "png", "", "write a PNG plot instead of the terminal chart")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportCSV(os.Stdout, args[0])
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "wx", "column for the spectrum")
	analyzeCmd.Flags().StringVar(&xColumn, "x", "aoa_deg", "phase portrait x column")
	analyzeCmd.Flags().StringVar(&yColumn, "y", "wx", "phase portrait y column")

	polarCmd := &cobra.Command{
		Use:   "polar",
		Short: "lift and drag polar of one surface",
		RunE:  polarSurface,
	}
	aircraftFlags(polarCmd)
	polarCmd.Flags().StringVar(&surfaceName, "surface", "wing_left", "surface name")
	polarCmd.Flags().Float64Var(&flapDeg, "flap", 0, "flap angle (deg)")
	polarCmd.Flags().Float64Var(&fromDeg, "from", -20, "first angle of attack (deg)")
	polarCmd.Flags().Float64Var(&toDeg, "to", 30, "last angle of attack (deg)")
	polarCmd.Flags().Float64Var(&stepDeg, "step", 1, "angle of attack step (deg)")
	polarCmd.Flags().StringVar(&pngPath, "png", "", "write a PNG polar plot")

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "center of lift and static pitch stability",
		RunE:  balanceAirframe,
	}
	aircraftFlags(balanceCmd)
	balanceCmd.Flags().Float64Var(&airspeed, "airspeed", 0, "freestream airspeed (m/s), 0 for the configured one")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "fly with live terminal visualization",
		RunE:  runLive,
	}
	aircraftFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark concurrent flights",
		RunE:  benchFlights,
	}
	aircraftFlags(benchCmd)
	benchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of concurrent flights")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same airframe",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	aircraftFlags(compareCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw the flight path of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportSVG(os.Stdout, args[0], storage.TrackView(svgView), 800, 600)
		},
	}
	exportSVGCmd.Flags().StringVar(&svgView, "view", string(storage.GroundTrack), "track (from above) or profile (altitude)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search autopilot gains",
		RunE:  tunePilot,
	}
	aircraftFlags(tuneCmd)
	tuneCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	tuneCmd.Flags().Float64Var(&duration, "time", 20, "duration of each trial flight")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "stability", "metric to minimise")
	tuneCmd.Flags().StringSliceVar(&tuneParams, "param", []string{"Kp=0.5:4:5", "Kd=0:1:3"}, "name=lo:hi:n grid axis, repeatable")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, polarCmd, balanceCmd, liveCmd, presetsCmd, benchCmd, compareCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func aircraftFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "trainer", "airframe preset")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml), overrides --preset")
}

// initSettings reads aerosim.yaml from the working or home directory if
// present. AEROSIM_DATA and AEROSIM_LOG_LEVEL override it.
func initSettings() error {
	viper.SetDefault("data", ".aerosim")
	viper.SetDefault("log_level", "info")
	viper.SetEnvPrefix("aerosim")
	viper.AutomaticEnv()

	viper.SetConfigName("aerosim")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading settings: %w", err)
		}
	}

	log = logging.New(viper.GetString("log_level"), os.Stderr)
	return nil
}

func store() *storage.Store { return storage.New(viper.GetString("data")) }

// loadConfig resolves --config or --preset and applies the flags the user
// set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Sim.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Sim.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	return cfg, cfg.Validate()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runFlight(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store()
	if err := st.Init(); err != nil {
		return err
	}

	sim, k0, err := cfg.Build()
	if err != nil {
		return err
	}
	sim.SetLogger(log)
	for _, m := range metrics.Standard(cfg.Environment.Gravity) {
		sim.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("flying %s...\n", cfg.Name)
	start := time.Now()
	result, err := sim.Run(ctx, k0, cfg.Sim)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunInfo{
		Aircraft:   cfg.Name,
		Integrator: cfg.Integrator,
		Pilot:      cfg.Pilot.Kind,
		Dt:         cfg.Sim.Dt,
		Duration:   cfg.Sim.Duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAIRCRAFT\tTIME\tDURATION\tDT\tINTEG\tPILOT\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%d\n",
			run.ID,
			run.Aircraft,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Pilot,
			run.Steps,
		)
	}

	return w.Flush()
}

func telemetryColumn(tel *storage.Telemetry, name string) ([]float64, error) {
	data := tel.Column(name)
	if data == nil {
		return nil, fmt.Errorf("unknown column %q (available: %s)", name, strings.Join(tel.Columns, ", "))
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no data to plot")
	}
	return data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tel, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	series := make(map[string][]float64)
	names := strings.Split(column, ",")
	for _, name := range names {
		name = strings.TrimSpace(name)
		data, err := telemetryColumn(tel, name)
		if err != nil {
			return err
		}
		series[name] = data
	}

	if pngPath != "" {
		if err := analysis.SaveSeriesPlot(pngPath, meta.ID, "time (s)", tel.Column("time"), series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("aircraft: %s\n", meta.Aircraft)
	fmt.Printf("samples: %d\n\n", len(tel.Rows))
	for _, name := range names {
		name = strings.TrimSpace(name)
		graph := asciigraph.Plot(series[name],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	tel, err := st.LoadTelemetry(runID)
	if err != nil {
		return err
	}

	data, err := telemetryColumn(tel, column)
	if err != nil {
		return err
	}
	freq, amp, err := analysis.DominantFrequency(data, meta.Dt)
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Println(describeFrequency(column, freq, amp))
	fmt.Println()

	xs, err := telemetryColumn(tel, xColumn)
	if err != nil {
		return err
	}
	ys, err := telemetryColumn(tel, yColumn)
	if err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(xColumn, xs, yColumn, ys)
	minX, maxX, minY, maxY := portrait.Bounds()
	fmt.Printf("phase portrait %s vs %s\n", yColumn, xColumn)
	fmt.Printf("  %s: [%.3f, %.3f]  %s: [%.3f, %.3f]\n", xColumn, minX, maxX, yColumn, minY, maxY)
	fmt.Println(portrait.ASCII(60, 20))
	return nil
}

// describeFrequency reports the dominant spectral line of column. A zero
// frequency means the spectrum peaked at DC.
func describeFrequency(column string, freq, amp float64) string {
	if freq <= 0 {
		return fmt.Sprintf("dominant frequency of %s: no oscillation (mean power %.4g)", column, amp)
	}
	return fmt.Sprintf("dominant frequency of %s: %.4f Hz (period %.2fs, power %.4g)", column, freq, 1/freq, amp)
}

func polarSurface(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var mount *config.MountConfig
	for i := range cfg.Surfaces {
		if cfg.Surfaces[i].Name == surfaceName {
			mount = &cfg.Surfaces[i]
		}
	}
	if mount == nil {
		return fmt.Errorf("unknown surface %q", surfaceName)
	}

	points, err := analysis.Polar(mount.Surface, flapDeg, fromDeg, toDeg, stepDeg)
	if err != nil {
		return err
	}

	if pngPath != "" {
		if err := analysis.SavePolarPlot(pngPath, cfg.Name+" "+surfaceName, points); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngPath)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AOA\tLIFT\tDRAG\tTORQUE\tL/D\tREGIME")
	for _, p := range points {
		fmt.Fprintf(w, "%.1f\t%.4f\t%.4f\t%.4f\t%.2f\t%s\n", p.AoADeg, p.Lift, p.Drag, p.Torque, p.LiftToDrag(), p.Regime)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := analysis.BestGlide(points); ok {
		fmt.Printf("\nbest L/D: %.2f at %.1f°\n", best.LiftToDrag(), best.AoADeg)
	}
	if peak, ok := analysis.MaxLift(points); ok {
		fmt.Printf("max lift: %.4f at %.1f°\n", peak.Lift, peak.AoADeg)
	}
	return nil
}

func balanceAirframe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	speed := airspeed
	if speed <= 0 {
		speed = cfg.Initial.Airspeed
	}
	agg := cfg.BuildAggregator()
	k := cfg.InitialKinematics()

	air := k.Forward().Mul(-speed)
	center, force, err := agg.PreviewCenterOfLift(&k, air, cfg.Environment.AirDensity)
	switch {
	case errors.Is(err, aircraft.ErrNoNetForce):
		fmt.Println("center of lift: undefined (no net force)")
	case err != nil:
		return err
	default:
		rel := k.Rotation.Inverse().Rotate(center.Sub(k.CenterOfMass))
		fmt.Printf("center of lift (body, from COM): [%.3f %.3f %.3f] m\n", rel.X(), rel.Y(), rel.Z())
		fmt.Printf("net force: [%.1f %.1f %.1f] N, weight %.1f N\n", force.X(), force.Y(), force.Z(), k.Mass*cfg.Environment.Gravity)
	}

	aoa := make([]float64, 0, 26)
	for a := -10.0; a <= 15; a++ {
		aoa = append(aoa, a)
	}
	points := analysis.StaticStability(agg, k, speed, cfg.Environment.AirDensity, aoa)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nAOA\tLIFT\tMOMENT\tCOL_Z")
	for _, p := range points {
		col := "-"
		if p.Defined {
			col = fmt.Sprintf("%.3f", p.CenterOfLift.Z())
		}
		fmt.Fprintf(w, "%.0f\t%.1f\t%.1f\t%s\n", p.AoADeg, p.Force.Y(), p.PitchMoment, col)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stiffness := analysis.PitchStiffness(points)
	verdict := "stable"
	if stiffness >= 0 {
		verdict = "unstable"
	}
	fmt.Printf("\npitch stiffness: %.2f N·m/deg (%s)\n", stiffness, verdict)
	if trim, ok := analysis.TrimAoA(points); ok {
		fmt.Printf("trim angle of attack: %.2f°\n", trim)
	} else {
		fmt.Println("no trim angle of attack in range")
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m, err := viz.NewModel().Fly(cfg)
	if err != nil {
		return err
	}
	return runProgram(m)
}

func runProgram(m viz.Model) error {
	// Keep log output from tearing the alt screen.
	log = log.Level(zerolog.Disabled)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("presets:")
		for _, name := range config.ListPresets() {
			p := config.GetPreset(name)
			fmt.Printf("  %-10s %d surfaces, %.0f kg, pilot %s\n", name, len(p.Surfaces), p.Airframe.Mass, p.Pilot.Kind)
		}
		return nil
	}

	cfg := config.GetPreset(args[0])
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func benchFlights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ens := flight.NewEnsemble(func(int) (*flight.Simulator, aircraft.Kinematics, error) {
		return cfg.Build()
	}, numRuns)

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := ens.Run(ctx, cfg.Sim)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	steps := 0
	for _, r := range results {
		steps += r.StepsTaken
	}
	fmt.Printf("flights: %d\n", numRuns)
	fmt.Printf("total steps: %d\n", steps)
	fmt.Printf("elapsed: %v\n", elapsed)
	fmt.Printf("steps/sec: %.0f\n", float64(steps)/elapsed.Seconds())
	fmt.Printf("sim seconds per wall second: %.1f\n", float64(numRuns)*cfg.Sim.Duration/elapsed.Seconds())
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tTIME\tFINAL ALT\tENERGY DRIFT\tSTALL FRAC\tERRORS")
	for _, name := range args {
		c := *cfg
		c.Integrator = name
		sim, k0, err := c.Build()
		if err != nil {
			return err
		}
		sim.SetLogger(log)
		for _, m := range metrics.Standard(c.Environment.Gravity) {
			sim.AddMetric(m)
		}

		start := time.Now()
		res, err := sim.Run(ctx, k0, c.Sim)
		if err != nil {
			return err
		}
		final := mgl64.Vec3{}
		if n := len(res.Samples); n > 0 {
			final = res.Samples[n-1].Position
		}
		fmt.Fprintf(w, "%s\t%v\t%.1f\t%.4f\t%.3f\t%d\n",
			name, time.Since(start).Round(time.Millisecond), final.Y(),
			res.Metrics["energy_drift"], res.Metrics["stall_fraction"], len(res.Errors))
	}
	return w.Flush()
}

// parseAxis reads one "name=lo:hi:n" grid axis.
func parseAxis(axis string) (string, []float64, error) {
	name, rng, ok := strings.Cut(axis, "=")
	parts := strings.Split(rng, ":")
	if !ok || name == "" || len(parts) != 3 {
		return "", nil, fmt.Errorf("invalid grid axis %q, want name=lo:hi:n", axis)
	}
	lo, err1 := strconv.ParseFloat(parts[0], 64)
	hi, err2 := strconv.ParseFloat(parts[1], 64)
	n, err3 := strconv.Atoi(parts[2])
	if err := errors.Join(err1, err2, err3); err != nil {
		return "", nil, fmt.Errorf("invalid grid axis %q: %w", axis, err)
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func tunePilot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Pilot.Kind == "" || cfg.Pilot.Kind == "manual" {
		cfg.Pilot.Kind = "pitch_hold"
		if cfg.Pilot.Throttle == 0 && cfg.Airframe.MaxThrust > 0 {
			cfg.Pilot.Throttle = 0.6
		}
	}

	names := make([]string, 0, len(tuneParams))
	ranges := make([][]float64, 0, len(tuneParams))
	for _, axis := range tuneParams {
		name, values, err := parseAxis(axis)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	build := func(params map[string]float64) (*flight.Simulator, aircraft.Kinematics, error) {
		sim, k0, err := cfg.Build()
		if err != nil {
			return nil, k0, err
		}
		pilot, ok := sim.Pilot().(dynamo.Configurable)
		if !ok {
			return nil, k0, fmt.Errorf("pilot %s has no tunable parameters", cfg.Pilot.Kind)
		}
		if err := optim.Apply(pilot, params); err != nil {
			return nil, k0, err
		}
		for _, m := range metrics.Standard(cfg.Environment.Gravity) {
			sim.AddMetric(m)
		}
		return sim, k0, nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	log.Info().Strs("params", names).Str("metric", tuneMetric).Msg("tuning started")
	best, value, trials, err := optim.NewGridSearch(names, ranges).Search(ctx, build, cfg.Sim, tuneMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(tuneMetric))
	for _, tr := range trials {
		cols := make([]string, 0, len(names)+1)
		for _, name := range names {
			cols = append(cols, fmt.Sprintf("%.3f", tr.Params[name]))
		}
		if tr.Err != nil {
			cols = append(cols, "failed: "+tr.Err.Error())
		} else {
			cols = append(cols, fmt.Sprintf("%.6f", tr.Value))
		}
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f with", tuneMetric, value)
	for _, name := range names {
		fmt.Printf(" %s=%.3f", name, best[name])
	}
	fmt.Println()
	return nil
}
