package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Technologicat/materials/internal/config"
	"github.com/Technologicat/materials/internal/experiment"
	"github.com/Technologicat/materials/internal/loading"
	"github.com/Technologicat/materials/internal/material"
	"github.com/Technologicat/materials/internal/optim"
	"github.com/Technologicat/materials/internal/storage"
	"github.com/Technologicat/materials/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// path
	kind      string
	shape     string
	amplitude float64
	shear     float64
	steps     int
	cycles    int
	dt        float64
	// solver
	maxIter int
	tol     float64
	// material parameters as name=value
	params map[string]string
	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepN     int
	// fit
	grids     []string
	fitMetric string
	fitTarget float64
	// loop plot components
	xComp int
	yComp int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "matdrv",
		Short: "strain-driven material point driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".matdrv", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "drive a material point along a load path and store the history",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPath,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list material models and their default parameters",
		RunE:  listModels,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot axial strain, stress and iterations of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	loopCmd := &cobra.Command{
		Use:   "loop [run_id]",
		Short: "plot the stress-strain loop of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  loopPlot,
	}
	loopCmd.Flags().IntVar(&xComp, "strain", 0, "strain component on the x-axis (0-5)")
	loopCmd.Flags().IntVar(&yComp, "stress", 0, "stress component on the y-axis (0-5)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the run history as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write the run as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				cfg := config.Presets[args[0]][p]
				fmt.Printf("  %-16s %s %s amp=%g\n", p, cfg.Path.Kind, cfg.Path.Shape, cfg.Path.Amplitude)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "run one path for a range of a material parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "yield_stress", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 50, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 250, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a batch of configurations from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	fitCmd := &cobra.Command{
		Use:   "fit [model]",
		Short: "grid-search material parameters so a metric hits a target",
		Args:  cobra.MaximumNArgs(1),
		RunE:  fitParams,
	}
	addRunFlags(fitCmd)
	fitCmd.Flags().StringArrayVar(&grids, "grid", nil, "parameter grid name=lo:hi:n (repeatable)")
	fitCmd.Flags().StringVar(&fitMetric, "metric", "peak_stress", "metric to match")
	fitCmd.Flags().Float64Var(&fitTarget, "target", 0, "target metric value")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "drive a material point in the terminal, step by step",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg.Material.Model, cfg)
		},
	}
	addRunFlags(liveCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "measure solver throughput for increasing step counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchModel,
	}

	rootCmd.AddCommand(runCmd, listCmd, modelsCmd, plotCmd, loopCmd, exportCSVCmd, exportJSONCmd, presetsCmd, sweepCmd, scenarioCmd, fitCmd, liveCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&kind, "kind", string(def.Path.Kind), "uniaxial, biaxial or stress")
	cmd.Flags().StringVar(&shape, "shape", def.Path.Shape, "ramp or cyclic")
	cmd.Flags().Float64Var(&amplitude, "amplitude", def.Path.Amplitude, "axial strain, or axial stress for --kind stress")
	cmd.Flags().Float64Var(&shear, "shear", 0, "engineering shear strain 12 (biaxial)")
	cmd.Flags().IntVar(&steps, "steps", def.Path.Steps, "steps per ramp or quarter cycle")
	cmd.Flags().IntVar(&cycles, "cycles", def.Path.Cycles, "number of cycles")
	cmd.Flags().Float64Var(&dt, "dt", def.Path.Dt, "time increment per step")
	cmd.Flags().IntVar(&maxIter, "max-iter", def.Solver.MaxIter, "maximum solver iterations per step")
	cmd.Flags().Float64Var(&tol, "tol", def.Solver.Tol, "solver tolerance on the strain correction")
	cmd.Flags().StringToStringVar(&params, "set", nil, "material parameter, e.g. --set yield_stress=250")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Material.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Material.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Material.Model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Material.Model = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("kind") {
		cfg.Path.Kind = loading.Kind(kind)
	}
	if flags.Changed("shape") {
		cfg.Path.Shape = shape
	}
	if flags.Changed("amplitude") {
		cfg.Path.Amplitude = amplitude
	}
	if flags.Changed("shear") {
		cfg.Path.Shear = shear
	}
	if flags.Changed("steps") {
		cfg.Path.Steps = steps
	}
	if flags.Changed("cycles") {
		cfg.Path.Cycles = cycles
	}
	if flags.Changed("dt") {
		cfg.Path.Dt = dt
	}
	if flags.Changed("max-iter") {
		cfg.Solver.MaxIter = maxIter
	}
	if flags.Changed("tol") {
		cfg.Solver.Tol = tol
	}
	if cfg.Material.Params == nil {
		cfg.Material.Params = map[string]float64{}
	}
	for name, raw := range params {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %s: %w", name, err)
		}
		cfg.Material.Params[name] = v
	}
	return cfg, nil
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("driving %s: %s\n", cfg.Material.Model, exp.Describe())
	start := time.Now()
	result, runErr := exp.Run(context.Background())
	elapsed := time.Since(start)
	if result == nil {
		return runErr
	}

	if c, ok := exp.Model().(material.Configurable); ok {
		cfg.Material.Params = c.GetParams()
	}
	info := storage.RunInfo{
		Model:   cfg.Material.Model,
		Params:  cfg.Material.Params,
		Path:    exp.Describe(),
		MaxIter: cfg.Solver.MaxIter,
		Tol:     cfg.Solver.Tol,
		Err:     runErr,
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Records)-1)
	fmt.Printf("iterations: %d\n", result.TotalIterations)
	printMetrics(result.Metrics)

	return runErr
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, metrics[name])
	}
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tITERS\tPATH\tSTATUS")
	for _, run := range runs {
		status := "ok"
		if run.Error != "" {
			status = "failed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.TotalIterations,
			run.Path,
			status,
		)
	}
	return w.Flush()
}

func listModels(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODEL\tPARAMETERS")
	for _, name := range material.List() {
		m, err := material.New(name, nil)
		if err != nil {
			return err
		}
		desc := ""
		if c, ok := m.(material.Configurable); ok {
			p := c.GetParams()
			keys := make([]string, 0, len(p))
			for k := range p {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				desc += fmt.Sprintf("%s=%g ", k, p[k])
			}
		}
		fmt.Fprintf(w, "%s\t%s\n", name, desc)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sweep := &experiment.ParameterSweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, NumSteps: sweepN}
	fmt.Printf("sweeping %s of %s over [%g, %g] in %d runs\n\n", sweepParam, cfg.Material.Model, sweepMin, sweepMax, sweepN)

	results, err := experiment.RunSweep(context.Background(), cfg, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPEAK σ11\tWORK\tITERS\tFINAL σ11\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4f\t%.4g\t%d\t%.4f\n",
			r.Value, r.Metrics["peak_stress"], r.Metrics["work"], r.Iterations, r.Final.Stress[0])
	}
	return w.Flush()
}

func fitParams(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(grids) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	names := make([]string, 0, len(grids))
	ranges := make([][]float64, 0, len(grids))
	for _, g := range grids {
		name, values, err := parseGrid(g)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	fit, err := optim.NewGridSearch(names, ranges).Search(context.Background(), cfg, fitMetric, fitTarget)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6g (target %g, miss %.3g)\n", fitMetric, fit.Value, fitTarget, fit.Miss)
	fmt.Printf("runs: %d, failed: %d\n", fit.Runs, fit.Failed)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, fit.Params[name])
	}
	return nil
}

// parseGrid reads name=lo:hi:n.
func parseGrid(s string) (string, []float64, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok {
		return "", nil, fmt.Errorf("grid %q: expected name=lo:hi:n", s)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q: expected name=lo:hi:n", s)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("grid %q: %w", s, err)
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("grid %q: %w", s, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", nil, fmt.Errorf("grid %q: bad count %q", s, parts[2])
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d runs\n", scenario.Name, len(scenario.Runs))
	results, err := experiment.RunScenario(context.Background(), scenario)
	for i, r := range results {
		fmt.Printf("  %-20s steps=%d iterations=%d peak=%.4f\n",
			scenario.Runs[i].Name, len(r.Records)-1, r.TotalIterations, r.Metrics["peak_stress"])
	}
	return err
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := config.DefaultModel
	if len(args) > 0 {
		model = args[0]
	}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tSTEPS\tITERS\tTIME\tSTEPS/SEC")

	for _, k := range []loading.Kind{loading.Uniaxial, loading.Biaxial} {
		for _, n := range []int{10, 100, 1000} {
			cfg := config.DefaultConfig()
			cfg.Material.Model = model
			cfg.Path.Kind = k
			cfg.Path.Shear = cfg.Path.Amplitude
			cfg.Path.Steps = n

			exp, err := experiment.New(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			total := len(result.Records) - 1
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
				k, total, result.TotalIterations, elapsed, float64(total)/elapsed.Seconds())
		}
	}
	return w.Flush()
}
