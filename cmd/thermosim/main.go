package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bohounsoun/thermosim/internal/config"
	"github.com/bohounsoun/thermosim/internal/cycle"
	"github.com/bohounsoun/thermosim/internal/metrics"
	"github.com/bohounsoun/thermosim/internal/store"
	"github.com/bohounsoun/thermosim/internal/sweep"
	"github.com/bohounsoun/thermosim/internal/tui"
	"github.com/bohounsoun/thermosim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	cycleName string
	gasName   string
	tau       float64
	peakTemp  float64
	cutoff    float64
	maxVolume float64
	pressure  float64
	temp      float64

	rpm          float64
	cylinders    int
	displacement float64

	tauMin     float64
	tauMax     float64
	sweepSteps int
	format     string

	noSave bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thermosim",
		Short: "otto and diesel cycle virtual laboratory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".thermosim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "compute one cycle and print the results",
		RunE:  runCycle,
	}
	addCycleFlags(runCmd)
	runCmd.Flags().Float64Var(&rpm, "rpm", config.DefaultSpeed, "engine speed")
	runCmd.Flags().IntVar(&cylinders, "cylinders", config.DefaultCylinders, "cylinder count")
	runCmd.Flags().Float64Var(&displacement, "displacement", config.DefaultDisplacement, "displacement per cylinder (m3)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset operating point")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip saving the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "efficiency vs compression ratio",
		RunE:  runSweep,
	}
	addCycleFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&tauMin, "tau-min", config.DefaultSweepMin, "lowest compression ratio")
	sweepCmd.Flags().Float64Var(&tauMax, "tau-max", config.DefaultSweepMax, "highest compression ratio")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", config.DefaultSweepSteps, "number of samples")
	sweepCmd.Flags().StringVar(&format, "format", "plot", "output format: plot, json, csv")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "render a saved run's P-V diagram",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's vertex table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [cycle]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Println("gas presets:")
				for _, g := range config.ListGasPresets() {
					fmt.Printf("  %s\n", g)
				}
				return nil
			}
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for cycle: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	labCmd := &cobra.Command{
		Use:   "lab",
		Short: "interactive virtual laboratory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(cfg)
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, labCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCycleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cycleName, "cycle", "otto", "cycle type (otto, diesel)")
	cmd.Flags().StringVar(&gasName, "gas", "ideal", "gas preset (ideal, nitrogen, air, co2, helium)")
	cmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "compression ratio")
	cmd.Flags().Float64Var(&peakTemp, "tmax", config.DefaultPeakTemp, "peak temperature (K)")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "diesel cutoff ratio (overrides tmax)")
	cmd.Flags().Float64Var(&maxVolume, "vmax", config.DefaultMaxVolume, "maximum cylinder volume (m3)")
	cmd.Flags().Float64Var(&pressure, "pressure", config.DefaultPressure, "intake pressure (Pa)")
	cmd.Flags().Float64Var(&temp, "temp", config.DefaultTemp, "intake temperature (K)")
}

// loadConfig resolves the effective configuration: defaults, then preset,
// then config file, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(cycleName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cycleName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagSet := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if flagSet("cycle") || cfg.Cycle == "" {
		cfg.Cycle = cycleName
	}
	if flagSet("gas") {
		g := config.GetGasPreset(gasName)
		if g == nil {
			return nil, fmt.Errorf("unknown gas preset: %s (available: %v)", gasName, config.ListGasPresets())
		}
		cfg.Gas = *g
	}
	if flagSet("tau") {
		cfg.Spec.Tau = tau
	}
	if flagSet("tmax") {
		cfg.Spec.PeakTemp = peakTemp
	}
	if flagSet("cutoff") {
		cfg.Spec.Cutoff = cutoff
	}
	if flagSet("vmax") {
		cfg.Spec.MaxVolume = maxVolume
	}
	if flagSet("pressure") {
		cfg.Spec.Pressure = pressure
	}
	if flagSet("temp") {
		cfg.Spec.Temp = temp
	}
	if flagSet("rpm") {
		cfg.Engine.Speed = rpm
	}
	if flagSet("cylinders") {
		cfg.Engine.Cylinders = cylinders
	}
	if flagSet("displacement") {
		cfg.Engine.Displacement = displacement
	}
	if flagSet("tau-min") {
		cfg.Sweep.TauMin = tauMin
	}
	if flagSet("tau-max") {
		cfg.Sweep.TauMax = tauMax
	}
	if flagSet("steps") {
		cfg.Sweep.Steps = sweepSteps
	}

	return cfg, nil
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}
	spec, err := cfg.CycleSpec()
	if err != nil {
		return err
	}

	res, err := engine.Compute(spec)
	if err != nil {
		return err
	}
	curves, err := engine.Curves(res, cfg.CurveSamples())
	if err != nil {
		return err
	}

	perf, err := metrics.Compute(res, metrics.Params{
		Speed:        cfg.Engine.Speed,
		Cylinders:    cfg.Engine.Cylinders,
		Displacement: cfg.Engine.Displacement,
	})
	if err != nil {
		return err
	}

	fmt.Println(viz.Summary(res, &perf))
	fmt.Println(viz.PVDiagram(curves, 70, 20))

	if !noSave {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(res, curves)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}
	base, err := cfg.CycleSpec()
	if err != nil {
		return err
	}

	res, err := sweep.Run(context.Background(), engine, base, cfg.Sweep.TauMin, cfg.Sweep.TauMax, cfg.Sweep.Steps)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return store.WriteSweepJSON(os.Stdout, cfg.Cycle, engine.Model.Kind.String(), res)
	case "csv":
		return store.WriteSweepCSV(os.Stdout, res)
	default:
		fmt.Println(viz.EfficiencyPlot(res, 80, 15))
		if res.Failed > 0 {
			fmt.Printf("\n%d of %d samples failed:\n", res.Failed, len(res.Samples))
			for _, s := range res.Samples {
				if s.Err != nil {
					fmt.Printf("  τ=%.2f: %v\n", s.Tau, s.Err)
				}
			}
		}
		return nil
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCYCLE\tGAS\tTIME\tTAU\tEFFICIENCY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%.2f%%\n",
			run.ID,
			run.Cycle,
			run.Gas,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Tau,
			run.Metrics["efficiency"]*100,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	var curves [4]cycle.Curve
	byLeg := make(map[string]int, 4)
	for i, leg := range cycle.Legs {
		curves[i].Leg = leg
		byLeg[leg] = i
	}
	for _, p := range points {
		i, ok := byLeg[p.Leg]
		if !ok {
			continue
		}
		curves[i].Volume = append(curves[i].Volume, p.Volume)
		curves[i].Pressure = append(curves[i].Pressure, p.Pressure)
		curves[i].Temperature = append(curves[i].Temperature, p.Temperature)
		curves[i].Entropy = append(curves[i].Entropy, p.Entropy)
	}

	fmt.Printf("run: %s\ncycle: %s (%s), τ=%.1f\n\n", meta.ID, meta.Cycle, meta.Gas, meta.Tau)
	fmt.Println(viz.PVDiagram(curves, 70, 20))
	fmt.Println(viz.TSDiagram(curves, 80, 12))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	export, err := st.LoadExport(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	export, err := st.LoadExport(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"index", "label", "pressure", "volume", "temperature", "entropy", "cumulative_work"}); err != nil {
		return err
	}
	for _, v := range export.Vertices {
		row := []string{
			strconv.Itoa(v.Index),
			v.Label,
			strconv.FormatFloat(v.Pressure, 'g', -1, 64),
			strconv.FormatFloat(v.Volume, 'g', -1, 64),
			strconv.FormatFloat(v.Temperature, 'g', -1, 64),
			strconv.FormatFloat(v.Entropy, 'g', -1, 64),
			strconv.FormatFloat(v.CumulativeWork, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
