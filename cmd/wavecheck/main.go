package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/wavecheck/internal/config"
	"github.com/san-kum/wavecheck/internal/hydro"
	"github.com/san-kum/wavecheck/internal/report"
	"github.com/san-kum/wavecheck/internal/runner"
	"github.com/san-kum/wavecheck/internal/storage"
	"github.com/san-kum/wavecheck/internal/suite"
	"github.com/san-kum/wavecheck/internal/tui"
	"github.com/san-kum/wavecheck/internal/verify"
)

var (
	dataDir    string
	configFile string
	preset     string

	gamma     float64
	vflow     float64
	rho       float64
	pgas      float64
	amplitude float64
	cutoff    float64
	resLow    int
	resHigh   int
	waves     []int

	solverBin   string
	solverInput string
	outputDir   string

	plain  bool
	noSave bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wavecheck",
		Short:         "linear wave convergence verification for hydro solvers",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".wavecheck", "report directory")

	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "run the solver and verify convergence",
		RunE:  runVerify,
	}
	addParamFlags(verifyCmd)
	verifyCmd.Flags().StringVar(&solverBin, "solver", "", "solver binary")
	verifyCmd.Flags().StringVar(&solverInput, "input", "", "solver input file")
	verifyCmd.Flags().BoolVar(&plain, "plain", false, "disable live progress display")
	verifyCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the report")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "verify convergence from existing solver output",
		RunE:  runAnalyze,
	}
	addParamFlags(analyzeCmd)
	analyzeCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the report")

	speedsCmd := &cobra.Command{
		Use:   "speeds",
		Short: "print characteristic wave speeds",
		RunE:  runSpeeds,
	}
	addParamFlags(speedsCmd)

	reportCmd := &cobra.Command{
		Use:   "report [report_id]",
		Short: "show a saved verification report",
		Args:  cobra.ExactArgs(1),
		RunE:  showReport,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved reports",
		RunE:  listReports,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(verifyCmd, analyzeCmd, speedsCmd, reportCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "adiabatic index")
	cmd.Flags().Float64Var(&vflow, "vflow", config.DefaultVflow, "background flow velocity")
	cmd.Flags().Float64Var(&rho, "rho", config.DefaultRho, "background density")
	cmd.Flags().Float64Var(&pgas, "pgas", 1.0/config.DefaultGamma, "background pressure")
	cmd.Flags().Float64Var(&amplitude, "amp", config.DefaultAmplitude, "perturbation amplitude")
	cmd.Flags().Float64Var(&cutoff, "cutoff", config.DefaultCutoff, "convergence order cutoff")
	cmd.Flags().IntVar(&resLow, "res-low", config.DefaultResLow, "low resolution")
	cmd.Flags().IntVar(&resHigh, "res-high", config.DefaultResHigh, "high resolution")
	cmd.Flags().IntSliceVar(&waves, "waves", []int{0, 1, 2, 3, 4}, "wave family flags to test")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory holding solver tab output")
}

// buildConfig resolves precedence: flags override config file, config file
// overrides preset, preset overrides defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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

	if cmd.Flags().Changed("gamma") {
		cfg.Gamma = gamma
	}
	if cmd.Flags().Changed("vflow") {
		cfg.Vflow = vflow
	}
	if cmd.Flags().Changed("rho") {
		cfg.Rho = rho
	}
	if cmd.Flags().Changed("pgas") {
		cfg.Pgas = pgas
	}
	if cmd.Flags().Changed("amp") {
		cfg.Amplitude = amplitude
	}
	if cmd.Flags().Changed("cutoff") {
		cfg.Cutoff = cutoff
	}
	if cmd.Flags().Changed("res-low") {
		cfg.Resolutions.Low = resLow
	}
	if cmd.Flags().Changed("res-high") {
		cfg.Resolutions.High = resHigh
	}
	if cmd.Flags().Changed("waves") {
		cfg.Waves = waves
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Solver.Dir = outputDir
	}
	if solverBin != "" {
		cfg.Solver.Bin = solverBin
	}
	if solverInput != "" {
		cfg.Solver.Input = solverInput
	}
	return cfg, nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	r := runner.NewExecRunner(cfg.Solver.Bin, cfg.Solver.Dir)
	s, err := suite.New(cfg, r)
	if err != nil {
		return err
	}

	start := time.Now()
	var verdict *verify.Verdict

	totalRuns := 2 * len(cfg.Waves)
	if plain {
		s.OnProgress(func(e suite.Event) {
			if e.Phase == suite.PhaseRun {
				fmt.Printf("running wave %s at %d cells...\n", e.Wave, e.Resolution)
			}
		})
		v, err := s.Run(context.Background())
		if err != nil {
			return err
		}
		verdict = v
	} else {
		v, err := tui.Run(context.Background(), s, totalRuns)
		if err != nil {
			return err
		}
		verdict = v
	}

	fmt.Printf("completed in %v\n\n", time.Since(start).Round(time.Millisecond))
	return finishVerdict(s, verdict)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	s, err := suite.New(cfg, nil)
	if err != nil {
		return err
	}

	verdict, err := s.Analyze(context.Background())
	if err != nil {
		return err
	}
	return finishVerdict(s, verdict)
}

func finishVerdict(s *suite.Suite, verdict *verify.Verdict) error {
	fmt.Print(report.Render(verdict))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(s.Report(verdict))
		if err != nil {
			return err
		}
		fmt.Printf("report id: %s\n", id)
	}

	if !verdict.Passed {
		return fmt.Errorf("convergence verification failed")
	}
	return nil
}

func runSpeeds(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	speeds, err := hydro.ComputeSpeeds(cfg.Equilibrium())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WAVE\tSPEED\tCROSSING_TIME")
	for _, wave := range hydro.AllWaves() {
		v, _ := speeds.Speed(wave)
		ct := "-"
		if t, err := speeds.CrossingTime(wave); err == nil {
			ct = fmt.Sprintf("%.6f", t)
		}
		fmt.Fprintf(w, "%s\t%+.6f\t%s\n", wave, v, ct)
	}
	return w.Flush()
}

func showReport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rep, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("report: %s\n", rep.ID)
	fmt.Printf("time: %s\n", rep.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("gamma=%.4f vflow=%.3f amp=%.1e cutoff=%.2f res=%d/%d\n\n",
		rep.Gamma, rep.Vflow, rep.Amplitude, rep.Cutoff, rep.ResLow, rep.ResHigh)

	verdict := &verify.Verdict{Passed: rep.Passed, Waves: rep.Waves}
	if err := report.WriteTable(os.Stdout, verdict); err != nil {
		return err
	}

	ratios := report.Ratios(verdict)
	if len(ratios) > 1 {
		bound := math.Pow(float64(rep.ResLow)/float64(rep.ResHigh), rep.Cutoff)
		graph := asciigraph.Plot(ratios,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption(fmt.Sprintf("error ratio per wave (bound %.4f)", bound)),
		)
		fmt.Println("\n" + graph)
	}
	return nil
}

func listReports(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	reports, err := st.List()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("no reports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tRES\tCUTOFF\tRESULT")
	for _, r := range reports {
		result := "pass"
		if !r.Passed {
			result = "fail"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%.2f\t%s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.ResLow, r.ResHigh,
			r.Cutoff,
			result,
		)
	}
	return w.Flush()
}
