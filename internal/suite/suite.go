// Package suite orchestrates the full verification pipeline: one solver
// run per wave family and resolution, then the convergence analysis over
// the tab output.
package suite

import (
	"context"
	"fmt"

	"github.com/san-kum/wavecheck/internal/config"
	"github.com/san-kum/wavecheck/internal/hydro"
	"github.com/san-kum/wavecheck/internal/runner"
	"github.com/san-kum/wavecheck/internal/storage"
	"github.com/san-kum/wavecheck/internal/tabfile"
	"github.com/san-kum/wavecheck/internal/verify"
)

// Phase tags a progress event.
type Phase string

const (
	PhaseRun     Phase = "run"
	PhaseAnalyze Phase = "analyze"
)

// Event reports pipeline progress, one event per solver run and one per
// wave analysis.
type Event struct {
	Phase      Phase
	Wave       hydro.Wave
	Resolution int
}

type Suite struct {
	cfg      *config.Config
	runner   runner.Runner
	provider *tabfile.Provider
	analyzer *verify.Analyzer
	speeds   hydro.SpeedSet
	progress func(Event)
}

// New validates the configuration and computes the wave speeds up front;
// every configuration error surfaces here, before any solver work.
func New(cfg *config.Config, r runner.Runner) (*Suite, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	speeds, err := hydro.ComputeSpeeds(cfg.Equilibrium())
	if err != nil {
		return nil, err
	}

	// Reject stationary waves now rather than mid-pipeline: a zero
	// characteristic speed has no crossing period to evolve for.
	for _, w := range cfg.WaveFamilies() {
		if _, err := speeds.CrossingTime(w); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	provider := tabfile.NewProvider(cfg.Solver.Dir, cfg.Solver.Prefix, cfg.Pair())
	analyzer, err := verify.New(provider, cfg.Amplitude, cfg.Cutoff)
	if err != nil {
		return nil, err
	}

	return &Suite{
		cfg:      cfg,
		runner:   r,
		provider: provider,
		analyzer: analyzer,
		speeds:   speeds,
	}, nil
}

// OnProgress registers a callback invoked before each pipeline step.
func (s *Suite) OnProgress(fn func(Event)) { s.progress = fn }

func (s *Suite) emit(e Event) {
	if s.progress != nil {
		s.progress(e)
	}
}

// Speeds returns the characteristic speeds of the configured background.
func (s *Suite) Speeds() hydro.SpeedSet { return s.speeds }

// Run executes the solver for every (wave, resolution) combination and
// then analyzes the output. Solver failures abort immediately.
func (s *Suite) Run(ctx context.Context) (*verify.Verdict, error) {
	if s.runner == nil {
		return nil, fmt.Errorf("no simulation runner configured")
	}

	pair := s.cfg.Pair()
	for _, w := range s.cfg.WaveFamilies() {
		tlim, err := s.speeds.CrossingTime(w)
		if err != nil {
			return nil, err
		}

		for _, res := range []int{pair.Low, pair.High} {
			if err := s.runWave(ctx, w, res, tlim); err != nil {
				return nil, err
			}
		}
	}

	return s.Analyze(ctx)
}

func (s *Suite) runWave(ctx context.Context, w hydro.Wave, res int, tlim float64) error {
	s.emit(Event{Phase: PhaseRun, Wave: w, Resolution: res})

	id, err := s.provider.ProblemID(w, res)
	if err != nil {
		return err
	}

	spec := runner.RunSpec{
		ProblemID: id,
		Nx1:       res,
		Tlim:      tlim,
		Gamma:     s.cfg.Gamma,
		Wave:      w,
		Amplitude: s.cfg.Amplitude,
		Vflow:     s.cfg.Vflow,
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	if err := s.runner.Run(ctx, s.cfg.Solver.Input, spec.Overrides()); err != nil {
		return fmt.Errorf("wave %s at resolution %d: %w", w, res, err)
	}
	return nil
}

// Analyze applies the convergence test to already-produced solver output
// without invoking the solver.
func (s *Suite) Analyze(ctx context.Context) (*verify.Verdict, error) {
	for _, w := range s.cfg.WaveFamilies() {
		s.emit(Event{Phase: PhaseAnalyze, Wave: w})
	}
	return s.analyzer.Verify(ctx, s.cfg.WaveFamilies(), s.cfg.Pair())
}

// Report packages a verdict with its parameters for persistence.
func (s *Suite) Report(verdict *verify.Verdict) storage.Report {
	return storage.Report{
		Passed:    verdict.Passed,
		Gamma:     s.cfg.Gamma,
		Vflow:     s.cfg.Vflow,
		Amplitude: s.cfg.Amplitude,
		Cutoff:    s.cfg.Cutoff,
		ResLow:    s.cfg.Resolutions.Low,
		ResHigh:   s.cfg.Resolutions.High,
		Waves:     verdict.Waves,
	}
}
