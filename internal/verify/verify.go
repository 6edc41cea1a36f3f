// Package verify drives the per-wave, per-resolution error computation and
// applies the convergence-order acceptance test.
package verify

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/wavecheck/internal/grid"
	"github.com/san-kum/wavecheck/internal/hydro"
	"github.com/san-kum/wavecheck/internal/metrics"
)

// Stage selects which output time of a run a snapshot belongs to.
type Stage int

const (
	StageInitial Stage = iota
	StageFinal
)

func (s Stage) String() string {
	if s == StageInitial {
		return "initial"
	}
	return "final"
}

// SnapshotProvider is the boundary to the external tabular-output parser.
// Implementations must return a distinct error when the expected output is
// missing or malformed; a missing snapshot means "untested", never a
// silent pass or fail.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, w hydro.Wave, resolution int, stage Stage) (*grid.Snapshot, error)
}

// Pair holds the low and high grid sizes along the propagation axis.
type Pair struct {
	Low  int
	High int
}

// Validate checks the pair against the mesh-block factor both grids must
// decompose into.
func (p Pair) Validate(blockFactor int) error {
	if p.Low <= 0 || p.High <= 0 {
		return fmt.Errorf("resolutions must be positive, got %d/%d", p.Low, p.High)
	}
	if p.High <= p.Low {
		return fmt.Errorf("high resolution %d must exceed low resolution %d", p.High, p.Low)
	}
	if blockFactor > 0 && (p.Low%blockFactor != 0 || p.High%blockFactor != 0) {
		return fmt.Errorf("resolutions %d/%d must be multiples of block factor %d", p.Low, p.High, blockFactor)
	}
	return nil
}

// Bound returns the acceptance threshold (low/high)^cutoff that the
// high-to-low error ratio must not exceed.
func (p Pair) Bound(cutoff float64) float64 {
	return math.Pow(float64(p.Low)/float64(p.High), cutoff)
}

// WaveReport records one family's evaluation for failure triage.
type WaveReport struct {
	Wave    hydro.Wave `json:"wave"`
	ErrLow  float64    `json:"err_low"`
	ErrHigh float64    `json:"err_high"`
	Ratio   float64    `json:"ratio"`
	Bound   float64    `json:"bound"`
	Passed  bool       `json:"passed"`
}

// Verdict is the aggregate outcome: AND over all wave families.
type Verdict struct {
	Passed bool         `json:"passed"`
	Waves  []WaveReport `json:"waves"`
}

// Analyzer applies the resolution-scaling acceptance test to each wave
// family. It holds no mutable state; one Analyzer may evaluate waves
// concurrently.
type Analyzer struct {
	provider SnapshotProvider
	amp      float64
	cutoff   float64
}

func New(provider SnapshotProvider, amp, cutoff float64) (*Analyzer, error) {
	if provider == nil {
		return nil, fmt.Errorf("snapshot provider is required")
	}
	if amp <= 0 {
		return nil, fmt.Errorf("perturbation amplitude must be positive, got %g", amp)
	}
	if cutoff <= 0 {
		return nil, fmt.Errorf("order cutoff must be positive, got %g", cutoff)
	}
	return &Analyzer{provider: provider, amp: amp, cutoff: cutoff}, nil
}

func (a *Analyzer) resolutionError(ctx context.Context, w hydro.Wave, res int) (float64, error) {
	initial, err := a.provider.Snapshot(ctx, w, res, StageInitial)
	if err != nil {
		return 0, fmt.Errorf("wave %s res %d initial: %w", w, res, err)
	}
	final, err := a.provider.Snapshot(ctx, w, res, StageFinal)
	if err != nil {
		return 0, fmt.Errorf("wave %s res %d final: %w", w, res, err)
	}
	return metrics.NormalizedError(initial, final, a.amp)
}

// EvaluateWave computes both resolutions' normalized errors for one family
// and applies the power-law bound.
func (a *Analyzer) EvaluateWave(ctx context.Context, w hydro.Wave, pair Pair) (WaveReport, error) {
	if !w.Valid() {
		return WaveReport{}, fmt.Errorf("wave index out of range: %d", int(w))
	}

	errLow, err := a.resolutionError(ctx, w, pair.Low)
	if err != nil {
		return WaveReport{}, err
	}
	errHigh, err := a.resolutionError(ctx, w, pair.High)
	if err != nil {
		return WaveReport{}, err
	}

	r := WaveReport{
		Wave:    w,
		ErrLow:  errLow,
		ErrHigh: errHigh,
		Bound:   pair.Bound(a.cutoff),
	}

	switch {
	case errLow == 0 && errHigh == 0:
		// Degenerate: no measurable drift at either resolution.
		r.Ratio = 0
		r.Passed = true
	case errLow == 0:
		r.Ratio = math.Inf(1)
		r.Passed = false
	default:
		r.Ratio = errHigh / errLow
		r.Passed = r.Ratio <= r.Bound
	}
	return r, nil
}

// Verify evaluates every requested wave family and ANDs the outcomes. All
// families are evaluated even after one fails, so the verdict can name the
// failing waves. Any snapshot error aborts the whole verification.
func (a *Analyzer) Verify(ctx context.Context, waves []hydro.Wave, pair Pair) (*Verdict, error) {
	if len(waves) == 0 {
		return nil, fmt.Errorf("no wave families to verify")
	}
	if err := pair.Validate(0); err != nil {
		return nil, err
	}

	reports, err := a.evaluateAll(ctx, waves, pair)
	if err != nil {
		return nil, err
	}

	verdict := &Verdict{Passed: true, Waves: reports}
	for _, r := range reports {
		if !r.Passed {
			verdict.Passed = false
		}
	}
	return verdict, nil
}
