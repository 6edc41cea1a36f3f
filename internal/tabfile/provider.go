package tabfile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/san-kum/wavecheck/internal/grid"
	"github.com/san-kum/wavecheck/internal/hydro"
	"github.com/san-kum/wavecheck/internal/verify"
)

// Provider locates the solver's per-run tab files and serves them as
// snapshots. It implements verify.SnapshotProvider.
type Provider struct {
	Dir    string
	Prefix string
	Pair   verify.Pair
}

func NewProvider(dir, prefix string, pair verify.Pair) *Provider {
	return &Provider{Dir: dir, Prefix: prefix, Pair: pair}
}

// ProblemID is the per-run identifier the solver embeds in its output
// file names, e.g. "hydro_wave_3_low".
func (p *Provider) ProblemID(w hydro.Wave, resolution int) (string, error) {
	var level string
	switch resolution {
	case p.Pair.Low:
		level = "low"
	case p.Pair.High:
		level = "high"
	default:
		return "", fmt.Errorf("resolution %d is neither low (%d) nor high (%d)", resolution, p.Pair.Low, p.Pair.High)
	}
	return fmt.Sprintf("%s_%d_%s", p.Prefix, int(w), level), nil
}

// Path returns the tab file for one run and stage. The solver writes the
// initial state as output 00000 and the state after one crossing period
// as 00001.
func (p *Provider) Path(w hydro.Wave, resolution int, stage verify.Stage) (string, error) {
	id, err := p.ProblemID(w, resolution)
	if err != nil {
		return "", err
	}
	n := 0
	if stage == verify.StageFinal {
		n = 1
	}
	return filepath.Join(p.Dir, fmt.Sprintf("%s.block0.out2.%05d.tab", id, n)), nil
}

func (p *Provider) Snapshot(ctx context.Context, w hydro.Wave, resolution int, stage verify.Stage) (*grid.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := p.Path(w, resolution, stage)
	if err != nil {
		return nil, err
	}
	return ReadSnapshot(path, grid.Primitives(), 2)
}
