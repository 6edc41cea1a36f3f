package verify

import (
	"context"
	"sync"

	"github.com/san-kum/wavecheck/internal/hydro"
)

// evaluateAll fans the wave families out over goroutines. Each family's
// snapshots and errors are independent, so no synchronization beyond the
// join is needed; reports come back in input order.
func (a *Analyzer) evaluateAll(ctx context.Context, waves []hydro.Wave, pair Pair) ([]WaveReport, error) {
	reports := make([]WaveReport, len(waves))
	errs := make([]error, len(waves))

	var wg sync.WaitGroup
	for i, w := range waves {
		wg.Add(1)
		go func(idx int, w hydro.Wave) {
			defer wg.Done()
			reports[idx], errs[idx] = a.EvaluateWave(ctx, w, pair)
		}(i, w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return reports, nil
}
