package runner

import (
	"fmt"
	"strconv"

	"github.com/san-kum/wavecheck/internal/hydro"
)

// RunSpec describes one solver invocation: a single wave family evolved
// for one crossing period on one grid. The mesh aspect is fixed at 4:1
// over the unit domain [0,1]x[-0.5,0.5], so nx2 = nx1/4 keeps cells
// square.
type RunSpec struct {
	ProblemID string
	Nx1       int
	Tlim      float64
	Gamma     float64
	Wave      hydro.Wave
	Amplitude float64
	Vflow     float64
}

// Overrides renders the run as section/key=value parameter overrides.
// Output 1 is the solver's native dump; output 2 is the tab output the
// analysis reads, written at t=0 and t=tlim only.
func (s RunSpec) Overrides() []string {
	return []string{
		"job/problem_id=" + s.ProblemID,
		"mesh/nx1=" + strconv.Itoa(s.Nx1),
		"mesh/nx2=" + strconv.Itoa(s.Nx1/4),
		"mesh/x1min=0.0",
		"mesh/x1max=1.0",
		"mesh/x2min=-0.5",
		"mesh/x2max=0.5",
		"time/tlim=" + formatFloat(s.Tlim),
		"output1/dt=" + formatFloat(s.Tlim),
		"output2/dt=" + formatFloat(s.Tlim),
		"output2/file_type=tab",
		"fluid/gamma=" + formatFloat(s.Gamma),
		"problem/wave_flag=" + strconv.Itoa(int(s.Wave)),
		"problem/amp=" + formatFloat(s.Amplitude),
		"problem/vflow=" + formatFloat(s.Vflow),
	}
}

func (s RunSpec) Validate() error {
	if s.ProblemID == "" {
		return fmt.Errorf("problem id is required")
	}
	if s.Nx1 <= 0 || s.Nx1%4 != 0 {
		return fmt.Errorf("nx1 must be a positive multiple of 4, got %d", s.Nx1)
	}
	if s.Tlim <= 0 {
		return fmt.Errorf("tlim must be positive, got %g", s.Tlim)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
