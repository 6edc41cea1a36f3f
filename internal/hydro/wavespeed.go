package hydro

import (
	"fmt"
	"math"
)

// Wave identifies one of the five characteristic families of the
// linearized 2D Euler system.
type Wave int

const (
	LeftAcoustic Wave = iota
	Entropy1
	Entropy2
	Entropy3
	RightAcoustic

	NumWaves = 5
)

func (w Wave) String() string {
	switch w {
	case LeftAcoustic:
		return "left-acoustic"
	case Entropy1, Entropy2, Entropy3:
		return fmt.Sprintf("entropy-%d", int(w))
	case RightAcoustic:
		return "right-acoustic"
	default:
		return fmt.Sprintf("wave-%d", int(w))
	}
}

// Valid reports whether w names one of the five families.
func (w Wave) Valid() bool {
	return w >= LeftAcoustic && w <= RightAcoustic
}

// AllWaves returns the five families in index order.
func AllWaves() []Wave {
	return []Wave{LeftAcoustic, Entropy1, Entropy2, Entropy3, RightAcoustic}
}

// EquilibriumState is the uniform background the waves are seeded on.
type EquilibriumState struct {
	Rho   float64
	Pgas  float64
	Vx    float64
	Vy    float64
	Vz    float64
	Gamma float64
}

// Validate checks the physical parameter ranges. Violations are
// configuration errors and abort before any analysis work.
func (s EquilibriumState) Validate() error {
	if s.Rho <= 0 {
		return fmt.Errorf("density must be positive, got %g", s.Rho)
	}
	if s.Pgas <= 0 {
		return fmt.Errorf("pressure must be positive, got %g", s.Pgas)
	}
	if s.Gamma <= 1 {
		return fmt.Errorf("adiabatic index must exceed 1, got %g", s.Gamma)
	}
	return nil
}

// SoundSpeed returns sqrt(gamma * pgas / rho).
func (s EquilibriumState) SoundSpeed() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return math.Sqrt(s.Gamma * s.Pgas / s.Rho), nil
}

// SpeedSet holds the eigenvalues of the linearized flux Jacobian, one per
// family, indexed by Wave.
type SpeedSet [NumWaves]float64

// Speed returns the characteristic speed of a single family.
func (ss SpeedSet) Speed(w Wave) (float64, error) {
	if !w.Valid() {
		return 0, fmt.Errorf("wave index out of range: %d", int(w))
	}
	return ss[w], nil
}

// CrossingTime returns one wave-crossing period, 1/|speed|, for the given
// family. A zero-speed family (stationary entropy mode in a zero-flow
// background) has no finite period and is rejected.
func (ss SpeedSet) CrossingTime(w Wave) (float64, error) {
	v, err := ss.Speed(w)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("wave %s is stationary, crossing time undefined", w)
	}
	return 1.0 / math.Abs(v), nil
}

// ComputeSpeeds performs the closed-form eigenvalue decomposition for an
// x-directed background flow: [vx-cs, vx, vx, vx, vx+cs].
func ComputeSpeeds(state EquilibriumState) (SpeedSet, error) {
	cs, err := state.SoundSpeed()
	if err != nil {
		return SpeedSet{}, err
	}

	var ss SpeedSet
	ss[LeftAcoustic] = state.Vx - cs
	ss[Entropy1] = state.Vx
	ss[Entropy2] = state.Vx
	ss[Entropy3] = state.Vx
	ss[RightAcoustic] = state.Vx + cs
	return ss, nil
}
