// Package grid holds 2D field snapshots read from solver output and the
// numerically stable reductions the error analysis runs over them.
package grid

import "fmt"

// Quantity names a primitive hydro variable stored in a snapshot.
type Quantity string

const (
	Density   Quantity = "rho"
	Pressure  Quantity = "pgas"
	VelocityX Quantity = "vx"
	VelocityY Quantity = "vy"
	VelocityZ Quantity = "vz"
)

// Primitives returns the five quantities the wave perturbs, in the column
// order the solver writes them.
func Primitives() []Quantity {
	return []Quantity{Density, Pressure, VelocityX, VelocityY, VelocityZ}
}

// Grid is a dense 2D field stored row-major, ny rows of nx cells. Every
// stored cell is active; ghost zones are stripped before construction.
type Grid struct {
	nx, ny int
	data   []float64
}

func NewGrid(nx, ny int) (*Grid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", nx, ny)
	}
	return &Grid{nx: nx, ny: ny, data: make([]float64, nx*ny)}, nil
}

// FromValues wraps an existing row-major slice. The slice is not copied.
func FromValues(nx, ny int, values []float64) (*Grid, error) {
	if nx <= 0 || ny <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %dx%d", nx, ny)
	}
	if len(values) != nx*ny {
		return nil, fmt.Errorf("grid %dx%d needs %d values, got %d", nx, ny, nx*ny, len(values))
	}
	return &Grid{nx: nx, ny: ny, data: values}, nil
}

func (g *Grid) Nx() int    { return g.nx }
func (g *Grid) Ny() int    { return g.ny }
func (g *Grid) Cells() int { return g.nx * g.ny }

func (g *Grid) At(i, j int) float64 {
	return g.data[j*g.nx+i]
}

func (g *Grid) Set(i, j int, v float64) {
	g.data[j*g.nx+i] = v
}

// Values exposes the backing slice for read-only reductions.
func (g *Grid) Values() []float64 { return g.data }

// SameShape reports whether two grids cover identical cell counts per axis.
func (g *Grid) SameShape(o *Grid) bool {
	return o != nil && g.nx == o.nx && g.ny == o.ny
}

// Snapshot maps quantities to their grids at one output time, plus the cell
// center coordinates of the mesh.
type Snapshot struct {
	Fields map[Quantity]*Grid
	X      []float64
	Y      []float64
}

func NewSnapshot() *Snapshot {
	return &Snapshot{Fields: make(map[Quantity]*Grid)}
}

// Field returns the grid for a quantity or an error if the snapshot lacks it.
func (s *Snapshot) Field(q Quantity) (*Grid, error) {
	g, ok := s.Fields[q]
	if !ok {
		return nil, fmt.Errorf("snapshot missing quantity %q", q)
	}
	return g, nil
}
