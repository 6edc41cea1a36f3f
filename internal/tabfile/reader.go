// Package tabfile parses the solver's tabular block output into field
// snapshots and adapts it to the analyzer's snapshot-provider boundary.
//
// A 2D tab file is whitespace-separated columns, one cell per row, with a
// trailing comment header declaring the column labels:
//
//	# Athena++ hydro output
//	# x y rho pgas vx vy vz
//	1.5625e-02 -4.6875e-01 1.000001 0.600000 0.100000 0.000000 0.000000
//	...
//
// The first two columns are cell-center coordinates; the rest are the
// primitive quantities. Rows may come in any order; axes are recovered
// from the distinct coordinate values.
package tabfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/wavecheck/internal/grid"
)

var (
	// ErrNotFound marks a missing output file: the run is untested,
	// never silently converged or diverged.
	ErrNotFound = errors.New("tab file not found")
	// ErrHeaderMismatch marks a file whose declared columns differ from
	// the expected quantity labels.
	ErrHeaderMismatch = errors.New("tab file header mismatch")
	// ErrTruncated marks a file with missing or malformed rows.
	ErrTruncated = errors.New("tab file truncated or malformed")
)

// ReadSnapshot parses one tab file. labels are the expected quantity
// columns in file order (coordinates excluded); dims is the mesh
// dimensionality, of which only 2 is supported.
func ReadSnapshot(path string, labels []grid.Quantity, dims int) (*grid.Snapshot, error) {
	if dims != 2 {
		return nil, fmt.Errorf("unsupported dimensionality %d, only 2D tab output is handled", dims)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	snap, err := parse(f, labels)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

type cell struct {
	i, j int
	vals []float64
}

func parse(r io.Reader, labels []grid.Quantity) (*grid.Snapshot, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header []string
	var cells []cell
	xAxis := newAxisIndex()
	yAxis := newAxisIndex()

	ncols := len(labels) + 2

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if len(cells) == 0 {
				// Last comment line before data carries the labels.
				header = strings.Fields(strings.TrimPrefix(line, "#"))
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != ncols {
			return nil, fmt.Errorf("%w: expected %d columns, got %d", ErrTruncated, ncols, len(fields))
		}

		vals := make([]float64, len(labels))
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", ErrTruncated, fields[0])
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad coordinate %q", ErrTruncated, fields[1])
		}
		for k, tok := range fields[2:] {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad value %q", ErrTruncated, tok)
			}
			vals[k] = v
		}

		// Coordinate tokens repeat verbatim across rows, so axes are
		// recovered textually without float comparisons.
		cells = append(cells, cell{
			i:    xAxis.add(fields[0], x),
			j:    yAxis.add(fields[1], y),
			vals: vals,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if err := checkHeader(header, labels); err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no data rows", ErrTruncated)
	}

	nx, ny := xAxis.len(), yAxis.len()
	if len(cells) != nx*ny {
		return nil, fmt.Errorf("%w: %d rows for a %dx%d mesh", ErrTruncated, len(cells), nx, ny)
	}

	snap := grid.NewSnapshot()
	snap.X = xAxis.values
	snap.Y = yAxis.values
	for qi, q := range labels {
		g, err := grid.NewGrid(nx, ny)
		if err != nil {
			return nil, err
		}
		for _, c := range cells {
			g.Set(c.i, c.j, c.vals[qi])
		}
		snap.Fields[q] = g
	}
	return snap, nil
}

func checkHeader(header []string, labels []grid.Quantity) error {
	if header == nil {
		return fmt.Errorf("%w: no column header", ErrHeaderMismatch)
	}
	expected := make([]string, 0, len(labels)+2)
	expected = append(expected, "x", "y")
	for _, q := range labels {
		expected = append(expected, string(q))
	}
	if len(header) != len(expected) {
		return fmt.Errorf("%w: declared %v, expected %v", ErrHeaderMismatch, header, expected)
	}
	for i, h := range header {
		if h != expected[i] {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrHeaderMismatch, i, h, expected[i])
		}
	}
	return nil
}

// axisIndex recovers one coordinate axis in order of first appearance.
type axisIndex struct {
	index  map[string]int
	values []float64
}

func newAxisIndex() *axisIndex {
	return &axisIndex{index: make(map[string]int)}
}

func (a *axisIndex) add(token string, v float64) int {
	if i, ok := a.index[token]; ok {
		return i
	}
	i := len(a.values)
	a.index[token] = i
	a.values = append(a.values, v)
	return i
}

func (a *axisIndex) len() int { return len(a.values) }
