package grid

import (
	"math"
	"math/rand"
	"testing"
)

func TestGridIndexing(t *testing.T) {
	g, err := NewGrid(4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g.Set(3, 1, 2.5)
	if g.At(3, 1) != 2.5 {
		t.Errorf("expected 2.5, got %f", g.At(3, 1))
	}
	if g.Cells() != 8 {
		t.Errorf("expected 8 cells, got %d", g.Cells())
	}
}

func TestGridInvalidShape(t *testing.T) {
	if _, err := NewGrid(0, 4); err == nil {
		t.Error("expected error for zero nx")
	}
	if _, err := FromValues(2, 2, []float64{1, 2, 3}); err == nil {
		t.Error("expected error for short value slice")
	}
}

func TestMeanAbsDiffIdentical(t *testing.T) {
	g, _ := FromValues(3, 2, []float64{1, 2, 3, 4, 5, 6})

	d, err := MeanAbsDiff(g, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 0 {
		t.Errorf("expected exactly zero for identical grids, got %g", d)
	}
}

func TestMeanAbsDiff(t *testing.T) {
	a, _ := FromValues(2, 2, []float64{0, 0, 0, 0})
	b, _ := FromValues(2, 2, []float64{1, -1, 2, -2})

	d, err := MeanAbsDiff(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d-1.5) > 1e-15 {
		t.Errorf("expected 1.5, got %f", d)
	}
}

func TestMeanAbsDiffShapeMismatch(t *testing.T) {
	a, _ := NewGrid(2, 2)
	b, _ := NewGrid(4, 1)

	if _, err := MeanAbsDiff(a, b); err == nil {
		t.Error("expected shape mismatch error")
	}
}

func TestCompensatedSumTinyTerms(t *testing.T) {
	// 1e4 terms of 1e-6 with one large term mixed in: naive summation
	// loses the small terms, compensated keeps them.
	var acc CompensatedSum
	acc.Add(1e10)
	for i := 0; i < 10000; i++ {
		acc.Add(1e-6)
	}
	acc.Add(-1e10)

	if math.Abs(acc.Value()-1e-2) > 1e-9 {
		t.Errorf("expected 1e-2, got %g", acc.Value())
	}
}

func TestCompensatedSumOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	values := make([]float64, 5000)
	for i := range values {
		values[i] = rng.Float64() * 1e-6
	}

	var fwd CompensatedSum
	for _, v := range values {
		fwd.Add(v)
	}

	var rev CompensatedSum
	for i := len(values) - 1; i >= 0; i-- {
		rev.Add(values[i])
	}

	if math.Abs(fwd.Value()-rev.Value()) > 1e-15 {
		t.Errorf("summation order changed result: %g vs %g", fwd.Value(), rev.Value())
	}
}

func TestSnapshotField(t *testing.T) {
	s := NewSnapshot()
	g, _ := NewGrid(2, 2)
	s.Fields[Density] = g

	if _, err := s.Field(Density); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := s.Field(Pressure); err == nil {
		t.Error("expected error for missing quantity")
	}
}
