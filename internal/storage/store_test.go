package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/wavecheck/internal/hydro"
	"github.com/san-kum/wavecheck/internal/verify"
)

func sampleReport() Report {
	return Report{
		Passed:    false,
		Gamma:     5.0 / 3.0,
		Vflow:     0.1,
		Amplitude: 1e-6,
		Cutoff:    1.8,
		ResLow:    64,
		ResHigh:   128,
		Waves: []verify.WaveReport{
			{Wave: hydro.LeftAcoustic, ErrLow: 0.04, ErrHigh: 0.01, Ratio: 0.25, Bound: 0.287, Passed: true},
			{Wave: hydro.Entropy1, ErrLow: 0.04, ErrHigh: 0.04, Ratio: 1.0, Bound: 0.287, Passed: false},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	id, err := st.Save(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty report id")
	}

	loaded, err := st.Load(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Passed {
		t.Error("expected failed verdict to round-trip")
	}
	if len(loaded.Waves) != 2 {
		t.Fatalf("expected 2 wave reports, got %d", len(loaded.Waves))
	}
	if loaded.Waves[1].Wave != hydro.Entropy1 || loaded.Waves[1].Passed {
		t.Errorf("wave report corrupted: %+v", loaded.Waves[1])
	}
}

func TestSaveWritesWaveCSV(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	id, err := st.Save(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, id, "waves.csv")); err != nil {
		t.Errorf("expected waves.csv: %v", err)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	r := sampleReport()
	r.ID = "verify_a"
	if _, err := st.Save(r); err != nil {
		t.Fatal(err)
	}
	r.ID = "verify_b"
	r.Passed = true
	if _, err := st.Save(r); err != nil {
		t.Fatal(err)
	}

	reports, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Errorf("expected 2 reports, got %d", len(reports))
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))

	reports, err := st.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

func TestLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("absent"); err == nil {
		t.Error("expected error for missing report")
	}
}
