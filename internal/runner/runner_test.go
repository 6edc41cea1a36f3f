package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/san-kum/wavecheck/internal/hydro"
)

func TestRunSpecOverrides(t *testing.T) {
	spec := RunSpec{
		ProblemID: "hydro_wave_0_low",
		Nx1:       64,
		Tlim:      1.25,
		Gamma:     5.0 / 3.0,
		Wave:      hydro.LeftAcoustic,
		Amplitude: 1e-6,
		Vflow:     0.1,
	}

	overrides := spec.Overrides()

	expected := map[string]bool{
		"job/problem_id=hydro_wave_0_low": false,
		"mesh/nx1=64":                     false,
		"mesh/nx2=16":                     false,
		"time/tlim=1.25":                  false,
		"output2/file_type=tab":           false,
		"problem/wave_flag=0":             false,
		"problem/amp=1e-06":               false,
		"problem/vflow=0.1":               false,
	}

	for _, o := range overrides {
		if _, ok := expected[o]; ok {
			expected[o] = true
		}
	}
	for o, seen := range expected {
		if !seen {
			t.Errorf("missing override %q in %v", o, overrides)
		}
	}

	// Output cadence must match the evolution time so exactly two
	// snapshots exist per run.
	var tlim, out2 string
	for _, o := range overrides {
		if strings.HasPrefix(o, "time/tlim=") {
			tlim = strings.TrimPrefix(o, "time/tlim=")
		}
		if strings.HasPrefix(o, "output2/dt=") {
			out2 = strings.TrimPrefix(o, "output2/dt=")
		}
	}
	if tlim != out2 {
		t.Errorf("tab output dt %q should equal tlim %q", out2, tlim)
	}
}

func TestRunSpecValidate(t *testing.T) {
	valid := RunSpec{ProblemID: "p", Nx1: 64, Tlim: 1.0}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		spec RunSpec
	}{
		{"empty id", RunSpec{Nx1: 64, Tlim: 1}},
		{"zero nx1", RunSpec{ProblemID: "p", Tlim: 1}},
		{"non-multiple nx1", RunSpec{ProblemID: "p", Nx1: 62, Tlim: 1}},
		{"zero tlim", RunSpec{ProblemID: "p", Nx1: 64}},
	}
	for _, tt := range tests {
		if err := tt.spec.Validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestExecRunnerFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix false(1)")
	}

	r := NewExecRunner("false", "")
	if err := r.Run(context.Background(), "input", nil); err == nil {
		t.Error("expected error from failing solver")
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := NewExecRunner("definitely-not-a-solver-binary", "")
	if err := r.Run(context.Background(), "input", nil); err == nil {
		t.Error("expected error for missing binary")
	}
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func TestExecRunnerWorkingDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell script solver")
	}

	base := t.TempDir()
	workDir := filepath.Join(base, "out")
	if err := os.Mkdir(workDir, 0o755); err != nil {
		t.Fatal(err)
	}

	script := filepath.Join(base, "solver.sh")
	writeScript(t, script, "#!/bin/sh\npwd > marker.txt\n")

	r := NewExecRunner(script, workDir)
	if err := r.Run(context.Background(), "input", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(workDir, "marker.txt")); err != nil {
		t.Errorf("solver did not run in its working directory: %v", err)
	}
}

func TestExecRunnerRelativeBin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a shell script solver")
	}

	base := t.TempDir()
	binDir := filepath.Join(base, "bin")
	if err := os.Mkdir(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, filepath.Join(binDir, "athena"), "#!/bin/sh\npwd > marker.txt\n")
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(base); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	// Bin relative to the invoking directory while Dir points at the
	// same directory; the lookup must not become bin/bin/athena.
	r := NewExecRunner(filepath.Join("bin", "athena"), binDir)
	if err := r.Run(context.Background(), "input", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(binDir, "marker.txt")); err != nil {
		t.Errorf("marker not written in working directory: %v", err)
	}
}

func TestExecRunnerSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix true(1)")
	}

	r := NewExecRunner("true", "")
	if err := r.Run(context.Background(), "input", []string{"a=1"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
