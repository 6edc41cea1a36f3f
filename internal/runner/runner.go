// Package runner invokes the black-box hydro solver with per-run
// parameter overrides. The verification core never depends on it
// directly; it only consumes the tab files the solver leaves behind.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Runner executes one solver run against an input file plus overrides.
type Runner interface {
	Run(ctx context.Context, input string, overrides []string) error
}

// ExecRunner shells out to the solver binary, Athena-style:
//
//	athena -i athinput.linear_wave2d job/problem_id=... mesh/nx1=64 ...
//
// The solver runs with Dir as its working directory; that is where it
// leaves its tab output, so Dir must match the directory the analysis
// reads from.
type ExecRunner struct {
	Bin string
	Dir string
}

func NewExecRunner(bin, dir string) *ExecRunner {
	return &ExecRunner{Bin: bin, Dir: dir}
}

func (r *ExecRunner) Run(ctx context.Context, input string, overrides []string) error {
	args := make([]string, 0, len(overrides)+2)
	args = append(args, "-i", input)
	args = append(args, overrides...)

	// exec.Cmd evaluates a relative Path against Dir, which would turn
	// Bin "bin/athena" with Dir "bin" into bin/bin/athena. Pin the
	// binary to the invoking directory before switching.
	bin := r.Bin
	if r.Dir != "" && !filepath.IsAbs(bin) && strings.Contains(bin, string(filepath.Separator)) {
		abs, err := filepath.Abs(bin)
		if err != nil {
			return fmt.Errorf("resolve solver binary: %w", err)
		}
		bin = abs
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("solver run failed: %w: %s", err, stderr.String())
		}
		return fmt.Errorf("solver run failed: %w", err)
	}
	return nil
}
