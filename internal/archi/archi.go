// Package archi runs the optional end-to-end smoke test: loading the
// repository with the Archi command-line application and inspecting its
// output. The process runner is injectable so engine tests never spawn a
// real binary.
package archi

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"regexp"

	"github.com/starford/graflint/internal/diag"
)

// Runner executes a command and returns its exit code and combined
// stdout/stderr output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (int, string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and waits for it. A non-zero exit is not an
// error at this level; it is reported through the returned code.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (int, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), string(out), nil
		}
		return 0, string(out), err
	}
	return 0, string(out), nil
}

// loadFailureRe matches Archi CLI output lines that indicate the model
// did not load cleanly even when the process exited zero.
var loadFailureRe = regexp.MustCompile(`(?i)Exception|Unresolved|Error loading model`)

// SmokeTest loads the repository with the Archi CLI via runner. A missing
// or non-executable binary, a non-zero exit code, or failure patterns in
// the output are all recorded as errors.
func SmokeTest(ctx context.Context, runner Runner, bin, repoRoot string) diag.Batch {
	var b diag.Batch

	info, err := os.Stat(bin)
	if err != nil || info.Mode()&0o111 == 0 {
		b.Errorf(diag.CategoryArchi, "Archi binary not executable: %s", bin)
		return b
	}

	code, out, err := runner.Run(ctx, bin,
		"-application", "com.archimatetool.commandline.app",
		"-consoleLog", "-nosplash",
		"--modelrepository.loadModel", repoRoot)
	if err != nil {
		b.Errorf(diag.CategoryArchi, "Failed to run Archi CLI: %s", err)
		return b
	}
	if code != 0 {
		b.Errorf(diag.CategoryArchi, "Archi CLI returned code %d", code)
	}
	if loadFailureRe.MatchString(out) {
		b.Errorf(diag.CategoryArchi, "Archi CLI reported errors/unresolved objects")
	}

	return b
}
