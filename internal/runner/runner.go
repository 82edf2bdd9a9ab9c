// Package runner materializes the generation artifacts in the workspace,
// invokes the external interpreter against them, and guarantees the artifacts
// are removed whatever the invocation does.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"codeforge/internal/logging"
)

const (
	driverFileName = "codeforge_driver.py"
	moduleFileName = "codeforge_module.py"

	// TokenEnvVar scopes the session token to the interpreter process.
	// The token is never written to disk.
	TokenEnvVar = "CODEFORGE_SESSION_TOKEN"

	DefaultTimeout = 2 * time.Minute
)

var ErrInterpreterNotFound = errors.New("interpreter not found")

type Runner struct {
	interpreter string
	timeout     time.Duration
	logger      *slog.Logger
}

// New builds a runner. interpreter may be empty, in which case python3 then
// python are looked up on PATH at run time.
func New(interpreter string, timeout time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{interpreter: strings.TrimSpace(interpreter), timeout: timeout, logger: logger}
}

type Result struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

type Artifacts struct {
	DriverPath string
	ModulePath string
}

// Release removes both artifacts. Best effort; missing files are fine.
func (a *Artifacts) Release() {
	if a == nil {
		return
	}
	_ = os.Remove(a.DriverPath)
	_ = os.Remove(a.ModulePath)
}

// Materialize writes the generated content into the module artifact and a
// driver script next to it. The workspace path is embedded in the driver; the
// token deliberately is not.
func Materialize(workspaceDir, content string) (*Artifacts, error) {
	art := &Artifacts{
		DriverPath: filepath.Join(workspaceDir, driverFileName),
		ModulePath: filepath.Join(workspaceDir, moduleFileName),
	}
	if err := os.WriteFile(art.ModulePath, []byte(content), 0o600); err != nil {
		return nil, err
	}
	driver := driverScript(workspaceDir, art.ModulePath)
	if err := os.WriteFile(art.DriverPath, []byte(driver), 0o600); err != nil {
		art.Release()
		return nil, err
	}
	return art, nil
}

// Process runs one full artifact cycle: materialize, invoke, release.
func (r *Runner) Process(ctx context.Context, workspaceDir, content, token string) (*Result, error) {
	art, err := Materialize(workspaceDir, content)
	if err != nil {
		return nil, err
	}
	defer art.Release()
	return r.Run(ctx, art, workspaceDir, token)
}

// Run invokes the interpreter against the driver artifact with a hard
// timeout, capturing stdout and stderr. The Result is returned alongside the
// error so callers can surface whatever the process wrote.
func (r *Runner) Run(ctx context.Context, art *Artifacts, workspaceDir, token string) (*Result, error) {
	interpreter, err := r.resolveInterpreter()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, interpreter, art.DriverPath)
	cmd.Dir = workspaceDir
	env := make([]string, 0, len(os.Environ())+1)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, TokenEnvVar+"=") {
			continue
		}
		env = append(env, entry)
	}
	if token != "" {
		env = append(env, TokenEnvVar+"="+token)
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	r.logger.Debug("runner.finished",
		"interpreter", interpreter,
		"duration_ms", result.Duration.Milliseconds(),
		"stderr_len", len(result.Stderr),
	)
	if runErr != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return result, fmt.Errorf("interpreter timed out after %s", r.timeout)
		}
		detail := strings.TrimSpace(result.Stderr)
		if detail == "" {
			detail = runErr.Error()
		}
		return result, fmt.Errorf("interpreter failed: %s", detail)
	}
	return result, nil
}

func (r *Runner) resolveInterpreter() (string, error) {
	if r.interpreter != "" {
		path, err := exec.LookPath(r.interpreter)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInterpreterNotFound, r.interpreter)
		}
		return path, nil
	}
	if path, err := exec.LookPath("python3"); err == nil {
		return path, nil
	}
	if path, err := exec.LookPath("python"); err == nil {
		return path, nil
	}
	return "", ErrInterpreterNotFound
}

func driverScript(workspaceDir, modulePath string) string {
	return fmt.Sprintf(`import os
import sys

WORKSPACE = %q
MODULE_PATH = %q


def main():
    token = os.environ.get(%q, "")
    if not token:
        sys.stderr.write("missing session token\n")
        return 1
    with open(MODULE_PATH, "r", encoding="utf-8") as handle:
        source = handle.read()
    sys.stdout.write("processed %%d bytes for %%s\n" %% (len(source), WORKSPACE))
    return 0


if __name__ == "__main__":
    sys.exit(main())
`, workspaceDir, modulePath, TokenEnvVar)
}
