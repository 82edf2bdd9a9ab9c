package runner

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMaterializeWritesArtifactsWithoutToken(t *testing.T) {
	dir := t.TempDir()
	art, err := Materialize(dir, "def generated():\n    pass\n")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	defer art.Release()

	module, err := os.ReadFile(art.ModulePath)
	if err != nil {
		t.Fatalf("read module: %v", err)
	}
	if string(module) != "def generated():\n    pass\n" {
		t.Fatalf("unexpected module content %q", module)
	}
	driver, err := os.ReadFile(art.DriverPath)
	if err != nil {
		t.Fatalf("read driver: %v", err)
	}
	if !strings.Contains(string(driver), dir) {
		t.Fatalf("driver must embed the workspace path")
	}
	if !strings.Contains(string(driver), TokenEnvVar) {
		t.Fatalf("driver must read the token from the environment")
	}
}

func TestReleaseRemovesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	art, err := Materialize(dir, "content")
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	art.Release()
	for _, path := range []string{art.DriverPath, art.ModulePath} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected %s removed", path)
		}
	}
	// Releasing twice must be harmless.
	art.Release()
}

func writeShellDriver(t *testing.T, dir, script string) *Artifacts {
	t.Helper()
	path := filepath.Join(dir, "driver.sh")
	if err := os.WriteFile(path, []byte(script), 0o700); err != nil {
		t.Fatalf("write driver: %v", err)
	}
	return &Artifacts{DriverPath: path, ModulePath: filepath.Join(dir, "module.txt")}
}

func TestRunCapturesOutputAndScopesToken(t *testing.T) {
	dir := t.TempDir()
	art := writeShellDriver(t, dir, "echo \"token=$CODEFORGE_SESSION_TOKEN\"\necho warned >&2\n")
	r := New("sh", time.Minute, nil)
	result, err := r.Run(context.Background(), art, dir, "tok-scoped")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(result.Stdout, "token=tok-scoped") {
		t.Fatalf("expected token in child env, stdout %q", result.Stdout)
	}
	if !strings.Contains(result.Stderr, "warned") {
		t.Fatalf("expected stderr captured, got %q", result.Stderr)
	}
}

func TestRunSurfacesStderrOnFailure(t *testing.T) {
	dir := t.TempDir()
	art := writeShellDriver(t, dir, "echo it broke >&2\nexit 3\n")
	r := New("sh", time.Minute, nil)
	result, err := r.Run(context.Background(), art, dir, "tok")
	if err == nil {
		t.Fatalf("expected failure")
	}
	if !strings.Contains(err.Error(), "it broke") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
	if result == nil || !strings.Contains(result.Stderr, "it broke") {
		t.Fatalf("expected result with stderr, got %+v", result)
	}
}

func TestRunTimesOut(t *testing.T) {
	dir := t.TempDir()
	art := writeShellDriver(t, dir, "sleep 5\n")
	r := New("sh", 100*time.Millisecond, nil)
	_, err := r.Run(context.Background(), art, dir, "tok")
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestRunUnknownInterpreter(t *testing.T) {
	dir := t.TempDir()
	art := writeShellDriver(t, dir, "exit 0\n")
	r := New("definitely-not-an-interpreter", time.Minute, nil)
	if _, err := r.Run(context.Background(), art, dir, "tok"); err == nil {
		t.Fatalf("expected interpreter resolution failure")
	}
}

func TestProcessCleansUpOnSuccessAndFailure(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
	dir := t.TempDir()
	r := New("python3", time.Minute, nil)

	// Success path: token present, driver exits 0.
	result, err := r.Process(context.Background(), dir, "generated content", "tok-live")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(result.Stdout, "processed") {
		t.Fatalf("unexpected stdout %q", result.Stdout)
	}
	assertNoArtifacts(t, dir)

	// Failure path: missing token makes the driver exit non-zero.
	if _, err := r.Process(context.Background(), dir, "generated content", ""); err == nil {
		t.Fatalf("expected driver failure without token")
	}
	assertNoArtifacts(t, dir)
}

func assertNoArtifacts(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "codeforge_") {
			t.Fatalf("artifact %s left behind", entry.Name())
		}
	}
}
