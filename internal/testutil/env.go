// Package testutil provides utilities for testing fetchbin in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Env describes the isolated directories created by SetupTestEnv.
type Env struct {
	// Root is the per-test temporary directory.
	Root string
	// BinDir is where the fetch binary is stored. FETCHBIN_BIN_DIR points here.
	BinDir string
	// WorkDir is the working directory for the test.
	WorkDir string
}

var fetchbinEnv = []string{
	"FETCHBIN_VERSION",
	"FETCHBIN_BASE_URL",
	"FETCHBIN_BIN_DIR",
	"FETCHBIN_LOG_LEVEL",
}

// SetupTestEnv isolates a test from the user's fetchbin settings. It clears
// every FETCHBIN_* variable, points FETCHBIN_BIN_DIR at a temp directory and
// changes into an empty working directory so no fetchbin.lua is picked up.
//
// Cleanup is handled by t.TempDir, t.Setenv and t.Cleanup.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	env := &Env{
		Root:    root,
		BinDir:  filepath.Join(root, "bin"),
		WorkDir: filepath.Join(root, "work"),
	}

	for _, dir := range []string{env.BinDir, env.WorkDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	for _, key := range fetchbinEnv {
		t.Setenv(key, "")
	}
	t.Setenv("FETCHBIN_BIN_DIR", env.BinDir)

	// Equivalent of t.Chdir (Go 1.24+) for older toolchains.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(env.WorkDir); err != nil {
		t.Fatalf("failed to change to %s: %v", env.WorkDir, err)
	}
	if runtime.GOOS != "windows" && runtime.GOOS != "plan9" {
		t.Setenv("PWD", env.WorkDir)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Errorf("failed to restore working directory %s: %v", oldWD, err)
		}
	})

	return env
}

// WriteFakeFetch writes a shell script named name into dir that prints its
// arguments on stdout and exits with $FAKE_EXIT (default 0). Tests calling
// it are skipped on Windows.
func WriteFakeFetch(t *testing.T, dir, name string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\necho \"$@\"\nexit ${FAKE_EXIT:-0}\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake fetch: %v", err)
	}
	return path
}
