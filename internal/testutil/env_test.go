package testutil_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/testutil"
)

func TestSetupTestEnv(t *testing.T) {
	t.Setenv("FETCHBIN_VERSION", "v9.9.9")

	env := testutil.SetupTestEnv(t)

	if got := os.Getenv("FETCHBIN_VERSION"); got != "" {
		t.Errorf("FETCHBIN_VERSION = %q, want cleared", got)
	}
	if got := os.Getenv("FETCHBIN_BIN_DIR"); got != env.BinDir {
		t.Errorf("FETCHBIN_BIN_DIR = %q, want %q", got, env.BinDir)
	}

	if !strings.HasPrefix(env.BinDir, env.Root) || !strings.HasPrefix(env.WorkDir, env.Root) {
		t.Errorf("directories not under root: %+v", env)
	}
	for _, dir := range []string{env.BinDir, env.WorkDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory %s not created: %v", dir, err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(env.WorkDir)
	got, _ := filepath.EvalSymlinks(wd)
	if got != want {
		t.Errorf("working directory = %q, want %q", got, want)
	}
}

func TestWriteFakeFetch(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFakeFetch(t, dir, "fetch_linux_amd64")

	out, err := exec.Command(path, "--tag=1", "dest").Output()
	if err != nil {
		t.Fatalf("run fake fetch: %v", err)
	}
	if string(out) != "--tag=1 dest\n" {
		t.Errorf("output = %q", out)
	}
}
