package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ZebulonRouseFrantzich/fetchbin/internal/command"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/platform"
	"github.com/ZebulonRouseFrantzich/fetchbin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fakeFetchScript = "#!/bin/sh\necho \"$@\"\nexit ${FAKE_EXIT:-0}\n"

// setupCLI isolates the environment and serves a fake fetch release.
func setupCLI(t *testing.T) (*testutil.Env, *atomic.Int32) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	env := testutil.SetupTestEnv(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v0.1.1/fetch_linux_amd64" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		_, _ = w.Write([]byte(fakeFetchScript))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("FETCHBIN_BASE_URL", srv.URL+"/")

	return env, &hits
}

func linuxDeps() Deps {
	return Deps{
		Detector: platform.StaticDetector{Info: &platform.Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64"}},
		Getenv:   os.Getenv,
	}
}

func execute(t *testing.T, deps Deps, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommandWithDeps("test-version", deps)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(""))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestInstall(t *testing.T) {
	env, hits := setupCLI(t)

	out, err := execute(t, linuxDeps(), "install")
	require.NoError(t, err)
	assert.Contains(t, out, "Downloaded "+filepath.Join(env.BinDir, "fetch_linux_amd64"))

	out, err = execute(t, linuxDeps(), "install")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Already installed:"), "output = %q", out)

	_, err = execute(t, linuxDeps(), "install", "--force")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestRun(t *testing.T) {
	_, hits := setupCLI(t)

	out, err := execute(t, linuxDeps(), "run",
		"-o", "repo=https://github.com/foo/bar",
		"-o", "source-path=/a,/b",
		"-o", "help",
		"/tmp/dest")
	require.NoError(t, err)

	assert.Equal(t, "--repo=https://github.com/foo/bar --source-path=/a --source-path=/b --help /tmp/dest\n", out)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRun_Async(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, linuxDeps(), "run", "--async", "-o", "tag=0.1.5", "dest")
	require.NoError(t, err)
	assert.Equal(t, "--tag=0.1.5 dest\n", out)
}

func TestRun_ExitCodePropagates(t *testing.T) {
	setupCLI(t)
	t.Setenv("FAKE_EXIT", "5")

	_, err := execute(t, linuxDeps(), "run", "dest")

	var exitErr *command.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 5, ExitCode(err))
}

func TestRun_ConfigAndOptionsFile(t *testing.T) {
	env, _ := setupCLI(t)

	luaConfig := `fetchbin = { options = { repo = "from-config", tag = "1" } }`
	require.NoError(t, os.WriteFile(filepath.Join(env.WorkDir, "fetchbin.lua"), []byte(luaConfig), 0o644))
	optsFile := filepath.Join(env.Root, "opts.yaml")
	require.NoError(t, os.WriteFile(optsFile, []byte("tag: \"2\"\nbranch: main\n"), 0o644))

	out, err := execute(t, linuxDeps(), "run", "--options-file", optsFile, "-o", "branch=dev", "dest")
	require.NoError(t, err)

	// Config defaults first, then the options file, then -o.
	assert.Equal(t, "--repo=from-config --tag=2 --branch=dev dest\n", out)
}

func TestPrint(t *testing.T) {
	env, hits := setupCLI(t)

	out, err := execute(t, linuxDeps(), "print", "-o", "tag=a,b", "-o", "help", "dest")
	require.NoError(t, err)

	want := filepath.Join(env.BinDir, "fetch_linux_amd64") + ` --tag="a" --tag="b" --help dest` + "\n"
	assert.Equal(t, want, out)
	assert.Zero(t, hits.Load(), "print should not download")
}

func TestWhich(t *testing.T) {
	setupCLI(t)

	binDir := t.TempDir()
	out, err := execute(t, linuxDeps(), "which", "--bin-dir", binDir)
	require.NoError(t, err)

	assert.Contains(t, out, "platform:  linux/amd64")
	assert.Contains(t, out, "name:      fetch_linux_amd64")
	assert.Contains(t, out, "path:      "+filepath.Join(binDir, "fetch_linux_amd64"))
	assert.Contains(t, out, "/v0.1.1/fetch_linux_amd64")
	assert.Contains(t, out, "installed: false")
}

func TestUnsupportedPlatformIsFatal(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		info *platform.Info
		want error
	}{
		{"unknown os", &platform.Info{OS: "plan9", Arch: "amd64"}, platform.ErrUnsupportedOS},
		{"unknown arch", &platform.Info{OS: "linux", Arch: "arm64"}, platform.ErrUnsupportedArch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := Deps{Detector: platform.StaticDetector{Info: tt.info}, Getenv: os.Getenv}
			_, err := execute(t, deps, "print", "dest")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, ExitCode(err))
		})
	}
}

func TestMissingConfigFlagFile(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, linuxDeps(), "which", "--config", "does-not-exist.lua")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInvalidLogLevelFlag(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, linuxDeps(), "which", "--log-level", "chatty")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, Deps{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "fetchbin test-version\n", out)
}

func TestRunRequiresDestination(t *testing.T) {
	_, err := execute(t, Deps{}, "run")
	assert.Error(t, err)
}

func TestParseOptionFlags(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		order   []string
		want    map[string][]string
		wantErr bool
	}{
		{
			name:  "flag and value",
			in:    []string{"help", "tag=0.1.5"},
			order: []string{"help", "tag"},
			want:  map[string][]string{"help": nil, "tag": {"0.1.5"}},
		},
		{
			name:  "leading dashes stripped",
			in:    []string{"--repo=x"},
			order: []string{"repo"},
			want:  map[string][]string{"repo": {"x"}},
		},
		{
			name:  "repeated names collect values",
			in:    []string{"source-path=/a", "source-path=/b,/c"},
			order: []string{"source-path"},
			want:  map[string][]string{"source-path": {"/a", "/b,/c"}},
		},
		{
			name:  "value with equals sign",
			in:    []string{"filter=a=b"},
			order: []string{"filter"},
			want:  map[string][]string{"filter": {"a=b"}},
		},
		{name: "empty name", in: []string{"=x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptionFlags(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.order, opts.Names())
			for name, want := range tt.want {
				assert.Equal(t, want, opts.Choices(name), "Choices(%s)", name)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(assert.AnError))
	assert.Equal(t, 7, ExitCode(&command.ExitError{Code: 7}))
}
