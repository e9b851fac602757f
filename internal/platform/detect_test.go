package platform

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestRealDetector_Detect(t *testing.T) {
	if _, ok := archTokens[runtime.GOARCH]; !ok {
		t.Skipf("no release for %s", runtime.GOARCH)
	}

	info, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}
	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}
	if info.Arch != "amd64" && info.Arch != "386" {
		t.Errorf("Arch = %v, want amd64 or 386", info.Arch)
	}
	if info.Platform != "" && info.Family == "" {
		t.Error("Family should be set when Platform is set")
	}
	if runtime.GOOS != "linux" && info.Platform != "" {
		t.Errorf("Platform should be empty on non-Linux, got %v", info.Platform)
	}
}

func TestRealDetector_Injected(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		goarch   string
		wantOS   string
		wantArch string
		wantErr  error
	}{
		{"windows 386", "windows", "386", "windows", "386", nil},
		{"darwin amd64", "darwin", "amd64", "darwin", "amd64", nil},
		{"win32 x64", "win32", "x64", "windows", "amd64", nil},
		{"arm64 fails", "darwin", "arm64", "", "", ErrUnsupportedArch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &RealDetector{goos: tt.goos, goarch: tt.goarch}
			info, err := d.Detect(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Detect() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if info.OS != tt.wantOS || info.Arch != tt.wantArch {
				t.Errorf("Detect() = %s/%s, want %s/%s", info.OS, info.Arch, tt.wantOS, tt.wantArch)
			}
			if info.ArchRaw != tt.goarch {
				t.Errorf("ArchRaw = %q, want %q", info.ArchRaw, tt.goarch)
			}
		})
	}
}

func TestStaticDetector(t *testing.T) {
	want := &Info{OS: "linux", Arch: "amd64"}

	info, err := StaticDetector{Info: want}.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info != want {
		t.Errorf("Detect() = %+v, want %+v", info, want)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (StaticDetector{Info: want}).Detect(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Detect() with cancelled ctx error = %v", err)
	}
}

func TestInfo_GetDistro(t *testing.T) {
	linux := &Info{OS: "linux", Platform: "ubuntu", Family: FamilyDebian, Version: "22.04"}
	distro := linux.GetDistro()
	if distro == nil || distro.ID != "ubuntu" || distro.Family != FamilyDebian || distro.Version != "22.04" {
		t.Errorf("GetDistro() = %+v", distro)
	}

	for _, info := range []*Info{
		{OS: "linux"},
		{OS: "darwin", Platform: "ubuntu"},
		{OS: "windows"},
	} {
		if got := info.GetDistro(); got != nil {
			t.Errorf("GetDistro() for %+v = %+v, want nil", info, got)
		}
	}
}

func TestInfo_Key(t *testing.T) {
	info := &Info{OS: "windows", Arch: "386", ArchRaw: "ia32"}
	key := info.Key()
	if key != (Key{OS: "windows", Arch: "386"}) {
		t.Errorf("Key() = %+v", key)
	}
	if key.String() != "windows/386" {
		t.Errorf("String() = %q", key.String())
	}
}
