package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/layout"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isolate points every default location at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load(Options{Environ: []string{}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if cfg.PageSize != 20 || cfg.Gap != 8 || cfg.RowHeight != 240 || cfg.Margin != 200 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "config.toml", `
base_url = "http://file.example"
page_size = 30
gap = 4
row_height = 180
`)
	writeFile(t, dir, ".env", "PHOTOGRID_PAGE_SIZE=40\nPHOTOGRID_GAP=6\n")

	cfg, err := Load(Options{Path: path, Environ: []string{"PHOTOGRID_GAP=2", "UNRELATED=1"}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.BaseURL != "http://file.example" {
		t.Errorf("BaseURL = %q, want file value", cfg.BaseURL)
	}
	if cfg.RowHeight != 180 {
		t.Errorf("RowHeight = %d, want file value 180", cfg.RowHeight)
	}
	if cfg.PageSize != 40 {
		t.Errorf("PageSize = %d, want .env value 40", cfg.PageSize)
	}
	if cfg.Gap != 2 {
		t.Errorf("Gap = %d, want environment value 2", cfg.Gap)
	}
	if cfg.Margin != 200 {
		t.Errorf("Margin = %d, want default 200", cfg.Margin)
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, "photogrid"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "photogrid"), "config.toml", "margin = 50\n")

	cfg, err := Load(Options{Environ: []string{}})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Margin != 50 {
		t.Errorf("Margin = %d, want 50 from the default path", cfg.Margin)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		environ []string
		want    string
	}{
		{"unknown key", "colour = \"red\"\n", nil, "unknown keys colour"},
		{"bad toml", "page_size = \n", nil, "parse config"},
		{"bad env int", "", []string{"PHOTOGRID_MARGIN=wide"}, "not an integer"},
		{"page size too large", "page_size = 500\n", nil, "page_size"},
		{"zero row height", "", []string{"PHOTOGRID_ROW_HEIGHT=0"}, "row_height"},
		{"negative gap", "gap = -1\n", nil, "gap"},
		{"bad base url", "base_url = \"ftp://x\"\n", nil, "base_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := writeFile(t, dir, "config.toml", tt.file)
			environ := tt.environ
			if environ == nil {
				environ = []string{}
			}
			_, err := Load(Options{Path: path, Environ: environ})
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingExplicitFiles(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(Options{Path: filepath.Join(dir, "nope.toml"), Environ: []string{}}); err == nil {
		t.Error("missing explicit config file should fail")
	}
	if _, err := Load(Options{EnvFile: filepath.Join(dir, "nope.env"), Environ: []string{}}); err == nil {
		t.Error("missing explicit env file should fail")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "photogrid", "config.toml"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestConfigLayout(t *testing.T) {
	o := Default().Layout(1200)
	if o.ContainerWidth != 1200 || o.TargetRowHeight != 240 || o.Gap != 8 {
		t.Errorf("Layout(1200) = %+v", o)
	}
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		name    string
		opts    layout.Options
		wantErr bool
	}{
		{"defaults", Default().Layout(800), false},
		{"zero gap", layout.Options{ContainerWidth: 800, TargetRowHeight: 240}, false},
		{"zero width", layout.Options{TargetRowHeight: 240, Gap: 8}, true},
		{"huge width", layout.Options{ContainerWidth: maxWidth + 1, TargetRowHeight: 240}, true},
		{"zero row height", layout.Options{ContainerWidth: 800, Gap: 8}, true},
		{"negative row height", layout.Options{ContainerWidth: 800, TargetRowHeight: -240}, true},
		{"negative gap", layout.Options{ContainerWidth: 800, TargetRowHeight: 240, Gap: -1}, true},
		{"huge gap", layout.Options{ContainerWidth: 800, TargetRowHeight: 240, Gap: maxGap + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayout(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateLayout() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestConfigString(t *testing.T) {
	s := Default().String()
	for _, want := range []string{`base_url = "https://picsum.photos"`, "page_size = 20"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}
}
