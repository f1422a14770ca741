// Package config loads photogrid settings.
//
// Sources are layered, later ones winning: built-in defaults, a TOML file
// (by default $XDG_CONFIG_HOME/photogrid/config.toml), a .env file in the
// working directory, then PHOTOGRID_* environment variables. Command-line
// flags are applied on top by the cli package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/photogrid/pkg/errors"
	"github.com/matzehuels/photogrid/pkg/integrations/picsum"
	"github.com/matzehuels/photogrid/pkg/layout"
	"github.com/matzehuels/photogrid/pkg/pagination"
	"github.com/matzehuels/photogrid/pkg/visibility"
)

const (
	appName = "photogrid"

	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "PHOTOGRID_"

	// maxPageSize bounds page_size; the listing service caps pages at 100.
	maxPageSize = 100

	maxGap       = 1 << 10
	maxRowHeight = 1 << 14
	maxWidth     = 1 << 16
)

// Config holds every tunable setting.
type Config struct {
	BaseURL   string `toml:"base_url"`    // Listing service root
	PageSize  int    `toml:"page_size"`   // Photos per page
	Retries   int    `toml:"retries"`     // Transport attempts per fetch (1 = no retry)
	Gap       int    `toml:"gap"`         // Space between photos, logical pixels
	RowHeight int    `toml:"row_height"`  // Target row height, logical pixels
	Margin    int    `toml:"margin"`      // Sentinel margin around the viewport
	Addr      string `toml:"addr"`        // Listen address for serve
	PxPerCell int    `toml:"px_per_cell"` // Logical pixels per terminal column
	LinePx    int    `toml:"line_px"`     // Logical pixels per terminal line
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BaseURL:   picsum.DefaultBaseURL,
		PageSize:  pagination.DefaultPageSize,
		Retries:   1,
		Gap:       layout.DefaultGap,
		RowHeight: layout.DefaultTargetRowHeight,
		Margin:    visibility.DefaultMargin,
		Addr:      "127.0.0.1:8080",
		PxPerCell: 8,
		LinePx:    16,
	}
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/photogrid/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Options tells Load where to look.
type Options struct {
	Path    string // Config file; "" uses DefaultPath and tolerates its absence
	EnvFile string // .env file; "" uses ".env" and tolerates its absence
	Environ []string
}

// Load builds a Config from defaults, the config file, the .env file and the
// environment, then validates it. Environ defaults to os.Environ().
func Load(opts Options) (Config, error) {
	cfg := Default()

	path, required := opts.Path, true
	if path == "" {
		required = false
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.applyFile(path, required); err != nil {
			return Config{}, err
		}
	}

	env, err := readEnvFile(opts.EnvFile)
	if err != nil {
		return Config{}, err
	}
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	if err := cfg.applyEnv(env); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	required := path != ""
	if !required {
		path = ".env"
	}
	env, err := godotenv.Read(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return map[string]string{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read env file %s", path)
	}
	return env, nil
}

func (c *Config) applyEnv(env map[string]string) error {
	strs := map[string]*string{
		"BASE_URL": &c.BaseURL,
		"ADDR":     &c.Addr,
	}
	ints := map[string]*int{
		"PAGE_SIZE":   &c.PageSize,
		"RETRIES":     &c.Retries,
		"GAP":         &c.Gap,
		"ROW_HEIGHT":  &c.RowHeight,
		"MARGIN":      &c.Margin,
		"PX_PER_CELL": &c.PxPerCell,
		"LINE_PX":     &c.LinePx,
	}
	for name, dst := range strs {
		if v, ok := env[EnvPrefix+name]; ok && v != "" {
			*dst = v
		}
	}
	for name, dst := range ints {
		v, ok := env[EnvPrefix+name]
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s%s: %q is not an integer", EnvPrefix, name, v)
		}
		*dst = n
	}
	return nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "base_url")
	}
	checks := []struct {
		name     string
		v        int
		min, max int
	}{
		{"page_size", c.PageSize, 1, maxPageSize},
		{"retries", c.Retries, 1, 10},
		{"gap", c.Gap, 0, maxGap},
		{"row_height", c.RowHeight, 1, maxRowHeight},
		{"margin", c.Margin, 0, 1 << 14},
		{"px_per_cell", c.PxPerCell, 1, 1 << 8},
		{"line_px", c.LinePx, 1, 1 << 8},
	}
	for _, ch := range checks {
		if ch.v < ch.min || ch.v > ch.max {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be between %d and %d, got %d", ch.name, ch.min, ch.max, ch.v)
		}
	}
	if c.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "addr must not be empty")
	}
	return nil
}

// ValidateLayout checks layout options taken from a request against the
// bounds Validate applies to the configuration. Failures are INVALID_INPUT.
func ValidateLayout(o layout.Options) error {
	checks := []struct {
		name     string
		v        int
		min, max int
	}{
		{"width", o.ContainerWidth, 1, maxWidth},
		{"gap", o.Gap, 0, maxGap},
		{"row_height", o.TargetRowHeight, 1, maxRowHeight},
	}
	for _, ch := range checks {
		if ch.v < ch.min || ch.v > ch.max {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be between %d and %d, got %d", ch.name, ch.min, ch.max, ch.v)
		}
	}
	return nil
}

// Layout returns layout options for a container of the given width.
func (c Config) Layout(width int) layout.Options {
	return layout.Options{ContainerWidth: width, TargetRowHeight: c.RowHeight, Gap: c.Gap}
}

// String renders c as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("%+v", c)
	}
	return b.String()
}
