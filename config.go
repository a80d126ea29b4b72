// Package trellis wires a retained widget tree to its configuration: engine
// options, window size, fonts and the tw colour theme, all loaded from a
// trellis.toml file.
package trellis

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/agiangrant/trellis/retained"
	"github.com/agiangrant/trellis/text"
	"github.com/agiangrant/trellis/tw"
)

// ConfigFile is the file name LoadConfig and FindConfig look for.
const ConfigFile = "trellis.toml"

// Config represents the trellis.toml configuration file
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Window WindowConfig `toml:"window"`
	Fonts  FontsConfig  `toml:"fonts"`
	Theme  ThemeConfig  `toml:"theme"`
}

type EngineConfig struct {
	// Upper bound on rewrite iterations per event
	MaxRewriteIterations int `toml:"max_rewrite_iterations"`
	// Outline every widget in the rendered scene
	DebugPaint bool `toml:"debug_paint"`
	// Panic on widget contract violations instead of logging them
	DebugAssertions bool `toml:"debug_assertions"`
	// Logical to physical pixel ratio
	ScaleFactor float64 `toml:"scale_factor"`
}

type WindowConfig struct {
	Title  string  `toml:"title"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type FontsConfig struct {
	// Family used when a widget names none, or an unknown one
	DefaultFamily string `toml:"default_family"`
	// Extra font files keyed by family name
	Files map[string]string `toml:"files"`
}

type ThemeConfig struct {
	// Named colours added to the tw palette, e.g. brand = "#1da1f2"
	Colors map[string]string `toml:"colors"`
	// Classes applied to every widget that sets no value of its own
	BaseClasses string `toml:"base_classes"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			MaxRewriteIterations: retained.DefaultMaxRewriteIterations,
			DebugAssertions:      true,
			ScaleFactor:          1,
		},
		Window: WindowConfig{
			Title:  "Trellis",
			Width:  800,
			Height: 600,
		},
		Fonts: FontsConfig{
			DefaultFamily: text.DefaultFamily,
		},
	}
}

// LoadConfig loads the configuration from path.
// If the file doesn't exist, returns default config
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return config, errors.Wrapf(err, "failed to read %s", path)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "failed to parse %s", path)
	}

	// Font files are relative to the config file.
	dir := filepath.Dir(path)
	for family, file := range config.Fonts.Files {
		if !filepath.IsAbs(file) {
			config.Fonts.Files[family] = filepath.Join(dir, file)
		}
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "invalid %s", path)
	}
	return config, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// FindConfig walks up from dir looking for trellis.toml.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WithStack(err)
	}
	for {
		path := filepath.Join(dir, ConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Errorf("no %s found", ConfigFile)
		}
		dir = parent
	}
}

// Validate reports values the engine cannot run with.
func (c Config) Validate() error {
	if c.Engine.MaxRewriteIterations < 1 {
		return errors.Errorf("engine.max_rewrite_iterations must be at least 1, got %d", c.Engine.MaxRewriteIterations)
	}
	if c.Engine.ScaleFactor <= 0 {
		return errors.Errorf("engine.scale_factor must be positive, got %v", c.Engine.ScaleFactor)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}
	return nil
}

// ============================================================================
// Engine Options
// ============================================================================

// Options builds RenderRoot options from the config. It loads font files,
// registers theme colours with tw and installs the base classes as global
// default properties. Colours are registered in name order so errors are
// reported deterministically.
func (c Config) Options() (retained.Options, error) {
	fonts, err := text.NewFontContext()
	if err != nil {
		return retained.Options{}, err
	}
	for _, family := range sortedKeys(c.Fonts.Files) {
		if err := fonts.RegisterFile(family, c.Fonts.Files[family]); err != nil {
			return retained.Options{}, err
		}
	}
	if c.Fonts.DefaultFamily != "" {
		if err := fonts.SetDefaultFamily(c.Fonts.DefaultFamily); err != nil {
			return retained.Options{}, errors.Wrap(err, "fonts.default_family")
		}
	}

	for _, name := range sortedKeys(c.Theme.Colors) {
		if err := tw.RegisterColor(name, c.Theme.Colors[name]); err != nil {
			return retained.Options{}, errors.Wrap(err, "theme.colors")
		}
	}

	var defaults *retained.DefaultProperties
	if c.Theme.BaseClasses != "" {
		defaults = retained.NewDefaultProperties()
		tw.InstallDefaults(defaults, nil, c.Theme.BaseClasses)
	}

	return retained.Options{
		MaxRewriteIterations: c.Engine.MaxRewriteIterations,
		DebugPaint:           c.Engine.DebugPaint,
		DebugAssertions:      c.Engine.DebugAssertions,
		ScaleFactor:          c.Engine.ScaleFactor,
		WindowSize: retained.Size{
			Width:  c.Window.Width * c.Engine.ScaleFactor,
			Height: c.Window.Height * c.Engine.ScaleFactor,
		},
		Fonts:             fonts,
		DefaultProperties: defaults,
	}, nil
}

// NewRenderRoot builds a tree rooted at root with the config's options.
func (c Config) NewRenderRoot(root retained.Widget) (*retained.RenderRoot, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return retained.NewRenderRoot(root, opts), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
