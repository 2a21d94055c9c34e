// Package config loads the desktop driver's settings from a YAML file and
// the command line.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const DefaultFilename = "shaderpad.yml"

type Config struct {
	Window WindowConfig `yaml:"window"`
	Shader ShaderConfig `yaml:"shader"`
	Log    LogConfig    `yaml:"log"`
	Watch  WatchConfig  `yaml:"watch"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type ShaderConfig struct {
	// Path of the fragment source. Empty means the built-in shader.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json or auto
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

var (
	ErrInvalidSize   = errors.New("config: window size must be positive")
	ErrInvalidLevel  = errors.New("config: unknown log level")
	ErrInvalidFormat = errors.New("config: unknown log format")
)

func Default() Config {
	return Config{
		Window: WindowConfig{Title: "shaderpad", Width: 800, Height: 600},
		Log:    LogConfig{Level: "info", Format: "auto"},
		Watch:  WatchConfig{Debounce: 100 * time.Millisecond},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Window.Width, c.Window.Height)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "auto", "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Log.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("config: negative watch debounce %v", c.Watch.Debounce)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// Handler builds the slog handler for w. With format auto, terminals get
// text and everything else JSON.
func (l LogConfig) Handler(w io.Writer) slog.Handler {
	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	format := l.Format
	if format == "" || format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Flags holds command line overrides. Only flags given explicitly are
// applied, so file values survive unset flags.
type Flags struct {
	fs       *flag.FlagSet
	Path     string
	title    string
	width    int
	height   int
	shader   string
	logLevel string
	logFmt   string
}

func BindFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	def := Default()
	fs.StringVar(&f.Path, "config", DefaultFilename, "path to the YAML configuration file")
	fs.StringVar(&f.title, "title", def.Window.Title, "window title")
	fs.IntVar(&f.width, "width", def.Window.Width, "window width in logical pixels")
	fs.IntVar(&f.height, "height", def.Window.Height, "window height in logical pixels")
	fs.StringVar(&f.shader, "shader", "", "fragment shader file to watch")
	fs.StringVar(&f.logLevel, "log-level", def.Log.Level, "log level: debug, info, warn or error")
	fs.StringVar(&f.logFmt, "log-format", def.Log.Format, "log format: text, json or auto")
	return f
}

func (f *Flags) Apply(c *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			c.Window.Title = f.title
		case "width":
			c.Window.Width = f.width
		case "height":
			c.Window.Height = f.height
		case "shader":
			c.Shader.Path = f.shader
		case "log-level":
			c.Log.Level = f.logLevel
		case "log-format":
			c.Log.Format = f.logFmt
		}
	})
}
