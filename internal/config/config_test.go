package config

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shaderpad.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeFile(t, `
window:
  title: plasma
  width: 1024
shader:
  path: shaders/plasma.frag
log:
  level: debug
watch:
  debounce: 250ms
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	want.Window.Title = "plasma"
	want.Window.Width = 1024
	want.Shader.Path = "shaders/plasma.frag"
	want.Log.Level = "debug"
	want.Watch.Debounce = 250 * time.Millisecond
	if cfg != want {
		t.Fatalf("got %+v\nwant %+v", cfg, want)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"zero width", "window: {width: 0}", ErrInvalidSize},
		{"negative height", "window: {height: -3}", ErrInvalidSize},
		{"unknown level", "log: {level: loud}", ErrInvalidLevel},
		{"unknown format", "log: {format: xml}", ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Load(writeFile(t, "window: [")); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestFlags_OnlyExplicitOverride(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-width", "320", "-shader", "a.frag", "-config", "other.yml"}); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	cfg.Window.Title = "from file"
	flags.Apply(&cfg)

	if cfg.Window.Width != 320 || cfg.Shader.Path != "a.frag" {
		t.Fatalf("explicit flags not applied: %+v", cfg)
	}
	if cfg.Window.Title != "from file" {
		t.Fatalf("unset flag overwrote file value: %q", cfg.Window.Title)
	}
	if flags.Path != "other.yml" {
		t.Fatalf("config path = %q", flags.Path)
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := LogConfig{Level: "warn", Format: "auto"}.Handler(&buf)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info enabled at warn level")
	}
	slog.New(h).Warn("compile failed", "stage", "fragment")
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("non-terminal auto format should be JSON, got %q", buf.String())
	}

	buf.Reset()
	slog.New(LogConfig{Level: "debug", Format: "text"}.Handler(&buf)).Debug("hello")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("text handler output %q", buf.String())
	}
}
