// Package watch delivers the contents of a file every time it changes on
// disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

// Source watches one file. The containing directory is watched rather than
// the file itself because editors commonly save by writing a new file and
// renaming it over the old one.
type Source struct {
	path     string
	debounce time.Duration
	onChange func(text string)
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

type Option func(*Source)

func WithDebounce(d time.Duration) Option {
	return func(s *Source) {
		if d >= 0 {
			s.debounce = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// New starts watching path. onChange runs on the goroutine calling Run.
func New(path string, onChange func(text string), opts ...Option) (*Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	s := &Source{
		path:     abs,
		debounce: DefaultDebounce,
		onChange: onChange,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	s.watcher = w
	return s, nil
}

func (s *Source) Path() string {
	return s.path
}

// Read returns the current file contents.
func (s *Source) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Run delivers changes until ctx is cancelled, then closes the watcher.
func (s *Source) Run(ctx context.Context) error {
	defer s.watcher.Close()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(ev) {
				continue
			}
			s.logger.Debug("watch: change", "path", ev.Name, "op", ev.Op.String())
			pending = true
			timer.Reset(s.debounce)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch: watcher error", "error", err)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			text, err := s.Read()
			if err != nil {
				// the file may be mid-replace; the next event retries
				s.logger.Warn("watch: read failed", "path", s.path, "error", err)
				continue
			}
			s.onChange(text)
		}
	}
}

func (s *Source) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != s.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
