package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce batches the burst of writes a site build produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher re-runs a callback whenever the build output or the sitemap
// changes. Callbacks run on the event loop goroutine, so they never overlap.
type Watcher struct {
	projectDir string
	outputDir  string
	sitemap    string
	debounce   time.Duration
	log        *logrus.Entry
	fs         *fsnotify.Watcher
}

// New creates a watcher for the output tree and sitemap of a project.
func New(projectDir, outputDir, sitemap string, log *logrus.Entry) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs := func(p string) string {
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}
	return &Watcher{
		projectDir: abs(projectDir),
		outputDir:  abs(outputDir),
		sitemap:    abs(sitemap),
		debounce:   DefaultDebounce,
		log:        log.WithField("component", "watcher"),
		fs:         fs,
	}, nil
}

// SetDebounce overrides the quiet period before a change triggers a run.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Run blocks until ctx is cancelled, calling onChange after every batch of
// relevant filesystem events.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.fs.Close()

	// The project root catches the output directory being created and the
	// sitemap being rewritten.
	if err := w.fs.Add(w.projectDir); err != nil {
		return err
	}
	if dir := filepath.Dir(w.sitemap); dir != w.projectDir {
		if err := w.fs.Add(dir); err != nil {
			w.log.WithError(err).Debug("sitemap directory not watched")
		}
	}
	w.addTree(w.outputDir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.inOutput(event.Name) {
					w.addTree(event.Name)
				}
			}
			w.log.WithField("path", event.Name).Debugf("%s event", strings.ToLower(event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watch error")

		case <-timer.C:
			onChange()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == w.sitemap || w.inOutput(name)
}

func (w *Watcher) inOutput(p string) bool {
	return p == w.outputDir || strings.HasPrefix(p, w.outputDir+string(filepath.Separator))
}

// addTree watches dir and every directory below it. fsnotify is not
// recursive.
func (w *Watcher) addTree(dir string) {
	_ = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if err := w.fs.Add(p); err != nil {
				w.log.WithError(err).WithField("path", p).Debug("directory not watched")
			}
		}
		return nil
	})
}
