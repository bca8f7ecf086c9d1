// Package watch forwards on-disk changes to the viewer as FileChanged
// commands.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"pdfview/viewer"
)

// Watcher tracks a single document file. Editors frequently replace files
// by rename, so the parent directory is watched and events are matched
// against the target name.
type Watcher struct {
	path string
	fsw  *fsnotify.Watcher
}

// New starts watching the directory containing path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, fsw: fsw}, nil
}

// Run forwards change notifications until ctx is cancelled. No debouncing
// happens here; the command loop serializes the resulting reloads.
func (w *Watcher) Run(ctx context.Context, commands chan<- viewer.Command) {
	defer w.fsw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			select {
			case commands <- viewer.FileChanged{Path: w.path}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("[watch] %v", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
