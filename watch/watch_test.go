package watch

import (
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
)

func TestRelevantFiltersByPathAndOp(t *testing.T) {
	target, err := filepath.Abs("doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	w := &Watcher{path: target}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write to target", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create of target (atomic save)", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"rename of target", fsnotify.Event{Name: target, Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"sibling file", fsnotify.Event{Name: target + ".swp", Op: fsnotify.Write}, false},
		{"unclean path to target", fsnotify.Event{Name: filepath.Dir(target) + "/./doc.pdf", Op: fsnotify.Write}, true},
	}
	for _, tc := range tests {
		if got := w.relevant(tc.ev); got != tc.want {
			t.Errorf("%s: relevant = %v, want %v", tc.name, got, tc.want)
		}
	}
}
