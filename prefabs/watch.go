package prefabs

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileKind tells scene prefabs apart from automation scripts.
type FileKind int

const (
	SceneFile FileKind = iota + 1
	ScriptFile
)

func (k FileKind) String() string {
	switch k {
	case SceneFile:
		return "scene"
	case ScriptFile:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one settled edit of a watched file.
type Change struct {
	Path string
	Kind FileKind
}

// Matches reports whether the change touched the named scene or script.
// Names resolve the same way Load and LoadScript resolve them.
func (c Change) Matches(name string) bool {
	if name == "" {
		return false
	}
	var clean string
	switch c.Kind {
	case SceneFile:
		clean = cleanPrefabPath(name)
	case ScriptFile:
		clean = cleanScriptPath(name)
	default:
		return false
	}
	return filepath.Base(c.Path) == filepath.Base(clean)
}

func classify(path string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SceneFile, true
	case ".tengo":
		return ScriptFile, true
	}
	return 0, false
}

// Debounce is how long a file must stay quiet before its change is
// reported. Editors often write a file in several steps.
const Debounce = 100 * time.Millisecond

// Watcher reports settled changes to prefab and script files under the
// watched directories.
type Watcher struct {
	fs     *fsnotify.Watcher
	Events chan Change
	Errors chan error

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("prefabs: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("prefabs: watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fs:     fw,
		Events: make(chan Change, 16),
		Errors: make(chan error, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and waits for the run loop. Events and Errors are
// closed when it returns.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.quit)
		err = w.fs.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Errors)
	defer close(w.Events)

	pending := make(map[string]time.Time)
	timer := time.NewTimer(Debounce)
	timer.Stop()

	for {
		select {
		case <-w.quit:
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if _, ok := classify(ev.Name); !ok {
				continue
			}
			pending[ev.Name] = time.Now()
			timer.Reset(Debounce)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case now := <-timer.C:
			next := time.Duration(0)
			for path, at := range pending {
				if wait := Debounce - now.Sub(at); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}
				delete(pending, path)
				kind, _ := classify(path)
				select {
				case w.Events <- Change{Path: path, Kind: kind}:
				case <-w.quit:
					return
				}
			}
			if next > 0 {
				timer.Reset(next)
			}
		}
	}
}
