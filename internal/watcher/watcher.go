// Package watcher reports changes to request files under a directory tree.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/tevino/abool"
)

const DefaultDebounce = 200 * time.Millisecond

type Config struct {
	Root     string        `yaml:"root"`
	Include  []string      `yaml:"include"`
	Exclude  []string      `yaml:"exclude"`
	Debounce time.Duration `yaml:"debounce"`
}

type Context struct {
	Config Config

	// Triggers once per settled file change
	Changed chan string

	Log zerolog.Logger

	watcher  *fsnotify.Watcher
	fileMap  *FileMap
	done     chan struct{}
	closed   abool.AtomicBool
	mu       sync.Mutex
	debounce map[string]*pending
}

type pending struct {
	debounced func(func())
}

func (x *Context) Init() (err error) {
	if x.Config.Root == "" {
		x.Config.Root = "."
	}
	root, err := filepath.Abs(x.Config.Root)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", x.Config.Root)
	}
	x.Config.Root = root
	if x.Config.Debounce <= 0 {
		x.Config.Debounce = DefaultDebounce
	}

	x.Changed = make(chan string)
	x.done = make(chan struct{})
	x.debounce = make(map[string]*pending)
	x.fileMap = NewFileMap(root, x.Config.Include, x.Config.Exclude)
	x.Log = x.Log.With().Str("component", "watcher").Logger()

	if x.watcher, err = fsnotify.NewWatcher(); err != nil {
		return errors.Wrap(err, "create watcher")
	}
	return nil
}

func (x *Context) watchTree(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && x.fileMap.ExplicitlyExcluded(path) {
			return filepath.SkipDir
		}
		x.Log.Debug().Str("dir", path).Msg("watching")
		return x.watcher.Add(path)
	})
}

func (x *Context) Start() (err error) {
	if err = x.watchTree(x.Config.Root); err != nil {
		return errors.Wrapf(err, "watch %s", x.Config.Root)
	}

	go func() {
		for {
			select {
			case <-x.done:
				return
			case event, ok := <-x.watcher.Events:
				if !ok {
					return
				}
				x.handle(event)
			case err, ok := <-x.watcher.Errors:
				if !ok {
					return
				}
				x.Log.Err(err).Msg("watcher error")
			}
		}
	}()

	return nil
}

func (x *Context) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if x.fileMap.ExplicitlyExcluded(event.Name) {
				return
			}
			if err = x.watchTree(event.Name); err != nil {
				x.Log.Err(err).Str("dir", event.Name).Msg("unable to watch new directory")
			}
			return
		}
	}

	if !x.fileMap.ToInclude(event.Name) {
		return
	}

	// editors often produce several events per save
	name := event.Name
	x.mu.Lock()
	p, ok := x.debounce[name]
	if !ok {
		p = &pending{debounced: debounce.New(x.Config.Debounce)}
		x.debounce[name] = p
	}
	x.mu.Unlock()

	p.debounced(func() {
		x.mu.Lock()
		if x.debounce[name] == p {
			delete(x.debounce, name)
		}
		x.mu.Unlock()

		select {
		case x.Changed <- name:
		case <-x.done:
		}
	})
}

// Done is closed by Close.
func (x *Context) Done() <-chan struct{} {
	return x.done
}

func (x *Context) Close() {
	if !x.closed.SetToIf(false, true) {
		return
	}
	if x.done != nil {
		close(x.done)
	}
	if x.watcher != nil {
		_ = x.watcher.Close()
	}
}
