package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/OliveiraNt/netbind/internal/utils"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 350 * time.Millisecond

// Watcher reloads the config file when it changes on disk.
type Watcher struct {
	path     string
	onChange func(FileConfig)
	w        *fsnotify.Watcher
	delay    time.Duration
}

// NewWatcher watches the directory holding path, so editors that replace
// the file are followed.
func NewWatcher(path string, onChange func(FileConfig)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Watcher{path: abs, onChange: onChange, w: w, delay: debounceDelay}, nil
}

// Run delivers reloaded configs to onChange until ctx is done.
func (cw *Watcher) Run(ctx context.Context) error {
	defer cw.w.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-cw.w.Events:
			if !ok {
				return nil
			}
			if ev.Name != cw.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove|fsnotify.Chmod) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(cw.delay)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(cw.delay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			cw.reload()
		case err, ok := <-cw.w.Errors:
			if !ok {
				return nil
			}
			utils.Logger.Warn("config watcher error", "err", err)
		}
	}
}

func (cw *Watcher) reload() {
	for i := 0; i < 10; i++ {
		if _, err := os.Stat(cw.path); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	cfg, err := ReadConfig(cw.path)
	if err != nil {
		utils.Logger.Error("failed to reload config", "path", cw.path, "err", err)
		return
	}
	if err := ApplyEnv(&cfg); err != nil {
		utils.Logger.Error("failed to apply env to reloaded config", "err", err)
		return
	}
	utils.Logger.Info("config file changed", "path", cw.path)
	cw.onChange(cfg)
}
