package core

import (
	"log"

	cfg "github.com/automoto/doomerang-crypt/config"
)

// tuningReloader applies a YAML tuning file at startup and again whenever
// it changes on disk. New values reach agents spawned afterwards; live
// agents keep the profile they were created with.
type tuningReloader struct {
	path    string
	watcher *cfg.Watcher
}

func newTuningReloader(path string) (*tuningReloader, error) {
	o, err := cfg.LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	o.Apply()
	log.Printf("[config] applied tuning from %s", path)

	w, err := cfg.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	return &tuningReloader{path: path, watcher: w}, nil
}

// poll applies pending changes without blocking. A file that fails to
// parse or validate is logged and the previous tuning stays.
func (r *tuningReloader) poll() bool {
	changed := false
	for {
		select {
		case _, ok := <-r.watcher.Events:
			if !ok {
				return changed
			}
			o, err := cfg.LoadOverrides(r.path)
			if err != nil {
				log.Printf("[config] reload rejected: %v", err)
				continue
			}
			o.Apply()
			changed = true
			log.Printf("[config] reloaded tuning from %s", r.path)
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return changed
			}
			log.Printf("[config] watch error: %v", err)
		default:
			return changed
		}
	}
}

func (r *tuningReloader) Close() {
	if err := r.watcher.Close(); err != nil {
		log.Printf("[config] close watcher: %v", err)
	}
}
