package lazy

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

// importer loads submodules on demand. A module is loaded at most once
// successfully; concurrent callers for the same module share one load.
type importer struct {
	loaders map[string]Loader
	group   singleflight.Group
	loaded  sync.Map // module id -> Module

	mu     sync.Mutex
	counts map[string]int
}

func newImporter(loaders map[string]Loader) *importer {
	own := make(map[string]Loader, len(loaders))
	for id, l := range loaders {
		own[id] = l
	}
	return &importer{loaders: own, counts: map[string]int{}}
}

// load returns the module, running its loader when it has not loaded yet.
// Loader errors are returned unchanged and are not remembered.
func (im *importer) load(id string, log *slog.Logger) (Module, error) {
	if mod, ok := im.loaded.Load(id); ok {
		return mod.(Module), nil
	}

	v, err, shared := im.group.Do(id, func() (any, error) {
		// Another flight may have finished between the fast path and Do.
		if mod, ok := im.loaded.Load(id); ok {
			return mod, nil
		}
		loader, ok := im.loaders[id]
		if !ok || loader == nil {
			return nil, LoaderError{Module: id}
		}

		log.Debug("importing module", slog.String("module", id))
		mod, err := loader()
		if err != nil {
			log.Debug("module import failed", slog.String("module", id), slog.Any("error", err))
			return nil, err
		}
		if mod == nil {
			return nil, fmt.Errorf("%w: %q", ErrNilModule, id)
		}

		im.mu.Lock()
		im.counts[id]++
		im.mu.Unlock()
		im.loaded.Store(id, mod)
		log.Debug("module imported", slog.String("module", id))
		return mod, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("joined in-flight import", slog.String("module", id))
	}
	return v.(Module), nil
}

func (im *importer) isLoaded(id string) bool {
	_, ok := im.loaded.Load(id)
	return ok
}

func (im *importer) snapshot() map[string]int {
	im.mu.Lock()
	defer im.mu.Unlock()

	out := make(map[string]int, len(im.counts))
	for id, n := range im.counts {
		out[id] = n
	}
	return out
}
