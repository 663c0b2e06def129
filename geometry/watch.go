package geometry

import (
	"strings"

	"github.com/fsnotify/fsnotify"
)

// WatchDelegate wraps another Delegate and invalidates the shared Cache
// entry for a resolved URL whenever the underlying file changes on disk,
// so a long-running host (an editor preview, say) can re-evaluate a
// `.shape` program without restarting it every time an imported file is
// edited. This is additive: it never changes what ResolveURL/ImportGeometry
// return, only when the cache forgets a previous answer.
type WatchDelegate struct {
	Delegate
	cache   *Cache
	watcher *fsnotify.Watcher
	paths   map[string]string // watched filesystem path -> resolved URL
	done    chan struct{}
}

// NewWatchDelegate wraps delegate, invalidating entries in cache as their
// backing files change. Call Close when the host is done with it.
func NewWatchDelegate(delegate Delegate, cache *Cache) (*WatchDelegate, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	wd := &WatchDelegate{
		Delegate: delegate,
		cache:    cache,
		watcher:  w,
		paths:    make(map[string]string),
		done:     make(chan struct{}),
	}
	go wd.loop()
	return wd, nil
}

// Watch registers path (a local filesystem path backing resolvedURL) for
// change notifications. Hosts call this after a successful import whose
// URL maps to a local file; remote URLs are never registered.
func (wd *WatchDelegate) Watch(path, resolvedURL string) error {
	if err := wd.watcher.Add(path); err != nil {
		return err
	}
	wd.paths[path] = resolvedURL
	return nil
}

func (wd *WatchDelegate) loop() {
	for {
		select {
		case ev, ok := <-wd.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if url, ok := wd.paths[cleanPath(ev.Name)]; ok {
				wd.cache.Invalidate(url)
			}
		case _, ok := <-wd.watcher.Errors:
			if !ok {
				return
			}
		case <-wd.done:
			return
		}
	}
}

// Close stops the watch loop and releases the underlying fsnotify watcher.
func (wd *WatchDelegate) Close() error {
	close(wd.done)
	return wd.watcher.Close()
}

func cleanPath(p string) string {
	return strings.TrimSuffix(p, "/")
}
