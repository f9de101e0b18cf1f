// Package assets indexes shader and material files under a directory,
// loads them on demand and reports edits so materials can be hot
// reloaded. The watcher runs on its own goroutine; callers collect changes
// with PollChanges from the frame loop.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spaghettifunk/cgengine/engine/assets/loaders"
	"github.com/spaghettifunk/cgengine/engine/containers"
	"github.com/spaghettifunk/cgengine/engine/core"
	"github.com/spaghettifunk/cgengine/engine/resources"
)

// MaxPendingChanges bounds the change queue; older changes are dropped
// when nobody polls.
const MaxPendingChanges = 64

type AssetInfo struct {
	ID         uuid.UUID
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

/**
 * @brief A file the manager saw change on disk.
 */
type Change struct {
	/** @brief The asset identity; stable while the file exists. */
	ID   uuid.UUID
	Path string
	Type resources.ResourceType
	Op   fsnotify.Op
	/** @brief Materials to reload: the material itself or every material reading the shader. */
	Materials []string
}

// Removed reports whether the file is gone.
func (c Change) Removed() bool {
	return c.Op&(fsnotify.Remove|fsnotify.Rename) != 0
}

type AssetManager struct {
	assets     map[string]AssetInfo
	materials  map[string]string
	dependents map[string]map[string]struct{}
	loaders    map[resources.ResourceType]Loader
	changes    *containers.RingQueue[Change]

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	started  bool
	isClosed bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:     make(map[string]AssetInfo),
		materials:  make(map[string]string),
		dependents: make(map[string]map[string]struct{}),
		loaders:    make(map[resources.ResourceType]Loader),
		changes:    containers.NewRingQueue[Change](MaxPendingChanges),
		fsnotify:   fsWatch,
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}, nil
}

/**
 * @brief Indexes every asset under assetsDir and starts watching it.
 */
func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(resources.ResourceTypeMaterial, &loaders.MaterialLoader{})

	if err := am.addRecursive(root); err != nil {
		return err
	}
	am.started = true
	go am.start()
	core.LogInfo("asset manager watching %s (%d assets)", root, am.Len())
	return nil
}

// Close stops the watcher. Loading keeps working on the cached index.
func (am *AssetManager) Close() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	if !am.started {
		return am.fsnotify.Close()
	}
	<-am.stopped
	return nil
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return am.watchRecursive(name)
}

/**
 * @brief Loads the material indexed under name, the file name without its
 * extension, and remembers which shader files it reads.
 */
func (am *AssetManager) LoadMaterial(name string) (*loaders.MaterialData, error) {
	am.mutex.RLock()
	path, ok := am.materials[name]
	am.mutex.RUnlock()
	if !ok {
		return nil, fmt.Errorf("material %q: %w", name, core.ErrAssetNotFound)
	}

	res, err := am.LoadAsset(path)
	if err != nil {
		return nil, err
	}
	md := res.Data.(*loaders.MaterialData)

	am.mutex.Lock()
	for _, set := range am.dependents {
		delete(set, name)
	}
	for _, dep := range md.Dependencies {
		set, ok := am.dependents[dep]
		if !ok {
			set = make(map[string]struct{})
			am.dependents[dep] = set
		}
		set[name] = struct{}{}
	}
	am.mutex.Unlock()
	return md, nil
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(path string) (*resources.Resource, error) {
	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%s: %w", path, core.ErrAssetNotFound)
	}
	asset.LastLoaded = time.Now()
	am.assets[path] = asset
	loader, loaderExists := am.loaders[asset.Type]
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	res.ID = asset.ID
	return res, nil
}

func (am *AssetManager) UnloadAsset(res *resources.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[res.Type]
	am.mutex.RUnlock()
	if !ok {
		return nil
	}
	return loader.Unload(res)
}

// PollChanges drains the pending changes, keeping the latest per path.
func (am *AssetManager) PollChanges() []Change {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	var out []Change
	index := make(map[string]int)
	for !am.changes.IsEmpty() {
		c, _ := am.changes.Dequeue()
		if i, ok := index[c.Path]; ok {
			out[i] = c
			continue
		}
		index[c.Path] = len(out)
		out = append(out, c)
	}
	return out
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogError("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name, e.Op)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name, e.Op)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.register(filepath.Clean(walkPath))
		return nil
	})
}

func (am *AssetManager) register(path string) (AssetInfo, bool) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	return am.registerLocked(path)
}

func (am *AssetManager) registerLocked(path string) (AssetInfo, bool) {
	assetType := resources.ResourceTypeFromPath(path)
	if assetType == resources.ResourceTypeNone {
		return AssetInfo{}, false
	}
	info, ok := am.assets[path]
	if !ok {
		info = AssetInfo{ID: uuid.New(), Path: path, Type: assetType}
		am.assets[path] = info
		if assetType == resources.ResourceTypeMaterial {
			am.materials[materialName(path)] = path
		}
	}
	return info, true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string, op fsnotify.Op) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.registerLocked(path)
	if !ok {
		return
	}
	am.enqueueLocked(info, op)
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string, op fsnotify.Op) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	info, ok := am.assets[path]
	if !ok {
		return
	}
	am.enqueueLocked(info, op)
	delete(am.assets, path)
	if info.Type == resources.ResourceTypeMaterial {
		delete(am.materials, materialName(path))
	}
}

func (am *AssetManager) enqueueLocked(info AssetInfo, op fsnotify.Op) {
	c := Change{ID: info.ID, Path: info.Path, Type: info.Type, Op: op}
	switch info.Type {
	case resources.ResourceTypeMaterial:
		c.Materials = []string{materialName(info.Path)}
	case resources.ResourceTypeShader:
		for name := range am.dependents[info.Path] {
			c.Materials = append(c.Materials, name)
		}
		sort.Strings(c.Materials)
	}
	if dropped, ok := am.changes.Push(c); ok {
		core.LogWarn("asset change queue full, dropping change to %s", dropped.Path)
	}
}

func materialName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
