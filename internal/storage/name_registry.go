package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/aleister1102/pagemirror/internal/urlhandler"
	"github.com/rs/zerolog"
)

// maxSuffix bounds collision probing in one directory
const maxSuffix = 100000

// NameRegistry makes probe-and-reserve atomic per directory. The filesystem
// is the source of truth; the registry serializes access to it.
type NameRegistry struct {
	mutexes map[string]*sync.Mutex
	mapLock sync.RWMutex
	logger  zerolog.Logger
}

// NewNameRegistry creates an empty registry
func NewNameRegistry(logger zerolog.Logger) *NameRegistry {
	return &NameRegistry{
		mutexes: make(map[string]*sync.Mutex),
		logger:  logger.With().Str("component", "NameRegistry").Logger(),
	}
}

// GetMutex returns the mutex guarding dir
func (nr *NameRegistry) GetMutex(dir string) *sync.Mutex {
	nr.mapLock.RLock()
	mutex, exists := nr.mutexes[dir]
	nr.mapLock.RUnlock()

	if exists {
		return mutex
	}

	nr.mapLock.Lock()
	defer nr.mapLock.Unlock()

	// Double-check after acquiring write lock
	if mutex, exists := nr.mutexes[dir]; exists {
		return mutex
	}

	mutex = &sync.Mutex{}
	nr.mutexes[dir] = mutex
	return mutex
}

// Reserve finds the first free name in dir for candidate, trying candidate
// then stem_1.ext, stem_2.ext, ... and hands each try to create, which must
// fail with fs.ErrExist when the name is taken. It returns the name that
// create accepted.
func (nr *NameRegistry) Reserve(dir, candidate string, create func(path string) error) (string, error) {
	mutex := nr.GetMutex(dir)
	mutex.Lock()
	defer mutex.Unlock()

	stem, ext := urlhandler.SplitStem(candidate)
	name := candidate
	for n := 1; ; n++ {
		err := create(filepath.Join(dir, name))
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		if n > maxSuffix {
			return "", fmt.Errorf("no free name for %q in %s after %d attempts", candidate, dir, maxSuffix)
		}
		nr.logger.Debug().Str("dir", dir).Str("taken", name).Msg("Name collision, probing next suffix")
		name = urlhandler.SuffixedName(stem, ext, n)
	}
}
