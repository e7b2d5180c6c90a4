// Package assets handles lump lookup and caching across a stack of WAD files.
package assets

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Faultbox/levelgeo/pkg/encoding"
	"github.com/Faultbox/levelgeo/pkg/wad"
)

// ErrNoArchives is returned when a lookup is made before any WAD was added.
var ErrNoArchives = errors.New("no WAD archives loaded")

// lumpRef ties a global lump number to its archive entry.
type lumpRef struct {
	archive *wad.Archive
	num     int
	info    wad.Lump
}

// Manager handles lump loading from WAD files.
//
// Lumps from all archives share one numbering, in the order the archives
// were added. Name lookups prefer the last added archive, so a PWAD added
// after the IWAD replaces its lumps.
type Manager struct {
	archives []*wad.Archive
	lumps    []lumpRef
	byName   map[string]int
	cache    *Cache
	mu       sync.RWMutex
}

// NewManager creates a new lump manager.
func NewManager() *Manager {
	return &Manager{
		byName: make(map[string]int),
		cache:  NewCache(),
	}
}

// AddArchive opens a WAD file and adds it to the manager.
func (m *Manager) AddArchive(path string) error {
	archive, err := wad.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", path, err)
	}
	m.Add(archive)
	return nil
}

// Add adds an already opened archive. The manager takes ownership of it.
func (m *Manager) Add(archive *wad.Archive) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.archives = append(m.archives, archive)
	for i := 0; i < archive.NumLumps(); i++ {
		info, _ := archive.Lump(i)
		m.byName[info.Name] = len(m.lumps)
		m.lumps = append(m.lumps, lumpRef{archive: archive, num: i, info: info})
	}
}

// NumArchives returns the number of archives added so far.
func (m *Manager) NumArchives() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.archives)
}

// NumLumps returns the number of lumps across all archives.
func (m *Manager) NumLumps() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lumps)
}

// LumpNumForName returns the global number of the last lump called name.
func (m *Manager) LumpNumForName(name string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	num, ok := m.byName[encoding.NormalizeName(name)]
	return num, ok
}

// GetNumForName is LumpNumForName with an error for missing lumps.
func (m *Manager) GetNumForName(name string) (int, error) {
	if m.NumArchives() == 0 {
		return -1, ErrNoArchives
	}
	num, ok := m.LumpNumForName(name)
	if !ok {
		return -1, fmt.Errorf("%w: %s", wad.ErrLumpNotFound, name)
	}
	return num, nil
}

// LumpName returns the name of lump num, or "" when num is out of range.
func (m *Manager) LumpName(num int) string {
	ref, ok := m.ref(num)
	if !ok {
		return ""
	}
	return ref.info.Name
}

// LumpLength returns the size in bytes of lump num, or -1 when num is out
// of range.
func (m *Manager) LumpLength(num int) int {
	ref, ok := m.ref(num)
	if !ok {
		return -1
	}
	return ref.info.Size
}

// ArchiveName returns the name of the archive holding lump num.
func (m *Manager) ArchiveName(num int) string {
	ref, ok := m.ref(num)
	if !ok {
		return ""
	}
	return ref.archive.Name()
}

func (m *Manager) ref(num int) (lumpRef, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if num < 0 || num >= len(m.lumps) {
		return lumpRef{}, false
	}
	return m.lumps[num], true
}

// ReadLump reads lump num without touching the cache.
func (m *Manager) ReadLump(num int) ([]byte, error) {
	ref, ok := m.ref(num)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", wad.ErrLumpNotFound, num)
	}
	return ref.archive.ReadLump(ref.num)
}

// CacheLump returns the contents of lump num, reading it on first use.
// tag holds the entry until ReleaseLump or ReleaseTag for that tag; the
// entry is evicted once no tag holds it. Callers must not modify the
// returned slice.
func (m *Manager) CacheLump(num int, tag string) ([]byte, error) {
	if data, ok := m.cache.Get(num); ok {
		m.cache.Set(num, data, tag)
		return data, nil
	}

	data, err := m.ReadLump(num)
	if err != nil {
		return nil, err
	}
	m.cache.Set(num, data, tag)
	return data, nil
}

// ReleaseLump drops tag's hold on lump num.
func (m *Manager) ReleaseLump(num int, tag string) {
	m.cache.Release(num, tag)
}

// ReleaseTag drops tag's hold on every cached lump and returns how many
// entries were evicted.
func (m *Manager) ReleaseTag(tag string) int {
	return m.cache.ReleaseTag(tag)
}

// Load loads a lump by name through the cache.
func (m *Manager) Load(name string) ([]byte, error) {
	num, err := m.GetNumForName(name)
	if err != nil {
		return nil, err
	}
	return m.CacheLump(num, "")
}

// Levels returns the map markers found in any archive, without duplicates.
func (m *Manager) Levels() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var result []string
	for _, archive := range m.archives {
		for _, name := range archive.Levels() {
			if !seen[name] {
				seen[name] = true
				result = append(result, name)
			}
		}
	}
	return result
}

// Cache returns the manager's lump cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close closes all archives.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.lumps = nil
	m.byName = make(map[string]int)
	m.cache.Clear()
}
