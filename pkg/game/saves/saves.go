// Package saves stores and loads games.
//
// Every game is kept as one YAML document. An index document lists the saves
// with their timestamps so the menu can ask whether any exist without
// decoding games.
package saves

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"frontier/pkg/engine/world"
	"frontier/pkg/game/state"
)

// AutosaveName is the save written automatically during play.
const AutosaveName = "Autosave"

const indexKey = "index"

// ErrNotFound is returned when a named save does not exist.
var ErrNotFound = errors.New("save not found")

// Entry describes one save in the index.
type Entry struct {
	Name    string    `yaml:"name"`
	Key     string    `yaml:"key"`
	SavedAt time.Time `yaml:"savedAt"`
	Turn    int       `yaml:"turn"`
}

// Manager saves and loads games. It is safe for concurrent use.
type Manager struct {
	mu    sync.Mutex
	store store
	now   func() time.Time
}

// NewManager creates a save manager on top of gdata. With a nil manager the
// saves are kept in memory for the lifetime of the process.
func NewManager(m *gdata.Manager) *Manager {
	if m == nil {
		log.Printf("[Saves] Warning: no persistent storage, saves are kept in memory")
		return &Manager{store: newMemStore(), now: time.Now}
	}
	return &Manager{store: gdataStore{m: m}, now: time.Now}
}

// key turns a display name into a storage key.
func key(name string) string {
	var b strings.Builder
	b.WriteString("game_")
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func (m *Manager) readIndex() ([]Entry, error) {
	if !m.store.exists(indexKey) {
		return nil, nil
	}
	data, err := m.store.load(indexKey)
	if err != nil {
		return nil, fmt.Errorf("loading save index: %w", err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding save index: %w", err)
	}
	return entries, nil
}

// List returns the saves, most recent first.
func (m *Manager) List() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := m.readIndex()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries, nil
}

// Any reports whether at least one save exists.
func (m *Manager) Any() bool {
	entries, err := m.List()
	if err != nil {
		log.Printf("[Saves] %v", err)
		return false
	}
	return len(entries) > 0
}

// AutosaveExists reports whether there is an autosave to resume.
func (m *Manager) AutosaveExists() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store.exists(key(AutosaveName))
}

// Save stores g under name, replacing an existing save with that name.
func (m *Manager) Save(name string, g *state.Game) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("save name must not be empty")
	}
	data, err := yaml.Marshal(encode(g))
	if err != nil {
		return fmt.Errorf("encoding game %s: %w", g.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	entries, err := m.readIndex()
	if err != nil {
		return err
	}
	k := key(name)
	if err := m.store.save(k, data); err != nil {
		return fmt.Errorf("saving game %s: %w", name, err)
	}

	entry := Entry{Name: name, Key: k, SavedAt: m.now(), Turn: g.Turn}
	replaced := false
	for i := range entries {
		if entries[i].Key == k {
			entries[i] = entry
			replaced = true
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	index, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding save index: %w", err)
	}
	if err := m.store.save(indexKey, index); err != nil {
		return fmt.Errorf("saving save index: %w", err)
	}
	log.Printf("[Saves] Saved %s (turn %d)", name, g.Turn)
	return nil
}

// Autosave stores g as the autosave.
func (m *Manager) Autosave(g *state.Game) error {
	return m.Save(AutosaveName, g)
}

// Load reads the named save.
func (m *Manager) Load(name string) (*state.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(name)
	if !m.store.exists(k) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	data, err := m.store.load(k)
	if err != nil {
		return nil, fmt.Errorf("loading game %s: %w", name, err)
	}
	var f gameFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding game %s: %w", name, err)
	}
	return f.decode()
}

// LoadAutosave reads the autosave.
func (m *Manager) LoadAutosave() (*state.Game, error) {
	return m.Load(AutosaveName)
}

// gameFile is the stored form of a game.
type gameFile struct {
	ID         string               `yaml:"id"`
	Turn       int                  `yaml:"turn"`
	StartedAt  time.Time            `yaml:"startedAt"`
	TileSet    string               `yaml:"tileSet"`
	UnitSet    string               `yaml:"unitSet"`
	Parameters state.GameParameters `yaml:"parameters"`
	Rows       int                  `yaml:"rows"`
	Cols       int                  `yaml:"cols"`
	Tiles      []tileRecord         `yaml:"tiles"`
}

type tileRecord struct {
	Terrain string `yaml:"t"`
	Feature string `yaml:"f,omitempty"`
	Water   bool   `yaml:"w,omitempty"`
}

func encode(g *state.Game) gameFile {
	f := gameFile{
		ID:         g.ID,
		Turn:       g.Turn,
		StartedAt:  g.StartedAt,
		TileSet:    g.TileSet,
		UnitSet:    g.UnitSet,
		Parameters: g.Parameters,
	}
	if g.Map != nil {
		f.Rows, f.Cols = g.Map.Rows(), g.Map.Cols()
		g.Map.ForEachTile(func(row, col int, t *world.Tile) {
			f.Tiles = append(f.Tiles, tileRecord{Terrain: t.Terrain, Feature: t.Feature, Water: t.Water})
		})
	}
	return f
}

func (f gameFile) decode() (*state.Game, error) {
	g := &state.Game{
		ID:         f.ID,
		Turn:       f.Turn,
		StartedAt:  f.StartedAt,
		TileSet:    f.TileSet,
		UnitSet:    f.UnitSet,
		Parameters: f.Parameters,
	}
	if f.Rows == 0 && f.Cols == 0 {
		return g, nil
	}
	if f.Rows <= 0 || f.Cols <= 0 || len(f.Tiles) != f.Rows*f.Cols {
		return nil, fmt.Errorf("game %s: map has %d tiles, want %dx%d", f.ID, len(f.Tiles), f.Rows, f.Cols)
	}
	g.Map = world.NewGrid(f.Rows, f.Cols)
	g.Map.ForEachTile(func(row, col int, t *world.Tile) {
		r := f.Tiles[row*f.Cols+col]
		t.Terrain, t.Feature, t.Water = r.Terrain, r.Feature, r.Water
	})
	return g, nil
}
