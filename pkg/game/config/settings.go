package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"frontier/pkg/game/ruleset"
	"frontier/pkg/game/state"
)

// Settings are the user preferences that survive restarts.
type Settings struct {
	TileSet          string `yaml:"tileSet"`
	UnitSet          string `yaml:"unitSet"`
	EnableEasterEggs bool   `yaml:"enableEasterEggs"`
	Language         string `yaml:"language"`

	// LastGameSetup is the setup of the most recently started game, if any.
	LastGameSetup *state.GameParameters `yaml:"lastGameSetup,omitempty"`
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		TileSet:          "FantasyHex",
		UnitSet:          "FantasyHex",
		EnableEasterEggs: true,
		Language:         "en",
	}
}

// DefaultGameParameters returns the setup used when there is no last game.
func DefaultGameParameters() state.GameParameters {
	return state.GameParameters{
		Difficulty:   "Prince",
		BaseRuleset:  ruleset.GodsAndKings,
		VictoryTypes: []string{"Domination", "Science", "Cultural", "Diplomatic"},
		Players:      4,
		MapWidth:     40,
		MapHeight:    25,
	}
}

// Storage path constants
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// SettingsManager loads, holds and saves Settings.
// The manager may be nil, in which case settings live in memory only.
// It is safe for concurrent use; background tasks read snapshots.
type SettingsManager struct {
	gdataManager *gdata.Manager

	mu       sync.RWMutex
	settings Settings
}

// NewSettingsManager creates a manager and loads any saved settings.
// A load failure is logged and the defaults are used.
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[Settings] Warning: failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load replaces the current settings with the saved ones.
func (sm *SettingsManager) Load() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decoding settings: %w", err)
	}
	sm.settings = loaded
	log.Printf("[Settings] Settings loaded")
	return nil
}

// Save persists the current settings. Without storage it does nothing.
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	sm.mu.RLock()
	data, err := yaml.Marshal(sm.settings)
	sm.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// Get returns a copy of the current settings.
func (sm *SettingsManager) Get() Settings {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s := sm.settings
	if s.LastGameSetup != nil {
		p := s.LastGameSetup.Clone()
		s.LastGameSetup = &p
	}
	return s
}

// Update applies fn to the settings under the lock. Call Save to persist.
func (sm *SettingsManager) Update(fn func(s *Settings)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fn(&sm.settings)
}

// SetLastGameSetup records the setup of a started game.
func (sm *SettingsManager) SetLastGameSetup(p state.GameParameters) {
	c := p.Clone()
	sm.Update(func(s *Settings) { s.LastGameSetup = &c })
}
