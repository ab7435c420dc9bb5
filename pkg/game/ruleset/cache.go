package ruleset

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"frontier/pkg/game/state"
)

// Names of the bundled base rulesets.
const (
	Vanilla      = "Civ V - Vanilla"
	GodsAndKings = "Civ V - Gods & Kings"
)

//go:embed data/*.yaml
var embedded embed.FS

// suggestDistance is the largest edit distance offered as a "did you mean".
const suggestDistance = 4

// Cache holds loaded rulesets and the complex rulesets composed from them.
// It is safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	rulesets map[string]*Ruleset
	complex  map[string]*Ruleset
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		rulesets: make(map[string]*Ruleset),
		complex:  make(map[string]*Ruleset),
	}
}

// LoadBundled creates a cache holding the rulesets shipped with the game.
func LoadBundled() (*Cache, error) {
	c := NewCache()
	if err := c.LoadFS(embedded, "data"); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFS decodes every .yaml file in dir and adds it to the cache.
func (c *Cache) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading ruleset dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return fmt.Errorf("reading ruleset %s: %w", e.Name(), err)
		}
		rs, err := Parse(data)
		if err != nil {
			return fmt.Errorf("ruleset %s: %w", e.Name(), err)
		}
		c.Add(rs)
	}
	log.Printf("[Rulesets] Loaded %d rulesets from %s", len(entries), dir)
	return nil
}

// Parse decodes and validates a single ruleset document.
func Parse(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	rs.index()
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Add stores rs under its name, replacing any ruleset with the same name.
// Composed rulesets depending on it are dropped.
func (c *Cache) Add(rs *Ruleset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rulesets[rs.Name] = rs
	c.complex = make(map[string]*Ruleset)
}

// Get returns the named ruleset.
func (c *Cache) Get(name string) (*Ruleset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rs, ok := c.rulesets[name]
	return rs, ok
}

// Lookup returns the named ruleset, or an error that suggests the closest
// known name when there is no exact match.
func (c *Cache) Lookup(name string) (*Ruleset, error) {
	if rs, ok := c.Get(name); ok {
		return rs, nil
	}
	if s := c.Suggest(name); s != "" {
		return nil, fmt.Errorf("unknown ruleset %q, did you mean %q?", name, s)
	}
	return nil, fmt.Errorf("unknown ruleset %q", name)
}

// Suggest returns the known ruleset name closest to name, or "" if none is close.
func (c *Cache) Suggest(name string) string {
	best := ""
	bestDist := suggestDistance + 1
	for _, candidate := range c.Names() {
		d := levenshtein.ComputeDistance(strings.ToLower(name), strings.ToLower(candidate))
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Names returns all ruleset names, sorted.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.rulesets))
	for name := range c.rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Vanilla returns the vanilla base ruleset, or nil if it is not loaded.
func (c *Cache) Vanilla() *Ruleset {
	rs, _ := c.Get(Vanilla)
	return rs
}

// Complex composes base with the named mods, in order. The result is cached
// so repeated calls with the same inputs return the same ruleset.
func (c *Cache) Complex(base *Ruleset, mods []string) (*Ruleset, error) {
	if base == nil {
		return nil, fmt.Errorf("complex ruleset needs a base ruleset")
	}
	if len(mods) == 0 {
		return base, nil
	}
	key := base.Name + "|" + strings.Join(mods, "|")

	c.mu.RLock()
	cached, ok := c.complex[key]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	out := base.clone()
	for _, name := range mods {
		mod, err := c.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("composing %s: %w", base.Name, err)
		}
		if mod.Base {
			return nil, fmt.Errorf("composing %s: %q is a base ruleset, not a mod", base.Name, name)
		}
		out.apply(mod)
	}

	c.mu.Lock()
	if existing, ok := c.complex[key]; ok {
		out = existing
	} else {
		c.complex[key] = out
	}
	c.mu.Unlock()
	return out, nil
}

// ComplexFromParameters composes the ruleset a game with these parameters uses.
func (c *Cache) ComplexFromParameters(p state.GameParameters) (*Ruleset, error) {
	base, err := c.Lookup(p.BaseRuleset)
	if err != nil {
		return nil, err
	}
	return c.Complex(base, p.Mods)
}
