package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"

	"github.com/majeanson/family-social/pkg/generation"
	"github.com/majeanson/family-social/pkg/models"
)

// Cache memoizes the derived layouts by value: identical
// (focus, people, relationships, settings) snapshots return the previously
// computed result instead of relaying out. Any change to the snapshot key
// invalidates everything, there is no partial reuse.
type Cache struct {
	cfg Config

	mu     sync.Mutex
	key    string
	gl     *models.GenerationLayout
	tree   *models.TreeLayout
	radial *models.RadialLayout
}

// NewCache creates a layout cache with the given spacing config.
func NewCache(cfg Config) *Cache {
	return &Cache{cfg: cfg}
}

// Tree returns the memoized tree layout for the snapshot, computing it on
// a key miss.
func (c *Cache) Tree(focusID string, people []*models.Person, relationships []*models.Relationship, settings *models.UserSettings) *models.TreeLayout {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refresh(focusID, people, relationships, settings)

	if c.tree == nil {
		c.tree = Tree(c.gl, relationships, settings, c.cfg)
	}
	return c.tree
}

// Radial returns the memoized radial layout for the snapshot.
func (c *Cache) Radial(focusID string, people []*models.Person, relationships []*models.Relationship, settings *models.UserSettings) *models.RadialLayout {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refresh(focusID, people, relationships, settings)

	if c.radial == nil {
		c.radial = Radial(people, relationships, settings, c.cfg)
	}
	return c.radial
}

// Generations returns the memoized generation assignment for the snapshot.
func (c *Cache) Generations(focusID string, people []*models.Person, relationships []*models.Relationship, settings *models.UserSettings) *models.GenerationLayout {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.refresh(focusID, people, relationships, settings)
	return c.gl
}

// refresh recomputes the generation assignment and drops stale geometry
// when the snapshot key changed. Callers must hold the lock.
func (c *Cache) refresh(focusID string, people []*models.Person, relationships []*models.Relationship, settings *models.UserSettings) {
	key := snapshotKey(focusID, people, relationships, settings)
	if key == c.key && c.gl != nil {
		return
	}

	c.key = key
	c.gl = generation.Assign(focusID, people, relationships)
	c.tree = nil
	c.radial = nil
}

// CacheRegistry hands out one layout cache per user.
type CacheRegistry struct {
	cfg Config

	mu     sync.Mutex
	caches map[string]*Cache
}

// NewCacheRegistry creates an empty cache registry.
func NewCacheRegistry(cfg Config) *CacheRegistry {
	return &CacheRegistry{cfg: cfg, caches: make(map[string]*Cache)}
}

// For returns the layout cache for a user, creating it on first use.
func (r *CacheRegistry) For(userID string) *Cache {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.caches[userID]
	if !ok {
		c = NewCache(r.cfg)
		r.caches[userID] = c
	}
	return c
}

// snapshotKey fingerprints the inputs the layouts are a pure function of.
// UpdatedAt stands in for person field changes so renames re-sort rows.
func snapshotKey(focusID string, people []*models.Person, relationships []*models.Relationship, settings *models.UserSettings) string {
	h := sha256.New()

	h.Write([]byte(focusID))
	h.Write([]byte{0})

	for _, p := range people {
		h.Write([]byte(p.ID))
		h.Write([]byte(strconv.FormatInt(p.UpdatedAt.UnixNano(), 10)))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})

	for _, r := range relationships {
		h.Write([]byte(r.ID))
		h.Write([]byte(r.Type))
		h.Write([]byte(r.ReverseType))
		h.Write([]byte{0})
	}
	h.Write([]byte{1})

	if settings != nil {
		h.Write([]byte(settings.PrimaryPersonID))
		h.Write([]byte(strconv.FormatInt(settings.UpdatedAt.UnixNano(), 10)))
	}

	return hex.EncodeToString(h.Sum(nil))
}
