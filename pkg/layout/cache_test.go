package layout

import (
	"testing"
	"time"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReturnsSameResultForSameSnapshot(t *testing.T) {
	cache := NewCache(DefaultConfig())

	people := []*models.Person{
		person("f", "Frank", "Hall"),
		person("m", "Mona", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("f", "m", models.RelTypeSpouse),
	}

	first := cache.Tree("f", people, relationships, nil)
	second := cache.Tree("f", people, relationships, nil)

	require.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestCacheInvalidatesOnPersonChange(t *testing.T) {
	cache := NewCache(DefaultConfig())

	people := []*models.Person{
		person("f", "Frank", "Hall"),
		person("m", "Mona", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("f", "m", models.RelTypeSpouse),
	}

	first := cache.Tree("f", people, relationships, nil)

	// A rename bumps UpdatedAt, which must invalidate the snapshot
	people[1].UpdatedAt = time.Now()
	second := cache.Tree("f", people, relationships, nil)

	assert.NotSame(t, first, second)
}

func TestCacheInvalidatesOnFocusChange(t *testing.T) {
	cache := NewCache(DefaultConfig())

	people := []*models.Person{
		person("f", "Frank", "Hall"),
		person("m", "Mona", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("f", "m", models.RelTypeSpouse),
	}

	first := cache.Generations("f", people, relationships, nil)
	second := cache.Generations("m", people, relationships, nil)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "f", first.FocusID)
	assert.Equal(t, "m", second.FocusID)
}

func TestCacheSharesGenerationAssignment(t *testing.T) {
	cache := NewCache(DefaultConfig())

	people := []*models.Person{
		person("f", "Frank", "Hall"),
		person("c", "Chris", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("f", "c", models.RelTypeChild),
	}

	tree := cache.Tree("f", people, relationships, nil)
	gl := cache.Generations("f", people, relationships, nil)

	require.NotNil(t, tree)
	require.NotNil(t, gl)
	assert.Equal(t, tree.FocusID, gl.FocusID)
}

func TestCacheRegistryPerUser(t *testing.T) {
	registry := NewCacheRegistry(DefaultConfig())

	a := registry.For("user-a")
	b := registry.For("user-b")

	assert.NotSame(t, a, b)
	assert.Same(t, a, registry.For("user-a"))
}
