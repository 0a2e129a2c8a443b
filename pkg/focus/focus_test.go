package focus

import (
	"fmt"
	"testing"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/stretchr/testify/assert"
)

func people(ids ...string) []*models.Person {
	out := make([]*models.Person, len(ids))
	for i, id := range ids {
		out[i] = &models.Person{ID: id, FirstName: id}
	}
	return out
}

func TestNavigatorSetFocusAndHistory(t *testing.T) {
	var nav Navigator

	nav.SetFocus("a")
	nav.SetFocus("b")
	assert.Equal(t, []string{"a", "b"}, nav.History())
}

func TestNavigatorDuplicateTopIsNoOp(t *testing.T) {
	var nav Navigator

	nav.SetFocus("a")
	nav.SetFocus("a")
	nav.SetFocus("a")
	assert.Equal(t, []string{"a"}, nav.History())
}

func TestNavigatorHistoryCapped(t *testing.T) {
	var nav Navigator

	for i := 0; i < HistoryLimit+5; i++ {
		nav.SetFocus(fmt.Sprintf("p%02d", i))
	}

	history := nav.History()
	assert.Len(t, history, HistoryLimit)
	// Oldest entries dropped silently
	assert.Equal(t, "p05", history[0])
	assert.Equal(t, fmt.Sprintf("p%02d", HistoryLimit+4), history[len(history)-1])
}

func TestNavigatorGoBack(t *testing.T) {
	var nav Navigator

	nav.SetFocus("a")
	nav.SetFocus("b")
	nav.GoBack()
	assert.Equal(t, []string{"a"}, nav.History())

	// With one entry left, going back clears everything
	nav.GoBack()
	assert.Empty(t, nav.History())

	// Going back on an empty history stays empty
	nav.GoBack()
	assert.Empty(t, nav.History())
}

func TestNavigatorClearFocus(t *testing.T) {
	var nav Navigator

	nav.SetFocus("a")
	nav.SetFocus("b")
	nav.ClearFocus()
	assert.Empty(t, nav.History())
}

func TestNavigatorCurrentSkipsDeleted(t *testing.T) {
	var nav Navigator

	nav.SetFocus("a")
	nav.SetFocus("gone")

	// The newest surviving entry wins
	assert.Equal(t, "a", nav.Current(people("a", "b"), nil, ""))
}

func TestNavigatorCurrentFallsBackToPrimary(t *testing.T) {
	var nav Navigator

	assert.Equal(t, "b", nav.Current(people("a", "b"), nil, "b"))
}

func TestNavigatorCurrentFallsBackToMostConnected(t *testing.T) {
	var nav Navigator

	ps := people("a", "hub", "c")
	rels := []*models.Relationship{
		{ID: "1", PersonAID: "hub", PersonBID: "a", Type: models.RelTypeChild},
		{ID: "2", PersonAID: "hub", PersonBID: "c", Type: models.RelTypeChild},
	}

	// No history, no primary: the most connected person is the default
	assert.Equal(t, "hub", nav.Current(ps, rels, ""))

	// A stale primary is ignored
	assert.Equal(t, "hub", nav.Current(ps, rels, "deleted"))
}

func TestNavigatorCurrentEmptyDataSet(t *testing.T) {
	var nav Navigator
	assert.Equal(t, "", nav.Current(nil, nil, ""))
}

func TestRegistryPerUser(t *testing.T) {
	registry := NewRegistry()

	a := registry.For("user-a")
	b := registry.For("user-b")

	a.SetFocus("p1")

	assert.NotSame(t, a, b)
	assert.Same(t, a, registry.For("user-a"))
	assert.Empty(t, b.History())
}
