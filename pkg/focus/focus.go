// Package focus tracks which person is the current center of the diagram,
// with a bounded back-navigation history per user.
package focus

import (
	"sync"

	"github.com/majeanson/family-social/pkg/graph"
	"github.com/majeanson/family-social/pkg/models"
)

// HistoryLimit caps the back-navigation history. The oldest entry drops
// silently on overflow.
const HistoryLimit = 20

// Navigator holds one user's focus history. The zero value is usable.
type Navigator struct {
	mu      sync.Mutex
	history []string
}

// SetFocus pushes a person onto the history. Pushing the current top is a
// no-op so double-clicks don't burn history slots.
func (n *Navigator) SetFocus(personID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.history) > 0 && n.history[len(n.history)-1] == personID {
		return
	}

	n.history = append(n.history, personID)
	if len(n.history) > HistoryLimit {
		n.history = n.history[len(n.history)-HistoryLimit:]
	}
}

// GoBack pops the newest entry. With one or zero entries left it clears the
// history entirely, returning the user to the fallback-resolved default.
func (n *Navigator) GoBack() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.history) <= 1 {
		n.history = nil
		return
	}
	n.history = n.history[:len(n.history)-1]
}

// ClearFocus empties the history.
func (n *Navigator) ClearFocus() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.history = nil
}

// History returns a copy of the history, oldest first.
func (n *Navigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

// Current resolves the effective focus lazily against the live person set:
// the newest history entry whose person still exists, else the configured
// primary person, else the most connected person, else the first person,
// else "" for an empty data set. Deleted people are skipped silently, never
// surfaced as errors.
func (n *Navigator) Current(people []*models.Person, relationships []*models.Relationship, primaryPersonID string) string {
	exists := make(map[string]bool, len(people))
	for _, p := range people {
		exists[p.ID] = true
	}

	n.mu.Lock()
	history := n.history
	for i := len(history) - 1; i >= 0; i-- {
		if exists[history[i]] {
			id := history[i]
			n.mu.Unlock()
			return id
		}
	}
	n.mu.Unlock()

	if exists[primaryPersonID] {
		return primaryPersonID
	}

	if id := graph.MostConnected(people, relationships); id != "" {
		return id
	}

	return ""
}

// Registry hands out one navigator per user.
type Registry struct {
	mu         sync.Mutex
	navigators map[string]*Navigator
}

// NewRegistry creates an empty navigator registry.
func NewRegistry() *Registry {
	return &Registry{navigators: make(map[string]*Navigator)}
}

// For returns the navigator for a user, creating it on first use.
func (r *Registry) For(userID string) *Navigator {
	r.mu.Lock()
	defer r.mu.Unlock()

	nav, ok := r.navigators[userID]
	if !ok {
		nav = &Navigator{}
		r.navigators[userID] = nav
	}
	return nav
}
