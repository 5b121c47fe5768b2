// Package entity is a small entity store with phase-scoped lifetimes.
//
// Every entity records the phase that owns it. SweepScope destroys all
// entities owned by a phase, which is how phase exit cleans up after itself.
// Children are destroyed with their parent.
package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/blappy/internal/core"
	"github.com/vovakirdan/blappy/internal/physics"
	"github.com/vovakirdan/blappy/internal/state"
)

// ID identifies an entity. IDs are never reused within a Store.
type ID uint64

// Kind is the role an entity plays.
type Kind int

const (
	KindPlayer Kind = iota
	KindObstacle
	KindBarrier
	KindBoundary
	KindScoreDisplay
	KindMenuPrompt
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindObstacle:
		return "obstacle"
	case KindBarrier:
		return "barrier"
	case KindBoundary:
		return "boundary"
	case KindScoreDisplay:
		return "score-display"
	case KindMenuPrompt:
		return "menu-prompt"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrMissingSingleton is returned when exactly one entity of a kind was expected.
var ErrMissingSingleton = errors.New("expected exactly one entity")

// Entity is a plain record. Components that only some kinds use are zero otherwise.
type Entity struct {
	ID       ID
	Kind     Kind
	Scope    state.GamePhase
	Parent   ID // 0 for roots
	Children []ID

	Body    physics.BodyID
	HasBody bool

	Scored bool      // Obstacle: passed by the player
	GapY   float64   // Obstacle: gap center height
	Seq    int       // Obstacle: spawn order within the run
	Offset core.Vec2 // Barrier: center relative to the parent body
	Text   string    // Display entities
}

// Store owns all live entities.
type Store struct {
	next     ID
	entities map[ID]*Entity

	// OnDespawn runs for every destroyed entity, children before parents.
	OnDespawn func(*Entity)
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entities: make(map[ID]*Entity)}
}

// Spawn creates a root entity of kind k owned by scope.
func (s *Store) Spawn(k Kind, scope state.GamePhase) *Entity {
	s.next++
	e := &Entity{ID: s.next, Kind: k, Scope: scope}
	s.entities[e.ID] = e
	return e
}

// SpawnChild creates an entity attached to parent, inheriting its scope.
func (s *Store) SpawnChild(parent *Entity, k Kind) *Entity {
	e := s.Spawn(k, parent.Scope)
	e.Parent = parent.ID
	parent.Children = append(parent.Children, e.ID)
	return e
}

// Get returns the entity with id, if it is alive.
func (s *Store) Get(id ID) (*Entity, bool) {
	e, ok := s.entities[id]
	return e, ok
}

// Single returns the only entity of kind k.
func (s *Store) Single(k Kind) (*Entity, error) {
	var found *Entity
	n := 0
	for _, e := range s.entities {
		if e.Kind == k {
			found = e
			n++
		}
	}
	if n != 1 {
		return nil, fmt.Errorf("entity: %s: found %d: %w", k, n, ErrMissingSingleton)
	}
	return found, nil
}

// Query returns all entities of kind k in creation order.
func (s *Store) Query(k Kind) []*Entity {
	var out []*Entity
	for _, e := range s.entities {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of entities of kind k.
func (s *Store) Count(k Kind) int {
	n := 0
	for _, e := range s.entities {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Despawn destroys an entity and all its descendants. Unknown IDs are ignored.
func (s *Store) Despawn(id ID) {
	e, ok := s.entities[id]
	if !ok {
		return
	}
	children := append([]ID(nil), e.Children...)
	for _, c := range children {
		s.Despawn(c)
	}
	if e.Parent != 0 {
		if p, ok := s.entities[e.Parent]; ok {
			p.Children = removeID(p.Children, id)
		}
	}
	delete(s.entities, id)
	if s.OnDespawn != nil {
		s.OnDespawn(e)
	}
}

// SweepScope destroys every entity owned by scope and returns how many were removed.
func (s *Store) SweepScope(scope state.GamePhase) int {
	var ids []ID
	for _, e := range s.entities {
		if e.Scope == scope {
			ids = append(ids, e.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	before := len(s.entities)
	for _, id := range ids {
		// Already gone if an earlier parent took it down.
		s.Despawn(id)
	}
	return before - len(s.entities)
}

func removeID(ids []ID, id ID) []ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
