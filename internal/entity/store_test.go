package entity

import (
	"errors"
	"testing"

	"github.com/vovakirdan/blappy/internal/state"
)

func TestSpawnAssignsIncreasingIDs(t *testing.T) {
	s := NewStore()
	a := s.Spawn(KindPlayer, state.InGame)
	b := s.Spawn(KindObstacle, state.InGame)
	if a.ID == 0 || b.ID <= a.ID {
		t.Errorf("IDs not increasing: %d, %d", a.ID, b.ID)
	}
	if got, ok := s.Get(a.ID); !ok || got != a {
		t.Error("Get should return the spawned entity")
	}
}

func TestSingle(t *testing.T) {
	s := NewStore()

	if _, err := s.Single(KindPlayer); !errors.Is(err, ErrMissingSingleton) {
		t.Errorf("zero players: err = %v, expected ErrMissingSingleton", err)
	}

	p := s.Spawn(KindPlayer, state.InGame)
	got, err := s.Single(KindPlayer)
	if err != nil || got != p {
		t.Errorf("Single() = %v, %v", got, err)
	}

	s.Spawn(KindPlayer, state.InGame)
	if _, err := s.Single(KindPlayer); !errors.Is(err, ErrMissingSingleton) {
		t.Errorf("two players: err = %v, expected ErrMissingSingleton", err)
	}
}

func TestDespawnCascades(t *testing.T) {
	s := NewStore()
	var order []Kind
	s.OnDespawn = func(e *Entity) { order = append(order, e.Kind) }

	parent := s.Spawn(KindObstacle, state.InGame)
	upper := s.SpawnChild(parent, KindBarrier)
	lower := s.SpawnChild(parent, KindBarrier)

	if upper.Scope != state.InGame || upper.Parent != parent.ID {
		t.Error("child should inherit scope and record parent")
	}
	if len(parent.Children) != 2 {
		t.Fatalf("parent has %d children, expected 2", len(parent.Children))
	}

	s.Despawn(parent.ID)

	for _, id := range []ID{parent.ID, upper.ID, lower.ID} {
		if _, ok := s.Get(id); ok {
			t.Errorf("entity %d survived its parent", id)
		}
	}
	if len(order) != 3 || order[2] != KindObstacle {
		t.Errorf("children should be destroyed before the parent, got %v", order)
	}

	// Unknown IDs are ignored.
	s.Despawn(parent.ID)
}

func TestDespawnChildDetachesFromParent(t *testing.T) {
	s := NewStore()
	parent := s.Spawn(KindObstacle, state.InGame)
	child := s.SpawnChild(parent, KindBarrier)

	s.Despawn(child.ID)
	if len(parent.Children) != 0 {
		t.Errorf("parent still lists %d children", len(parent.Children))
	}
}

func TestSweepScope(t *testing.T) {
	s := NewStore()
	s.Spawn(KindMenuPrompt, state.Menu)
	s.Spawn(KindPlayer, state.InGame)
	s.Spawn(KindScoreDisplay, state.InGame)
	o := s.Spawn(KindObstacle, state.InGame)
	s.SpawnChild(o, KindBarrier)
	s.SpawnChild(o, KindBarrier)
	s.Spawn(KindBoundary, state.Loading)

	removed := s.SweepScope(state.InGame)
	if removed != 5 {
		t.Errorf("SweepScope removed %d, expected 5", removed)
	}
	if s.Len() != 2 {
		t.Errorf("%d entities left, expected 2", s.Len())
	}
	if s.Count(KindMenuPrompt) != 1 || s.Count(KindBoundary) != 1 {
		t.Error("entities of other scopes must survive")
	}
	if s.SweepScope(state.InGame) != 0 {
		t.Error("second sweep should find nothing")
	}
}

func TestQueryOrder(t *testing.T) {
	s := NewStore()
	var want []ID
	for i := 0; i < 10; i++ {
		want = append(want, s.Spawn(KindObstacle, state.InGame).ID)
		s.Spawn(KindBarrier, state.InGame)
	}

	got := s.Query(KindObstacle)
	if len(got) != len(want) {
		t.Fatalf("Query returned %d, expected %d", len(got), len(want))
	}
	for i, e := range got {
		if e.ID != want[i] {
			t.Errorf("Query()[%d] = %d, expected %d", i, e.ID, want[i])
		}
	}
}

func TestKindString(t *testing.T) {
	if KindScoreDisplay.String() != "score-display" {
		t.Errorf("unexpected %q", KindScoreDisplay.String())
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("unexpected %q", Kind(99).String())
	}
}
