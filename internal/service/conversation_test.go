package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"lumo_backend/internal/model"
)

// fakeTurnStore keeps durable turns and the cached window in memory,
// mirroring the repository's MySQL-plus-redis split.
type fakeTurnStore struct {
	turns      []model.ChatTurn
	window     []model.ChatTurn
	cached     bool
	createErr  error
	recentErr  error
	primeCalls int
	recentN    []int
}

func (f *fakeTurnStore) CreateTurn(turn *model.ChatTurn) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.turns = append(f.turns, *turn)
	return nil
}

func (f *fakeTurnStore) RecentTurns(userID uint, limit int) ([]model.ChatTurn, error) {
	f.recentN = append(f.recentN, limit)
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	if len(f.turns) <= limit {
		return f.turns, nil
	}
	return f.turns[len(f.turns)-limit:], nil
}

func (f *fakeTurnStore) AllTurns(userID uint) ([]model.ChatTurn, error) {
	return f.turns, nil
}

func (f *fakeTurnStore) CachedWindow(ctx context.Context, userID uint) ([]model.ChatTurn, bool) {
	if !f.cached {
		return nil, false
	}
	return f.window, true
}

func (f *fakeTurnStore) PrimeWindow(ctx context.Context, userID uint, turns []model.ChatTurn) error {
	f.primeCalls++
	f.window = append([]model.ChatTurn(nil), turns...)
	f.cached = true
	return nil
}

func (f *fakeTurnStore) PushTurn(ctx context.Context, userID uint, turn model.ChatTurn, cap int) error {
	f.window = append(f.window, turn)
	if len(f.window) > cap {
		f.window = f.window[len(f.window)-cap:]
	}
	return nil
}

func (f *fakeTurnStore) ClearWindow(ctx context.Context, userID uint) error {
	f.window = nil
	f.cached = false
	return nil
}

func makeTurns(n int) []model.ChatTurn {
	turns := make([]model.ChatTurn, n)
	for i := range turns {
		turns[i] = model.ChatTurn{
			UserInput: fmt.Sprintf("question %d", i+1),
			BotReply:  fmt.Sprintf("answer %d", i+1),
		}
	}
	return turns
}

func TestRecent(t *testing.T) {
	t.Run("window longer than n keeps the tail", func(t *testing.T) {
		window := makeTurns(15)
		got := Recent(window, 10)
		if len(got) != 10 {
			t.Fatalf("len = %d, want 10", len(got))
		}
		if got[0].UserInput != "question 6" {
			t.Errorf("first turn = %q, want question 6", got[0].UserInput)
		}
		if got[9].UserInput != "question 15" {
			t.Errorf("last turn = %q, want question 15", got[9].UserInput)
		}
	})

	t.Run("window shorter than n returned whole", func(t *testing.T) {
		window := makeTurns(3)
		got := Recent(window, 10)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		if got[0].UserInput != "question 1" || got[2].UserInput != "question 3" {
			t.Errorf("order changed: %q ... %q", got[0].UserInput, got[2].UserInput)
		}
	})

	t.Run("empty window", func(t *testing.T) {
		if got := Recent(nil, 10); len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("non positive n", func(t *testing.T) {
		if got := Recent(makeTurns(5), 0); got != nil {
			t.Errorf("Recent(_, 0) = %v, want nil", got)
		}
	})
}

func TestConversationServiceHydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		store := &fakeTurnStore{cached: true, window: makeTurns(4)}
		svc := NewConversationService(store)

		got, err := svc.Hydrate(ctx, 1)
		if err != nil {
			t.Fatalf("Hydrate returned error: %v", err)
		}
		if len(got) != 4 {
			t.Fatalf("len = %d, want 4", len(got))
		}
		if len(store.recentN) != 0 {
			t.Error("database queried despite a warm cache")
		}
	})

	t.Run("cache miss loads recent turns and primes", func(t *testing.T) {
		store := &fakeTurnStore{turns: makeTurns(60)}
		svc := NewConversationService(store)

		got, err := svc.Hydrate(ctx, 1)
		if err != nil {
			t.Fatalf("Hydrate returned error: %v", err)
		}
		if len(got) != 50 {
			t.Fatalf("len = %d, want the 50-turn hydrate window", len(got))
		}
		if got[0].UserInput != "question 11" || got[49].UserInput != "question 60" {
			t.Errorf("window spans %q..%q, want question 11..question 60", got[0].UserInput, got[49].UserInput)
		}
		if len(store.recentN) != 1 || store.recentN[0] != 50 {
			t.Errorf("RecentTurns limits = %v, want [50]", store.recentN)
		}
		if store.primeCalls != 1 {
			t.Errorf("primeCalls = %d, want 1", store.primeCalls)
		}
	})

	t.Run("repeated hydration before any append returns the same content", func(t *testing.T) {
		store := &fakeTurnStore{turns: makeTurns(7)}
		svc := NewConversationService(store)

		first, err := svc.Hydrate(ctx, 1)
		if err != nil {
			t.Fatalf("first Hydrate: %v", err)
		}
		second, err := svc.Hydrate(ctx, 1)
		if err != nil {
			t.Fatalf("second Hydrate: %v", err)
		}

		if len(first) != len(second) {
			t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].UserInput != second[i].UserInput || first[i].BotReply != second[i].BotReply {
				t.Fatalf("turn %d differs: %+v vs %+v", i, first[i], second[i])
			}
		}
		// Second call was served from the primed cache.
		if len(store.recentN) != 1 {
			t.Errorf("database queried %d times, want 1", len(store.recentN))
		}
	})

	t.Run("empty history is not primed", func(t *testing.T) {
		store := &fakeTurnStore{}
		svc := NewConversationService(store)

		got, err := svc.Hydrate(ctx, 1)
		if err != nil {
			t.Fatalf("Hydrate returned error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("len = %d, want 0", len(got))
		}
		if store.primeCalls != 0 {
			t.Errorf("primeCalls = %d, want 0", store.primeCalls)
		}
	})

	t.Run("database failure surfaces", func(t *testing.T) {
		store := &fakeTurnStore{recentErr: errors.New("db down")}
		svc := NewConversationService(store)
		if _, err := svc.Hydrate(ctx, 1); err == nil {
			t.Fatal("Hydrate returned nil error on database failure")
		}
	})
}

func TestConversationServiceAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("persists and mirrors the turn", func(t *testing.T) {
		store := &fakeTurnStore{cached: true}
		svc := NewConversationService(store)

		turn := svc.Append(ctx, 3, "hello", "hi there")
		if turn.UserInput != "hello" || turn.BotReply != "hi there" || turn.UserID != 3 {
			t.Errorf("turn = %+v", turn)
		}
		if len(store.turns) != 1 {
			t.Errorf("persisted %d turns, want 1", len(store.turns))
		}
		if len(store.window) != 1 {
			t.Errorf("window has %d turns, want 1", len(store.window))
		}
	})

	t.Run("persistence failure still returns the turn", func(t *testing.T) {
		store := &fakeTurnStore{createErr: errors.New("db down")}
		svc := NewConversationService(store)

		turn := svc.Append(ctx, 3, "hello", "hi there")
		if turn.UserInput != "hello" {
			t.Errorf("turn = %+v", turn)
		}
	})
}

func TestConversationServiceReset(t *testing.T) {
	store := &fakeTurnStore{cached: true, window: makeTurns(5), turns: makeTurns(5)}
	svc := NewConversationService(store)

	if err := svc.Reset(context.Background(), 1); err != nil {
		t.Fatalf("Reset returned error: %v", err)
	}
	if store.cached || len(store.window) != 0 {
		t.Error("window not cleared")
	}
	if len(store.turns) != 5 {
		t.Error("durable history was touched by Reset")
	}
}

