package store

import (
	"context"
	"errors"
	"testing"

	"drawdash/internal/game"
)

func TestMemoryGetPut(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, "nope"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	u := User{ID: "u1", Username: "Alice", TotalScore: 10}
	if err := m.Put(ctx, u); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != u {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestRecorderAggregatesStats(t *testing.T) {
	m := NewMemory()
	rec := NewRecorder(m)
	ctx := context.Background()

	// u2 has history already; u1 is new
	if err := m.Put(ctx, User{ID: "u2", Username: "Old", TotalScore: 200, GamesPlayed: 4, Wins: 1}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec.RecordResult("AB12CD", []game.Ranking{
		{PlayerID: "u1", Username: "Alice", Score: 150},
		{PlayerID: "u2", Username: "Bob", Score: 90},
	})

	u1, err := m.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get u1: %v", err)
	}
	if u1.GamesPlayed != 1 || u1.TotalScore != 150 || u1.Wins != 1 || u1.Username != "Alice" {
		t.Fatalf("winner stats wrong: %+v", u1)
	}

	u2, err := m.Get(ctx, "u2")
	if err != nil {
		t.Fatalf("get u2: %v", err)
	}
	if u2.GamesPlayed != 5 || u2.TotalScore != 290 || u2.Wins != 1 {
		t.Fatalf("runner-up stats wrong: %+v", u2)
	}
	if u2.Username != "Bob" {
		t.Fatalf("username should refresh from the latest game, got %q", u2.Username)
	}
}

func TestRecorderEmptyRankings(t *testing.T) {
	rec := NewRecorder(NewMemory())
	rec.RecordResult("AB12CD", nil)
}
