package memory

import (
	"context"
	"testing"
	"time"

	"pet-adoption/internal/session"
)

func TestStore_ExpiresAndDeletes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	s.now = func() time.Time { return now }

	if err := s.Save(ctx, session.Session{ID: "a"}, time.Minute); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := s.Save(ctx, session.Session{ID: "b"}, time.Hour); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if ok, _ := s.Exists(ctx, "a"); !ok {
		t.Fatalf("expected session a alive")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := s.Exists(ctx, "a"); ok {
		t.Fatalf("expected session a expired")
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if ok, _ := s.Exists(ctx, "b"); ok {
		t.Fatalf("expected session b deleted")
	}
}

func TestStore_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	s := NewStore()
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, session.Session{ID: "old"}, time.Second)
	_ = s.Save(ctx, session.Session{ID: "new"}, time.Hour)

	now = now.Add(time.Minute)
	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if ok, _ := s.Exists(ctx, "new"); !ok {
		t.Fatalf("expected new session to survive sweep")
	}
}
