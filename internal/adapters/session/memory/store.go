package memory

import (
	"context"
	"sync"
	"time"

	"pet-adoption/internal/session"
)

// Store guarda sesiones en el proceso. Se pierden al reiniciar (admin vuelve a loguear).
type Store struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

var _ session.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *Store) Save(_ context.Context, sess session.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expires[sess.ID] = s.now().Add(ttl)
	return nil
}

func (s *Store) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exp, ok := s.expires[id]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.expires, id)
		return false, nil
	}
	return true, nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.expires, id)
	return nil
}

// Sweep borra sesiones vencidas y devuelve cuántas quitó.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, exp := range s.expires {
		if !now.Before(exp) {
			delete(s.expires, id)
			n++
		}
	}
	return n
}

// RunSweeper llama Sweep cada interval hasta que ctx se cancele.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep()
		}
	}
}
