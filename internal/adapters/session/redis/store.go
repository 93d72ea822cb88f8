package redis

import (
	"context"
	"fmt"
	"time"

	"pet-adoption/internal/session"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "petadopt:session:"

// Store guarda cada sesión como una key con TTL; redis se encarga de vencerlas.
type Store struct {
	client goredis.Cmdable
}

var _ session.Store = (*Store)(nil)

func NewStore(client goredis.Cmdable) *Store {
	return &Store{client: client}
}

// Dial crea el cliente y verifica conectividad.
func Dial(ctx context.Context, addr, password string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *Store) Save(ctx context.Context, sess session.Session, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+sess.ID, sess.Username, ttl).Err()
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
