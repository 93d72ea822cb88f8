// Package session implementa el gate de administración: login con un par de credenciales
// configurado, token firmado (JWT HS256) y sesión server-side revocable.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized    = errors.New("invalid credentials")
	ErrUnauthenticated = errors.New("not authenticated")
)

const issuer = "pet-adoption"

// Session es la sesión de admin que viaja por el context del request.
type Session struct {
	ID        string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Credentials del único admin. Vienen de config, nunca de un literal.
type Credentials struct {
	Username string
	Password string
}

// Store guarda qué sesiones siguen vivas (memoria o redis).
type Store interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type Options struct {
	Credentials Credentials
	Secret      []byte
	TTL         time.Duration
	Store       Store
}

type Gate struct {
	creds  Credentials
	secret []byte
	ttl    time.Duration
	store  Store
	now    func() time.Time
}

func NewGate(opts Options) (*Gate, error) {
	if strings.TrimSpace(opts.Credentials.Username) == "" || opts.Credentials.Password == "" {
		return nil, fmt.Errorf("session: admin credentials required")
	}
	if len(opts.Secret) == 0 {
		return nil, fmt.Errorf("session: signing secret required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("session: store required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Gate{
		creds:  opts.Credentials,
		secret: opts.Secret,
		ttl:    ttl,
		store:  opts.Store,
		now:    time.Now,
	}, nil
}

func (g *Gate) TTL() time.Duration { return g.ttl }

// Authenticate compara ambos campos en tiempo constante y sin cortocircuito,
// así la respuesta no revela cuál de los dos falló.
func (g *Gate) Authenticate(ctx context.Context, username, password string) (string, Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.creds.Username))
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.creds.Password))
	if userOK&passOK != 1 {
		return "", Session{}, ErrUnauthorized
	}

	now := g.now().UTC().Truncate(time.Second)
	s := Session{
		ID:        uuid.NewString(),
		Username:  g.creds.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(g.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        s.ID,
		Subject:   s.Username,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(s.IssuedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	})
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("sign session token: %w", err)
	}

	if err := g.store.Save(ctx, s, g.ttl); err != nil {
		return "", Session{}, fmt.Errorf("save session: %w", err)
	}
	return signed, s, nil
}

// Require valida firma + expiración y que la sesión no se haya cerrado.
func (g *Gate) Require(ctx context.Context, token string) (Session, error) {
	s, err := g.parse(token)
	if err != nil {
		return Session{}, ErrUnauthenticated
	}

	alive, err := g.store.Exists(ctx, s.ID)
	if err != nil {
		return Session{}, fmt.Errorf("lookup session: %w", err)
	}
	if !alive {
		return Session{}, ErrUnauthenticated
	}
	return s, nil
}

// End invalida la sesión. Token inválido o sesión ya cerrada: no-op.
func (g *Gate) End(ctx context.Context, token string) error {
	s, err := g.parse(token)
	if err != nil {
		return nil
	}
	return g.store.Delete(ctx, s.ID)
}

func (g *Gate) parse(token string) (Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, ErrUnauthenticated
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, ErrUnauthenticated
	}
	if claims.ID == "" || claims.Subject != g.creds.Username {
		return Session{}, ErrUnauthenticated
	}

	s := Session{ID: claims.ID, Username: claims.Subject}
	if claims.IssuedAt != nil {
		s.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time.UTC()
	}
	return s, nil
}

type ctxKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
