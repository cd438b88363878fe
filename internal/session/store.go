package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"biblioteca-console/internal/domains/auth"
	"biblioteca-console/pkg/cache"
)

// keyPrefix is the fixed key namespace for persisted sessions.
const keyPrefix = "sesion:"

var ErrNotFound = errors.New("session not found")

// Session is the authenticated identity as the console persists it: the
// backend bearer token plus the serialized user record. It survives a full
// console restart; middleware loads it before any protected view runs.
type Session struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	User      auth.Identity `json:"usuario"`
	CreatedAt time.Time     `json:"creadoEn"`
	ExpiresAt time.Time     `json:"expiraEn"`
}

// Store persists sessions in the cache. There is no ambient global: the
// store is built once by the container and injected where needed.
type Store struct {
	cache       cache.Cache
	fallbackTTL time.Duration
}

func NewStore(c cache.Cache, fallbackTTL time.Duration) *Store {
	if fallbackTTL <= 0 {
		fallbackTTL = 12 * time.Hour
	}
	return &Store{cache: c, fallbackTTL: fallbackTTL}
}

// Create persists a fresh session for a logged-in identity. The TTL follows
// the bearer token's exp claim when one is present; the console never
// refreshes tokens, so an expired session simply demotes the user to
// anonymous on the next request.
func (s *Store) Create(ctx context.Context, identity auth.Identity) (*Session, error) {
	now := time.Now()
	ttl := s.ttlFor(identity.Token, now)

	sess := &Session{
		ID:        uuid.NewString(),
		Token:     identity.Token,
		User:      identity,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	sess.User.Token = ""

	if err := s.cache.Set(ctx, keyPrefix+sess.ID, sess, ttl); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get loads a session by id. A missing or expired key is ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	var sess Session
	found, err := s.cache.Get(ctx, keyPrefix+id, &sess)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &sess, nil
}

// Destroy tears the session down on logout.
func (s *Store) Destroy(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, keyPrefix+id); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// ttlFor aligns the session lifetime with the token expiry. The claim is
// read without signature verification: the console is not the token's
// audience, it only forwards it.
func (s *Store) ttlFor(token string, now time.Time) time.Duration {
	if token == "" {
		return s.fallbackTTL
	}

	parser := jwt.NewParser()
	parsed, _, err := parser.ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return s.fallbackTTL
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.fallbackTTL
	}

	ttl := exp.Sub(now)
	if ttl <= 0 {
		return s.fallbackTTL
	}
	return ttl
}
