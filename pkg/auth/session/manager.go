package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/big-riz/HandcashIntegration/pkg/config"
	redisclient "github.com/big-riz/HandcashIntegration/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	SessionKey(sessionID string) string
}

// Manager maps browser session ids to the wallet auth token held in Redis.
// The cookie JWT carries only the session id; the credential itself never
// leaves the server.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// TokenResolver exposes the read-only surface needed by middleware.
type TokenResolver interface {
	AuthToken(ctx context.Context, sessionID string) (string, error)
}

// NewManager constructs a session manager backed by Redis.
func NewManager(client *redisclient.Client, cfg config.SessionConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.TTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Create stores the auth token under a fresh session id and returns the id.
func (m *Manager) Create(ctx context.Context, authToken string) (string, error) {
	if strings.TrimSpace(authToken) == "" {
		return "", fmt.Errorf("auth token is required")
	}
	sessionID := NewSessionID()
	if err := m.store.Set(ctx, m.keyer.SessionKey(sessionID), authToken, m.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

// AuthToken resolves the wallet credential tied to the session id.
func (m *Manager) AuthToken(ctx context.Context, sessionID string) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", ErrNoSession
	}
	token, err := m.store.Get(ctx, m.keyer.SessionKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", ErrNoSession
		}
		return "", err
	}
	return token, nil
}

// Revoke deletes the session, ending the login.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return fmt.Errorf("session id is required")
	}
	return m.store.Del(ctx, m.keyer.SessionKey(sessionID))
}

// NewSessionID produces a stable identifier used as the JWT jti/Redis key.
func NewSessionID() string {
	return uuid.NewString()
}
