package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// RefreshStore keeps opaque refresh tokens mapped to the username they were
// issued to.
type RefreshStore interface {
	SaveRefreshToken(ctx context.Context, token, username string, ttl time.Duration) error
	LookupRefreshToken(ctx context.Context, token string) (username string, ok bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) (existed bool, err error)
}

type refreshEntry struct {
	username  string
	expiresAt time.Time
}

// MemoryRefreshStore is the process-local RefreshStore used when Redis is
// not configured.
type MemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]refreshEntry
	now    func() time.Time
}

func NewMemoryRefreshStore() *MemoryRefreshStore {
	return &MemoryRefreshStore{tokens: map[string]refreshEntry{}, now: time.Now}
}

func (m *MemoryRefreshStore) SaveRefreshToken(_ context.Context, token, username string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = refreshEntry{username: username, expiresAt: m.now().Add(ttl)}
	return nil
}

func (m *MemoryRefreshStore) LookupRefreshToken(_ context.Context, token string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.tokens[token]
	if !ok {
		return "", false, nil
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.tokens, token)
		return "", false, nil
	}
	return e.username, true, nil
}

func (m *MemoryRefreshStore) RevokeRefreshToken(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.tokens[token]
	delete(m.tokens, token)
	return ok && m.now().Before(e.expiresAt), nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Sweep drops expired tokens and returns how many were removed.
func (m *MemoryRefreshStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	now := m.now()
	for token, e := range m.tokens {
		if !now.Before(e.expiresAt) {
			delete(m.tokens, token)
			removed++
		}
	}
	return removed
}

// StartCleaner sweeps expired tokens every interval until ctx is done.
func (m *MemoryRefreshStore) StartCleaner(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}
