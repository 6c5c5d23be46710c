package storage

import (
	"context"
	"sync"
	"time"

	"github.com/shreyash-Pandey-Katni/hyperswitch/internal/types"
)

type memoryEntry struct {
	token     types.AccessToken
	expiresAt time.Time // zero means no expiry
}

// MemoryTokenStore is a process-local TokenStore for tests and single-node
// deployments. The mutex guards only the map; the read-decide-refresh-write
// sequence of the token manager stays unguarded on purpose (last write
// wins).
type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryTokenStore) Get(_ context.Context, merchantID, connectorName string) (*types.AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[merchantID+"/"+connectorName]
	if !ok {
		return nil, ErrTokenNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.entries, merchantID+"/"+connectorName)
		return nil, ErrTokenNotFound
	}

	token := entry.token
	return &token, nil
}

func (s *MemoryTokenStore) Set(_ context.Context, merchantID, connectorName string, token types.AccessToken, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := memoryEntry{token: token}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries[merchantID+"/"+connectorName] = entry
	return nil
}
