package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/structify/scrapechat/internal/session"
)

// Memory keeps session records in process memory. Used when no document
// store is configured and as the store double in tests.
type Memory struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (m *Memory) SaveSession(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[s.ID] = Record{ID: uuid.NewString(), SessionID: s.ID, Chat: s.Transcript()}
	return nil
}

func (m *Memory) Close(ctx context.Context) error { return nil }

// Record returns the stored record for a session, if any.
func (m *Memory) Record(sessionID string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[sessionID]
	return rec, ok
}
