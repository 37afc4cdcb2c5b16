package session

import (
	"sync"

	"github.com/google/uuid"
)

// Roles recorded in the chat transcript.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is one role-tagged turn in the exchange.
type Message struct {
	Role    string `json:"role" bson:"role"`
	Content string `json:"content" bson:"content"`
}

// Session carries one user's chat exchange. The caller owns its lifetime:
// create at session start, pass it to each operation, discard at session end.
// No process-wide chat state exists. Concurrent turns on the same session
// (the HTTP surface allows them) are safe; the transcript is guarded.
type Session struct {
	ID string

	mu       sync.Mutex
	messages []Message
}

// New creates an empty session with a fresh identifier.
func New() *Session {
	return &Session{ID: uuid.NewString()}
}

// Append records one turn at the end of the transcript.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{Role: role, Content: content})
}

// Transcript returns a copy of the recorded turns in order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
