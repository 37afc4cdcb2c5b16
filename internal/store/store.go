package store

import (
	"context"

	"github.com/structify/scrapechat/internal/session"
)

// Record is the persisted form of a session: a fresh identifier per save,
// the session identifier, and the full role-tagged exchange.
type Record struct {
	ID        string            `bson:"id" json:"id"`
	SessionID string            `bson:"session_id" json:"session_id"`
	Chat      []session.Message `bson:"chat" json:"chat"`
}

// Store persists chat sessions. SaveSession upserts, so saving after every
// turn keeps exactly one record per session.
type Store interface {
	SaveSession(ctx context.Context, s *session.Session) error
	Close(ctx context.Context) error
}
