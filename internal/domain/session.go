package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session ties a browser session ID to the username it logged in with.
type Session struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}

type SessionRepository interface {
	Save(ctx context.Context, session Session) error
	// Get returns ErrSessionNotFound for unknown IDs.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
