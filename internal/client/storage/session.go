package storage

import "context"

//go:generate moq -out session_mock.go . SessionStorage

// Session holds the persisted authentication state for this install.
// ClientID identifies this device in tombstone records; it is minted at login
// and kept for the lifetime of the session.
type Session struct {
	Username     string `json:"username"`
	UserID       string `json:"user_id"`
	ClientID     string `json:"client_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // unix seconds
}

// SessionStorage defines the durable store for authentication state.
type SessionStorage interface {
	// SaveSession persists the session, replacing any previous one.
	SaveSession(ctx context.Context, session *Session) error

	// GetSession returns the persisted session.
	// Returns ErrSessionNotFound if no session exists.
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the persisted session (logout).
	DeleteSession(ctx context.Context) error
}
