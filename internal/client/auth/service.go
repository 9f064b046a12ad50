package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	httpClient "github.com/avdeyev/classpack/internal/client/api"
	"github.com/avdeyev/classpack/internal/client/storage"
	"github.com/avdeyev/classpack/internal/validation"
	pkgapi "github.com/avdeyev/classpack/pkg/api"
)

// ErrNotAuthenticated indicates there is no usable session. Sync passes treat
// this as "offline": abort quietly and retry on the next trigger.
var ErrNotAuthenticated = errors.New("not authenticated")

// expirySlack refreshes tokens slightly before their actual expiry so an
// in-flight sync pass does not race the clock.
const expirySlack = 30 * time.Second

//go:generate moq -out credentials_mock.go . CredentialsProvider

// Credentials is what a sync pass needs from the auth layer.
type Credentials struct {
	UserID      string
	ClientID    string
	AccessToken string
}

// CredentialsProvider resolves current credentials. Implementations must
// re-resolve on every call: tokens expire and rotate.
type CredentialsProvider interface {
	// Credentials returns a valid credential set, refreshing the access
	// token if needed. Returns ErrNotAuthenticated when no session exists
	// or it cannot be refreshed.
	Credentials(ctx context.Context) (*Credentials, error)
}

// Service manages the account session: register, login, logout, and
// resolving fresh credentials for sync passes.
type Service struct {
	apiClient httpClient.ClientAPI
	sessions  storage.SessionStorage
	logger    *slog.Logger
}

// NewService creates a new auth service.
func NewService(apiClient httpClient.ClientAPI, sessions storage.SessionStorage, logger *slog.Logger) *Service {
	return &Service{
		apiClient: apiClient,
		sessions:  sessions,
		logger:    logger,
	}
}

// Register creates a new account. It does not log in.
func (s *Service) Register(ctx context.Context, username, password string) (string, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return "", fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return "", fmt.Errorf("registration failed: %w", err)
	}

	s.logger.Info("registered account", "user_id", resp.UserID, "username", username)
	return resp.UserID, nil
}

// Login authenticates and persists the session. A fresh ClientID is minted
// for this device; it tags every tombstone the device writes.
func (s *Service) Login(ctx context.Context, username, password string) error {
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	session := &storage.Session{
		Username:     username,
		UserID:       resp.UserID,
		ClientID:     uuid.New().String(),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix(),
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("logged in", "user_id", resp.UserID, "username", username)
	return nil
}

// Logout removes the persisted session. Local snapshots and the pending
// queue are kept: they belong to the data layer, not the session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Status returns the persisted session, or ErrNotAuthenticated.
func (s *Service) Status(ctx context.Context) (*storage.Session, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// Credentials resolves a currently valid credential set, refreshing the
// access token via the refresh token when it is about to expire.
func (s *Service) Credentials(ctx context.Context) (*Credentials, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if time.Now().Add(expirySlack).Unix() >= session.ExpiresAt {
		session, err = s.refresh(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	return &Credentials{
		UserID:      session.UserID,
		ClientID:    session.ClientID,
		AccessToken: session.AccessToken,
	}, nil
}

// refresh exchanges the refresh token for a new pair and persists it.
func (s *Service) refresh(ctx context.Context, session *storage.Session) (*storage.Session, error) {
	resp, err := s.apiClient.Refresh(ctx, pkgapi.RefreshRequest{
		RefreshToken: session.RefreshToken,
	})
	if err != nil {
		if errors.Is(err, httpClient.ErrUnauthorized) {
			// Refresh token revoked or expired: the session is dead.
			s.logger.Warn("refresh token rejected, session invalidated")
			if delErr := s.sessions.DeleteSession(ctx); delErr != nil {
				s.logger.Warn("failed to delete stale session", "error", delErr)
			}
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	session.AccessToken = resp.AccessToken
	session.RefreshToken = resp.RefreshToken
	session.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second).Unix()

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save refreshed session: %w", err)
	}

	s.logger.Debug("access token refreshed", "user_id", session.UserID)
	return session, nil
}
