package storage

import (
	"context"

	"github.com/avdeyev/classpack/internal/models"
)

// TokenStorage defines the persistence interface for refresh tokens.
type TokenStorage interface {
	// SaveRefreshToken stores a refresh token, replacing any row with the
	// same token value.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves a refresh token by its value.
	// Returns ErrTokenNotFound if it doesn't exist.
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteRefreshToken deletes a refresh token by its value.
	// Returns ErrTokenNotFound if it doesn't exist.
	DeleteRefreshToken(ctx context.Context, token string) error

	// DeleteExpiredTokens removes all expired tokens and returns how many
	// were deleted.
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
