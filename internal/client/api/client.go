package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avdeyev/classpack/internal/models"
	"github.com/avdeyev/classpack/pkg/api"
)

// Per-call deadlines. List/sync fetches are short; row writes may carry large
// payloads and get more room. A timeout is treated like any other network
// failure upstream: the queue retries it.
const (
	listTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
)

// Typed errors callers branch on.
var (
	// ErrDuplicateKey indicates an insert conflicted with an existing row.
	// The sync queue treats it as success: another writer got there first.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnauthorized indicates the access token was rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI is the remote relational store as the sync engine sees it:
// filtered reads, update-by-id with a matched count, insert with a duplicate
// conflict, delete with an affected count, and the tombstone table.
type ClientAPI interface {
	// Auth
	Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error)
	Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error)

	// Rows
	ListRows(ctx context.Context, accessToken string, table models.EntityType) ([]api.Row, error)
	InsertRow(ctx context.Context, accessToken string, table models.EntityType, row api.Row) error
	UpdateRow(ctx context.Context, accessToken string, table models.EntityType, row api.Row) (int64, error)
	DeleteRow(ctx context.Context, accessToken string, table models.EntityType, id string) (int64, error)

	// Tombstones
	ListTombstones(ctx context.Context, accessToken string) ([]api.Tombstone, error)
	PutTombstone(ctx context.Context, accessToken string, req api.PutTombstoneRequest) error
	DeleteTombstone(ctx context.Context, accessToken string, itemType models.EntityType, itemID string) error
}

// Client is the HTTP implementation of ClientAPI.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new API client for the given server base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			// Per-request contexts carry the real deadline; this is the
			// absolute ceiling.
			Timeout: writeTimeout,
		},
	}
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", "", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates an existing account.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", "", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, req api.RefreshRequest) (*api.TokenResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var resp api.TokenResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/refresh", "", req, &resp); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return &resp, nil
}

// ListRows fetches all rows of the table for the authenticated owner.
func (c *Client) ListRows(ctx context.Context, accessToken string, table models.EntityType) ([]api.Row, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var resp api.RowList
	path := fmt.Sprintf("/api/v1/rows/%s", url.PathEscape(string(table)))
	if err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("list rows failed: %w", err)
	}
	return resp.Rows, nil
}

// InsertRow creates a row. Returns ErrDuplicateKey if a row with the same id
// already exists for this owner.
func (c *Client) InsertRow(ctx context.Context, accessToken string, table models.EntityType, row api.Row) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	path := fmt.Sprintf("/api/v1/rows/%s", url.PathEscape(string(table)))
	if err := c.doRequest(ctx, http.MethodPost, path, accessToken, row, nil); err != nil {
		return fmt.Errorf("insert row failed: %w", err)
	}
	return nil
}

// UpdateRow patches a row by id+owner and returns how many rows matched.
// Zero matched means the caller should fall back to InsertRow.
func (c *Client) UpdateRow(ctx context.Context, accessToken string, table models.EntityType, row api.Row) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var resp api.UpdateResult
	path := fmt.Sprintf("/api/v1/rows/%s/%s", url.PathEscape(string(table)), url.PathEscape(row.ID))
	if err := c.doRequest(ctx, http.MethodPatch, path, accessToken, row, &resp); err != nil {
		return 0, fmt.Errorf("update row failed: %w", err)
	}
	return resp.Matched, nil
}

// DeleteRow deletes a row by id+owner and returns how many rows were removed.
// Zero is a valid answer, not an error.
func (c *Client) DeleteRow(ctx context.Context, accessToken string, table models.EntityType, id string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	var resp api.DeleteResult
	path := fmt.Sprintf("/api/v1/rows/%s/%s", url.PathEscape(string(table)), url.PathEscape(id))
	if err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, &resp); err != nil {
		return 0, fmt.Errorf("delete row failed: %w", err)
	}
	return resp.Deleted, nil
}

// ListTombstones fetches all deletion records for the authenticated owner.
func (c *Client) ListTombstones(ctx context.Context, accessToken string) ([]api.Tombstone, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	var resp api.TombstoneList
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/tombstones", accessToken, nil, &resp); err != nil {
		return nil, fmt.Errorf("list tombstones failed: %w", err)
	}
	return resp.Tombstones, nil
}

// PutTombstone upserts a deletion record. Recording the same deletion twice
// is fine; the server upserts on conflict.
func (c *Client) PutTombstone(ctx context.Context, accessToken string, req api.PutTombstoneRequest) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := c.doRequest(ctx, http.MethodPut, "/api/v1/tombstones", accessToken, req, nil); err != nil {
		return fmt.Errorf("put tombstone failed: %w", err)
	}
	return nil
}

// DeleteTombstone removes a deletion record once the row delete is confirmed.
func (c *Client) DeleteTombstone(ctx context.Context, accessToken string, itemType models.EntityType, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	path := fmt.Sprintf("/api/v1/tombstones/%s/%s", url.PathEscape(string(itemType)), url.PathEscape(itemID))
	if err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, nil); err != nil {
		return fmt.Errorf("delete tombstone failed: %w", err)
	}
	return nil
}

// doRequest performs one HTTP round trip with JSON encoding on both sides.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result any) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusConflict:
			return ErrDuplicateKey
		case http.StatusUnauthorized:
			return ErrUnauthorized
		}

		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
