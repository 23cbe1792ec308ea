package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Shashankyadav00/milk-attendance-system/internal/session"
)

// AuthError represents an authentication failure
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Client wraps every call to the backend API. It injects the stored user
// identifier as a query parameter on all requests except authentication
// calls. No retry, no caching, no response transformation.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
}

// New creates a client against the given base URL. The session store is
// threaded in explicitly so no call site reads ambient global state.
func New(baseURL string, timeout time.Duration, sess *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: sess,
	}
}

// envelope is the {success, message/error} shape most mutating endpoints
// respond with. Business failures carry the server text verbatim.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e *envelope) failed() bool {
	return e.Success != nil && !*e.Success
}

func (e *envelope) text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// err converts a success:false envelope into an error carrying the raw
// server message, with a fallback for servers that send none
func (e *envelope) err(fallback string) error {
	if msg := e.text(); msg != "" {
		return errors.New(msg)
	}
	return errors.New(fallback)
}

// do performs one request/response round trip. The stored userId is attached
// for every path outside /api/auth, matching the interceptor contract.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if query == nil {
		query = url.Values{}
	}

	// Attach userId ONLY for non-auth APIs
	if !strings.Contains(path, "/api/auth") {
		userID, err := c.session.UserID()
		if err != nil {
			return err
		}
		if userID != "" {
			query.Set("userId", userID)
		}
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	reqID := uuid.NewString()
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	slog.Debug("api call",
		"req_id", reqID,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("authentication failed (status %d): %s", resp.StatusCode, string(data)),
		}
	}

	if resp.StatusCode >= 400 {
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.text() != "" {
			return errors.New(env.text())
		}
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// userIDNum returns the stored identifier as a number for request bodies
// that carry it alongside the query parameter
func (c *Client) userIDNum() (int64, error) {
	userID, err := c.session.UserID()
	if err != nil {
		return 0, err
	}
	if userID == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("stored user id %q is not numeric", userID)
	}
	return id, nil
}
