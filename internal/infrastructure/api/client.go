// Package api implements the AuthClient port against the user-administration
// server's HTTP surface. Session credentials travel in cookies held by the
// client's jar; every state-changing request additionally carries the
// anti-forgery token in the X-CSRF-Token header.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

const csrfHeader = "X-CSRF-Token"

// Client talks to the external server. It never reads or writes the
// TokenStore; callers pass the current token in.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	// cookiejar.New only errors on a bad PublicSuffixList; nil is valid.
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Jar: jar},
		logger:  logger,
	}
}

type tokenResponse struct {
	CSRFToken string `json:"csrf_token"`
}

type loginResponse struct {
	Message string           `json:"message"`
	User    domain.Principal `json:"user"`
}

type registerResponse struct {
	Message string `json:"message"`
}

type usersResponse struct {
	Users []domain.UserRecord `json:"users"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// FetchToken retrieves a fresh anti-forgery token for the browser session.
func (c *Client) FetchToken(ctx context.Context) (string, error) {
	var out tokenResponse
	if err := c.do(ctx, http.MethodGet, "/csrf-token", "", nil, &out); err != nil {
		return "", classify(err, nil)
	}
	return out.CSRFToken, nil
}

// Login submits credentials. A 401 means the credentials were wrong; a 403
// means the session or token was rejected and the caller must go anonymous.
func (c *Client) Login(ctx context.Context, creds domain.Credentials, token string) (*ports.LoginResult, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/login", token, creds, &out)
	if err != nil {
		return nil, classify(err, map[int]error{
			http.StatusBadRequest:   domain.ErrValidation,
			http.StatusUnauthorized: domain.ErrInvalidCredentials,
			http.StatusForbidden:    domain.ErrForbidden,
		})
	}
	user := out.User
	return &ports.LoginResult{Message: out.Message, Principal: &user}, nil
}

// Register creates an account and returns the server's success message.
func (c *Client) Register(ctx context.Context, reg domain.Registration, token string) (string, error) {
	var out registerResponse
	err := c.do(ctx, http.MethodPost, "/register", token, reg, &out)
	if err != nil {
		return "", classifyRegister(err)
	}
	return out.Message, nil
}

// Logout ends the server-side session. Callers treat failure as advisory and
// tear down local state regardless.
func (c *Client) Logout(ctx context.Context, token string) error {
	err := c.do(ctx, http.MethodPost, "/logout", token, struct{}{}, nil)
	if err != nil {
		return classify(err, map[int]error{
			http.StatusUnauthorized: domain.ErrUnauthorized,
			http.StatusForbidden:    domain.ErrForbidden,
		})
	}
	return nil
}

// ListUsers fetches the admin listing in server order.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.UserRecord, error) {
	var out usersResponse
	err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &out)
	if err != nil {
		return nil, classify(err, map[int]error{
			http.StatusUnauthorized: domain.ErrUnauthorized,
			http.StatusForbidden:    domain.ErrForbidden,
		})
	}
	return out.Users, nil
}

// DeleteUser removes one user by id.
func (c *Client) DeleteUser(ctx context.Context, id int64, token string) error {
	path := fmt.Sprintf("/admin/users/%d", id)
	err := c.do(ctx, http.MethodDelete, path, token, nil, nil)
	if err != nil {
		return classify(err, map[int]error{
			http.StatusUnauthorized: domain.ErrUnauthorized,
			http.StatusForbidden:    domain.ErrForbidden,
			http.StatusNotFound:     domain.ErrUserNotFound,
		})
	}
	return nil
}

// statusError carries a non-2xx response until the operation classifies it.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.code, e.message)
}

// do performs one round trip, encoding in as JSON when non-nil and decoding
// a 2xx body into out when non-nil. Non-2xx responses come back as
// *statusError; transport failures as ErrNetwork.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(csrfHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &domain.AuthError{Kind: domain.ErrNetwork}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &statusError{code: resp.StatusCode, message: decodeErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// decodeErrorMessage extracts the server's {"error": ...} message, falling
// back to the raw body when it is not the canonical envelope.
func decodeErrorMessage(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))
	var envelope errorResponse
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return strings.TrimSpace(string(body))
}

// classify maps a statusError to the domain taxonomy, keeping the server's
// message verbatim. Unmapped statuses become ErrServer. Errors that never
// reached the server pass through untouched.
func classify(err error, byStatus map[int]error) error {
	se, ok := err.(*statusError)
	if !ok {
		return err
	}
	kind := byStatus[se.code]
	if kind == nil {
		kind = domain.ErrServer
	}
	return &domain.AuthError{Kind: kind, Message: se.message}
}

// classifyRegister handles the register endpoint's overloaded 400: the server
// answers 400 both for malformed input and for a taken username, telling them
// apart only by message.
func classifyRegister(err error) error {
	se, ok := err.(*statusError)
	if !ok {
		return err
	}
	switch se.code {
	case http.StatusBadRequest:
		kind := domain.ErrValidation
		if strings.Contains(strings.ToLower(se.message), "already exists") {
			kind = domain.ErrDuplicateUsername
		}
		return &domain.AuthError{Kind: kind, Message: se.message}
	case http.StatusConflict:
		return &domain.AuthError{Kind: domain.ErrDuplicateUsername, Message: se.message}
	case http.StatusUnauthorized:
		return &domain.AuthError{Kind: domain.ErrUnauthorized, Message: se.message}
	case http.StatusForbidden:
		return &domain.AuthError{Kind: domain.ErrForbidden, Message: se.message}
	default:
		return &domain.AuthError{Kind: domain.ErrServer, Message: se.message}
	}
}

var _ ports.AuthClient = (*Client)(nil)
