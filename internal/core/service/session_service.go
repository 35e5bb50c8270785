package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// registerRedirectDelay is how long the registration view lingers on the
// success message before moving to the login view. Fixed, not configurable.
const registerRedirectDelay = 2 * time.Second

// SessionService implements the authentication flow. It is the only writer
// of the TokenStore: state changes happen synchronously at the end of a
// completed round trip, so an unauthorized response can never leave a stale
// principal visible.
type SessionService struct {
	client   ports.AuthClient
	store    ports.TokenStore
	validate *validator.Validate
	logger   zerolog.Logger
	teardown []func()
}

func NewSessionService(client ports.AuthClient, store ports.TokenStore, logger zerolog.Logger) *SessionService {
	return &SessionService{
		client:   client,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// Mount acquires the anti-forgery token when an unauthenticated view mounts.
// On failure the console stays anonymous and the view renders anyway; the
// server rejects any later submit, so nothing is silently retried here.
func (s *SessionService) Mount(ctx context.Context) error {
	token, err := s.client.FetchToken(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("anti-forgery token fetch failed")
		return err
	}
	s.store.SetToken(token)
	return nil
}

// Login submits credentials and, on success, stores the principal and routes
// to the dashboard for its role. Failures keep the current state; the
// server's message is surfaced verbatim when present.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) ports.Outcome {
	if err := s.validate.Struct(creds); err != nil {
		return ports.Outcome{Message: validationMessage(err), Failed: true}
	}

	token, _ := s.store.Token()
	result, err := s.client.Login(ctx, creds, token)
	if err != nil {
		return s.fail(err, "Login failed")
	}

	if err := s.store.SetPrincipal(result.Principal); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist principal")
	}

	s.logger.Info().
		Str("username", result.Principal.Username).
		Str("role", string(result.Principal.Role)).
		Msg("login succeeded")

	return ports.Outcome{
		Message: result.Message,
		Nav:     &ports.Navigation{Route: domain.DashboardRoute(result.Principal.Role)},
	}
}

// Register submits the sign-up form. The password length check runs before
// any network call; a violation short-circuits with a local message and no
// request is issued. On success the view is sent to login after a fixed
// delay.
func (s *SessionService) Register(ctx context.Context, reg domain.Registration) ports.Outcome {
	if err := s.validate.Struct(reg); err != nil {
		return ports.Outcome{Message: validationMessage(err), Failed: true}
	}

	token, _ := s.store.Token()
	message, err := s.client.Register(ctx, reg, token)
	if err != nil {
		return s.fail(err, "Registration failed")
	}

	s.logger.Info().Str("username", reg.Username).Msg("registration succeeded")

	return ports.Outcome{
		Message: message,
		Nav:     &ports.Navigation{Route: domain.RouteLogin, After: registerRedirectDelay},
	}
}

// Logout tears the session down fail-open: local state is cleared and the
// view sent to login whether or not the server call succeeds, because the
// session is server-authoritative and local state must not contradict the
// user's intent to leave.
func (s *SessionService) Logout(ctx context.Context) ports.Outcome {
	token, _ := s.store.Token()
	if err := s.client.Logout(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("logout request failed; clearing local session anyway")
	}
	s.endSession()
	return ports.Outcome{Nav: &ports.Navigation{Route: domain.RouteLogin}}
}

// OnTeardown registers fn to run whenever the session ends, by logout or by
// a server rejection. Session-scoped caches register here so nothing fetched
// under one principal survives into the next.
func (s *SessionService) OnTeardown(fn func()) {
	s.teardown = append(s.teardown, fn)
}

func (s *SessionService) endSession() {
	s.store.Clear()
	for _, fn := range s.teardown {
		fn()
	}
}

// Principal exposes the current principal to the view layer.
func (s *SessionService) Principal() (*domain.Principal, bool) {
	return s.store.Principal()
}

// Expire applies the unauthorized transition shared by every operation:
// token and principal are erased before the navigation is emitted, so no
// stale identity stays visible after a rejected response.
func (s *SessionService) Expire() ports.Outcome {
	s.endSession()
	s.logger.Info().Msg("session rejected by server; returning to login")
	return ports.Outcome{
		Message: "Session expired. Please log in again.",
		Failed:  true,
		Nav:     &ports.Navigation{Route: domain.RouteLogin},
	}
}

// fail converts an AuthClient error into a user-visible outcome. Unauthorized
// and forbidden responses force the anonymous state regardless of which
// operation they came from; everything else keeps the current state.
func (s *SessionService) fail(err error, generic string) ports.Outcome {
	if domain.SessionExpired(err) {
		return s.Expire()
	}
	msg := domain.ServerMessage(err)
	if msg == "" {
		msg = generic
	}
	return ports.Outcome{Message: msg, Failed: true}
}

// validationMessage renders the first field violation as a human-readable
// message, e.g. "Password must be at least 8 characters".
func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return "Invalid input"
	}
	fe := ve[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}

var _ ports.SessionService = (*SessionService)(nil)
