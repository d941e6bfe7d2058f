package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-chat-client/internal/adapter"
	"github.com/MKhiriev/go-chat-client/internal/logger"
	"github.com/MKhiriev/go-chat-client/internal/store"
	"github.com/MKhiriev/go-chat-client/models"
)

type sessionService struct {
	credentials store.CredentialRepository
	adapter     adapter.ServerAdapter
	logger      *logger.Logger

	mu      sync.RWMutex
	state   models.SessionState
	session models.Session

	observers []SessionObserver
}

func NewSessionService(credentials store.CredentialRepository, serverAdapter adapter.ServerAdapter, logger *logger.Logger) *sessionService {
	return &sessionService{
		credentials: credentials,
		adapter:     serverAdapter,
		logger:      logger,
		state:       models.SessionAnonymous,
	}
}

// Subscribe implements [SessionService]. Observers are appended during
// wiring only; no lock is needed because subscription precedes use.
func (s *sessionService) Subscribe(obs SessionObserver) {
	s.observers = append(s.observers, obs)
}

func (s *sessionService) State() models.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *sessionService) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != models.SessionAuthenticated {
		return models.User{}, false
	}
	return s.session.User, true
}

// Bootstrap implements [SessionService]. A missing token is the normal
// first-run path and is not an error. A present token that the backend
// rejects (stale, revoked) is deleted so the next start goes straight to
// anonymous; only a failure to read the store itself is reported.
func (s *sessionService) Bootstrap(ctx context.Context) error {
	token, err := s.credentials.Token(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSettingNotFound) {
			s.logger.Debug().Msg("no stored credential, staying anonymous")
			return nil
		}
		return fmt.Errorf("read stored credential: %w", err)
	}

	s.transition(ctx, models.SessionAuthenticating, models.Session{})
	s.adapter.SetToken(token)

	user, err := s.adapter.GetUserData(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stored credential rejected, clearing it")
		if delErr := s.credentials.DeleteToken(ctx); delErr != nil {
			s.logger.Err(delErr).Msg("failed to delete rejected credential")
		}
		s.adapter.SetToken("")
		s.transition(ctx, models.SessionAnonymous, models.Session{})
		return nil
	}

	s.transition(ctx, models.SessionAuthenticated, models.Session{User: user, Token: token})
	s.logger.Info().Str("user", user.Email).Msg("session restored from stored credential")
	return nil
}

// Login implements [SessionService].
func (s *sessionService) Login(ctx context.Context, creds models.Credentials) error {
	s.transition(ctx, models.SessionAuthenticating, models.Session{})

	user, err := s.adapter.Login(ctx, creds)
	if err != nil {
		s.abortAuth(ctx)
		return fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	return s.establishSession(ctx, user)
}

// Register implements [SessionService].
func (s *sessionService) Register(ctx context.Context, data models.RegistrationData) error {
	s.transition(ctx, models.SessionAuthenticating, models.Session{})

	user, err := s.adapter.Register(ctx, data)
	if err != nil {
		s.abortAuth(ctx)
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	return s.establishSession(ctx, user)
}

// establishSession persists the freshly issued token and only then moves to
// the authenticated state. Observers (and through them every authenticated
// request) therefore never run ahead of the durable credential.
func (s *sessionService) establishSession(ctx context.Context, user models.User) error {
	token := s.adapter.Token()

	if err := s.credentials.SaveToken(ctx, token); err != nil {
		s.adapter.SetToken("")
		s.abortAuth(ctx)
		return fmt.Errorf("%w: %w", ErrCredentialNotPersisted, err)
	}

	s.transition(ctx, models.SessionAuthenticated, models.Session{User: user, Token: token})
	s.logger.Info().Str("user", user.Email).Msg("session established")
	return nil
}

func (s *sessionService) abortAuth(ctx context.Context) {
	s.transition(ctx, models.SessionAnonymous, models.Session{})
}

// Logout implements [SessionService]. Deleting the stored token is
// best-effort: even if the store write fails the in-memory session is gone
// and observers reset dependent state.
func (s *sessionService) Logout() {
	ctx := context.Background()

	if err := s.credentials.DeleteToken(ctx); err != nil {
		s.logger.Err(err).Msg("failed to delete stored credential on logout")
	}
	s.adapter.SetToken("")
	s.transition(ctx, models.SessionAnonymous, models.Session{})
	s.logger.Info().Msg("logged out")
}

// transition swaps the session state and notifies observers outside the
// lock: observer callbacks may re-enter this service.
func (s *sessionService) transition(ctx context.Context, state models.SessionState, session models.Session) {
	s.mu.Lock()
	changed := s.state != state
	s.state = state
	s.session = session
	s.mu.Unlock()

	if !changed {
		return
	}
	for _, obs := range s.observers {
		obs(ctx, state)
	}
}
