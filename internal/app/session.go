package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// SessionStatus is the controller's lifecycle state. Resolving only exists
// between process start and the end of Initialize; there is no way back.
type SessionStatus string

const (
	StatusResolving     SessionStatus = "resolving"
	StatusAuthenticated SessionStatus = "authenticated"
	StatusAnonymous     SessionStatus = "anonymous"
)

// Route is a canonical landing screen name.
type Route string

const (
	RouteDashboard        Route = "dashboard"
	RouteDoctorDashboard  Route = "doctor-dashboard"
	RoutePatientDashboard Route = "patient-dashboard"
)

// SessionController owns the current identity and bearer token. All
// mutation flows through its methods; views only read.
type SessionController struct {
	client APIClient
	store  CredentialStore
	logger *Logger

	mu     sync.Mutex
	status SessionStatus
	user   User
	token  string
}

func NewSessionController(client APIClient, store CredentialStore, logger *Logger) *SessionController {
	return &SessionController{
		client: client,
		store:  store,
		logger: logger,
		status: StatusResolving,
	}
}

func (s *SessionController) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// CurrentUser returns the identity; ok is true only while authenticated.
func (s *SessionController) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.status == StatusAuthenticated
}

// Token returns the bearer credential, empty unless authenticated.
func (s *SessionController) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Initialize hydrates a persisted credential, if any. It always settles in
// authenticated or anonymous; a missing, unreadable, or malformed record is
// treated as absent. The stored token is optimistically trusted; the first
// protected call rejects it if it went stale.
func (s *SessionController) Initialize(ctx context.Context) {
	creds, err := s.store.Load()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || creds.Token == "" || creds.User.ID == "" {
		if err != nil {
			s.logger.Info("credential hydrate failed, starting anonymous", map[string]interface{}{"error": err.Error()})
		}
		s.status = StatusAnonymous
		return
	}
	s.user = creds.User
	s.token = creds.Token
	s.status = StatusAuthenticated
}

// Login exchanges credentials for an identity and token. On failure the
// session state is untouched.
func (s *SessionController) Login(ctx context.Context, username, password string) error {
	result, err := s.client.Login(ctx, username, password)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %s", ErrInvalidCredentials, UserMessage(err))
		}
		return err
	}
	s.establish(result)
	return nil
}

// Register validates the profile locally, then delegates to the backend.
// Local failures issue no network call; success behaves exactly like Login.
func (s *SessionController) Register(ctx context.Context, profile RegisterProfile) error {
	if profile.Password != profile.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if profile.Role == "" {
		return ErrRoleRequired
	}
	result, err := s.client.Register(ctx, profile)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%w: %s", ErrRegistrationFailed, UserMessage(err))
		}
		return err
	}
	s.establish(result)
	return nil
}

func (s *SessionController) establish(result LoginResult) {
	s.mu.Lock()
	s.user = result.User
	s.token = result.Token
	s.status = StatusAuthenticated
	s.mu.Unlock()

	if err := s.store.Save(Credentials{Token: result.Token, User: result.User}); err != nil {
		s.logger.Error("failed to persist credential", map[string]interface{}{"error": err.Error()})
	}
}

// Logout clears the in-memory session and the durable store. It cannot fail;
// a store error is logged and the session still ends.
func (s *SessionController) Logout() {
	s.mu.Lock()
	s.user = User{}
	s.token = ""
	s.status = StatusAnonymous
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		s.logger.Error("failed to clear stored credential", map[string]interface{}{"error": err.Error()})
	}
}

// Invalidate drops the session after a collaborator rejected the credential.
func (s *SessionController) Invalidate() {
	s.Logout()
}

// RouteFor maps a role to its canonical landing route. An unrecognized role
// lands on the generic dashboard rather than crashing.
func RouteFor(user User) Route {
	switch user.Role {
	case RolePatient:
		return RoutePatientDashboard
	case RoleDoctor:
		return RouteDoctorDashboard
	case RoleAdmin:
		return RouteDashboard
	default:
		return RouteDashboard
	}
}
