package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
)

// fakeCredentialStore is an in-memory CredentialStore with injectable errors.
type fakeCredentialStore struct {
	mu      sync.Mutex
	creds   Credentials
	has     bool
	loadErr error
	saveErr error
}

func (f *fakeCredentialStore) Load() (Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return Credentials{}, f.loadErr
	}
	if !f.has {
		return Credentials{}, ErrNoCredentials
	}
	return f.creds, nil
}

func (f *fakeCredentialStore) Save(creds Credentials) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.creds = creds
	f.has = true
	return nil
}

func (f *fakeCredentialStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds = Credentials{}
	f.has = false
	return nil
}

func newTestController(api APIClient, store CredentialStore) *SessionController {
	return NewSessionController(api, store, NewLogger(io.Discard))
}

func TestInitialize_AlwaysSettles(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeCredentialStore
		want  SessionStatus
	}{
		{
			name:  "empty store",
			store: &fakeCredentialStore{},
			want:  StatusAnonymous,
		},
		{
			name:  "read failure treated as absent",
			store: &fakeCredentialStore{loadErr: errors.New("disk gone")},
			want:  StatusAnonymous,
		},
		{
			name: "persisted credential trusted optimistically",
			store: &fakeCredentialStore{
				has:   true,
				creds: Credentials{Token: "tok", User: User{ID: "u1", FullName: "A", Role: RoleAdmin}},
			},
			want: StatusAuthenticated,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctl := newTestController(NewMockAPI(), tc.store)
			if got := ctl.Status(); got != StatusResolving {
				t.Fatalf("status before Initialize = %q, want %q", got, StatusResolving)
			}
			ctl.Initialize(context.Background())
			if got := ctl.Status(); got != tc.want {
				t.Fatalf("status after Initialize = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	store := &fakeCredentialStore{}
	ctl := newTestController(NewMockAPI(), store)
	ctl.Initialize(context.Background())

	if err := ctl.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login() returned error: %v", err)
	}
	if got := ctl.Status(); got != StatusAuthenticated {
		t.Fatalf("status after login = %q, want %q", got, StatusAuthenticated)
	}
	if ctl.Token() == "" {
		t.Fatal("token should be non-empty after login")
	}
	user, ok := ctl.CurrentUser()
	if !ok || user.Role != RoleAdmin {
		t.Fatalf("CurrentUser() = %+v, %v; want admin identity", user, ok)
	}
	if !store.has {
		t.Fatal("credential should be persisted on login")
	}
}

func TestLogin_InvalidCredentialsLeavesStateUnchanged(t *testing.T) {
	ctl := newTestController(NewMockAPI(), &fakeCredentialStore{})
	ctl.Initialize(context.Background())

	err := ctl.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login() error = %v, want ErrInvalidCredentials", err)
	}
	if got := ctl.Status(); got != StatusAnonymous {
		t.Fatalf("status after failed login = %q, want %q", got, StatusAnonymous)
	}
	if ctl.Token() != "" {
		t.Fatal("token should stay empty after failed login")
	}
}

func TestRegister_PasswordMismatchIssuesNoNetworkCall(t *testing.T) {
	api := NewMockAPI()
	ctl := newTestController(api, &fakeCredentialStore{})
	ctl.Initialize(context.Background())

	err := ctl.Register(context.Background(), RegisterProfile{
		Username:        "new",
		Password:        "a",
		ConfirmPassword: "b",
		Role:            RolePatient,
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Register() error = %v, want ErrPasswordMismatch", err)
	}
	if api.RegisterCalls != 0 {
		t.Fatalf("register issued %d network calls, want 0", api.RegisterCalls)
	}
}

func TestRegister_RoleRequired(t *testing.T) {
	api := NewMockAPI()
	ctl := newTestController(api, &fakeCredentialStore{})
	ctl.Initialize(context.Background())

	err := ctl.Register(context.Background(), RegisterProfile{
		Username:        "new",
		Password:        "a",
		ConfirmPassword: "a",
	})
	if !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("Register() error = %v, want ErrRoleRequired", err)
	}
	if api.RegisterCalls != 0 {
		t.Fatalf("register issued %d network calls, want 0", api.RegisterCalls)
	}
}

func TestRegister_SuccessAuthenticates(t *testing.T) {
	ctl := newTestController(NewMockAPI(), &fakeCredentialStore{})
	ctl.Initialize(context.Background())

	err := ctl.Register(context.Background(), RegisterProfile{
		Username:        "bs.hoa",
		Password:        "secret",
		ConfirmPassword: "secret",
		Role:            RoleDoctor,
		FullName:        "BS. Phạm Thị Hoa",
		Phone:           "0900000000",
		Email:           "hoa@example.com",
	})
	if err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}
	if got := ctl.Status(); got != StatusAuthenticated {
		t.Fatalf("status after register = %q, want %q", got, StatusAuthenticated)
	}
}

func TestRegister_BackendFailureSurfacesMessage(t *testing.T) {
	ctl := newTestController(NewMockAPI(), &fakeCredentialStore{})
	ctl.Initialize(context.Background())

	err := ctl.Register(context.Background(), RegisterProfile{
		Username:        "admin", // already exists in the mock seed
		Password:        "x",
		ConfirmPassword: "x",
		Role:            RoleAdmin,
	})
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("Register() error = %v, want ErrRegistrationFailed", err)
	}
}

func TestLogout_ClearsEverythingAndSurvivesReinitialize(t *testing.T) {
	store := &fakeCredentialStore{}
	ctl := newTestController(NewMockAPI(), store)
	ctl.Initialize(context.Background())
	if err := ctl.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("Login() returned error: %v", err)
	}

	ctl.Logout()
	if got := ctl.Status(); got != StatusAnonymous {
		t.Fatalf("status after logout = %q, want %q", got, StatusAnonymous)
	}
	if _, ok := ctl.CurrentUser(); ok {
		t.Fatal("CurrentUser() should report no identity after logout")
	}

	// A fresh controller over the same store must start anonymous.
	fresh := newTestController(NewMockAPI(), store)
	fresh.Initialize(context.Background())
	if got := fresh.Status(); got != StatusAnonymous {
		t.Fatalf("fresh Initialize after logout = %q, want %q", got, StatusAnonymous)
	}
}

func TestRouteFor(t *testing.T) {
	tests := []struct {
		role Role
		want Route
	}{
		{RolePatient, RoutePatientDashboard},
		{RoleDoctor, RouteDoctorDashboard},
		{RoleAdmin, RouteDashboard},
		{Role("receptionist"), RouteDashboard},
		{Role(""), RouteDashboard},
	}
	for _, tc := range tests {
		if got := RouteFor(User{Role: tc.role}); got != tc.want {
			t.Fatalf("RouteFor(%q) = %q, want %q", tc.role, got, tc.want)
		}
	}
}
