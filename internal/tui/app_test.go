package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"medhope-cli/internal/app"
)

func newTestApp(t *testing.T) (*app.Application, *app.MockAPI) {
	t.Helper()
	api := app.NewMockAPI()
	logger := app.NewLogger(io.Discard)
	store := app.NewFileCredentialStore(t.TempDir())
	session := app.NewSessionController(api, store, logger)
	chat := app.NewChatEngine(api, session, logger, time.Millisecond)
	return &app.Application{
		Config:  app.DefaultConfig(),
		Logger:  logger,
		Client:  api,
		Session: session,
		Chat:    chat,
	}, api
}

func TestRootModelShowsAuthScreenWhenAnonymous(t *testing.T) {
	application, _ := newTestApp(t)
	m := New(application)

	if !m.resolving {
		t.Fatalf("expected model to start in resolving state")
	}

	m.Update(sessionReadyMsg{})
	if m.resolving {
		t.Fatalf("expected resolving to end after sessionReadyMsg")
	}

	view := m.View()
	if !strings.Contains(view, "Đăng Nhập") {
		t.Fatalf("expected auth screen, got:\n%s", view)
	}
}

func TestRootModelEntersMainScreenWhenAuthenticated(t *testing.T) {
	application, _ := newTestApp(t)
	if err := application.Session.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m := New(application)
	m.Update(sessionReadyMsg{})

	if len(m.tabs) != 3 {
		t.Fatalf("expected 3 tabs for admin, got %d", len(m.tabs))
	}
	view := m.View()
	if !strings.Contains(view, "Tổng quan") {
		t.Fatalf("expected dashboard tab in view, got:\n%s", view)
	}
	if strings.Contains(view, "Đăng Nhập") {
		t.Fatalf("did not expect auth screen after login")
	}
}

func TestTabsForRole(t *testing.T) {
	tests := []struct {
		role app.Role
		want int
	}{
		{app.RoleAdmin, 3},
		{app.RoleDoctor, 3},
		{app.RolePatient, 1},
	}
	for _, tt := range tests {
		if got := len(tabsForRole(tt.role)); got != tt.want {
			t.Errorf("tabsForRole(%s) = %d tabs, want %d", tt.role, got, tt.want)
		}
	}
}

func TestDropSessionReturnsToAuthScreen(t *testing.T) {
	application, _ := newTestApp(t)
	if err := application.Session.Login(context.Background(), "bs.lan", "doctor123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	m := New(application)
	m.Update(sessionReadyMsg{})
	m.dropSession()

	if application.Session.Status() != app.StatusAnonymous {
		t.Fatalf("expected anonymous session after dropSession, got %v", application.Session.Status())
	}
	if !strings.Contains(m.View(), "Đăng Nhập") {
		t.Fatalf("expected auth screen after dropSession")
	}
}
