package tui

import (
	"context"
	"strings"
	"testing"

	"medhope-cli/internal/app"
)

func newLoggedInChat(t *testing.T) (*chatView, *app.Application, *app.MockAPI) {
	t.Helper()
	application, api := newTestApp(t)
	if err := application.Session.Login(context.Background(), "bn.minh", "patient123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return newChatView(application), application, api
}

func TestChatToggleOpensSessionWithGreeting(t *testing.T) {
	c, application, api := newLoggedInChat(t)

	if cmd := c.Toggle(); cmd == nil {
		t.Fatalf("first toggle should schedule the open command")
	}
	if !c.visible {
		t.Fatalf("widget should be visible after toggle")
	}

	msg := c.openCmd()().(chatOpenedMsg)
	if msg.err != nil {
		t.Fatalf("open: %v", msg.err)
	}
	c.Update(msg)

	if api.SessionCalls != 1 {
		t.Fatalf("session created %d times, want 1", api.SessionCalls)
	}
	transcript := application.Chat.Transcript()
	if len(transcript) != 1 || transcript[0].Role != app.SpeakerBot {
		t.Fatalf("expected a single greeting message, got %d messages", len(transcript))
	}
	if !strings.Contains(transcript[0].Text, "Lê Quang Minh") {
		t.Fatalf("greeting should address the user by name: %q", transcript[0].Text)
	}
}

func TestChatToggleHideKeepsSession(t *testing.T) {
	c, application, api := newLoggedInChat(t)

	c.Toggle()
	if msg := c.openCmd()().(chatOpenedMsg); msg.err != nil {
		t.Fatalf("open: %v", msg.err)
	}

	c.Toggle()
	if c.visible {
		t.Fatalf("widget should hide on second toggle")
	}
	if application.Chat.State() != app.ChatClosed {
		t.Fatalf("engine should be closed while hidden")
	}

	c.Toggle()
	if msg := c.openCmd()().(chatOpenedMsg); msg.err != nil {
		t.Fatalf("reopen: %v", msg.err)
	}
	if api.SessionCalls != 1 {
		t.Fatalf("reopen must not create a second session, got %d", api.SessionCalls)
	}
}

func TestChatOpenFailureHidesWidget(t *testing.T) {
	c, _, api := newLoggedInChat(t)
	api.CreateSessionErr = app.ErrSessionCreateFailed

	c.Toggle()
	msg := c.openCmd()().(chatOpenedMsg)
	if msg.err == nil {
		t.Fatalf("expected open failure")
	}
	c.Update(msg)

	if c.visible {
		t.Fatalf("widget should hide when the session cannot be created")
	}
	if c.errMsg == "" {
		t.Fatalf("expected an error message for the user")
	}
}
