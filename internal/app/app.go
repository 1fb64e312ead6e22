package app

import (
	"time"
)

// Application wires the config, logger, API client, session controller, and
// chat engine together for the TUI.
type Application struct {
	Config  Config
	Logger  *Logger
	Client  APIClient
	Session *SessionController
	Chat    *ChatEngine
}

func NewApplication(cfg Config, mockMode bool) *Application {
	logger := NewLogger(DefaultLogWriter())

	var client APIClient
	if mockMode {
		client = NewMockAPI()
	} else {
		client = NewHTTPClient(cfg.ServerURL, time.Duration(cfg.RequestTimeout)*time.Second)
	}

	store := OpenCredentialStore("")
	session := NewSessionController(client, store, logger)
	chat := NewChatEngine(client, session, logger, time.Duration(cfg.ChatDelayMs)*time.Millisecond)

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Client:  client,
		Session: session,
		Chat:    chat,
	}
}
