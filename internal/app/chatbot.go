package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ChatState is the widget lifecycle per process.
type ChatState string

const (
	ChatClosed  ChatState = "closed"
	ChatOpening ChatState = "opening"
	ChatOpen    ChatState = "open"
)

const persistTimeout = 10 * time.Second

// ChatEngine owns the chatbot transcript and the canned-reply flow. The
// transcript is append-only; the visible conversation never depends on the
// backend accepting a message.
type ChatEngine struct {
	client  APIClient
	session *SessionController
	logger  *Logger
	delay   time.Duration

	mu         sync.Mutex
	state      ChatState
	sessionID  string
	transcript []ChatMessage
	thinking   bool

	updates chan struct{}
}

func NewChatEngine(client APIClient, session *SessionController, logger *Logger, delay time.Duration) *ChatEngine {
	if delay < 0 {
		delay = 0
	}
	return &ChatEngine{
		client:  client,
		session: session,
		logger:  logger,
		delay:   delay,
		state:   ChatClosed,
		updates: make(chan struct{}, 1),
	}
}

func (e *ChatEngine) State() ChatState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Thinking reports whether an assistant reply is pending.
func (e *ChatEngine) Thinking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.thinking
}

// Transcript returns a copy of the messages in insertion order.
func (e *ChatEngine) Transcript() []ChatMessage {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ChatMessage, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// Updates signals the UI that the transcript or state changed.
func (e *ChatEngine) Updates() <-chan struct{} {
	return e.updates
}

// Open shows the widget. The first open creates the remote session and
// appends the greeting; reopening with an existing session is local-only,
// with no network call and no second greeting. On a create failure the
// widget stays closed so the user can retry.
func (e *ChatEngine) Open(ctx context.Context) error {
	e.mu.Lock()
	if e.state == ChatOpen {
		e.mu.Unlock()
		return nil
	}
	if e.sessionID != "" {
		e.state = ChatOpen
		e.mu.Unlock()
		e.notify()
		return nil
	}
	e.state = ChatOpening
	e.mu.Unlock()

	info, err := e.client.CreateChatSession(ctx, e.session.Token())
	if err != nil {
		e.logger.Error("chat session create failed", map[string]interface{}{"error": err.Error()})
		e.mu.Lock()
		e.state = ChatClosed
		e.mu.Unlock()
		e.notify()
		return fmt.Errorf("%w: %s", ErrSessionCreateFailed, UserMessage(err))
	}

	user, _ := e.session.CurrentUser()
	greeting := ChatMessage{
		ID:   uuid.NewString(),
		Role: SpeakerBot,
		Text: Greeting(user.FullName),
		Time: time.Now(),
	}

	e.mu.Lock()
	e.sessionID = info.ID
	e.transcript = append(e.transcript, greeting)
	e.state = ChatOpen
	e.mu.Unlock()
	e.notify()
	return nil
}

// Close hides the widget. The session and transcript survive for reopening.
func (e *ChatEngine) Close() {
	e.mu.Lock()
	if e.state == ChatOpen {
		e.state = ChatClosed
	}
	e.mu.Unlock()
	e.notify()
}

// Reset discards the session and transcript entirely. Used on logout so the
// next user starts a fresh chat.
func (e *ChatEngine) Reset() {
	e.mu.Lock()
	e.state = ChatClosed
	e.sessionID = ""
	e.transcript = nil
	e.thinking = false
	e.mu.Unlock()
	e.notify()
}

// Send appends the user message synchronously, persists it best-effort, and
// schedules the canned reply after the configured delay. Blank input or a
// missing session is a no-op.
func (e *ChatEngine) Send(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	userMsg := ChatMessage{
		ID:   uuid.NewString(),
		Role: SpeakerUser,
		Text: text,
		Time: time.Now(),
	}

	e.mu.Lock()
	if e.sessionID == "" {
		e.mu.Unlock()
		return
	}
	sessionID := e.sessionID
	e.transcript = append(e.transcript, userMsg)
	e.thinking = true
	e.mu.Unlock()
	e.notify()

	go e.persist(sessionID, userMsg)

	time.AfterFunc(e.delay, func() {
		botMsg := ChatMessage{
			ID:   uuid.NewString(),
			Role: SpeakerBot,
			Text: Respond(text),
			Time: time.Now(),
		}
		e.mu.Lock()
		e.transcript = append(e.transcript, botMsg)
		e.thinking = false
		e.mu.Unlock()
		e.notify()

		go e.persist(sessionID, botMsg)
	})
}

// persist is fire-and-forget: a failure is logged and the transcript is
// never rolled back.
func (e *ChatEngine) persist(sessionID string, msg ChatMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := e.client.AppendChatMessage(ctx, e.session.Token(), sessionID, msg); err != nil {
		e.logger.Error("chat message persist failed", map[string]interface{}{
			"session": sessionID,
			"role":    msg.Role,
			"error":   err.Error(),
		})
	}
}

func (e *ChatEngine) notify() {
	select {
	case e.updates <- struct{}{}:
	default:
	}
}
