package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medhope-cli/internal/app"
)

// chatView is the assistant widget overlaying the main screen, mirroring the
// floating chat window of the web client.
type chatView struct {
	app      *app.Application
	input    textinput.Model
	viewport viewport.Model
	visible  bool
	spinner  int
	errMsg   string
	width    int
	height   int
}

type chatOpenedMsg struct {
	err error
}

// chatUpdateMsg fires whenever the engine changes the transcript or state.
type chatUpdateMsg struct{}

type chatSpinMsg struct{}

func newChatView(application *app.Application) *chatView {
	ti := textinput.New()
	ti.Placeholder = "Nhập câu hỏi của bạn..."
	ti.CharLimit = 500
	ti.Width = 44

	return &chatView{
		app:      application,
		input:    ti,
		viewport: viewport.New(50, 14),
	}
}

// waitForUpdate blocks on the engine's update channel so transcript changes
// made by timers and goroutines reach the event loop.
func (c *chatView) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-c.app.Chat.Updates()
		return chatUpdateMsg{}
	}
}

func (c *chatView) spinCmd() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return chatSpinMsg{}
	})
}

func (c *chatView) openCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return chatOpenedMsg{err: c.app.Chat.Open(ctx)}
	}
}

// Toggle shows or hides the widget. The first show creates the remote
// session; reopening is purely local.
func (c *chatView) Toggle() tea.Cmd {
	if c.visible {
		c.visible = false
		c.input.Blur()
		c.app.Chat.Close()
		return nil
	}
	c.visible = true
	c.errMsg = ""
	c.input.Focus()
	c.refresh()
	if c.app.Chat.State() == app.ChatOpen {
		return textinput.Blink
	}
	return tea.Batch(c.openCmd(), textinput.Blink)
}

func (c *chatView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		w := minInt(60, msg.Width-6)
		if w < 20 {
			w = 20
		}
		c.viewport.Width = w
		c.viewport.Height = maxInt(6, msg.Height-14)
		c.input.Width = w - 6
		c.refresh()
		return nil

	case chatOpenedMsg:
		if msg.err != nil {
			c.errMsg = app.UserMessage(msg.err)
			c.visible = false
		}
		c.refresh()
		return nil

	case chatUpdateMsg:
		c.refresh()
		cmds := []tea.Cmd{c.waitForUpdate()}
		if c.app.Chat.Thinking() {
			cmds = append(cmds, c.spinCmd())
		}
		return tea.Batch(cmds...)

	case chatSpinMsg:
		if c.app.Chat.Thinking() {
			c.spinner++
			return c.spinCmd()
		}
		return nil

	case tea.KeyMsg:
		if !c.visible {
			return nil
		}
		switch msg.String() {
		case "esc":
			c.visible = false
			c.input.Blur()
			c.app.Chat.Close()
			return nil
		case "enter":
			text := c.input.Value()
			if strings.TrimSpace(text) == "" {
				return nil
			}
			c.input.Reset()
			c.app.Chat.Send(text)
			c.refresh()
			return c.spinCmd()
		case "pgup":
			c.viewport.LineUp(3)
			return nil
		case "pgdown":
			c.viewport.LineDown(3)
			return nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return cmd
	}
	return nil
}

// refresh re-renders the transcript into the viewport and pins the bottom.
func (c *chatView) refresh() {
	msgs := c.app.Chat.Transcript()
	var b strings.Builder
	wrap := lipgloss.NewStyle().Width(maxInt(20, c.viewport.Width-2))
	for _, m := range msgs {
		stamp := m.Time.Format("15:04")
		if m.Role == app.SpeakerUser {
			b.WriteString(userMessageStyle.Render(fmt.Sprintf("Bạn • %s", stamp)))
		} else {
			b.WriteString(botMessageStyle.Render(fmt.Sprintf("AI Assistant • %s", stamp)))
		}
		b.WriteString("\n")
		b.WriteString(wrap.Render(m.Text))
		b.WriteString("\n\n")
	}
	c.viewport.SetContent(b.String())
	c.viewport.GotoBottom()
}

func (c *chatView) View() string {
	if !c.visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("AI Assistant"))
	b.WriteString("\n\n")
	b.WriteString(c.viewport.View())
	b.WriteString("\n")

	if c.app.Chat.Thinking() {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		b.WriteString(loadingStyle.Render(fmt.Sprintf("%s Đang trả lời...", frames[c.spinner%len(frames)])))
		b.WriteString("\n")
	}

	b.WriteString(inputFocusedStyle.Render(c.input.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter gửi  |  pgup/pgdn cuộn  |  esc đóng"))

	return chatPanelStyle.Render(b.String())
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
