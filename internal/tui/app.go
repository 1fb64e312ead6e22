package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medhope-cli/internal/app"
)

type tab int

const (
	tabDashboard tab = iota
	tabPatients
	tabAppointments
)

func (t tab) title() string {
	switch t {
	case tabPatients:
		return "Bệnh nhân"
	case tabAppointments:
		return "Lịch hẹn"
	default:
		return "Tổng quan"
	}
}

// Model is the root screen router. It mirrors the web client's route guard:
// while the session is resolving nothing but a loading line renders, an
// anonymous session always lands on the auth screen, and an authenticated one
// lands on its role dashboard.
type Model struct {
	app  *app.Application
	keys keyMap

	auth         *authView
	dashboard    *dashboardView
	patients     *patientsView
	appointments *appointmentsView
	chat         *chatView

	tabs      []tab
	activeTab int

	resolving bool
	spinner   int

	width  int
	height int
}

// sessionReadyMsg fires once stored credentials have been hydrated.
type sessionReadyMsg struct{}

type rootSpinMsg struct{}

// New creates the root model.
func New(application *app.Application) *Model {
	return &Model{
		app:          application,
		keys:         defaultKeyMap(),
		auth:         newAuthView(application),
		dashboard:    newDashboardView(application),
		patients:     newPatientsView(application),
		appointments: newAppointmentsView(application),
		chat:         newChatView(application),
		resolving:    true,
		width:        80,
		height:       24,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.resolveCmd(), m.rootSpinCmd(), m.chat.waitForUpdate(), textinput.Blink)
}

func (m *Model) resolveCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		m.app.Session.Initialize(ctx)
		return sessionReadyMsg{}
	}
}

func (m *Model) rootSpinCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return rootSpinMsg{}
	})
}

// tabsForRole returns the views a role may open. Patients only ever see
// their own dashboard; staff get the management tabs.
func tabsForRole(role app.Role) []tab {
	if role == app.RolePatient {
		return []tab{tabDashboard}
	}
	return []tab{tabDashboard, tabPatients, tabAppointments}
}

// enterMainScreen switches to the authenticated layout and kicks off the
// initial data fetches for the role's tabs.
func (m *Model) enterMainScreen() tea.Cmd {
	user, ok := m.app.Session.CurrentUser()
	if !ok {
		return nil
	}
	m.tabs = tabsForRole(user.Role)
	m.activeTab = 0
	m.app.Logger.Info("session established", map[string]interface{}{
		"role":  string(user.Role),
		"route": string(app.RouteFor(user)),
	})

	cmds := []tea.Cmd{m.dashboard.fetchCmd()}
	for _, t := range m.tabs {
		switch t {
		case tabPatients:
			cmds = append(cmds, m.patients.fetchCmd())
		case tabAppointments:
			cmds = append(cmds, m.appointments.fetchCmd())
		}
	}
	return tea.Batch(cmds...)
}

// dropSession clears local state after a logout or a rejected token and
// returns the user to the auth screen.
func (m *Model) dropSession() {
	m.app.Session.Logout()
	m.app.Chat.Reset()
	if m.chat.visible {
		m.chat.Toggle()
	}
	m.auth = newAuthView(m.app)
	m.tabs = nil
	m.activeTab = 0
}

// formActive reports whether the current tab has a form capturing keys, in
// which case the root model must not steal tab/enter/esc.
func (m *Model) formActive() bool {
	if len(m.tabs) == 0 {
		return false
	}
	switch m.tabs[m.activeTab] {
	case tabPatients:
		return m.patients.formOpen
	case tabAppointments:
		return m.appointments.formOpen
	}
	return false
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.auth.Update(msg)
		m.dashboard.Update(msg)
		m.patients.Update(msg)
		m.appointments.Update(msg)
		m.chat.Update(msg)
		return m, nil

	case sessionReadyMsg:
		m.resolving = false
		if m.app.Session.Status() == app.StatusAuthenticated {
			return m, m.enterMainScreen()
		}
		return m, nil

	case rootSpinMsg:
		if m.resolving {
			m.spinner++
			return m, m.rootSpinCmd()
		}
		return m, nil

	case statsMsg:
		if app.IsUnauthorized(msg.err) {
			m.dropSession()
			return m, nil
		}
		return m, m.dashboard.Update(msg)

	case patientsMsg, patientSavedMsg:
		if err := dataErr(msg); app.IsUnauthorized(err) {
			m.dropSession()
			return m, nil
		}
		return m, m.patients.Update(msg)

	case appointmentsMsg, apptChoicesMsg, appointmentSavedMsg:
		if err := dataErr(msg); app.IsUnauthorized(err) {
			m.dropSession()
			return m, nil
		}
		return m, m.appointments.Update(msg)

	case chatOpenedMsg, chatUpdateMsg, chatSpinMsg:
		return m, m.chat.Update(msg)

	case authResultMsg:
		cmd, authenticated := m.auth.Update(msg)
		if authenticated {
			return m, m.enterMainScreen()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.resolving {
		return m, nil
	}

	if m.app.Session.Status() != app.StatusAuthenticated {
		cmd, authenticated := m.auth.Update(msg)
		if authenticated {
			return m, m.enterMainScreen()
		}
		return m, cmd
	}

	// The chat overlay owns the keyboard while visible, except the
	// global toggle and quit.
	if m.chat.visible && !key.Matches(msg, m.keys.Chat) {
		return m, m.chat.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Chat):
		return m, m.chat.Toggle()

	case key.Matches(msg, m.keys.Logout):
		m.dropSession()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshActive()

	case key.Matches(msg, m.keys.NextTab) && !m.formActive():
		if len(m.tabs) > 1 {
			m.activeTab = (m.activeTab + 1) % len(m.tabs)
		}
		return m, nil

	case key.Matches(msg, m.keys.New) && !m.formActive():
		switch m.tabs[m.activeTab] {
		case tabPatients:
			m.patients.openForm()
			return m, textinput.Blink
		case tabAppointments:
			return m, tea.Batch(m.appointments.openForm(), textinput.Blink)
		}
		return m, nil
	}

	switch m.tabs[m.activeTab] {
	case tabPatients:
		return m, m.patients.Update(msg)
	case tabAppointments:
		return m, m.appointments.Update(msg)
	default:
		return m, m.dashboard.Update(msg)
	}
}

func (m *Model) refreshActive() tea.Cmd {
	switch m.tabs[m.activeTab] {
	case tabPatients:
		return m.patients.fetchCmd()
	case tabAppointments:
		return m.appointments.fetchCmd()
	default:
		return m.dashboard.fetchCmd()
	}
}

func (m *Model) View() string {
	if m.resolving {
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		line := loadingStyle.Render(fmt.Sprintf("%s Đang khôi phục phiên đăng nhập...", frames[m.spinner%len(frames)]))
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, line)
	}

	if m.app.Session.Status() != app.StatusAuthenticated {
		return m.auth.View()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	var body string
	switch m.tabs[m.activeTab] {
	case tabPatients:
		body = m.patients.View()
	case tabAppointments:
		body = m.appointments.View()
	default:
		body = m.dashboard.View()
	}

	if m.chat.visible {
		panel := m.chat.View()
		gap := m.width - lipgloss.Width(panel) - 2
		if gap < 0 {
			gap = 0
		}
		body = lipgloss.NewStyle().MarginLeft(gap).Render(panel)
	}
	b.WriteString(body)
	b.WriteString("\n")

	if m.chat.errMsg != "" {
		b.WriteString(errorStyle.Render(m.chat.errMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderHeader() string {
	user, _ := m.app.Session.CurrentUser()
	left := headerBadgeStyle.Render("🏥 MedicalHope")
	right := headerStyle.Render(fmt.Sprintf("%s (%s)", user.FullName, roleName(user.Role)))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) renderTabs() string {
	if len(m.tabs) <= 1 {
		return ""
	}
	parts := make([]string, 0, len(m.tabs))
	for i, t := range m.tabs {
		style := tabStyle
		if i == m.activeTab {
			style = tabActiveStyle
		}
		parts = append(parts, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHelp() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return helpStyle.Render(strings.Join(parts, "  |  "))
}

// dataErr pulls the error out of any of the fetch result messages.
func dataErr(msg tea.Msg) error {
	switch msg := msg.(type) {
	case patientsMsg:
		return msg.err
	case patientSavedMsg:
		return msg.err
	case appointmentsMsg:
		return msg.err
	case apptChoicesMsg:
		return msg.err
	case appointmentSavedMsg:
		return msg.err
	}
	return nil
}
