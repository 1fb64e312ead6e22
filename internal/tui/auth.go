package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medhope-cli/internal/app"
)

type authMode int

const (
	authLogin authMode = iota
	authRegister
)

// Field order in register mode.
const (
	regUsername = iota
	regFullName
	regPhone
	regEmail
	regPassword
	regConfirm
	regRoleSlot // virtual slot, no textinput
)

var registerRoles = []app.Role{app.RolePatient, app.RoleDoctor, app.RoleAdmin}

// authView is the combined login/registration screen shown in place of any
// protected view while the session is anonymous.
type authView struct {
	app   *app.Application
	mode  authMode
	login []textinput.Model
	reg   []textinput.Model

	focus   int
	roleIdx int
	busy    bool
	errMsg  string
	width   int
	height  int
}

type authResultMsg struct {
	err error
}

func newAuthView(application *app.Application) *authView {
	mk := func(placeholder string, secret bool) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 120
		ti.Width = 36
		if secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		return ti
	}

	login := []textinput.Model{
		mk("Nhập tên đăng nhập", false),
		mk("Nhập mật khẩu", true),
	}
	login[0].Focus()

	reg := []textinput.Model{
		mk("Tên đăng nhập", false),
		mk("Họ và tên đầy đủ", false),
		mk("Số điện thoại", false),
		mk("Email", false),
		mk("Mật khẩu", true),
		mk("Xác nhận mật khẩu", true),
	}

	return &authView{
		app:   application,
		mode:  authLogin,
		login: login,
		reg:   reg,
	}
}

func (a *authView) fields() []textinput.Model {
	if a.mode == authLogin {
		return a.login
	}
	return a.reg
}

// slots is the number of focusable positions, including the register
// role selector which has no textinput behind it.
func (a *authView) slots() int {
	if a.mode == authLogin {
		return len(a.login)
	}
	return len(a.reg) + 1
}

func (a *authView) setFocus(i int) {
	fields := a.fields()
	for idx := range fields {
		if idx == i {
			fields[idx].Focus()
		} else {
			fields[idx].Blur()
		}
	}
	a.focus = i
}

func (a *authView) toggleMode() {
	if a.mode == authLogin {
		a.mode = authRegister
	} else {
		a.mode = authLogin
	}
	a.errMsg = ""
	a.setFocus(0)
}

func (a *authView) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return nil, false

	case authResultMsg:
		a.busy = false
		if msg.err != nil {
			a.errMsg = app.UserMessage(msg.err)
			return nil, false
		}
		a.errMsg = ""
		return nil, true

	case tea.KeyMsg:
		if a.busy {
			return nil, false
		}
		switch msg.String() {
		case "ctrl+t":
			a.toggleMode()
			return nil, false

		case "tab", "down":
			a.setFocus((a.focus + 1) % a.slots())
			return nil, false

		case "shift+tab", "up":
			a.setFocus((a.focus - 1 + a.slots()) % a.slots())
			return nil, false

		case "left", "right":
			if a.mode == authRegister && a.focus == regRoleSlot {
				if msg.String() == "left" {
					a.roleIdx = (a.roleIdx - 1 + len(registerRoles)) % len(registerRoles)
				} else {
					a.roleIdx = (a.roleIdx + 1) % len(registerRoles)
				}
				return nil, false
			}

		case "enter":
			if a.focus < a.slots()-1 {
				a.setFocus(a.focus + 1)
				return nil, false
			}
			return a.submit(), false
		}
	}

	fields := a.fields()
	if a.focus < len(fields) {
		var cmd tea.Cmd
		fields[a.focus], cmd = fields[a.focus].Update(msg)
		return cmd, false
	}
	return nil, false
}

func (a *authView) submit() tea.Cmd {
	a.busy = true
	a.errMsg = ""

	if a.mode == authLogin {
		username := strings.TrimSpace(a.login[0].Value())
		password := a.login[1].Value()
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return authResultMsg{err: a.app.Session.Login(ctx, username, password)}
		}
	}

	profile := app.RegisterProfile{
		Username:        strings.TrimSpace(a.reg[regUsername].Value()),
		FullName:        strings.TrimSpace(a.reg[regFullName].Value()),
		Phone:           strings.TrimSpace(a.reg[regPhone].Value()),
		Email:           strings.TrimSpace(a.reg[regEmail].Value()),
		Password:        a.reg[regPassword].Value(),
		ConfirmPassword: a.reg[regConfirm].Value(),
		Role:            registerRoles[a.roleIdx],
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return authResultMsg{err: a.app.Session.Register(ctx, profile)}
	}
}

func (a *authView) View() string {
	var b strings.Builder

	if a.mode == authLogin {
		b.WriteString(titleStyle.Render("Đăng Nhập"))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Truy cập vào hệ thống quản lý bệnh nhân MedicalHope"))
		b.WriteString("\n\n")
		b.WriteString(a.renderField("Tên đăng nhập", a.login[0], a.focus == 0))
		b.WriteString(a.renderField("Mật khẩu", a.login[1], a.focus == 1))
	} else {
		b.WriteString(titleStyle.Render("Đăng Ký"))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render("Tạo tài khoản mới cho hệ thống MedicalHope"))
		b.WriteString("\n\n")
		labels := []string{"Tên đăng nhập", "Họ và tên", "Số điện thoại", "Email", "Mật khẩu", "Xác nhận mật khẩu"}
		for i, label := range labels {
			b.WriteString(a.renderField(label, a.reg[i], a.focus == i))
		}
		b.WriteString(a.renderRolePicker())
	}

	if a.busy {
		b.WriteString("\n")
		if a.mode == authLogin {
			b.WriteString(loadingStyle.Render("Đang đăng nhập..."))
		} else {
			b.WriteString(loadingStyle.Render("Đang đăng ký..."))
		}
	}
	if a.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(a.errMsg))
	}

	b.WriteString("\n\n")
	if a.mode == authLogin {
		b.WriteString(helpStyle.Render("ctrl+t đăng ký  |  tab chuyển ô  |  enter xác nhận  |  ctrl+c thoát"))
	} else {
		b.WriteString(helpStyle.Render("ctrl+t đăng nhập  |  ←/→ chọn vai trò  |  enter xác nhận  |  ctrl+c thoát"))
	}

	card := cardStyle.Render(b.String())
	if a.width == 0 {
		return card
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a *authView) renderField(label string, ti textinput.Model, focused bool) string {
	ls := labelStyle
	box := inputStyle
	if focused {
		ls = focusedLabelStyle
		box = inputFocusedStyle
	}
	return fmt.Sprintf("%s\n%s\n", ls.Render(label), box.Render(ti.View()))
}

func (a *authView) renderRolePicker() string {
	ls := labelStyle
	if a.focus == regRoleSlot {
		ls = focusedLabelStyle
	}
	var opts []string
	for i, role := range registerRoles {
		marker := "○"
		if i == a.roleIdx {
			marker = "●"
		}
		opts = append(opts, fmt.Sprintf("%s %s", marker, roleName(role)))
	}
	return fmt.Sprintf("%s\n  %s\n", ls.Render("Vai trò"), strings.Join(opts, "   "))
}

func roleName(role app.Role) string {
	switch role {
	case app.RoleAdmin:
		return "Quản trị viên"
	case app.RoleDoctor:
		return "Bác sĩ"
	case app.RolePatient:
		return "Bệnh nhân"
	default:
		return string(role)
	}
}
