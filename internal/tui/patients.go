package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbletea"

	"medhope-cli/internal/app"
)

// Patient form field order.
const (
	patFullName = iota
	patDOB
	patPhone
	patAddress
	patAllergies
	patGenderSlot // picker, no textinput
)

var genderOptions = []string{"male", "female", "other"}

// patientsView lists patient records and hosts the create form.
type patientsView struct {
	app      *app.Application
	patients []app.Patient
	loading  bool
	errMsg   string
	notice   string

	formOpen  bool
	inputs    []textinput.Model
	focus     int
	genderIdx int
	saving    bool
	width     int
}

type patientsMsg struct {
	patients []app.Patient
	err      error
}

type patientSavedMsg struct {
	patient app.Patient
	err     error
}

func newPatientsView(application *app.Application) *patientsView {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = 36
		return ti
	}
	return &patientsView{
		app:     application,
		loading: true,
		inputs: []textinput.Model{
			mk("Họ và tên bệnh nhân"),
			mk("Ngày sinh (YYYY-MM-DD)"),
			mk("Số điện thoại"),
			mk("Địa chỉ"),
			mk("Dị ứng, phân cách bằng dấu phẩy"),
		},
	}
}

func (p *patientsView) fetchCmd() tea.Cmd {
	p.loading = true
	p.errMsg = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		patients, err := p.app.Client.ListPatients(ctx, p.app.Session.Token())
		return patientsMsg{patients: patients, err: err}
	}
}

func (p *patientsView) slots() int { return len(p.inputs) + 1 }

func (p *patientsView) setFocus(i int) {
	for idx := range p.inputs {
		if idx == i {
			p.inputs[idx].Focus()
		} else {
			p.inputs[idx].Blur()
		}
	}
	p.focus = i
}

func (p *patientsView) openForm() {
	p.formOpen = true
	p.errMsg = ""
	p.notice = ""
	for i := range p.inputs {
		p.inputs[i].Reset()
	}
	p.genderIdx = 0
	p.setFocus(0)
}

func (p *patientsView) closeForm() {
	p.formOpen = false
	p.saving = false
	for i := range p.inputs {
		p.inputs[i].Blur()
	}
}

func (p *patientsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return nil

	case patientsMsg:
		p.loading = false
		if msg.err != nil {
			p.errMsg = app.UserMessage(msg.err)
			return nil
		}
		p.patients = msg.patients
		return nil

	case patientSavedMsg:
		p.saving = false
		if msg.err != nil {
			p.errMsg = app.UserMessage(msg.err)
			return nil
		}
		p.closeForm()
		p.notice = fmt.Sprintf("Đã thêm bệnh nhân %s", msg.patient.FullName)
		return p.fetchCmd()

	case tea.KeyMsg:
		if !p.formOpen {
			return nil
		}
		if p.saving {
			return nil
		}
		switch msg.String() {
		case "esc":
			p.closeForm()
			return nil
		case "tab", "down":
			p.setFocus((p.focus + 1) % p.slots())
			return nil
		case "shift+tab", "up":
			p.setFocus((p.focus - 1 + p.slots()) % p.slots())
			return nil
		case "left", "right":
			if p.focus == patGenderSlot {
				if msg.String() == "left" {
					p.genderIdx = (p.genderIdx - 1 + len(genderOptions)) % len(genderOptions)
				} else {
					p.genderIdx = (p.genderIdx + 1) % len(genderOptions)
				}
				return nil
			}
		case "enter":
			if p.focus < p.slots()-1 {
				p.setFocus(p.focus + 1)
				return nil
			}
			return p.submit()
		}
		var cmd tea.Cmd
		if p.focus < len(p.inputs) {
			p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
		}
		return cmd
	}
	return nil
}

func (p *patientsView) submit() tea.Cmd {
	fullName := strings.TrimSpace(p.inputs[patFullName].Value())
	dob := strings.TrimSpace(p.inputs[patDOB].Value())
	if fullName == "" || dob == "" {
		p.errMsg = "Vui lòng nhập họ tên và ngày sinh"
		return nil
	}
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		p.errMsg = "Ngày sinh phải theo định dạng YYYY-MM-DD"
		return nil
	}

	patient := app.Patient{
		FullName:  fullName,
		DOB:       dob,
		Gender:    genderOptions[p.genderIdx],
		Phone:     strings.TrimSpace(p.inputs[patPhone].Value()),
		Address:   strings.TrimSpace(p.inputs[patAddress].Value()),
		Allergies: app.SplitAllergies(p.inputs[patAllergies].Value()),
	}

	p.saving = true
	p.errMsg = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		saved, err := p.app.Client.CreatePatient(ctx, p.app.Session.Token(), patient)
		return patientSavedMsg{patient: saved, err: err}
	}
}

func (p *patientsView) View() string {
	if p.formOpen {
		return p.formView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quản Lý Bệnh Nhân"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d bệnh nhân trong hệ thống", len(p.patients))))
	b.WriteString("\n\n")

	if p.notice != "" {
		b.WriteString(successStyle.Render(p.notice))
		b.WriteString("\n\n")
	}
	if p.errMsg != "" {
		b.WriteString(errorStyle.Render(p.errMsg))
		b.WriteString("\n\n")
	}

	if p.loading {
		b.WriteString(loadingStyle.Render("Đang tải danh sách bệnh nhân..."))
		return b.String()
	}
	if len(p.patients) == 0 {
		b.WriteString(subtitleStyle.Render("Chưa có bệnh nhân nào. Nhấn ctrl+n để thêm mới."))
		return b.String()
	}

	for _, patient := range p.patients {
		b.WriteString(fmt.Sprintf("  %s\n", cardValueStyle.Render(patient.FullName)))
		detail := fmt.Sprintf("Sinh: %s | Giới tính: %s", patient.DOB, genderName(patient.Gender))
		if patient.Phone != "" {
			detail += " | SĐT: " + patient.Phone
		}
		if patient.Address != "" {
			detail += " | " + patient.Address
		}
		b.WriteString("    " + subtitleStyle.Render(detail) + "\n")
		if len(patient.Allergies) > 0 {
			b.WriteString("    " + errorStyle.Render("Dị ứng: "+strings.Join(patient.Allergies, ", ")) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (p *patientsView) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Thêm Bệnh Nhân Mới"))
	b.WriteString("\n\n")

	labels := []string{"Họ và tên", "Ngày sinh", "Số điện thoại", "Địa chỉ", "Dị ứng"}
	for i, label := range labels {
		ls := labelStyle
		box := inputStyle
		if p.focus == i {
			ls = focusedLabelStyle
			box = inputFocusedStyle
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n", ls.Render(label), box.Render(p.inputs[i].View())))
	}

	ls := labelStyle
	if p.focus == patGenderSlot {
		ls = focusedLabelStyle
	}
	var opts []string
	for i, g := range genderOptions {
		marker := "○"
		if i == p.genderIdx {
			marker = "●"
		}
		opts = append(opts, fmt.Sprintf("%s %s", marker, genderName(g)))
	}
	b.WriteString(fmt.Sprintf("%s\n  %s\n", ls.Render("Giới tính"), strings.Join(opts, "   ")))

	if p.saving {
		b.WriteString("\n")
		b.WriteString(loadingStyle.Render("Đang lưu..."))
	}
	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(p.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab chuyển ô  |  ←/→ chọn giới tính  |  enter lưu  |  esc hủy"))
	return cardStyle.Render(b.String())
}

func genderName(gender string) string {
	switch gender {
	case "male":
		return "Nam"
	case "female":
		return "Nữ"
	default:
		return "Khác"
	}
}
