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

// Appointment form field order.
const (
	apptDate = iota
	apptTime
	apptNotes
	apptPatientSlot // picker
	apptDoctorSlot  // picker
)

// appointmentsView lists appointments and hosts the booking form. The form
// needs the patient and doctor lists, fetched lazily the first time it opens.
type appointmentsView struct {
	app          *app.Application
	appointments []app.Appointment
	patients     []app.Patient
	doctors      []app.Doctor
	loading      bool
	errMsg       string
	notice       string

	formOpen   bool
	formLoaded bool
	inputs     []textinput.Model
	focus      int
	patientIdx int
	doctorIdx  int
	saving     bool
	width      int
}

type appointmentsMsg struct {
	appointments []app.Appointment
	err          error
}

type apptChoicesMsg struct {
	patients []app.Patient
	doctors  []app.Doctor
	err      error
}

type appointmentSavedMsg struct {
	appt app.Appointment
	err  error
}

func newAppointmentsView(application *app.Application) *appointmentsView {
	mk := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = 36
		return ti
	}
	return &appointmentsView{
		app:     application,
		loading: true,
		inputs: []textinput.Model{
			mk("Ngày hẹn (YYYY-MM-DD)"),
			mk("Giờ hẹn (HH:MM)"),
			mk("Ghi chú"),
		},
	}
}

func (v *appointmentsView) fetchCmd() tea.Cmd {
	v.loading = true
	v.errMsg = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		appts, err := v.app.Client.ListAppointments(ctx, v.app.Session.Token())
		return appointmentsMsg{appointments: appts, err: err}
	}
}

func (v *appointmentsView) choicesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		token := v.app.Session.Token()
		patients, err := v.app.Client.ListPatients(ctx, token)
		if err != nil {
			return apptChoicesMsg{err: err}
		}
		doctors, err := v.app.Client.ListDoctors(ctx, token)
		if err != nil {
			return apptChoicesMsg{err: err}
		}
		return apptChoicesMsg{patients: patients, doctors: doctors}
	}
}

func (v *appointmentsView) slots() int { return len(v.inputs) + 2 }

func (v *appointmentsView) setFocus(i int) {
	for idx := range v.inputs {
		if idx == i {
			v.inputs[idx].Focus()
		} else {
			v.inputs[idx].Blur()
		}
	}
	v.focus = i
}

func (v *appointmentsView) openForm() tea.Cmd {
	v.formOpen = true
	v.errMsg = ""
	v.notice = ""
	for i := range v.inputs {
		v.inputs[i].Reset()
	}
	v.patientIdx = 0
	v.doctorIdx = 0
	v.setFocus(0)
	if v.formLoaded {
		return nil
	}
	return v.choicesCmd()
}

func (v *appointmentsView) closeForm() {
	v.formOpen = false
	v.saving = false
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
}

func (v *appointmentsView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return nil

	case appointmentsMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = app.UserMessage(msg.err)
			return nil
		}
		v.appointments = msg.appointments
		return nil

	case apptChoicesMsg:
		if msg.err != nil {
			v.errMsg = app.UserMessage(msg.err)
			v.closeForm()
			return nil
		}
		v.patients = msg.patients
		v.doctors = msg.doctors
		v.formLoaded = true
		return nil

	case appointmentSavedMsg:
		v.saving = false
		if msg.err != nil {
			v.errMsg = app.UserMessage(msg.err)
			return nil
		}
		v.closeForm()
		v.notice = fmt.Sprintf("Đã đặt lịch hẹn ngày %s", msg.appt.Date.Format("02/01/2006 15:04"))
		return v.fetchCmd()

	case tea.KeyMsg:
		if !v.formOpen || v.saving {
			return nil
		}
		switch msg.String() {
		case "esc":
			v.closeForm()
			return nil
		case "tab", "down":
			v.setFocus((v.focus + 1) % v.slots())
			return nil
		case "shift+tab", "up":
			v.setFocus((v.focus - 1 + v.slots()) % v.slots())
			return nil
		case "left", "right":
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			switch v.focus {
			case apptPatientSlot:
				if n := len(v.patients); n > 0 {
					v.patientIdx = (v.patientIdx + delta + n) % n
				}
				return nil
			case apptDoctorSlot:
				if n := len(v.doctors); n > 0 {
					v.doctorIdx = (v.doctorIdx + delta + n) % n
				}
				return nil
			}
		case "enter":
			if v.focus < v.slots()-1 {
				v.setFocus(v.focus + 1)
				return nil
			}
			return v.submit()
		}
		var cmd tea.Cmd
		if v.focus < len(v.inputs) {
			v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
		}
		return cmd
	}
	return nil
}

func (v *appointmentsView) submit() tea.Cmd {
	if len(v.patients) == 0 || len(v.doctors) == 0 {
		v.errMsg = "Chưa có bệnh nhân hoặc bác sĩ để đặt lịch"
		return nil
	}

	day := strings.TrimSpace(v.inputs[apptDate].Value())
	clock := strings.TrimSpace(v.inputs[apptTime].Value())
	when, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, time.Local)
	if err != nil {
		v.errMsg = "Ngày giờ không hợp lệ. Dùng YYYY-MM-DD và HH:MM."
		return nil
	}

	req := app.AppointmentRequest{
		PatientID: v.patients[v.patientIdx].ID,
		DoctorID:  v.doctors[v.doctorIdx].ID,
		Date:      when,
		Notes:     strings.TrimSpace(v.inputs[apptNotes].Value()),
	}

	v.saving = true
	v.errMsg = ""
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		saved, err := v.app.Client.CreateAppointment(ctx, v.app.Session.Token(), req)
		return appointmentSavedMsg{appt: saved, err: err}
	}
}

func (v *appointmentsView) View() string {
	if v.formOpen {
		return v.formView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quản Lý Lịch Hẹn"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d lịch hẹn", len(v.appointments))))
	b.WriteString("\n\n")

	if v.notice != "" {
		b.WriteString(successStyle.Render(v.notice))
		b.WriteString("\n\n")
	}
	if v.errMsg != "" {
		b.WriteString(errorStyle.Render(v.errMsg))
		b.WriteString("\n\n")
	}

	if v.loading {
		b.WriteString(loadingStyle.Render("Đang tải lịch hẹn..."))
		return b.String()
	}
	if len(v.appointments) == 0 {
		b.WriteString(subtitleStyle.Render("Chưa có lịch hẹn nào. Nhấn ctrl+n để đặt lịch."))
		return b.String()
	}

	for _, appt := range v.appointments {
		b.WriteString(renderAppointmentRow(appt))
		b.WriteString("\n")
		if appt.Notes != "" {
			b.WriteString("    " + subtitleStyle.Render("Ghi chú: "+appt.Notes) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (v *appointmentsView) formView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Đặt Lịch Hẹn Mới"))
	b.WriteString("\n\n")

	if !v.formLoaded {
		b.WriteString(loadingStyle.Render("Đang tải danh sách bệnh nhân và bác sĩ..."))
		return cardStyle.Render(b.String())
	}

	labels := []string{"Ngày hẹn", "Giờ hẹn", "Ghi chú"}
	for i, label := range labels {
		ls := labelStyle
		box := inputStyle
		if v.focus == i {
			ls = focusedLabelStyle
			box = inputFocusedStyle
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n", ls.Render(label), box.Render(v.inputs[i].View())))
	}

	b.WriteString(v.renderPicker("Bệnh nhân", patientNames(v.patients), v.patientIdx, v.focus == apptPatientSlot))
	b.WriteString(v.renderPicker("Bác sĩ", doctorNames(v.doctors), v.doctorIdx, v.focus == apptDoctorSlot))

	if v.saving {
		b.WriteString("\n")
		b.WriteString(loadingStyle.Render("Đang đặt lịch..."))
	}
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(v.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("tab chuyển ô  |  ←/→ chọn  |  enter đặt lịch  |  esc hủy"))
	return cardStyle.Render(b.String())
}

// renderPicker shows the current choice with position, arrow keys cycle.
func (v *appointmentsView) renderPicker(label string, names []string, idx int, focused bool) string {
	ls := labelStyle
	if focused {
		ls = focusedLabelStyle
	}
	current := "(trống)"
	if len(names) > 0 {
		current = fmt.Sprintf("◂ %s ▸  (%d/%d)", names[idx], idx+1, len(names))
	}
	return fmt.Sprintf("%s\n  %s\n", ls.Render(label), current)
}

func patientNames(patients []app.Patient) []string {
	names := make([]string, len(patients))
	for i, p := range patients {
		names[i] = p.FullName
	}
	return names
}

func doctorNames(doctors []app.Doctor) []string {
	names := make([]string, len(doctors))
	for i, d := range doctors {
		names[i] = d.FullName
	}
	return names
}
