package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"medhope-cli/internal/app"
)

// dashboardView renders the role-shaped landing screen. A stats fetch
// failure degrades to an empty dashboard; it never takes the page down.
type dashboardView struct {
	app     *app.Application
	stats   app.DashboardStats
	loading bool
	failed  bool
	width   int
}

type statsMsg struct {
	stats app.DashboardStats
	err   error
}

func newDashboardView(application *app.Application) *dashboardView {
	return &dashboardView{app: application, loading: true}
}

func (d *dashboardView) fetchCmd() tea.Cmd {
	d.loading = true
	d.failed = false
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		stats, err := d.app.Client.DashboardStats(ctx, d.app.Session.Token())
		return statsMsg{stats: stats, err: err}
	}
}

func (d *dashboardView) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
	case statsMsg:
		d.loading = false
		if msg.err != nil {
			d.failed = true
			d.app.Logger.Error("dashboard stats fetch failed", map[string]interface{}{"error": msg.err.Error()})
			return nil
		}
		d.stats = msg.stats
	}
	return nil
}

func (d *dashboardView) View() string {
	user, ok := d.app.Session.CurrentUser()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(welcomeMessage(user.FullName, time.Now())))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Vai trò: %s | Hôm nay: %s", roleName(user.Role), time.Now().Format("02/01/2006"))))
	b.WriteString("\n\n")

	if d.loading {
		b.WriteString(loadingStyle.Render("Đang tải số liệu..."))
		return b.String()
	}

	switch user.Role {
	case app.RoleDoctor:
		b.WriteString(renderCards([]statCard{
			{"Lịch hẹn hôm nay", d.stats.TodayAppointments, "Cần được xử lý"},
			{"Bệnh nhân của tôi", d.stats.TotalPatients, "Đang theo dõi"},
			{"Lượt khám hoàn thành", d.stats.CompletedVisits, "Trong tháng"},
		}))
	case app.RolePatient:
		b.WriteString(renderCards([]statCard{
			{"Lịch hẹn sắp tới", len(d.stats.UpcomingAppointments), "Đã đặt"},
			{"Tổng lượt khám", d.stats.TotalVisits, "Đã thực hiện"},
		}))
	default:
		b.WriteString(renderCards([]statCard{
			{"Tổng bệnh nhân", d.stats.TotalPatients, "Đã đăng ký trong hệ thống"},
			{"Tổng bác sĩ", d.stats.TotalDoctors, "Đang hoạt động"},
			{"Lịch hẹn hôm nay", d.stats.TodayAppointments, "Cần được xử lý"},
			{"Tổng lượt khám", d.stats.TotalVisits, "Đã thực hiện"},
		}))
	}
	b.WriteString("\n")

	if d.failed {
		b.WriteString(subtitleStyle.Render("Không tải được số liệu. Nhấn ctrl+r để thử lại."))
		b.WriteString("\n")
		return b.String()
	}

	if len(d.stats.UpcomingAppointments) > 0 {
		b.WriteString(titleStyle.Render("Lịch hẹn sắp tới"))
		b.WriteString("\n")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d lịch hẹn trong thời gian tới", len(d.stats.UpcomingAppointments))))
		b.WriteString("\n\n")
		limit := minInt(5, len(d.stats.UpcomingAppointments))
		for _, appt := range d.stats.UpcomingAppointments[:limit] {
			b.WriteString(renderAppointmentRow(appt))
			b.WriteString("\n")
		}
	}

	return b.String()
}

type statCard struct {
	title string
	value int
	desc  string
}

func renderCards(cards []statCard) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		body := fmt.Sprintf("%s\n%s\n%s",
			labelStyle.Render(c.title),
			cardValueStyle.Render(fmt.Sprintf("%d", c.value)),
			subtitleStyle.Render(c.desc),
		)
		rendered = append(rendered, cardStyle.Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func renderAppointmentRow(appt app.Appointment) string {
	left := fmt.Sprintf("%s  %s",
		appt.Date.Format("02/01/2006 15:04"),
		statusBadge(appt.Status),
	)
	detail := fmt.Sprintf("%s — Bác sĩ: %s", appt.Patient.FullName, appt.Doctor.FullName)
	if appt.Patient.Phone != "" {
		detail += "  SĐT: " + appt.Patient.Phone
	}
	return fmt.Sprintf("  %s\n    %s", left, subtitleStyle.Render(detail))
}

// welcomeMessage mirrors the web client's time-of-day greeting.
func welcomeMessage(fullName string, now time.Time) string {
	hour := now.Hour()
	greeting := "Chào buổi tối"
	if hour < 12 {
		greeting = "Chào buổi sáng"
	} else if hour < 17 {
		greeting = "Chào buổi chiều"
	}
	return fmt.Sprintf("%s, %s!", greeting, fullName)
}
