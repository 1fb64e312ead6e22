package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockAPI simulates the MedicalHope backend for --mock mode and tests. It
// stores records in maps and exposes error fields for behavior injection.
type MockAPI struct {
	mu sync.Mutex

	users        map[string]mockAccount
	patients     []Patient
	doctors      []Doctor
	appointments []Appointment
	chatLog      map[string][]ChatMessage

	LoginCalls         int
	RegisterCalls      int
	SessionCalls       int
	AppendCalls        int
	LoginErr           error
	RegisterErr        error
	StatsErr           error
	CreateSessionErr   error
	AppendMessageErr   error
}

type mockAccount struct {
	password string
	user     User
}

func NewMockAPI() *MockAPI {
	m := &MockAPI{
		users:   make(map[string]mockAccount),
		chatLog: make(map[string][]ChatMessage),
	}
	m.seed()
	return m
}

func (m *MockAPI) seed() {
	admin := User{ID: uuid.NewString(), Username: "admin", FullName: "Nguyễn Văn Quản", Role: RoleAdmin}
	m.users["admin"] = mockAccount{password: "admin123", user: admin}

	doctor := User{ID: uuid.NewString(), Username: "bs.lan", FullName: "BS. Trần Thị Lan", Role: RoleDoctor, Phone: "0901234567"}
	m.users["bs.lan"] = mockAccount{password: "doctor123", user: doctor}
	m.doctors = append(m.doctors, Doctor{ID: doctor.ID, FullName: doctor.FullName, Phone: doctor.Phone})

	patientUser := User{ID: uuid.NewString(), Username: "bn.minh", FullName: "Lê Quang Minh", Role: RolePatient, Phone: "0907654321"}
	m.users["bn.minh"] = mockAccount{password: "patient123", user: patientUser}

	m.patients = append(m.patients, Patient{
		ID:        uuid.NewString(),
		FullName:  "Lê Quang Minh",
		DOB:       "1990-04-12",
		Gender:    "male",
		Phone:     "0907654321",
		Address:   "12 Lý Thường Kiệt, Hà Nội",
		Allergies: []string{"penicillin"},
	})

	m.appointments = append(m.appointments, Appointment{
		ID:      uuid.NewString(),
		Date:    time.Now().Add(26 * time.Hour),
		Status:  "scheduled",
		Notes:   "Khám tổng quát",
		Patient: PatientSummary{FullName: "Lê Quang Minh", Phone: "0907654321"},
		Doctor:  DoctorSummary{FullName: "BS. Trần Thị Lan"},
	})
}

func (m *MockAPI) Login(ctx context.Context, username, password string) (LoginResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls++
	if m.LoginErr != nil {
		return LoginResult{}, m.LoginErr
	}
	acct, ok := m.users[username]
	if !ok || acct.password != password {
		return LoginResult{}, &APIError{Status: 401, Message: "Tên đăng nhập hoặc mật khẩu không đúng"}
	}
	return LoginResult{Token: "mock-token-" + acct.user.ID, User: acct.user}, nil
}

func (m *MockAPI) Register(ctx context.Context, profile RegisterProfile) (LoginResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls++
	if m.RegisterErr != nil {
		return LoginResult{}, m.RegisterErr
	}
	if _, exists := m.users[profile.Username]; exists {
		return LoginResult{}, &APIError{Status: 409, Message: "Tên đăng nhập đã tồn tại"}
	}
	user := User{
		ID:       uuid.NewString(),
		Username: profile.Username,
		FullName: profile.FullName,
		Role:     profile.Role,
		Phone:    profile.Phone,
		Email:    profile.Email,
	}
	m.users[profile.Username] = mockAccount{password: profile.Password, user: user}
	if profile.Role == RoleDoctor {
		m.doctors = append(m.doctors, Doctor{ID: user.ID, FullName: user.FullName, Phone: user.Phone})
	}
	return LoginResult{Token: "mock-token-" + user.ID, User: user}, nil
}

func (m *MockAPI) ListDoctors(ctx context.Context, token string) ([]Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Doctor, len(m.doctors))
	copy(out, m.doctors)
	return out, nil
}

func (m *MockAPI) ListPatients(ctx context.Context, token string) ([]Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Patient, len(m.patients))
	copy(out, m.patients)
	return out, nil
}

func (m *MockAPI) CreatePatient(ctx context.Context, token string, patient Patient) (Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	patient.ID = uuid.NewString()
	m.patients = append(m.patients, patient)
	return patient, nil
}

func (m *MockAPI) ListAppointments(ctx context.Context, token string) ([]Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Appointment, len(m.appointments))
	copy(out, m.appointments)
	return out, nil
}

func (m *MockAPI) CreateAppointment(ctx context.Context, token string, req AppointmentRequest) (Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt := Appointment{
		ID:     uuid.NewString(),
		Date:   req.Date,
		Status: "scheduled",
		Notes:  req.Notes,
	}
	for _, p := range m.patients {
		if p.ID == req.PatientID {
			appt.Patient = PatientSummary{FullName: p.FullName, Phone: p.Phone}
		}
	}
	for _, d := range m.doctors {
		if d.ID == req.DoctorID {
			appt.Doctor = DoctorSummary{FullName: d.FullName}
		}
	}
	m.appointments = append(m.appointments, appt)
	return appt, nil
}

func (m *MockAPI) DashboardStats(ctx context.Context, token string) (DashboardStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatsErr != nil {
		return DashboardStats{}, m.StatsErr
	}
	today := 0
	upcoming := make([]Appointment, 0, len(m.appointments))
	now := time.Now()
	for _, a := range m.appointments {
		if sameDay(a.Date, now) {
			today++
		}
		if a.Date.After(now) && a.Status == "scheduled" {
			upcoming = append(upcoming, a)
		}
	}
	return DashboardStats{
		TotalPatients:        len(m.patients),
		TotalDoctors:         len(m.doctors),
		TotalAppointments:    len(m.appointments),
		TodayAppointments:    today,
		TotalVisits:          len(m.appointments),
		CompletedVisits:      0,
		UpcomingAppointments: upcoming,
	}, nil
}

func (m *MockAPI) CreateChatSession(ctx context.Context, token string) (ChatSessionInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionCalls++
	if m.CreateSessionErr != nil {
		return ChatSessionInfo{}, m.CreateSessionErr
	}
	id := fmt.Sprintf("chat-%s", uuid.NewString())
	m.chatLog[id] = nil
	return ChatSessionInfo{ID: id}, nil
}

func (m *MockAPI) AppendChatMessage(ctx context.Context, token, sessionID string, msg ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls++
	if m.AppendMessageErr != nil {
		return m.AppendMessageErr
	}
	m.chatLog[sessionID] = append(m.chatLog[sessionID], msg)
	return nil
}

// PersistedMessages returns what AppendChatMessage has stored for a session.
func (m *MockAPI) PersistedMessages(sessionID string) []ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatMessage, len(m.chatLog[sessionID]))
	copy(out, m.chatLog[sessionID])
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
