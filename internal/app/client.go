package app

import (
	"context"
	"strings"
)

// LoginResult is what the auth endpoints hand back on success.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// APIClient is the boundary to the MedicalHope backend, one method per
// endpoint. The session controller and chat engine depend on this interface
// so both run against MockAPI in tests and in --mock mode.
type APIClient interface {
	// Auth; no bearer token required.
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Register(ctx context.Context, profile RegisterProfile) (LoginResult, error)

	// Business data; all take the bearer token.
	ListDoctors(ctx context.Context, token string) ([]Doctor, error)
	ListPatients(ctx context.Context, token string) ([]Patient, error)
	CreatePatient(ctx context.Context, token string, patient Patient) (Patient, error)
	ListAppointments(ctx context.Context, token string) ([]Appointment, error)
	CreateAppointment(ctx context.Context, token string, req AppointmentRequest) (Appointment, error)
	DashboardStats(ctx context.Context, token string) (DashboardStats, error)

	// Chatbot session; message persistence is best-effort for callers.
	CreateChatSession(ctx context.Context, token string) (ChatSessionInfo, error)
	AppendChatMessage(ctx context.Context, token, sessionID string, msg ChatMessage) error
}

// SplitAllergies turns the form's comma-separated allergy string into the
// ordered list the backend expects, dropping empty entries.
func SplitAllergies(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
