package app

import "time"

// Role is the account role assigned at registration.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// User is the authenticated identity returned by the backend. The client
// never inspects the token; it only attaches it to requests.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// RegisterProfile carries the registration form fields. ConfirmPassword is
// checked locally and never sent to the backend.
type RegisterProfile struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	Role            Role   `json:"role"`
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

// Patient is a clinic patient record.
type Patient struct {
	ID        string   `json:"_id"`
	FullName  string   `json:"fullName"`
	DOB       string   `json:"dob"`
	Gender    string   `json:"gender"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Allergies []string `json:"allergies,omitempty"`
}

// Doctor is the subset of a user record the appointment form needs.
type Doctor struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

// Appointment as listed by the backend. Patient and doctor come back
// populated with display fields.
type Appointment struct {
	ID      string         `json:"_id"`
	Date    time.Time      `json:"date"`
	Status  string         `json:"status"`
	Notes   string         `json:"notes,omitempty"`
	Patient PatientSummary `json:"patientId"`
	Doctor  DoctorSummary  `json:"doctorId"`
}

// PatientSummary is the populated patient reference inside an appointment.
type PatientSummary struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone,omitempty"`
}

// DoctorSummary is the populated doctor reference inside an appointment.
type DoctorSummary struct {
	FullName string `json:"fullName"`
}

// AppointmentRequest is the create-appointment body. Date is serialized as
// ISO-8601 by the standard time.Time marshaller.
type AppointmentRequest struct {
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes,omitempty"`
}

// DashboardStats is the role-shaped aggregate the backend returns from
// GET dashboard/stats. Fields not relevant to the caller's role are zero.
type DashboardStats struct {
	TotalPatients        int           `json:"totalPatients"`
	TotalDoctors         int           `json:"totalDoctors"`
	TotalAppointments    int           `json:"totalAppointments"`
	TodayAppointments    int           `json:"todayAppointments"`
	TotalVisits          int           `json:"totalVisits"`
	CompletedVisits      int           `json:"completedVisits"`
	UpcomingAppointments []Appointment `json:"upcomingAppointments,omitempty"`
}

// Chat message speakers. The backend stores "bot" for assistant turns.
const (
	SpeakerUser = "user"
	SpeakerBot  = "bot"
)

// ChatMessage is one transcript entry. Immutable once appended.
type ChatMessage struct {
	ID   string    `json:"-"`
	Role string    `json:"role"`
	Text string    `json:"text"`
	Time time.Time `json:"time"`
}

// ChatSessionInfo identifies a server-side chatbot session.
type ChatSessionInfo struct {
	ID string `json:"_id"`
}
