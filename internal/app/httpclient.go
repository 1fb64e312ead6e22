package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to the real MedicalHope backend over REST.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultConfig().ServerURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	request, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode >= 300 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(bodyBytes, &errResp)
		msg := errResp.Error
		if msg == "" {
			msg = errResp.Message
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %v", err)
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var result LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) Register(ctx context.Context, profile RegisterProfile) (LoginResult, error) {
	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", profile, &result); err != nil {
		return LoginResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) ListDoctors(ctx context.Context, token string) ([]Doctor, error) {
	var result struct {
		Users []Doctor `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/users?role=doctor", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Users, nil
}

func (c *HTTPClient) ListPatients(ctx context.Context, token string) ([]Patient, error) {
	var result struct {
		Patients []Patient `json:"patients"`
	}
	if err := c.do(ctx, http.MethodGet, "/patients", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Patients, nil
}

func (c *HTTPClient) CreatePatient(ctx context.Context, token string, patient Patient) (Patient, error) {
	var created Patient
	if err := c.do(ctx, http.MethodPost, "/patients", token, patient, &created); err != nil {
		return Patient{}, err
	}
	return created, nil
}

func (c *HTTPClient) ListAppointments(ctx context.Context, token string) ([]Appointment, error) {
	var result struct {
		Appointments []Appointment `json:"appointments"`
	}
	if err := c.do(ctx, http.MethodGet, "/appointments", token, nil, &result); err != nil {
		return nil, err
	}
	return result.Appointments, nil
}

func (c *HTTPClient) CreateAppointment(ctx context.Context, token string, req AppointmentRequest) (Appointment, error) {
	var created Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", token, req, &created); err != nil {
		return Appointment{}, err
	}
	return created, nil
}

func (c *HTTPClient) DashboardStats(ctx context.Context, token string) (DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", token, nil, &stats); err != nil {
		return DashboardStats{}, err
	}
	return stats, nil
}

func (c *HTTPClient) CreateChatSession(ctx context.Context, token string) (ChatSessionInfo, error) {
	var session ChatSessionInfo
	if err := c.do(ctx, http.MethodPost, "/chatbot/sessions", token, nil, &session); err != nil {
		return ChatSessionInfo{}, fmt.Errorf("%w: %v", ErrSessionCreateFailed, err)
	}
	return session, nil
}

func (c *HTTPClient) AppendChatMessage(ctx context.Context, token, sessionID string, msg ChatMessage) error {
	return c.do(ctx, http.MethodPost, "/chatbot/sessions/"+sessionID+"/messages", token, msg, nil)
}
