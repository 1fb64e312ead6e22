package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSplitAllergies(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "penicillin", []string{"penicillin"}},
		{"trims and drops blanks", " penicillin , , aspirin,  ", []string{"penicillin", "aspirin"}},
		{"preserves order", "b,a,c", []string{"b", "a", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitAllergies(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("SplitAllergies(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("SplitAllergies(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestHTTPClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"patients": []Patient{}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	if _, err := c.ListPatients(context.Background(), "tok-123"); err != nil {
		t.Fatalf("ListPatients: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization header = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestHTTPClient_NoTokenOnLogin(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(LoginResult{Token: "t", User: User{ID: "u"}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	if _, err := c.Login(context.Background(), "admin", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("login should not carry a bearer token, got %q", gotAuth)
	}
}

func TestHTTPClient_ErrorBodySurfacesAsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Tên đăng nhập hoặc mật khẩu không đúng"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "admin", "bad")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Fatalf("APIError.Status = %d, want 401", apiErr.Status)
	}
	if apiErr.Message != "Tên đăng nhập hoặc mật khẩu không đúng" {
		t.Fatalf("APIError.Message = %q", apiErr.Message)
	}
}

func TestHTTPClient_UnreachableBackend(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.DashboardStats(context.Background(), "tok")
	if !errors.Is(err, ErrNetworkUnavailable) {
		t.Fatalf("error = %v, want ErrNetworkUnavailable", err)
	}
}

func TestHTTPClient_ListDoctorsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/users" || r.URL.Query().Get("role") != "doctor" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []Doctor{{ID: "d1", FullName: "BS. Trần Thị Lan"}},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	doctors, err := c.ListDoctors(context.Background(), "tok")
	if err != nil {
		t.Fatalf("ListDoctors: %v", err)
	}
	if len(doctors) != 1 || doctors[0].FullName != "BS. Trần Thị Lan" {
		t.Fatalf("doctors = %+v", doctors)
	}
}
