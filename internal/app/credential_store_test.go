package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteCredentialStore_RoundTrip(t *testing.T) {
	st, err := NewSQLiteCredentialStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewSQLiteCredentialStore: %v", err)
	}

	if _, err := st.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Load() on empty store = %v, want ErrNoCredentials", err)
	}

	creds := Credentials{Token: "tok-1", User: User{ID: "u1", Username: "admin", Role: RoleAdmin}}
	if err := st.Save(creds); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load()
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if got.Token != "tok-1" || got.User.ID != "u1" || got.User.Role != RoleAdmin {
		t.Fatalf("Load() = %+v, want the saved credentials back", got)
	}

	// Save again overwrites the single row.
	if err := st.Save(Credentials{Token: "tok-2", User: User{ID: "u2"}}); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err = st.Load()
	if err != nil || got.Token != "tok-2" {
		t.Fatalf("Load() after overwrite = %+v, %v; want tok-2", got, err)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := st.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Load() after Clear = %v, want ErrNoCredentials", err)
	}
}

func TestFileCredentialStore_RoundTrip(t *testing.T) {
	st := NewFileCredentialStore(t.TempDir())

	if _, err := st.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Load() on empty store = %v, want ErrNoCredentials", err)
	}

	creds := Credentials{Token: "tok", User: User{ID: "u1", FullName: "A"}}
	if err := st.Save(creds); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := st.Load()
	if err != nil || got.Token != "tok" {
		t.Fatalf("Load() = %+v, %v; want the saved credentials", got, err)
	}

	if err := st.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := st.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Load() after Clear = %v, want ErrNoCredentials", err)
	}
	// Clearing twice stays quiet.
	if err := st.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileCredentialStore_MalformedContentTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	st := NewFileCredentialStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "credentials.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed malformed file: %v", err)
	}
	if _, err := st.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Load() with malformed content = %v, want ErrNoCredentials", err)
	}
}

func TestFileCredentialStore_EmptyTokenTreatedAsAbsent(t *testing.T) {
	st := NewFileCredentialStore(t.TempDir())
	if err := st.Save(Credentials{Token: "", User: User{ID: "u1"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := st.Load(); !errors.Is(err, ErrNoCredentials) {
		t.Fatalf("Load() with empty token = %v, want ErrNoCredentials", err)
	}
}
