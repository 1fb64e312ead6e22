package app

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Credentials is what survives a restart: the bearer token plus the identity
// persisted alongside it.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ErrNoCredentials means nothing usable is stored. Malformed content is
// reported the same way so startup always settles.
var ErrNoCredentials = errors.New("no stored credentials")

// CredentialStore is the durable client-side session storage: read once at
// startup, written on login/register, cleared on logout.
type CredentialStore interface {
	Load() (Credentials, error)
	Save(creds Credentials) error
	Clear() error
}

// OpenCredentialStore prefers the SQLite store and falls back to the plain
// file store when SQLite cannot initialize.
func OpenCredentialStore(root string) CredentialStore {
	if st, err := NewSQLiteCredentialStore(root); err == nil {
		return st
	}
	return NewFileCredentialStore(root)
}

// SQLiteCredentialStore keeps the credential in a single-row table.
type SQLiteCredentialStore struct {
	Root   string
	dbPath string

	mu   sync.Mutex
	db   *sql.DB
	once sync.Once
	err  error
}

func NewSQLiteCredentialStore(root string) (*SQLiteCredentialStore, error) {
	if strings.TrimSpace(root) == "" {
		root = DefaultDataRoot()
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	st := &SQLiteCredentialStore{
		Root:   root,
		dbPath: filepath.Join(root, "medhope.db"),
	}
	// Initialize eagerly so callers fail fast and get the file fallback.
	if err := st.init(); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *SQLiteCredentialStore) init() error {
	s.once.Do(func() {
		db, err := sql.Open("sqlite", s.dbPath)
		if err != nil {
			s.err = err
			return
		}
		if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
			s.err = err
			_ = db.Close()
			return
		}
		if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS credentials(
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL,
			updated_at_ns INTEGER NOT NULL
		)`); err != nil {
			s.err = err
			_ = db.Close()
			return
		}
		s.db = db
	})
	return s.err
}

func (s *SQLiteCredentialStore) Load() (Credentials, error) {
	if err := s.init(); err != nil {
		return Credentials{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM credentials WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Credentials{}, ErrNoCredentials
	}
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(payload), &creds); err != nil {
		return Credentials{}, ErrNoCredentials
	}
	if creds.Token == "" {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

func (s *SQLiteCredentialStore) Save(creds Credentials) error {
	if err := s.init(); err != nil {
		return err
	}
	payload, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(
		`INSERT INTO credentials(id, payload, updated_at_ns) VALUES(1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload=excluded.payload, updated_at_ns=excluded.updated_at_ns`,
		string(payload), time.Now().UnixNano(),
	)
	return err
}

func (s *SQLiteCredentialStore) Clear() error {
	if err := s.init(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM credentials WHERE id = 1`)
	return err
}

// FileCredentialStore is the fallback: one JSON file under the data root.
type FileCredentialStore struct {
	Root string
}

func NewFileCredentialStore(root string) *FileCredentialStore {
	if strings.TrimSpace(root) == "" {
		root = DefaultDataRoot()
	}
	return &FileCredentialStore{Root: root}
}

func (s *FileCredentialStore) path() string {
	return filepath.Join(s.Root, "credentials.json")
}

func (s *FileCredentialStore) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return Credentials{}, ErrNoCredentials
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, ErrNoCredentials
	}
	if creds.Token == "" {
		return Credentials{}, ErrNoCredentials
	}
	return creds, nil
}

func (s *FileCredentialStore) Save(creds Credentials) error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o600)
}

func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
