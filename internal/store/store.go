package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"treeline-cli/internal/model"
)

const dbFileName = "db.json"

// DB is the on-disk document: a flat list of nodes plus bookkeeping.
type DB struct {
	Version int          `json:"version"`
	Nodes   []model.Node `json:"nodes"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .treeline directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".treeline")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the discovered .treeline dir, or cwd/.treeline when no
// ancestor has one.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".treeline"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads db.json. A missing file yields an empty versioned DB so `init`
// and first-run commands share one path.
func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.dbPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DB{Version: 1, Nodes: []model.Node{}}, nil
		}
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	if db.Nodes == nil {
		db.Nodes = []model.Node{}
	}
	return &db, nil
}

// Save writes db.json atomically via a temp file rename.
func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if db.Version == 0 {
		db.Version = 1
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	path := s.dbPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// FindNode returns the index of id in db.Nodes, or -1.
func (db *DB) FindNode(id string) int {
	for i := range db.Nodes {
		if db.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}
