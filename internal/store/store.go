package store

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/earlysvahn/aiwriter/internal/config"
	"github.com/earlysvahn/aiwriter/internal/utils"
)

// ErrNotFound is returned by Get when no entry matches.
var ErrNotFound = errors.New("history entry not found")

// Entry records one successful action.
type Entry struct {
	ID          string    `json:"id"`
	Action      string    `json:"action"`
	Document    string    `json:"document"`
	Language    string    `json:"language"`
	Instruction string    `json:"instruction"`
	Answer      string    `json:"answer"`
	Time        time.Time `json:"time"`
}

// NewEntry stamps a fresh ID and the current UTC time.
func NewEntry(action, document, language, instruction, answer string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Action:      action,
		Document:    document,
		Language:    language,
		Instruction: instruction,
		Answer:      answer,
		Time:        time.Now().UTC(),
	}
}

type HistoryStore interface {
	Append(e Entry) error
	// List returns up to limit entries, newest first. limit <= 0 means all.
	List(limit int) ([]Entry, error)
	// Get finds an entry by ID or unique ID prefix.
	Get(id string) (Entry, error)
	Close() error
}

// FileStore keeps the history in a single JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore() *FileStore {
	return &FileStore{path: filepath.Join(config.Dir(), "history.json")}
}

func NewFileStoreAt(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Append(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = append(entries, e)
	return utils.WriteJSON(s.path, entries)
}

func (s *FileStore) List(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time.After(entries[j].Time) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *FileStore) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	return matchPrefix(entries, id)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() ([]Entry, error) {
	var entries []Entry
	if err := utils.ReadJSON(s.path, &entries); err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func matchPrefix(entries []Entry, id string) (Entry, error) {
	if id == "" {
		return Entry{}, ErrNotFound
	}
	var found []Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if utils.HasPrefixCI(e.ID, id) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return Entry{}, ErrNotFound
	case 1:
		return found[0], nil
	}
	return Entry{}, errors.New("ambiguous history id: " + id)
}
