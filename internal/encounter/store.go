package encounter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"obs-mapper/internal/obs"
)

const (
	fileExt        = ".json"
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// ErrNotFound is returned when no encounter has the requested id.
var ErrNotFound = errors.New("encounter not found")

// Encounter is a saved set of observations for one form.
type Encounter struct {
	ID           string        `json:"id"`
	FormName     string        `json:"formName"`
	FormVersion  string        `json:"formVersion,omitempty"`
	Observations []obs.Payload `json:"observations"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Store keeps encounters under a directory.
type Store struct {
	dir string
	now func() time.Time
}

// Open returns a store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("open encounter store: %w", err)
	}

	return &Store{dir: dir, now: time.Now}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes e, assigning an id to the encounter and a uuid to every new
// non-voided observation. The saved encounter is returned; e is not changed.
func (s *Store) Save(ctx context.Context, e Encounter) (Encounter, error) {
	if e.FormName == "" {
		return Encounter{}, errors.New("save encounter: form name is empty")
	}

	if e.ID == "" {
		e.ID = uuid.New().String()
	} else if _, err := uuid.Parse(e.ID); err != nil {
		return Encounter{}, fmt.Errorf("save encounter: invalid id %q: %w", e.ID, err)
	}

	e.Observations = AssignUUIDs(e.Observations)
	e.UpdatedAt = s.now().UTC()

	path := s.path(e.ID)

	unlock, err := acquireLock(ctx, path)
	if err != nil {
		return Encounter{}, err
	}
	defer unlock()

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return Encounter{}, fmt.Errorf("save encounter: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return Encounter{}, fmt.Errorf("save encounter: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return Encounter{}, fmt.Errorf("save encounter: %w", err)
	}

	return e, nil
}

// Load reads the encounter with the given id.
func (s *Store) Load(ctx context.Context, id string) (Encounter, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Encounter{}, fmt.Errorf("load encounter: invalid id %q: %w", id, err)
	}

	path := s.path(id)

	unlock, err := acquireLock(ctx, path)
	if err != nil {
		return Encounter{}, err
	}
	defer unlock()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Encounter{}, fmt.Errorf("load encounter %s: %w", id, ErrNotFound)
	}

	if err != nil {
		return Encounter{}, fmt.Errorf("load encounter %s: %w", id, err)
	}

	var e Encounter
	if err := json.Unmarshal(data, &e); err != nil {
		return Encounter{}, fmt.Errorf("load encounter %s: %w", id, err)
	}

	return e, nil
}

// List returns the ids of the saved encounters, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list encounters: %w", err)
	}

	var ids []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}

		id := strings.TrimSuffix(name, fileExt)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}

		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

func acquireLock(ctx context.Context, path string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	lock := flock.New(path + ".lock")

	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return nil, errors.New("could not acquire file lock")
	}

	return func() { _ = lock.Unlock() }, nil
}

// AssignUUIDs gives a fresh uuid to every non-voided observation that has
// none. Containers are traversed but never receive a uuid themselves.
func AssignUUIDs(ps []obs.Payload) []obs.Payload {
	if ps == nil {
		return nil
	}

	out := make([]obs.Payload, len(ps))

	for i, p := range ps {
		if p.UUID == "" && !p.Voided && p.ObsList == nil && p.Controls == nil {
			p.UUID = uuid.New().String()
		}

		p.GroupMembers = AssignUUIDs(p.GroupMembers)
		p.ObsList = AssignUUIDs(p.ObsList)
		p.Controls = AssignUUIDs(p.Controls)
		out[i] = p
	}

	return out
}
