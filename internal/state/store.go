package state

import (
	"fmt"

	"github.com/morozRed/scratch/internal/scratch"
)

// Store persists scratch configs in a JSON state file.
type Store struct {
	path  string
	state *State
}

// Open loads the state file at path, or starts a fresh state when it does not exist.
func Open(path string) (*Store, error) {
	st, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, state: st}, nil
}

// NewStore starts from a fresh state without reading path.
// Used after a corrupt state file has been reported.
func NewStore(path string) *Store {
	return &Store{path: path, state: NewState()}
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Load() (scratch.Config, error) {
	st, err := Load(s.path)
	if err != nil {
		return scratch.Config{}, fmt.Errorf("failed to load state: %w", err)
	}
	s.state = st
	return st.Config(), nil
}

func (s *Store) Save(config scratch.Config) error {
	next := s.state.FromConfig(config)
	if err := next.Save(s.path); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	s.state = next
	return nil
}

// Config returns the config of the state held in memory.
func (s *Store) Config() scratch.Config {
	return s.state.Config()
}

func (s *Store) NeedsMigration() bool {
	return s.state.NeedsMigration
}

// MarkMigrated records that the scratches folder has been seeded.
func (s *Store) MarkMigrated() error {
	s.state.NeedsMigration = false
	if err := s.state.Save(s.path); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}
