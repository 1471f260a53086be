package state

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/scratch"
)

const (
	StateFile           = "scratch_config.json"
	CurrentStateVersion = "2"
)

// State is the on-disk form of scratch.Config.
// Enum fields are optional so that missing values fall back to the defaults.
type State struct {
	Version               string    `json:"version"`
	UpdatedAt             time.Time `json:"updated_at"`
	NeedsMigration        bool      `json:"needs_migration"`
	Scratches             []string  `json:"scratches"`
	LastOpened            *string   `json:"last_opened,omitempty"`
	ListenToClipboard     bool      `json:"listen_to_clipboard"`
	ClipboardAppendType   *string   `json:"clipboard_append_type,omitempty"`
	NewScratchAppendType  *string   `json:"new_scratch_append_type,omitempty"`
	DefaultScratchMeaning *string   `json:"default_scratch_meaning,omitempty"`
}

// NewState creates the state of a first run.
func NewState() *State {
	return &State{
		Version:        CurrentStateVersion,
		NeedsMigration: true,
		Scratches:      []string{},
	}
}

// FromConfig captures config, keeping the migration flag of s.
func (s *State) FromConfig(config scratch.Config) *State {
	out := &State{
		Version:           CurrentStateVersion,
		NeedsMigration:    s.NeedsMigration,
		Scratches:         make([]string, 0, len(config.Scratches)),
		ListenToClipboard: config.ListenToClipboard,
	}
	for _, sc := range config.Scratches {
		out.Scratches = append(out.Scratches, sc.DisplayName)
	}
	if config.LastOpened != nil {
		name := config.LastOpened.DisplayName
		out.LastOpened = &name
	}
	clipboard := config.ClipboardAppendType.String()
	newScratch := config.NewScratchAppendType.String()
	meaning := config.DefaultScratchMeaning.String()
	out.ClipboardAppendType = &clipboard
	out.NewScratchAppendType = &newScratch
	out.DefaultScratchMeaning = &meaning
	return out
}

// Config rebuilds the config on top of scratch.DefaultConfig.
// Unknown enum values are treated as missing.
func (s *State) Config() scratch.Config {
	scratches := make([]scratch.Scratch, 0, len(s.Scratches))
	for _, name := range s.Scratches {
		scratches = append(scratches, scratch.Parse(name))
	}

	config := scratch.DefaultConfig().
		WithListenToClipboard(s.ListenToClipboard).
		With(scratches).
		WithDefaultScratchMeaning(parseMeaning(s.DefaultScratchMeaning)).
		WithClipboard(parseAppendType(s.ClipboardAppendType)).
		WithNewScratch(parseAppendType(s.NewScratchAppendType))

	if s.LastOpened != nil {
		last := scratch.Parse(*s.LastOpened)
		config = config.WithLastOpened(&last)
	}
	return config
}

// Load reads state from path. A missing file yields NewState.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewState(), nil
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}

	migrateState(&st)

	return &st, nil
}

// Save writes state to path atomically.
func (s *State) Save(path string) error {
	if s.Version == "" {
		s.Version = CurrentStateVersion
	}
	if s.Scratches == nil {
		s.Scratches = []string{}
	}

	// updated_at only moves when the rest of the payload changed.
	if existing, err := os.ReadFile(path); err == nil {
		var prev State
		if json.Unmarshal(existing, &prev) == nil {
			s.UpdatedAt = prev.UpdatedAt
			if data, err := s.encode(); err == nil && bytes.Equal(data, existing) {
				return nil
			}
		}
	}
	s.UpdatedAt = time.Now().UTC()

	data, err := s.encode()
	if err != nil {
		return err
	}
	return fileutil.WriteIfChanged(path, data)
}

func (s *State) encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// IsCorruptStateError reports whether err comes from an unreadable state file.
func IsCorruptStateError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

func parseMeaning(value *string) *scratch.DefaultScratchMeaning {
	if value == nil {
		return nil
	}
	meaning, err := scratch.ParseDefaultScratchMeaning(*value)
	if err != nil {
		return nil
	}
	return &meaning
}

func parseAppendType(value *string) *scratch.AppendType {
	if value == nil {
		return nil
	}
	appendType, err := scratch.ParseAppendType(*value)
	if err != nil {
		return nil
	}
	return &appendType
}

func migrateState(s *State) {
	if s.Scratches == nil {
		s.Scratches = []string{}
	}

	if s.LastOpened != nil && *s.LastOpened == "" {
		s.LastOpened = nil
	}

	switch s.Version {
	case "", "1":
		s.Version = CurrentStateVersion
	case CurrentStateVersion:
		// no-op
	default:
		// Keep unknown versions untouched but ensure required fields are initialized.
	}
}
