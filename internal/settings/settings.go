package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/state"
	"gopkg.in/yaml.v3"
)

const (
	SettingsFile  = "settings.yaml"
	AppDir        = "scratch"
	ScratchesDir  = "scratches"
	EnvConfigPath = "SCRATCH_CONFIG"
	EnvFolder     = "SCRATCH_FOLDER"

	DefaultLogLevel              = "warn"
	DefaultClipboardPollInterval = 500 * time.Millisecond
)

// Settings holds user-editable options. Scratch order and policies live in the state file.
type Settings struct {
	// Folder holding one file per scratch.
	Folder string `yaml:"folder"`
	// StateFile is where the scratch list and policies are persisted.
	StateFile string `yaml:"state_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// ClipboardPollInterval is how often "listen" reads the clipboard.
	ClipboardPollInterval time.Duration `yaml:"clipboard_poll_interval"`
	// Ignore holds extra glob rules for files to leave out of the list.
	Ignore []string `yaml:"ignore,omitempty"`

	path string
}

// DefaultPath resolves the settings file: $SCRATCH_CONFIG, else the user config dir.
func DefaultPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, AppDir, SettingsFile), nil
}

// Default returns settings rooted next to the settings file at path.
func Default(path string) *Settings {
	base := filepath.Dir(path)
	return &Settings{
		Folder:                filepath.Join(base, ScratchesDir),
		StateFile:             filepath.Join(base, state.StateFile),
		LogLevel:              DefaultLogLevel,
		ClipboardPollInterval: DefaultClipboardPollInterval,
		path:                  path,
	}
}

// Load reads settings from path; a missing file yields the defaults.
// $SCRATCH_FOLDER overrides the folder.
func Load(path string) (*Settings, error) {
	s := Default(path)

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
		s.path = path
	}

	if folder := strings.TrimSpace(os.Getenv(EnvFolder)); folder != "" {
		s.Folder = folder
	}
	s.applyDefaults()
	return s, nil
}

// Path is the file the settings were loaded from and are saved to.
func (s *Settings) Path() string {
	return s.path
}

// Save writes the settings as YAML.
func (s *Settings) Save() error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := fileutil.WriteIfChanged(s.path, data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

func (s *Settings) applyDefaults() {
	defaults := Default(s.path)
	if strings.TrimSpace(s.Folder) == "" {
		s.Folder = defaults.Folder
	}
	if strings.TrimSpace(s.StateFile) == "" {
		s.StateFile = defaults.StateFile
	}
	if strings.TrimSpace(s.LogLevel) == "" {
		s.LogLevel = defaults.LogLevel
	}
	if s.ClipboardPollInterval <= 0 {
		s.ClipboardPollInterval = defaults.ClipboardPollInterval
	}
	s.Folder = expandHome(s.Folder)
	s.StateFile = expandHome(s.StateFile)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
