package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/fsys"
	"github.com/morozRed/scratch/internal/ignore"
	"github.com/morozRed/scratch/internal/logging"
	"github.com/morozRed/scratch/internal/manager"
	"github.com/morozRed/scratch/internal/scratch"
	"github.com/morozRed/scratch/internal/settings"
	"github.com/morozRed/scratch/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// logger is replaced by the root command before any RunE executes.
var logger = zap.NewNop()

// app wires one manager to the disk folder and state file named by the settings.
type app struct {
	settings *settings.Settings
	store    *state.Store
	disk     *fsys.Disk
	host     *cliHost
	notifier *cliNotifier
	manager  *manager.Manager
}

func loadSettings(cmd *cobra.Command) (*settings.Settings, error) {
	path, err := OptionalStringFlag(cmd, "config")
	if err != nil {
		return nil, err
	}
	if path == "" {
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return settings.Load(path)
}

func openApp(cmd *cobra.Command) (*app, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json", false)
	if err != nil {
		return nil, err
	}

	folderRules, err := LoadIgnoreRules(s.Folder)
	if err != nil {
		return nil, err
	}
	rules := fileutil.DedupeStrings(append(slices.Clone(s.Ignore), folderRules...))

	store, err := state.Open(s.StateFile)
	if err != nil {
		if !state.IsCorruptStateError(err) {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
		fmt.Fprintf(os.Stderr, "warning: corrupt state file detected (%v); starting from defaults\n", err)
		store = state.NewStore(s.StateFile)
	}

	a := &app{
		settings: s,
		store:    store,
		disk:     fsys.NewDisk(s.Folder, ignore.NewMatcher(rules), logger),
		host:     &cliHost{dir: s.Folder, asJSON: asJSON},
		notifier: &cliNotifier{Notifier: logging.NewNotifier(logger)},
	}
	a.manager = manager.New(a.disk, a.store, a.notifier, a.host, store.Config())
	a.host.config = a.manager.Config
	return a, nil
}

// find resolves a scratch by file name, falling back to its display name.
func (a *app) find(name string) (scratch.Scratch, error) {
	if s, ok := a.manager.FindByFileName(name); ok {
		return s, nil
	}
	for _, s := range a.manager.Config().Scratches {
		if s.DisplayName == name {
			return s, nil
		}
	}
	return scratch.Scratch{}, fmt.Errorf("no scratch named %q", name)
}

// recordOpened remembers whatever the host opened during the last intent.
func (a *app) recordOpened() {
	if a.host.opened == nil {
		return
	}
	a.manager.RecordOpened(a.host.opened.FileName())
}

// cliNotifier logs like logging.Notifier and also collects failures for the command's exit status.
type cliNotifier struct {
	*logging.Notifier
	err error
}

func (n *cliNotifier) fail(format string, args ...any) {
	n.err = multierr.Append(n.err, fmt.Errorf(format, args...))
}

// Err returns the failures collected so far and forgets them.
func (n *cliNotifier) Err() error {
	err := n.err
	n.err = nil
	return err
}

func (n *cliNotifier) FailedToOpen(s scratch.Scratch) {
	n.Notifier.FailedToOpen(s)
	n.fail("failed to open scratch %s", s.FileName())
}

func (n *cliNotifier) FailedToOpenDefault() {
	n.Notifier.FailedToOpenDefault()
	n.fail("failed to open default scratch")
}

func (n *cliNotifier) FailedToRename(s scratch.Scratch) {
	n.Notifier.FailedToRename(s)
	n.fail("failed to rename scratch %s", s.FileName())
}

func (n *cliNotifier) FailedToCreate(s scratch.Scratch) {
	n.Notifier.FailedToCreate(s)
	n.fail("failed to create scratch %s", s.FileName())
}

func (n *cliNotifier) FailedToDelete(s scratch.Scratch) {
	n.Notifier.FailedToDelete(s)
	n.fail("failed to delete scratch %s", s.FileName())
}

func (n *cliNotifier) FailedToAddText(s scratch.Scratch) {
	n.Notifier.FailedToAddText(s)
	n.fail("failed to add text to scratch %s", s.FileName())
}

func (n *cliNotifier) FailedToMigrate(indexes []int) {
	n.Notifier.FailedToMigrate(indexes)
	parts := make([]string, 0, len(indexes))
	for _, index := range indexes {
		parts = append(parts, fmt.Sprint(index))
	}
	n.fail("failed to migrate scratches: %s", strings.Join(parts, ", "))
}

func (n *cliNotifier) FailedToPersist(err error) {
	n.Notifier.FailedToPersist(err)
	n.fail("failed to save scratch config: %w", err)
}
