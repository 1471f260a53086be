package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/fsys"
	"github.com/spf13/cobra"
)

// RunInit seeds an empty scratches folder on first use.
func RunInit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	if !a.store.NeedsMigration() {
		fmt.Printf("Scratches already initialized at %s\n", a.settings.Folder)
		return nil
	}

	a.manager.Migrate(nil)
	if err := a.notifier.Err(); err != nil {
		return err
	}
	if err := a.store.MarkMigrated(); err != nil {
		return err
	}

	fmt.Printf("Initialized scratches at %s\n", a.settings.Folder)
	a.manager.List()
	return nil
}

// RunImport turns the given text files into scratches of an empty folder.
func RunImport(cmd *cobra.Command, args []string) error {
	paths := fileutil.DedupeStrings(args)
	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		texts = append(texts, string(data))
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	a.manager.Migrate(texts)
	if err := a.notifier.Err(); err != nil {
		return err
	}
	if err := a.store.MarkMigrated(); err != nil {
		return err
	}
	a.manager.List()
	return nil
}

var moveScratches = fsys.MoveScratches

// RunRelocate moves every listed scratch into another folder and points the settings at it.
func RunRelocate(cmd *cobra.Command, args []string) error {
	target, err := resolvePath(args[0])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	if filepath.Clean(a.settings.Folder) == target {
		return fmt.Errorf("scratches are already in %s", target)
	}

	scratches := a.manager.Sync()
	fileNames := make([]string, 0, len(scratches))
	for _, s := range scratches {
		fileNames = append(fileNames, s.FileName())
	}

	// Settings keep the old folder unless every file moved.
	if err := moveScratches(fileNames, a.settings.Folder, target); err != nil {
		return err
	}

	a.settings.Folder = target
	if err := a.settings.Save(); err != nil {
		return err
	}
	fmt.Printf("Moved %d scratches to %s\n", len(fileNames), target)
	return nil
}
