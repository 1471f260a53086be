package fsys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoTargetFolder = errors.New("target folder doesn't exist")

// MoveScratches moves fileNames from one folder to another existing folder.
// A file whose name is taken in the target folder is renamed with a "_" prefix until it is free.
func MoveScratches(fileNames []string, fromDir, toDir string) error {
	info, err := os.Stat(toDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNoTargetFolder, toDir)
	}

	failed := make([]string, 0)
	for _, fileName := range fileNames {
		target := freeTarget(filepath.Join(toDir, fileName))
		if err := os.Rename(filepath.Join(fromDir, fileName), target); err != nil {
			failed = append(failed, fileName)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to move files: %s", strings.Join(failed, ", "))
	}
	return nil
}

func freeTarget(path string) string {
	for {
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path
		}
		path = filepath.Join(filepath.Dir(path), "_"+filepath.Base(path))
	}
}
