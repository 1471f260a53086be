package fsys

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/ignore"
	"github.com/morozRed/scratch/internal/scratch"
	"go.uber.org/zap"
)

// Disk keeps scratches as plain files in one folder.
type Disk struct {
	dir     string
	matcher *ignore.Matcher
	logger  *zap.Logger
}

func NewDisk(dir string, matcher *ignore.Matcher, logger *zap.Logger) *Disk {
	if matcher == nil {
		matcher = ignore.NewMatcher(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Disk{dir: dir, matcher: matcher, logger: logger}
}

func (d *Disk) Dir() string {
	return d.dir
}

func (d *Disk) Path(fileName string) string {
	return filepath.Join(d.dir, fileName)
}

// ListFileNames returns visible scratch files in directory order (sorted by name).
// A missing folder lists as empty.
func (d *Disk) ListFileNames() []string {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.logger.Warn("failed to list scratches folder", zap.String("dir", d.dir), zap.Error(err))
		}
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !d.isScratchFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}

func (d *Disk) Exists(fileName string) bool {
	if !d.isScratchFile(fileName) {
		return false
	}
	info, err := os.Stat(d.Path(fileName))
	return err == nil && info.Mode().IsRegular()
}

func (d *Disk) IsValidName(fileName string) scratch.Answer {
	if !isValidFileName(fileName) {
		return scratch.No("Not a valid file name")
	}
	if _, err := os.Lstat(d.Path(fileName)); err == nil {
		return scratch.No("There is existing file with this name")
	}
	return scratch.Yes()
}

func (d *Disk) CreateEmpty(fileName string) bool {
	return d.CreateWithContent(fileName, "")
}

func (d *Disk) CreateWithContent(fileName, text string) bool {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		d.logger.Warn("failed to create scratches folder", zap.String("dir", d.dir), zap.Error(err))
		return false
	}
	f, err := os.OpenFile(d.Path(fileName), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		d.logger.Warn("failed to create scratch file", zap.String("file", fileName), zap.Error(err))
		return false
	}
	_, writeErr := f.WriteString(text)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		d.logger.Warn("failed to write scratch file", zap.String("file", fileName), zap.Error(err))
		return false
	}
	return true
}

func (d *Disk) Rename(oldFileName, newFileName string) bool {
	if !d.Exists(oldFileName) {
		d.logger.Warn("cannot rename missing scratch file", zap.String("file", oldFileName))
		return false
	}
	if oldFileName != newFileName {
		if _, err := os.Lstat(d.Path(newFileName)); err == nil {
			d.logger.Warn("rename target already exists", zap.String("file", newFileName))
			return false
		}
	}
	if err := os.Rename(d.Path(oldFileName), d.Path(newFileName)); err != nil {
		d.logger.Warn("failed to rename scratch file",
			zap.String("from", oldFileName),
			zap.String("to", newFileName),
			zap.Error(err))
		return false
	}
	return true
}

func (d *Disk) Delete(fileName string) bool {
	if !d.Exists(fileName) {
		d.logger.Warn("cannot delete missing scratch file", zap.String("file", fileName))
		return false
	}
	if err := os.Remove(d.Path(fileName)); err != nil {
		d.logger.Warn("failed to delete scratch file", zap.String("file", fileName), zap.Error(err))
		return false
	}
	return true
}

// AddText puts text at the end or the start of a scratch file.
// Appended text always starts on a new line; prepended text is followed by one.
func (d *Disk) AddText(fileName, text string, appendType scratch.AppendType) bool {
	path := d.Path(fileName)
	existing, err := os.ReadFile(path)
	if err != nil {
		d.logger.Warn("failed to read scratch file", zap.String("file", fileName), zap.Error(err))
		return false
	}

	var content string
	switch appendType {
	case scratch.Append:
		content = fileutil.EnsureTrailingNewline(string(existing)) + text
	case scratch.Prepend:
		content = text + "\n" + string(existing)
	default:
		d.logger.Error("unexpected append type", zap.Stringer("append_type", appendType))
		return false
	}

	if err := fileutil.WriteAtomic(path, []byte(content), 0644); err != nil {
		d.logger.Warn("failed to update scratch file", zap.String("file", fileName), zap.Error(err))
		return false
	}
	return true
}

// isScratchFile rejects hidden and ignored files, files without an extension
// and files containing the mnemonic marker: those cannot be addressed as name + "." + extension.
func (d *Disk) isScratchFile(fileName string) bool {
	if isHidden(fileName) || !strings.Contains(fileName, ".") || strings.Contains(fileName, scratch.MnemonicMarker) {
		return false
	}
	return !d.matcher.ShouldIgnore(fileName)
}

func isHidden(fileName string) bool {
	return strings.HasPrefix(fileName, ".")
}

func isValidFileName(fileName string) bool {
	if fileName == "" || isHidden(fileName) || strings.HasSuffix(fileName, ".") {
		return false
	}
	return !strings.ContainsAny(fileName, "/\\*?\x00")
}
