package manager

import (
	"errors"
	"fmt"
	"sort"

	"github.com/morozRed/scratch/internal/scratch"
)

type fakeFS struct {
	files       map[string]string
	order       []string
	validAnswer scratch.Answer
	failOps     map[string]bool
	validated   []string
}

func newFakeFS(fileNames ...string) *fakeFS {
	fs := &fakeFS{
		files:       make(map[string]string),
		validAnswer: scratch.Yes(),
		failOps:     make(map[string]bool),
	}
	for _, name := range fileNames {
		fs.put(name, "")
	}
	return fs
}

func (f *fakeFS) put(name, text string) {
	if _, ok := f.files[name]; !ok {
		f.order = append(f.order, name)
	}
	f.files[name] = text
}

func (f *fakeFS) remove(name string) {
	delete(f.files, name)
	for i, existing := range f.order {
		if existing == name {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}

func (f *fakeFS) ListFileNames() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

func (f *fakeFS) Exists(fileName string) bool {
	_, ok := f.files[fileName]
	return ok
}

func (f *fakeFS) IsValidName(fileName string) scratch.Answer {
	f.validated = append(f.validated, fileName)
	return f.validAnswer
}

func (f *fakeFS) CreateEmpty(fileName string) bool {
	return f.CreateWithContent(fileName, "")
}

func (f *fakeFS) CreateWithContent(fileName, text string) bool {
	if f.failOps["create"] || f.failOps["create:"+fileName] {
		return false
	}
	f.put(fileName, text)
	return true
}

func (f *fakeFS) Rename(oldFileName, newFileName string) bool {
	if f.failOps["rename"] || !f.Exists(oldFileName) {
		return false
	}
	text := f.files[oldFileName]
	f.remove(oldFileName)
	f.put(newFileName, text)
	return true
}

func (f *fakeFS) Delete(fileName string) bool {
	if f.failOps["delete"] || !f.Exists(fileName) {
		return false
	}
	f.remove(fileName)
	return true
}

func (f *fakeFS) AddText(fileName, text string, appendType scratch.AppendType) bool {
	if f.failOps["add"] || !f.Exists(fileName) {
		return false
	}
	switch appendType {
	case scratch.Append:
		f.files[fileName] += text
	case scratch.Prepend:
		f.files[fileName] = text + f.files[fileName]
	}
	return true
}

type fakeStore struct {
	saved []scratch.Config
	err   error
}

func (s *fakeStore) Load() (scratch.Config, error) {
	if len(s.saved) == 0 {
		return scratch.DefaultConfig(), nil
	}
	return s.saved[len(s.saved)-1], nil
}

func (s *fakeStore) Save(config scratch.Config) error {
	s.saved = append(s.saved, config)
	return s.err
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) record(format string, args ...any) {
	n.events = append(n.events, fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) FailedToOpen(s scratch.Scratch)   { n.record("failedToOpen %s", s.FileName()) }
func (n *recordingNotifier) FailedToOpenDefault()             { n.record("failedToOpenDefault") }
func (n *recordingNotifier) FailedToRename(s scratch.Scratch) { n.record("failedToRename %s", s.FileName()) }
func (n *recordingNotifier) FailedToCreate(s scratch.Scratch) { n.record("failedToCreate %s", s.FileName()) }
func (n *recordingNotifier) FailedToDelete(s scratch.Scratch) { n.record("failedToDelete %s", s.FileName()) }
func (n *recordingNotifier) FailedToAddText(s scratch.Scratch) {
	n.record("failedToAddText %s", s.FileName())
}
func (n *recordingNotifier) ListeningToClipboard(listening bool) {
	n.record("listeningToClipboard %v", listening)
}
func (n *recordingNotifier) MigratedScratchesToFiles()     { n.record("migrated") }
func (n *recordingNotifier) FailedToMigrate(indexes []int) { n.record("failedToMigrate %v", indexes) }
func (n *recordingNotifier) WillNotMigrate()               { n.record("willNotMigrate") }
func (n *recordingNotifier) FailedToPersist(err error)     { n.record("failedToPersist %v", err) }

type recordingHost struct {
	displayed [][]string
	opened    []string
	suggested []string
}

func (h *recordingHost) DisplayScratches(scratches []scratch.Scratch) {
	names := make([]string, 0, len(scratches))
	for _, s := range scratches {
		names = append(names, s.DisplayName)
	}
	h.displayed = append(h.displayed, names)
}

func (h *recordingHost) OpenScratch(s scratch.Scratch) {
	h.opened = append(h.opened, s.DisplayName)
}

func (h *recordingHost) OpenNewScratchDialog(suggestedName string) {
	h.suggested = append(h.suggested, suggestedName)
}

type fixture struct {
	fs       *fakeFS
	store    *fakeStore
	notifier *recordingNotifier
	host     *recordingHost
	manager  *Manager
}

func newFixture(config scratch.Config, fileNames ...string) *fixture {
	f := &fixture{
		fs:       newFakeFS(fileNames...),
		store:    &fakeStore{},
		notifier: &recordingNotifier{},
		host:     &recordingHost{},
	}
	f.manager = New(f.fs, f.store, f.notifier, f.host, config)
	return f
}

func configWith(names ...string) scratch.Config {
	list := make([]scratch.Scratch, 0, len(names))
	for _, name := range names {
		list = append(list, scratch.Parse(name))
	}
	return scratch.DefaultConfig().With(list)
}

func displayNames(list []scratch.Scratch) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.DisplayName)
	}
	return out
}

func sortedFiles(fs *fakeFS) []string {
	out := fs.ListFileNames()
	sort.Strings(out)
	return out
}

var errDiskFull = errors.New("disk full")
