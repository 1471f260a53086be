package manager

import (
	"strconv"

	"github.com/morozRed/scratch/internal/scratch"
)

const (
	suggestedBaseName  = "scratch"
	suggestedExtension = "txt"
	maxSuggestionIndex = 99
)

// Manager interprets user intents against the current config.
//
// It owns exactly one config value and swaps it after every successful intent.
// A Manager is driven by a single actor and is not safe for concurrent use.
type Manager struct {
	fs       FileSystem
	store    Persistence
	notifier Notifier
	host     Host
	config   scratch.Config
}

func New(fs FileSystem, store Persistence, notifier Notifier, host Host, config scratch.Config) *Manager {
	return &Manager{
		fs:       fs,
		store:    store,
		notifier: notifier,
		host:     host,
		config:   config,
	}
}

// Config returns the current snapshot.
func (m *Manager) Config() scratch.Config {
	return m.config
}

// Reload replaces the current config with the persisted one.
// It picks up changes made by another process sharing the same store.
func (m *Manager) Reload() error {
	config, err := m.store.Load()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

func (m *Manager) ShouldListenToClipboard() bool {
	return m.config.ListenToClipboard
}

// Sync reconciles the config with the folder listing and returns the current list.
func (m *Manager) Sync() []scratch.Scratch {
	m.update(scratch.Reconcile(m.config, m.fs.ListFileNames()))
	return m.config.Scratches
}

// List refreshes the list from disk and hands it to the host.
func (m *Manager) List() {
	m.host.DisplayScratches(m.Sync())
}

func (m *Manager) Open(s scratch.Scratch) {
	if !m.fs.Exists(s.FileName()) {
		m.notifier.FailedToOpen(s)
		return
	}
	m.host.OpenScratch(s)
}

// OpenDefault opens the default scratch, or asks for a new name when there is none.
func (m *Manager) OpenDefault() {
	m.Sync()
	if len(m.config.Scratches) == 0 {
		m.EnterNewName()
		return
	}
	m.host.OpenScratch(m.config.DefaultScratch())
}

// RecordOpened remembers the scratch behind fileName as last opened.
// Unknown file names are ignored.
func (m *Manager) RecordOpened(fileName string) {
	s, ok := m.config.FindByFileName(fileName)
	if !ok {
		return
	}
	m.update(m.config.WithLastOpened(&s))
}

func (m *Manager) FindByFileName(fileName string) (scratch.Scratch, bool) {
	return m.config.FindByFileName(fileName)
}

func (m *Manager) CanRename(s scratch.Scratch, displayName string) scratch.Answer {
	if displayName == "" {
		return scratch.No("Name cannot be empty")
	}

	renamed := scratch.Parse(displayName)
	if s.FileName() == renamed.FileName() {
		return scratch.Yes()
	}

	for _, other := range m.config.Scratches {
		if !other.Equal(s) && other.Name == renamed.Name && other.Extension == renamed.Extension {
			return scratch.No("There is already a scratch with this name")
		}
	}
	return m.fs.IsValidName(renamed.FileName())
}

func (m *Manager) Rename(s scratch.Scratch, displayName string) {
	if s.DisplayName == displayName {
		return
	}

	renamed := scratch.Parse(displayName)
	if !m.fs.Rename(s.FileName(), renamed.FileName()) {
		m.notifier.FailedToRename(s)
		return
	}
	m.update(m.config.Replace(s, renamed))
}

func (m *Manager) Move(s scratch.Scratch, shift int) {
	m.update(m.config.Move(s, shift))
}

func (m *Manager) SetListenToClipboard(value bool) {
	m.update(m.config.WithListenToClipboard(value))
	m.notifier.ListeningToClipboard(value)
}

func (m *Manager) SetDefaultMeaning(value scratch.DefaultScratchMeaning) {
	m.update(m.config.WithDefaultScratchMeaning(&value))
}

func (m *Manager) SetClipboardAppendType(value scratch.AppendType) {
	m.update(m.config.WithClipboard(&value))
}

func (m *Manager) SetNewScratchAppendType(value scratch.AppendType) {
	m.update(m.config.WithNewScratch(&value))
}

// PasteClipboardText adds text to the default scratch using the clipboard append type.
func (m *Manager) PasteClipboardText(text string) {
	if len(m.config.Scratches) == 0 {
		m.notifier.FailedToOpenDefault()
		return
	}
	s := m.config.DefaultScratch()
	if !m.fs.Exists(s.FileName()) {
		m.notifier.FailedToOpenDefault()
		return
	}
	if !m.fs.AddText(s.FileName(), text, m.config.ClipboardAppendType) {
		m.notifier.FailedToAddText(s)
	}
}

// SuggestName returns the first free name of scratch.txt, scratch1.txt ... scratch99.txt.
// Only names are compared; extensions are ignored.
func (m *Manager) SuggestName() (string, bool) {
	if m.isUniqueName(suggestedBaseName) {
		return suggestedBaseName + "." + suggestedExtension, true
	}
	for i := 1; i <= maxSuggestionIndex; i++ {
		name := suggestedBaseName + strconv.Itoa(i)
		if m.isUniqueName(name) {
			return name + "." + suggestedExtension, true
		}
	}
	return "", false
}

// EnterNewName asks the host for a new scratch name, prefilled with a suggestion.
// Nothing happens when every suggestion is taken.
func (m *Manager) EnterNewName() {
	suggested, ok := m.SuggestName()
	if !ok {
		return
	}
	m.host.OpenNewScratchDialog(suggested)
}

func (m *Manager) CanCreate(displayName string) scratch.Answer {
	if displayName == "" {
		return scratch.No("Name cannot be empty")
	}

	s := scratch.Parse(displayName)
	if !m.isUniqueNameAndExtension(s.Name, s.Extension) {
		return scratch.No("There is already a scratch with this name")
	}
	return m.fs.IsValidName(s.FileName())
}

// Create makes an empty file for displayName, adds it to the list and opens it.
// Callers are expected to have checked CanCreate.
func (m *Manager) Create(displayName string) {
	s := scratch.Parse(displayName)
	if !m.fs.CreateEmpty(s.FileName()) {
		m.notifier.FailedToCreate(s)
		return
	}
	m.update(m.config.Add(s))
	m.host.OpenScratch(s)
}

func (m *Manager) Delete(s scratch.Scratch) {
	if !m.fs.Delete(s.FileName()) {
		m.notifier.FailedToDelete(s)
		return
	}
	m.update(m.config.Without(s))
}

func (m *Manager) isUniqueName(name string) bool {
	for _, s := range m.config.Scratches {
		if s.Name == name {
			return false
		}
	}
	return true
}

func (m *Manager) isUniqueNameAndExtension(name, extension string) bool {
	for _, s := range m.config.Scratches {
		if s.Name == name && s.Extension == extension {
			return false
		}
	}
	return true
}

// update makes next the current config and persists it when it differs.
func (m *Manager) update(next scratch.Config) {
	if m.config.Equal(next) {
		return
	}
	m.config = next
	if err := m.store.Save(next); err != nil {
		m.notifier.FailedToPersist(err)
	}
}
