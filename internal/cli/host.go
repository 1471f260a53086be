package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/scratch"
)

var (
	plainStyle   = lipgloss.NewStyle()
	defaultStyle = plainStyle.Bold(true)
	markerStyle  = plainStyle.Foreground(lipgloss.Color("10")).Bold(true)
	indexStyle   = plainStyle.Faint(true).Width(4).Align(lipgloss.Right)
	hintStyle    = plainStyle.Faint(true)
)

// ScratchEntry is the machine-readable form of one listed scratch.
type ScratchEntry struct {
	Index       int    `json:"index"`
	DisplayName string `json:"display_name"`
	FileName    string `json:"file_name"`
	Path        string `json:"path"`
	Default     bool   `json:"default"`
}

// cliHost renders manager output on stdout.
// Dialogs are not interactive: the host remembers what was asked and the command acts on it.
type cliHost struct {
	dir       string
	asJSON    bool
	config    func() scratch.Config
	opened    *scratch.Scratch
	suggested string
}

func (h *cliHost) DisplayScratches(scratches []scratch.Scratch) {
	entries := h.entries(scratches)
	if h.asJSON {
		_ = fileutil.PrintJSON(entries)
		return
	}
	fmt.Print(renderScratchList(entries))
}

func (h *cliHost) OpenScratch(s scratch.Scratch) {
	opened := s
	h.opened = &opened
	if h.asJSON {
		_ = fileutil.PrintJSON(h.entry(0, s))
		return
	}
	fmt.Println(h.path(s))
}

func (h *cliHost) OpenNewScratchDialog(suggestedName string) {
	h.suggested = suggestedName
}

func (h *cliHost) entries(scratches []scratch.Scratch) []ScratchEntry {
	out := make([]ScratchEntry, 0, len(scratches))
	for i, s := range scratches {
		out = append(out, h.entry(i+1, s))
	}
	return out
}

func (h *cliHost) entry(index int, s scratch.Scratch) ScratchEntry {
	entry := ScratchEntry{
		Index:       index,
		DisplayName: s.DisplayName,
		FileName:    s.FileName(),
		Path:        h.path(s),
	}
	if h.config != nil {
		config := h.config()
		entry.Default = len(config.Scratches) > 0 && config.DefaultScratch().Equal(s)
	}
	return entry
}

func (h *cliHost) path(s scratch.Scratch) string {
	return filepath.Join(h.dir, s.FileName())
}

func renderScratchList(entries []ScratchEntry) string {
	if len(entries) == 0 {
		return hintStyle.Render("no scratches yet, create one with `scratch new`") + "\n"
	}

	var b strings.Builder
	for _, entry := range entries {
		marker := " "
		name := plainStyle.Render(entry.FileName)
		if entry.Default {
			marker = markerStyle.Render("*")
			name = defaultStyle.Render(entry.FileName)
		}
		fmt.Fprintf(&b, "%s %s %s\n", indexStyle.Render(fmt.Sprintf("%d.", entry.Index)), marker, name)
	}
	return b.String()
}
