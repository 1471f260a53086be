package manager

import (
	"strconv"

	"github.com/morozRed/scratch/internal/scratch"
)

var defaultScratchNames = []string{
	"&scratch.txt",
	"scratch&2.txt",
	"scratch&3.xml",
	"scratch&4.xml",
}

// Migrate turns legacy scratch texts into files in an empty folder.
//
// With no text (or only empty ones) it seeds the folder with the default scratches.
// A folder that already holds scratch files is left alone.
func (m *Manager) Migrate(texts []string) {
	if len(m.fs.ListFileNames()) > 0 {
		m.notifier.WillNotMigrate()
		return
	}

	if allEmpty(texts) {
		created := make([]scratch.Scratch, 0, len(defaultScratchNames))
		for _, name := range defaultScratchNames {
			s := scratch.Parse(name)
			if m.fs.CreateEmpty(s.FileName()) {
				created = append(created, s)
			} else {
				m.notifier.FailedToCreate(s)
			}
		}
		m.update(m.config.With(created))
		return
	}

	created := make([]scratch.Scratch, 0, len(texts))
	failed := make([]int, 0)
	for i, text := range texts {
		s := scratch.Parse(migratedName(i+1) + ".txt")
		if m.fs.CreateWithContent(s.FileName(), text) {
			created = append(created, s)
		} else {
			failed = append(failed, i+1)
		}
	}

	if len(failed) == 0 {
		m.notifier.MigratedScratchesToFiles()
	} else {
		m.notifier.FailedToMigrate(failed)
	}
	m.update(m.config.With(created))
}

func migratedName(index int) string {
	if index == 1 {
		return "&scratch"
	}
	return "scratch&" + strconv.Itoa(index)
}

func allEmpty(texts []string) bool {
	for _, text := range texts {
		if text != "" {
			return false
		}
	}
	return true
}
