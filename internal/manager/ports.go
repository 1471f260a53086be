package manager

import "github.com/morozRed/scratch/internal/scratch"

// FileSystem is the folder holding one file per scratch.
// Operations report failure as false; details are the implementation's to log.
type FileSystem interface {
	ListFileNames() []string
	Exists(fileName string) bool
	IsValidName(fileName string) scratch.Answer
	CreateEmpty(fileName string) bool
	CreateWithContent(fileName, text string) bool
	Rename(oldFileName, newFileName string) bool
	Delete(fileName string) bool
	AddText(fileName, text string, appendType scratch.AppendType) bool
}

// Persistence stores the config between runs.
type Persistence interface {
	Load() (scratch.Config, error)
	Save(config scratch.Config) error
}

// Notifier observes failures and state changes. It never influences decisions.
type Notifier interface {
	FailedToOpen(s scratch.Scratch)
	FailedToOpenDefault()
	FailedToRename(s scratch.Scratch)
	FailedToCreate(s scratch.Scratch)
	FailedToDelete(s scratch.Scratch)
	FailedToAddText(s scratch.Scratch)
	ListeningToClipboard(listening bool)
	MigratedScratchesToFiles()
	FailedToMigrate(indexes []int)
	WillNotMigrate()
	FailedToPersist(err error)
}

// Host is the user-facing side: whatever shows lists, opens files and asks for names.
type Host interface {
	DisplayScratches(scratches []scratch.Scratch)
	OpenScratch(s scratch.Scratch)
	OpenNewScratchDialog(suggestedName string)
}
