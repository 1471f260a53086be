package logging

import (
	"github.com/morozRed/scratch/internal/scratch"
	"go.uber.org/zap"
)

// Notifier reports manager events through a zap logger.
// Failures are logged at warn, state changes at info.
type Notifier struct {
	logger *zap.Logger
}

func NewNotifier(logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{logger: logger}
}

func (n *Notifier) FailedToOpen(s scratch.Scratch) {
	n.logger.Warn("Failed to open scratch", scratchField(s))
}

func (n *Notifier) FailedToOpenDefault() {
	n.logger.Warn("Failed to open default scratch")
}

func (n *Notifier) FailedToRename(s scratch.Scratch) {
	n.logger.Warn("Failed to rename scratch", scratchField(s))
}

func (n *Notifier) FailedToCreate(s scratch.Scratch) {
	n.logger.Warn("Failed to create scratch", scratchField(s))
}

func (n *Notifier) FailedToDelete(s scratch.Scratch) {
	n.logger.Warn("Failed to delete scratch", scratchField(s))
}

func (n *Notifier) FailedToAddText(s scratch.Scratch) {
	n.logger.Warn("Failed to add text to scratch", scratchField(s))
}

func (n *Notifier) ListeningToClipboard(listening bool) {
	if listening {
		n.logger.Info("Started listening to clipboard")
		return
	}
	n.logger.Info("Stopped listening to clipboard")
}

func (n *Notifier) MigratedScratchesToFiles() {
	n.logger.Info("Migrated scratches to files")
}

func (n *Notifier) FailedToMigrate(indexes []int) {
	n.logger.Warn("Failed to migrate scratches", zap.Ints("indexes", indexes))
}

func (n *Notifier) WillNotMigrate() {
	n.logger.Info("Scratches folder is not empty, skipping migration")
}

func (n *Notifier) FailedToPersist(err error) {
	n.logger.Error("Failed to save scratch config", zap.Error(err))
}

func scratchField(s scratch.Scratch) zap.Field {
	return zap.String("scratch", s.FileName())
}
