package watch

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

const DefaultPollInterval = 500 * time.Millisecond

// ReadFunc returns the current clipboard text.
type ReadFunc func() (string, error)

// ClipboardPoller emits clipboard text whenever it differs from the previous read.
// The first read only sets the baseline.
type ClipboardPoller struct {
	read     ReadFunc
	interval time.Duration
	logger   *zap.Logger
	texts    chan string
}

// NewClipboardPoller reads the system clipboard when read is nil.
func NewClipboardPoller(interval time.Duration, read ReadFunc, logger *zap.Logger) *ClipboardPoller {
	if read == nil {
		read = clipboard.ReadAll
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClipboardPoller{
		read:     read,
		interval: interval,
		logger:   logger,
		texts:    make(chan string),
	}
}

// Supported reports whether the system clipboard can be read on this machine.
func Supported() bool {
	return !clipboard.Unsupported
}

func (p *ClipboardPoller) Texts() <-chan string {
	return p.texts
}

// Run polls until ctx is done. It never returns a non-nil error; read failures are logged.
func (p *ClipboardPoller) Run(ctx context.Context) error {
	last, err := p.read()
	if err != nil {
		p.logger.Debug("Failed to read clipboard", zap.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		text, err := p.read()
		if err != nil {
			p.logger.Debug("Failed to read clipboard", zap.Error(err))
			continue
		}
		if text == last {
			continue
		}
		last = text
		if text == "" {
			continue
		}

		select {
		case p.texts <- text:
		case <-ctx.Done():
			return nil
		}
	}
}
