package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/morozRed/scratch/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RunListen keeps the list in sync with the folder and pastes clipboard changes
// into the default scratch while clipboard listening is on.
func RunListen(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.settings.Folder, 0755); err != nil {
		return fmt.Errorf("failed to create scratches folder: %w", err)
	}
	a.syncAtStart()

	folder, err := watch.NewFolderWatcher(a.settings.Folder, watch.DefaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("failed to create folder watcher: %w", err)
	}
	poller := watch.NewClipboardPoller(a.settings.ClipboardPollInterval, nil, logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer folder.Stop()
		if err := folder.Start(ctx); err != nil {
			return fmt.Errorf("failed to watch %s: %w", a.settings.Folder, err)
		}
		<-ctx.Done()
		return nil
	})
	if watch.Supported() {
		g.Go(func() error {
			return poller.Run(ctx)
		})
	} else {
		logger.Warn("Clipboard is not supported on this system, only watching the folder")
	}
	g.Go(func() error {
		return a.listen(ctx, folder.Changes(), poller.Texts())
	})

	fmt.Fprintf(os.Stderr, "Listening for changes in %s (Ctrl+C to stop)\n", a.settings.Folder)
	return g.Wait()
}

// syncAtStart brings the list up to date and reminds that clipboard listening is already on.
func (a *app) syncAtStart() {
	a.manager.Sync()
	if a.manager.ShouldListenToClipboard() {
		a.notifier.ListeningToClipboard(true)
	}
}

// listen is the only goroutine touching the manager while the producers run.
func (a *app) listen(ctx context.Context, changes <-chan struct{}, texts <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-changes:
			a.reload()
			scratches := a.manager.Sync()
			logger.Debug("Synced scratches with folder", zap.Int("scratches", len(scratches)))

		case text := <-texts:
			a.reload()
			if !a.manager.ShouldListenToClipboard() {
				continue
			}
			a.manager.PasteClipboardText(text)
		}

		if err := a.notifier.Err(); err != nil {
			logger.Debug("Intent failed", zap.Error(err))
		}
	}
}

// reload picks up settings changed by other scratch commands since listen started.
func (a *app) reload() {
	if err := a.manager.Reload(); err != nil {
		logger.Warn("Failed to reload scratch config", zap.Error(err))
	}
}
