package cli

import (
	"fmt"
	"strings"

	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/watch"
	"github.com/spf13/cobra"
)

type StatusSummary struct {
	Mode                  string `json:"mode"`
	SettingsFile          string `json:"settings_file"`
	Folder                string `json:"folder"`
	StateFile             string `json:"state_file"`
	Scratches             int    `json:"scratches"`
	Default               string `json:"default,omitempty"`
	LastOpened            string `json:"last_opened,omitempty"`
	DefaultScratchMeaning string `json:"default_scratch_meaning"`
	ListenToClipboard     bool   `json:"listen_to_clipboard"`
	ClipboardAppendType   string `json:"clipboard_append_type"`
	NewScratchAppendType  string `json:"new_scratch_append_type"`
	ClipboardSupported    bool   `json:"clipboard_supported"`
	NeedsMigration        bool   `json:"needs_migration"`
}

func RunStatus(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()
	config := a.manager.Config()

	summary := StatusSummary{
		Mode:                  "status",
		SettingsFile:          a.settings.Path(),
		Folder:                a.settings.Folder,
		StateFile:             a.settings.StateFile,
		Scratches:             len(config.Scratches),
		DefaultScratchMeaning: config.DefaultScratchMeaning.String(),
		ListenToClipboard:     config.ListenToClipboard,
		ClipboardAppendType:   config.ClipboardAppendType.String(),
		NewScratchAppendType:  config.NewScratchAppendType.String(),
		ClipboardSupported:    watch.Supported(),
		NeedsMigration:        a.store.NeedsMigration(),
	}
	if len(config.Scratches) > 0 {
		summary.Default = config.DefaultScratch().FileName()
	}
	if config.LastOpened != nil {
		summary.LastOpened = config.LastOpened.FileName()
	}

	if err := PrintStatus(summary, a.host.asJSON); err != nil {
		return err
	}
	return a.notifier.Err()
}

func PrintStatus(summary StatusSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	fmt.Printf("settings: %s\n", summary.SettingsFile)
	fmt.Printf("folder: %s\n", summary.Folder)
	fmt.Printf("state: %s\n", summary.StateFile)
	fmt.Printf("scratches: %d\n", summary.Scratches)
	if summary.Default != "" {
		fmt.Printf("default: %s (%s)\n", summary.Default, strings.ToLower(summary.DefaultScratchMeaning))
	}
	if summary.LastOpened != "" {
		fmt.Printf("last opened: %s\n", summary.LastOpened)
	}
	clipboard := onOff(summary.ListenToClipboard)
	if !summary.ClipboardSupported {
		clipboard += " (clipboard not supported on this system)"
	}
	fmt.Printf("clipboard: %s, append=%s\n", clipboard, strings.ToLower(summary.ClipboardAppendType))
	fmt.Printf("new scratches: %s\n", strings.ToLower(summary.NewScratchAppendType))
	if summary.NeedsMigration {
		fmt.Println("hint: run `scratch init` to create the default scratches")
	}
	return nil
}
