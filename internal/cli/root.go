package cli

import (
	"fmt"

	"github.com/morozRed/scratch/internal/logging"
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scratch",
		Short: "Keep an ordered list of scratch files in one folder",
		Long: `Scratch manages quick notes kept as plain files in one folder.

The list order, the default scratch and the clipboard options are stored
in a small JSON state file next to the settings. Files added or removed
outside scratch are picked up on the next command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			verbose, err := OptionalBoolFlag(cmd, "verbose", false)
			if err != nil {
				return err
			}
			l, err := logging.New(s.LogLevel, verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().String("config", "", "Settings file (default: $SCRATCH_CONFIG or the user config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	// Scratch Commands
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List scratches, marking the default one",
		Args:  cobra.NoArgs,
		RunE:  RunList,
	}
	listCmd.Flags().Bool("json", false, "Print machine-readable scratch list")

	openCmd := &cobra.Command{
		Use:   "open [file]",
		Short: "Print the path of a scratch, or of the default scratch",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunOpen,
	}
	openCmd.Flags().Bool("json", false, "Print machine-readable scratch entry")
	openCmd.Flags().BoolP("edit", "e", false, "Open the scratch in $VISUAL or $EDITOR")

	newCmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a scratch (default: the next free scratchN.txt)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunNew,
	}
	newCmd.Flags().Bool("json", false, "Print machine-readable scratch entry")
	newCmd.Flags().BoolP("edit", "e", false, "Open the scratch in $VISUAL or $EDITOR")

	renameCmd := &cobra.Command{
		Use:   "rename <file> <new-name>",
		Short: "Rename a scratch and its file",
		Args:  cobra.ExactArgs(2),
		RunE:  RunRename,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <file>",
		Short: "Delete a scratch and its file",
		Args:  cobra.ExactArgs(1),
		RunE:  RunDelete,
	}

	moveCmd := &cobra.Command{
		Use:   "move <file> up|down",
		Short: "Move a scratch one position, wrapping around the list",
		Args:  cobra.ExactArgs(2),
		RunE:  RunMove,
	}
	moveCmd.Flags().Bool("json", false, "Print machine-readable scratch list")

	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print the next free scratch name",
		Args:  cobra.NoArgs,
		RunE:  RunSuggest,
	}

	checkNameCmd := &cobra.Command{
		Use:   "check-name <name>",
		Short: "Check whether a name can be used for a new or renamed scratch",
		Args:  cobra.ExactArgs(1),
		RunE:  RunCheckName,
	}
	checkNameCmd.Flags().String("rename", "", "Check the name as a rename of this scratch")
	checkNameCmd.Flags().Bool("json", false, "Print machine-readable result")

	pasteCmd := &cobra.Command{
		Use:   "paste [text]",
		Short: "Add text to the default scratch (default: read stdin)",
		RunE:  RunPaste,
	}
	pasteCmd.Flags().Bool("from-clipboard", false, "Paste the current clipboard content")

	// Settings Commands
	defaultMeaningCmd := &cobra.Command{
		Use:   "default-meaning topmost|last-opened",
		Short: "Choose which scratch is the default one",
		Args:  cobra.ExactArgs(1),
		RunE:  RunDefaultMeaning,
	}

	appendTypeCmd := &cobra.Command{
		Use:   "append-type clipboard|new append|prepend",
		Short: "Choose where pasted text and new scratches are added",
		Args:  cobra.ExactArgs(2),
		RunE:  RunAppendType,
	}

	clipboardCmd := &cobra.Command{
		Use:   "clipboard [on|off]",
		Short: "Show or switch clipboard listening",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunClipboard,
	}

	listenCmd := &cobra.Command{
		Use:   "listen",
		Short: "Watch the folder and paste clipboard changes until interrupted",
		Args:  cobra.NoArgs,
		RunE:  RunListen,
	}

	// Setup Commands
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default scratches on first use",
		Args:  cobra.NoArgs,
		RunE:  RunInit,
	}

	importCmd := &cobra.Command{
		Use:   "import <files...>",
		Short: "Turn text files into scratches of an empty folder",
		Args:  cobra.MinimumNArgs(1),
		RunE:  RunImport,
	}

	relocateCmd := &cobra.Command{
		Use:   "relocate <folder>",
		Short: "Move all scratches to another existing folder",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRelocate,
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show folders, default scratch and clipboard options",
		Args:  cobra.NoArgs,
		RunE:  RunStatus,
	}
	statusCmd.Flags().Bool("json", false, "Print machine-readable status output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scratch %s\n", version)
		},
	}

	rootCmd.AddCommand(
		listCmd,
		openCmd,
		newCmd,
		renameCmd,
		deleteCmd,
		moveCmd,
		suggestCmd,
		checkNameCmd,
		pasteCmd,
		defaultMeaningCmd,
		appendTypeCmd,
		clipboardCmd,
		listenCmd,
		initCmd,
		importCmd,
		relocateCmd,
		statusCmd,
		versionCmd,
	)

	return rootCmd
}
