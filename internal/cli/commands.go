package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/morozRed/scratch/internal/fileutil"
	"github.com/morozRed/scratch/internal/scratch"
	"github.com/spf13/cobra"
)

func RunList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.List()
	return a.notifier.Err()
}

func RunOpen(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	if len(args) == 0 {
		a.manager.OpenDefault()
		if a.host.suggested != "" {
			a.manager.Create(a.host.suggested)
		}
	} else {
		s, err := a.find(args[0])
		if err != nil {
			return err
		}
		a.manager.Open(s)
	}
	a.recordOpened()
	if err := a.notifier.Err(); err != nil {
		return err
	}
	return a.edit(cmd)
}

func RunNew(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	name := ""
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	} else {
		a.manager.EnterNewName()
		if a.host.suggested == "" {
			return errors.New("no free scratch name left, pass a name explicitly")
		}
		name = a.host.suggested
	}

	if answer := a.manager.CanCreate(name); answer.IsNo() {
		return fmt.Errorf("cannot create %q: %s", name, answer.Explanation)
	}
	a.manager.Create(name)
	a.recordOpened()
	if err := a.notifier.Err(); err != nil {
		return err
	}
	return a.edit(cmd)
}

func RunRename(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	s, err := a.find(args[0])
	if err != nil {
		return err
	}
	newName := strings.TrimSpace(args[1])
	if answer := a.manager.CanRename(s, newName); answer.IsNo() {
		return fmt.Errorf("cannot rename %s to %q: %s", s.FileName(), newName, answer.Explanation)
	}
	a.manager.Rename(s, newName)
	if err := a.notifier.Err(); err != nil {
		return err
	}
	fmt.Printf("Renamed %s to %s\n", s.FileName(), scratch.Parse(newName).FileName())
	return nil
}

func RunDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	s, err := a.find(args[0])
	if err != nil {
		return err
	}
	a.manager.Delete(s)
	if err := a.notifier.Err(); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", s.FileName())
	return nil
}

func RunMove(cmd *cobra.Command, args []string) error {
	shift, err := ParseShift(args[1])
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	s, err := a.find(args[0])
	if err != nil {
		return err
	}
	a.manager.Move(s, shift)
	a.host.DisplayScratches(a.manager.Config().Scratches)
	return a.notifier.Err()
}

func RunSuggest(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	name, ok := a.manager.SuggestName()
	if !ok {
		return errors.New("no free scratch name left")
	}
	fmt.Println(name)
	return a.notifier.Err()
}

type nameCheck struct {
	Name        string `json:"name"`
	Valid       bool   `json:"valid"`
	Explanation string `json:"explanation,omitempty"`
}

func RunCheckName(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()

	renaming, err := OptionalStringFlag(cmd, "rename")
	if err != nil {
		return err
	}

	name := strings.TrimSpace(args[0])
	var answer scratch.Answer
	if renaming != "" {
		s, err := a.find(renaming)
		if err != nil {
			return err
		}
		answer = a.manager.CanRename(s, name)
	} else {
		answer = a.manager.CanCreate(name)
	}

	if a.host.asJSON {
		return fileutil.PrintJSON(nameCheck{Name: name, Valid: answer.IsYes, Explanation: answer.Explanation})
	}
	fmt.Println(answer.String())
	return nil
}

func RunDefaultMeaning(cmd *cobra.Command, args []string) error {
	meaning, err := scratch.ParseDefaultScratchMeaning(args[0])
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.SetDefaultMeaning(meaning)
	if err := a.notifier.Err(); err != nil {
		return err
	}
	fmt.Printf("Default scratch: %s\n", strings.ToLower(meaning.String()))
	return nil
}

func RunAppendType(cmd *cobra.Command, args []string) error {
	appendType, err := scratch.ParseAppendType(args[1])
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "clipboard":
		a.manager.SetClipboardAppendType(appendType)
	case "new":
		a.manager.SetNewScratchAppendType(appendType)
	default:
		return fmt.Errorf("unsupported target %q (supported: clipboard, new)", args[0])
	}
	if err := a.notifier.Err(); err != nil {
		return err
	}
	fmt.Printf("%s append type: %s\n", strings.ToLower(args[0]), strings.ToLower(appendType.String()))
	return nil
}

func RunClipboard(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Printf("Listening to clipboard: %s\n", onOff(a.manager.ShouldListenToClipboard()))
		return nil
	}
	listen, err := ParseSwitch(args[0])
	if err != nil {
		return err
	}
	a.manager.SetListenToClipboard(listen)
	if err := a.notifier.Err(); err != nil {
		return err
	}
	fmt.Printf("Listening to clipboard: %s\n", onOff(listen))
	return nil
}

func RunPaste(cmd *cobra.Command, args []string) error {
	text, err := pasteText(cmd, args)
	if err != nil {
		return err
	}
	if text == "" {
		return errors.New("nothing to paste")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	a.manager.Sync()
	a.manager.PasteClipboardText(text)
	return a.notifier.Err()
}

// pasteText takes the arguments, the system clipboard or stdin, in that order.
func pasteText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	fromClipboard, err := OptionalBoolFlag(cmd, "from-clipboard", false)
	if err != nil {
		return "", err
	}
	if fromClipboard {
		text, err := clipboard.ReadAll()
		if err != nil {
			return "", fmt.Errorf("failed to read clipboard: %w", err)
		}
		return text, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// edit opens the last opened scratch in $VISUAL or $EDITOR when --edit is set.
func (a *app) edit(cmd *cobra.Command) error {
	enabled, err := OptionalBoolFlag(cmd, "edit", false)
	if err != nil || !enabled || a.host.opened == nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("VISUAL"))
	if editor == "" {
		editor = strings.TrimSpace(os.Getenv("EDITOR"))
	}
	if editor == "" {
		return errors.New("set $VISUAL or $EDITOR to use --edit")
	}

	fields := strings.Fields(editor)
	fields = append(fields, a.disk.Path(a.host.opened.FileName()))
	c := exec.Command(fields[0], fields[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
