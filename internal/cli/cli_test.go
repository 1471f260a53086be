package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/morozRed/scratch/internal/fsys"
	"github.com/morozRed/scratch/internal/settings"
	"github.com/morozRed/scratch/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type workspace struct {
	root      string
	settings  string
	folder    string
	stateFile string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	root := t.TempDir()
	ws := workspace{
		root:      root,
		settings:  filepath.Join(root, settings.SettingsFile),
		folder:    filepath.Join(root, settings.ScratchesDir),
		stateFile: filepath.Join(root, state.StateFile),
	}
	t.Setenv(settings.EnvConfigPath, ws.settings)
	t.Setenv(settings.EnvFolder, "")
	return ws
}

func TestInitSeedsDefaultScratchesOnce(t *testing.T) {
	ws := newWorkspace(t)

	out := captureStdout(t, func() {
		if err := RunInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("RunInit failed: %v", err)
		}
	})
	if !strings.Contains(out, "Initialized scratches at "+ws.folder) {
		t.Fatalf("unexpected init output:\n%s", out)
	}
	for _, name := range []string{"scratch.txt", "scratch2.txt", "scratch3.xml", "scratch4.xml"} {
		assertExists(t, filepath.Join(ws.folder, name))
	}
	assertExists(t, ws.stateFile)

	out = captureStdout(t, func() {
		if err := RunInit(&cobra.Command{}, nil); err != nil {
			t.Fatalf("second RunInit failed: %v", err)
		}
	})
	if !strings.Contains(out, "already initialized") {
		t.Fatalf("expected second init to be a no-op, got:\n%s", out)
	}
}

func TestNewRenameDeleteFlow(t *testing.T) {
	ws := newWorkspace(t)

	out := captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"todo.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
	})
	if strings.TrimSpace(out) != filepath.Join(ws.folder, "todo.txt") {
		t.Fatalf("expected new to print the scratch path, got %q", out)
	}

	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, nil); err != nil {
			t.Fatalf("RunNew with suggestion failed: %v", err)
		}
	})
	assertExists(t, filepath.Join(ws.folder, "scratch.txt"))

	captureStdout(t, func() {
		if err := RunRename(&cobra.Command{}, []string{"todo.txt", "&ideas.md"}); err != nil {
			t.Fatalf("RunRename failed: %v", err)
		}
		if err := RunDelete(&cobra.Command{}, []string{"scratch.txt"}); err != nil {
			t.Fatalf("RunDelete failed: %v", err)
		}
	})
	assertNotExists(t, filepath.Join(ws.folder, "todo.txt"))
	assertNotExists(t, filepath.Join(ws.folder, "scratch.txt"))
	assertExists(t, filepath.Join(ws.folder, "ideas.md"))

	entries := listEntries(t)
	if len(entries) != 1 || entries[0].DisplayName != "&ideas.md" || !entries[0].Default {
		t.Fatalf("unexpected entries after rename and delete: %+v", entries)
	}
}

func TestNewRejectsDuplicateName(t *testing.T) {
	newWorkspace(t)

	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"todo.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
	})
	err := RunNew(&cobra.Command{}, []string{"&todo.txt"})
	if err == nil || !strings.Contains(err.Error(), "There is already a scratch with this name") {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
}

func TestListPicksUpExternalFiles(t *testing.T) {
	ws := newWorkspace(t)
	mustWriteFile(t, filepath.Join(ws.folder, "b.txt"), "")
	mustWriteFile(t, filepath.Join(ws.folder, "a.md"), "")
	mustWriteFile(t, filepath.Join(ws.folder, ".hidden.txt"), "")
	mustWriteFile(t, filepath.Join(ws.folder, "a.md.swp"), "")
	mustWriteFile(t, filepath.Join(ws.folder, "notes.log"), "")
	mustWriteFile(t, filepath.Join(ws.folder, IgnoreFile), "*.log\n")

	entries := listEntries(t)
	got := make([]string, 0, len(entries))
	for _, entry := range entries {
		got = append(got, entry.FileName)
	}
	if strings.Join(got, ",") != "a.md,b.txt" {
		t.Fatalf("expected visible files in listing order, got %v", got)
	}
	if !entries[0].Default || entries[1].Default {
		t.Fatalf("expected topmost scratch to be the default, got %+v", entries)
	}
}

func TestMoveAndLastOpenedDefault(t *testing.T) {
	newWorkspace(t)
	captureStdout(t, func() {
		for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
			if err := RunNew(&cobra.Command{}, []string{name}); err != nil {
				t.Fatalf("RunNew %s failed: %v", name, err)
			}
		}
	})

	moveCmd := newJSONCmdForTest()
	out := captureStdout(t, func() {
		if err := RunMove(moveCmd, []string{"c.txt", "up"}); err != nil {
			t.Fatalf("RunMove failed: %v", err)
		}
	})
	var moved []ScratchEntry
	if err := json.Unmarshal([]byte(out), &moved); err != nil {
		t.Fatalf("failed to decode move output: %v\n%s", err, out)
	}
	if names := entryNames(moved); names != "a.txt,c.txt,b.txt" {
		t.Fatalf("unexpected order after move: %s", names)
	}

	captureStdout(t, func() {
		if err := RunDefaultMeaning(&cobra.Command{}, []string{"last-opened"}); err != nil {
			t.Fatalf("RunDefaultMeaning failed: %v", err)
		}
		if err := RunOpen(&cobra.Command{}, []string{"b.txt"}); err != nil {
			t.Fatalf("RunOpen failed: %v", err)
		}
	})

	summary := statusSummary(t)
	if summary.Default != "b.txt" || summary.LastOpened != "b.txt" {
		t.Fatalf("expected b.txt to be default and last opened, got %+v", summary)
	}
	if summary.DefaultScratchMeaning != "LAST_OPENED" {
		t.Fatalf("expected last opened meaning, got %q", summary.DefaultScratchMeaning)
	}
}

func TestMoveRejectsUnknownDirection(t *testing.T) {
	newWorkspace(t)
	if err := RunMove(&cobra.Command{}, []string{"a.txt", "sideways"}); err == nil {
		t.Fatalf("expected unsupported direction error")
	}
}

func TestOpenDefaultCreatesSuggestedScratchWhenEmpty(t *testing.T) {
	ws := newWorkspace(t)

	out := captureStdout(t, func() {
		if err := RunOpen(&cobra.Command{}, nil); err != nil {
			t.Fatalf("RunOpen failed: %v", err)
		}
	})
	if strings.TrimSpace(out) != filepath.Join(ws.folder, "scratch.txt") {
		t.Fatalf("expected suggested scratch to be opened, got %q", out)
	}
}

func TestOpenUnknownScratchFails(t *testing.T) {
	newWorkspace(t)
	err := RunOpen(&cobra.Command{}, []string{"missing.txt"})
	if err == nil || !strings.Contains(err.Error(), `no scratch named "missing.txt"`) {
		t.Fatalf("expected unknown scratch error, got %v", err)
	}
}

func TestPasteFollowsClipboardAppendType(t *testing.T) {
	ws := newWorkspace(t)
	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"notes.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
		if err := RunPaste(&cobra.Command{}, []string{"hello"}); err != nil {
			t.Fatalf("RunPaste failed: %v", err)
		}
		if err := RunPaste(&cobra.Command{}, []string{"big", "world"}); err != nil {
			t.Fatalf("second RunPaste failed: %v", err)
		}
		if err := RunAppendType(&cobra.Command{}, []string{"clipboard", "prepend"}); err != nil {
			t.Fatalf("RunAppendType failed: %v", err)
		}
		if err := RunPaste(&cobra.Command{}, []string{"first"}); err != nil {
			t.Fatalf("third RunPaste failed: %v", err)
		}
	})

	data, err := os.ReadFile(filepath.Join(ws.folder, "notes.txt"))
	if err != nil {
		t.Fatalf("failed to read scratch: %v", err)
	}
	if string(data) != "first\nhello\nbig world" {
		t.Fatalf("unexpected scratch content %q", string(data))
	}
}

func TestPasteWithoutScratchesFails(t *testing.T) {
	newWorkspace(t)
	err := RunPaste(&cobra.Command{}, []string{"hello"})
	if err == nil || !strings.Contains(err.Error(), "failed to open default scratch") {
		t.Fatalf("expected default scratch error, got %v", err)
	}
}

func TestAppendTypeRejectsUnknownTarget(t *testing.T) {
	newWorkspace(t)
	if err := RunAppendType(&cobra.Command{}, []string{"paste", "append"}); err == nil {
		t.Fatalf("expected unsupported target error")
	}
}

func TestCheckNameJSON(t *testing.T) {
	newWorkspace(t)
	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"todo.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
	})

	tests := []struct {
		name   string
		rename string
		valid  bool
	}{
		{name: "ideas.txt", valid: true},
		{name: "todo.txt", valid: false},
		{name: "a/b.txt", valid: false},
		{name: "&todo.txt", rename: "todo.txt", valid: true},
	}
	for _, tt := range tests {
		cmd := newJSONCmdForTest()
		cmd.Flags().String("rename", "", "")
		if tt.rename != "" {
			mustSetFlag(t, cmd, "rename", tt.rename)
		}
		out := captureStdout(t, func() {
			if err := RunCheckName(cmd, []string{tt.name}); err != nil {
				t.Fatalf("RunCheckName %q failed: %v", tt.name, err)
			}
		})
		var check nameCheck
		if err := json.Unmarshal([]byte(out), &check); err != nil {
			t.Fatalf("failed to decode check output: %v\n%s", err, out)
		}
		if check.Valid != tt.valid {
			t.Fatalf("check-name %q: expected valid=%v, got %+v", tt.name, tt.valid, check)
		}
		if !check.Valid && check.Explanation == "" {
			t.Fatalf("check-name %q: expected an explanation", tt.name)
		}
	}
}

func TestClipboardSwitchIsPersisted(t *testing.T) {
	newWorkspace(t)

	out := captureStdout(t, func() {
		if err := RunClipboard(&cobra.Command{}, []string{"on"}); err != nil {
			t.Fatalf("RunClipboard failed: %v", err)
		}
		if err := RunClipboard(&cobra.Command{}, nil); err != nil {
			t.Fatalf("RunClipboard status failed: %v", err)
		}
	})
	if strings.Count(out, "Listening to clipboard: on") != 2 {
		t.Fatalf("unexpected clipboard output:\n%s", out)
	}
	if !statusSummary(t).ListenToClipboard {
		t.Fatalf("expected listening flag in status")
	}
	if err := RunClipboard(&cobra.Command{}, []string{"maybe"}); err == nil {
		t.Fatalf("expected invalid switch error")
	}
}

func TestImportCreatesScratchesFromFiles(t *testing.T) {
	ws := newWorkspace(t)
	first := filepath.Join(ws.root, "first.txt")
	second := filepath.Join(ws.root, "second.txt")
	mustWriteFile(t, first, "one")
	mustWriteFile(t, second, "two")

	captureStdout(t, func() {
		if err := RunImport(&cobra.Command{}, []string{first, second, first}); err != nil {
			t.Fatalf("RunImport failed: %v", err)
		}
	})

	for name, want := range map[string]string{"scratch.txt": "one", "scratch2.txt": "two"} {
		data, err := os.ReadFile(filepath.Join(ws.folder, name))
		if err != nil {
			t.Fatalf("failed to read %s: %v", name, err)
		}
		if string(data) != want {
			t.Fatalf("expected %s to contain %q, got %q", name, want, string(data))
		}
	}
	if statusSummary(t).NeedsMigration {
		t.Fatalf("expected import to mark the state migrated")
	}
}

func TestRelocateMovesScratchesAndSavesSettings(t *testing.T) {
	ws := newWorkspace(t)
	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"todo.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
	})

	err := RunRelocate(&cobra.Command{}, []string{filepath.Join(ws.root, "missing")})
	if !errors.Is(err, fsys.ErrNoTargetFolder) {
		t.Fatalf("expected missing target error, got %v", err)
	}

	target := filepath.Join(ws.root, "elsewhere")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatalf("failed to create target: %v", err)
	}
	captureStdout(t, func() {
		if err := RunRelocate(&cobra.Command{}, []string{target}); err != nil {
			t.Fatalf("RunRelocate failed: %v", err)
		}
	})
	assertNotExists(t, filepath.Join(ws.folder, "todo.txt"))
	assertExists(t, filepath.Join(target, "todo.txt"))

	loaded, err := settings.Load(ws.settings)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if loaded.Folder != target {
		t.Fatalf("expected settings folder %s, got %s", target, loaded.Folder)
	}
	if names := entryNames(listEntries(t)); names != "todo.txt" {
		t.Fatalf("expected relocated scratch to be listed, got %s", names)
	}
}

func TestRelocateKeepsSettingsWhenMoveFails(t *testing.T) {
	ws := newWorkspace(t)
	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"todo.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
	})

	target := filepath.Join(ws.root, "elsewhere")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatalf("failed to create target: %v", err)
	}
	original := moveScratches
	moveScratches = func(fileNames []string, fromDir, toDir string) error {
		return fmt.Errorf("failed to move files: %s", strings.Join(fileNames, ", "))
	}
	t.Cleanup(func() { moveScratches = original })

	err := RunRelocate(&cobra.Command{}, []string{target})
	if err == nil || !strings.Contains(err.Error(), "failed to move files: todo.txt") {
		t.Fatalf("expected move failure, got %v", err)
	}

	loaded, err := settings.Load(ws.settings)
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if loaded.Folder != ws.folder {
		t.Fatalf("expected settings folder to stay %s, got %s", ws.folder, loaded.Folder)
	}
	assertExists(t, filepath.Join(ws.folder, "todo.txt"))
	if names := entryNames(listEntries(t)); names != "todo.txt" {
		t.Fatalf("expected scratch list to be kept, got %s", names)
	}
}

func TestCorruptStateFallsBackToDefaults(t *testing.T) {
	ws := newWorkspace(t)
	mustWriteFile(t, ws.stateFile, `{"scratches": [`)
	mustWriteFile(t, filepath.Join(ws.folder, "a.txt"), "")

	if names := entryNames(listEntries(t)); names != "a.txt" {
		t.Fatalf("expected listing after corrupt state, got %s", names)
	}
	if _, err := state.Load(ws.stateFile); err != nil {
		t.Fatalf("expected state file to be rewritten, got %v", err)
	}
}

func TestListenLoopSyncsAndPastesOnlyWhileListening(t *testing.T) {
	ws := newWorkspace(t)
	captureStdout(t, func() {
		if err := RunNew(&cobra.Command{}, []string{"notes.txt"}); err != nil {
			t.Fatalf("RunNew failed: %v", err)
		}
	})

	a, err := openApp(&cobra.Command{})
	if err != nil {
		t.Fatalf("openApp failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{})
	texts := make(chan string)
	done := make(chan error, 1)
	go func() { done <- a.listen(ctx, changes, texts) }()

	texts <- "ignored"
	changes <- struct{}{}

	captureStdout(t, func() {
		if err := RunClipboard(&cobra.Command{}, []string{"on"}); err != nil {
			t.Fatalf("RunClipboard failed: %v", err)
		}
	})
	mustWriteFile(t, filepath.Join(ws.folder, "later.txt"), "")

	texts <- "kept"
	changes <- struct{}{}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("listen returned %v", err)
	}

	data, err := os.ReadFile(filepath.Join(ws.folder, "notes.txt"))
	if err != nil {
		t.Fatalf("failed to read scratch: %v", err)
	}
	if string(data) != "kept" {
		t.Fatalf("expected only text seen while listening, got %q", string(data))
	}
	if names := entryNames(a.host.entries(a.manager.Config().Scratches)); names != "notes.txt,later.txt" {
		t.Fatalf("expected folder change to be synced, got %s", names)
	}
}

func TestSyncAtStartRemindsClipboardListening(t *testing.T) {
	newWorkspace(t)
	core, logs := observer.New(zap.InfoLevel)
	original := logger
	logger = zap.New(core)
	t.Cleanup(func() { logger = original })

	a, err := openApp(&cobra.Command{})
	if err != nil {
		t.Fatalf("openApp failed: %v", err)
	}
	a.syncAtStart()
	if n := logs.FilterMessage("Started listening to clipboard").Len(); n != 0 {
		t.Fatalf("expected no reminder while clipboard listening is off, got %d", n)
	}

	captureStdout(t, func() {
		if err := RunClipboard(&cobra.Command{}, []string{"on"}); err != nil {
			t.Fatalf("RunClipboard failed: %v", err)
		}
	})
	logs.TakeAll()

	a, err = openApp(&cobra.Command{})
	if err != nil {
		t.Fatalf("openApp failed: %v", err)
	}
	a.syncAtStart()
	if n := logs.FilterMessage("Started listening to clipboard").Len(); n != 1 {
		t.Fatalf("expected one reminder at start, got %d", n)
	}
}

func TestRenderScratchList(t *testing.T) {
	out := renderScratchList([]ScratchEntry{
		{Index: 1, FileName: "a.txt"},
		{Index: 2, FileName: "b.txt", Default: true},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", out)
	}
	if !strings.Contains(lines[0], "a.txt") || strings.Contains(lines[0], "*") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "b.txt") || !strings.Contains(lines[1], "*") {
		t.Fatalf("expected default marker on second line, got %q", lines[1])
	}

	if !strings.Contains(renderScratchList(nil), "no scratches yet") {
		t.Fatalf("expected empty list hint")
	}
}

func TestParseShiftAndSwitch(t *testing.T) {
	if shift, err := ParseShift(" UP "); err != nil || shift != -1 {
		t.Fatalf("expected up to map to -1, got %d (%v)", shift, err)
	}
	if shift, err := ParseShift("down"); err != nil || shift != 1 {
		t.Fatalf("expected down to map to 1, got %d (%v)", shift, err)
	}
	if on, err := ParseSwitch("Off"); err != nil || on {
		t.Fatalf("expected off to parse, got %v (%v)", on, err)
	}
}

func listEntries(t *testing.T) []ScratchEntry {
	t.Helper()
	out := captureStdout(t, func() {
		if err := RunList(newJSONCmdForTest(), nil); err != nil {
			t.Fatalf("RunList failed: %v", err)
		}
	})
	var entries []ScratchEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("failed to decode list output: %v\n%s", err, out)
	}
	return entries
}

func statusSummary(t *testing.T) StatusSummary {
	t.Helper()
	out := captureStdout(t, func() {
		if err := RunStatus(newJSONCmdForTest(), nil); err != nil {
			t.Fatalf("RunStatus failed: %v", err)
		}
	})
	var summary StatusSummary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("failed to decode status output: %v\n%s", err, out)
	}
	return summary
}

func entryNames(entries []ScratchEntry) string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.FileName)
	}
	return strings.Join(names, ",")
}

func newJSONCmdForTest() *cobra.Command {
	cmd := &cobra.Command{}
	cmd.Flags().Bool("json", false, "")
	if err := cmd.Flags().Set("json", "true"); err != nil {
		panic(err)
	}
	return cmd
}

func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
}

func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected %s to not exist", path)
	} else if !os.IsNotExist(err) {
		t.Fatalf("expected %s to be absent: %v", path, err)
	}
}

func mustSetFlag(t *testing.T, cmd *cobra.Command, key, value string) {
	t.Helper()
	if err := cmd.Flags().Set(key, value); err != nil {
		t.Fatalf("failed to set --%s=%s: %v", key, value, err)
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	original := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create stdout pipe: %v", err)
	}
	os.Stdout = writer
	defer func() {
		os.Stdout = original
		_ = writer.Close()
		_ = reader.Close()
	}()

	fn()

	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close stdout writer: %v", err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read captured stdout: %v", err)
	}
	return string(data)
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
