package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jwebster45206/ravenlog/pkg/entity/entitytest"
	"github.com/jwebster45206/ravenlog/pkg/gamelog"
)

const sampleLog = `{"time":"2024-03-01T21:30:00Z","data":{"type":"turn-begin","turn":2}}

{"type":"support-declared","supporter":"stark","supported":null}
{"type":"support-declared","supporter":"tully","supported":null}
{"type":"dragon-hatched"}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	root := &cobra.Command{Use: "ravenlog", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("catalog", writeFile(t, "base.yaml", entitytest.CatalogYAML), "")
	root.AddCommand(cmd)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestReadLog(t *testing.T) {
	records, issues, err := readLog(strings.NewReader(sampleLog))
	if err != nil {
		t.Fatalf("readLog failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if !records[0].timed || records[1].timed {
		t.Error("Expected only the first record to carry a time")
	}
	if records[1].line != 3 {
		t.Errorf("Expected line 3, got %d", records[1].line)
	}
	if len(issues) != 1 || issues[0].line != 5 || !errors.Is(issues[0].err, gamelog.ErrUnknownKind) {
		t.Errorf("Expected one unknown-kind issue on line 5, got %v", issues)
	}
}

func TestValidateCommand(t *testing.T) {
	path := writeFile(t, "game.jsonl", sampleLog)
	out, _, err := runCommand(t, validateCmd(), "validate", path)
	if err == nil {
		t.Fatal("Expected validation to fail")
	}
	if !strings.Contains(out, "Errors (2)") || !strings.Contains(out, "line 4:") || !strings.Contains(out, "line 5:") {
		t.Errorf("Unexpected output:\n%s", out)
	}

	clean := writeFile(t, "clean.jsonl", `{"type":"turn-begin","turn":1}`+"\n")
	out, _, err = runCommand(t, validateCmd(), "validate", clean)
	if err != nil {
		t.Fatalf("Expected clean log to validate: %v", err)
	}
	if !strings.Contains(out, "1 records OK.") {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestNarrateCommand(t *testing.T) {
	path := writeFile(t, "game.jsonl", sampleLog)
	out, errOut, err := runCommand(t, narrateCmd(), "narrate", path)
	if err != nil {
		t.Fatalf("narrate failed: %v", err)
	}

	want := "21:30  === Turn 2 ===\n" +
		"Stark supported no-one.\n" +
		"[unreadable support-declared record]\n"
	if out != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, out)
	}
	if !strings.Contains(errOut, "skipped line 5") {
		t.Errorf("Expected skipped line on stderr, got %q", errOut)
	}
}
