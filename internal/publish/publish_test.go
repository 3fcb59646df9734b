package publish

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"checklist-cli/internal/tree"
)

func testIndex(t *testing.T) *tree.Index {
	t.Helper()
	root, err := tree.Parse([]byte(`{"|Bathroom|": true, "teeth": true, "floss": false, "lights": {"kitchen": true, "hall": true}, "alarm": "6:30", "note": null}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tree.NewIndex(root)
}

func TestRenderChecklistMarkdown(t *testing.T) {
	idx := testIndex(t)
	got, err := RenderChecklistMarkdown("night", idx, tree.NewSet("teeth", "lights::kitchen"), RenderOptions{Progress: true})
	if err != nil {
		t.Fatalf("RenderChecklistMarkdown: %v", err)
	}
	want := "# night\n\n" +
		"Progress: 2/4\n\n" +
		"- **Bathroom**\n" +
		"- [x] teeth\n" +
		"- lights\n" +
		"  - [x] kitchen\n" +
		"  - [ ] hall\n" +
		"- [ ] alarm: 6:30\n"
	if got != want {
		t.Fatalf("markdown:\n got: %q\nwant: %q", got, want)
	}

	withSkipped, err := RenderChecklistMarkdown("night", idx, nil, RenderOptions{IncludeSkipped: true})
	if err != nil {
		t.Fatalf("RenderChecklistMarkdown: %v", err)
	}
	for _, line := range []string{"- ~~floss~~\n", "- _note_\n"} {
		if !strings.Contains(withSkipped, line) {
			t.Fatalf("expected %q in:\n%s", line, withSkipped)
		}
	}
}

func TestWriteChecklist_RefusesOverwrite(t *testing.T) {
	idx := testIndex(t)
	dir := t.TempDir()

	res, err := WriteChecklist("night", idx, nil, dir, WriteOptions{})
	if err != nil {
		t.Fatalf("WriteChecklist: %v", err)
	}
	want := filepath.Join(dir, "night.md")
	if len(res.Written) != 1 || res.Written[0] != want {
		t.Fatalf("written: got %v, want [%s]", res.Written, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("stat: %v", err)
	}
	if _, err := WriteChecklist("night", idx, nil, dir, WriteOptions{}); err == nil {
		t.Fatalf("expected error on existing file")
	}
	if _, err := WriteChecklist("night", idx, nil, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("WriteChecklist overwrite: %v", err)
	}
}
