package format

import (
	"bytes"
	"testing"

	"checklist-cli/internal/tree"
)

func TestWriteEDN_KeepsOrder(t *testing.T) {
	t.Parallel()

	root, err := tree.Parse([]byte(`{"z": true, "wind down": {"a": null}, "n": 1.5}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"data": root}, false); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := `{:data {:z true "wind down" {:a nil} :n 1.5}}` + "\n"
	if buf.String() != want {
		t.Fatalf("WriteEDN:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWriteEDN_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteEDN(&buf, map[string]any{"ids": []string{"a", "b"}, "empty": []string{}}, true); err != nil {
		t.Fatalf("WriteEDN: %v", err)
	}
	want := "{\n  :empty []\n  :ids [\n    \"a\"\n    \"b\"\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("WriteEDN pretty:\n got: %q\nwant: %q", buf.String(), want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, 1, "yaml", false); err == nil {
		t.Fatalf("expected error")
	}
	if err := Write(&buf, map[string]int{"a": 1}, "json", false); err != nil {
		t.Fatalf("Write json: %v", err)
	}
	if buf.String() != "{\"a\":1}\n" {
		t.Fatalf("Write json: got %q", buf.String())
	}
}
