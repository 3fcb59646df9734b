package statusutil

import (
	"reflect"
	"testing"

	"checklist-cli/internal/model"
	"checklist-cli/internal/tree"
)

func TestRows(t *testing.T) {
	t.Parallel()
	root, err := tree.Parse([]byte(`{"|Before bed|": true, "teeth": true, "lights": {"hall": false}, "note": null}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	idx := tree.NewIndex(root)
	got := Rows(idx, tree.NewSet("teeth"))
	want := []model.Row{
		{ID: "|Before bed|", Name: "|Before bed|", Depth: 0, Kind: "item", Label: true, Completed: false},
		{ID: "teeth", Name: "teeth", Depth: 0, Kind: "item", Actionable: true, Checked: true, Completed: true},
		{ID: "lights", Name: "lights", Depth: 0, Kind: "group", Actionable: true, Completed: false},
		{ID: "lights::hall", Name: "hall", Depth: 1, Kind: "skipped", Completed: true},
		{ID: "note", Name: "note", Depth: 0, Kind: "note", Completed: true},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rows:\n got: %+v\nwant: %+v", got, want)
	}
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()
	root, err := tree.Parse([]byte(`{"a": true, "b": {"c": true, "d": true}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	idx := tree.NewIndex(root)
	checked := tree.NewSet("b::c", "b::d")
	got := NewSnapshot("x", idx, checked)

	if !reflect.DeepEqual(got.Order, []string{"a", "b", "b::c", "b::d"}) {
		t.Fatalf("Order: got %v", got.Order)
	}
	if !reflect.DeepEqual(got.Actionable, []string{"a", "b::c", "b::d"}) {
		t.Fatalf("Actionable: got %v", got.Actionable)
	}
	if !reflect.DeepEqual(got.Completed, []string{"b", "b::c", "b::d"}) {
		t.Fatalf("Completed: got %v", got.Completed)
	}
	if got.Progress.Complete {
		t.Fatalf("Progress: expected incomplete, got %+v", got.Progress)
	}
	if Done(idx, checked) {
		t.Fatalf("Done: expected false")
	}
	checked.Add("a")
	if !Done(idx, checked) {
		t.Fatalf("Done: expected true")
	}
}
