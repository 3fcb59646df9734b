package tree

import (
	"reflect"
	"testing"
)

func TestIsCompleted_InertAlwaysComplete(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"skip": false, "note": null}`)
	for _, id := range []string{"skip", "note"} {
		if IsActionable(id, root) {
			t.Fatalf("%s should not be actionable", id)
		}
		if !IsCompletedID(id, nil, root) {
			t.Fatalf("%s should be complete with an empty checked-set", id)
		}
		if !IsCompletedID(id, NewSet(id), root) {
			t.Fatalf("%s should be complete when checked", id)
		}
	}
}

func TestIsCompleted_Leaf(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"task": true, "label": "opaque"}`)
	checked := NewSet()
	if IsCompleted(True(), []string{"task"}, checked, root) {
		t.Fatalf("unchecked leaf should not be complete")
	}
	checked.Add("task")
	if !IsCompleted(True(), []string{"task"}, checked, root) {
		t.Fatalf("checked leaf should be complete")
	}
	if IsCompletedID("label", checked, root) {
		t.Fatalf("unchecked scalar leaf should not be complete")
	}
	if !IsCompletedID("label", NewSet("label"), root) {
		t.Fatalf("checked scalar leaf should be complete")
	}
}

func TestIsCompleted_AllNullGroupNeedsExplicitCheck(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"question": {"note1": null, "note2": null}}`)
	q, _ := Resolve(root, []string{"question"})
	if IsCompleted(q, []string{"question"}, NewSet(), root) {
		t.Fatalf("should not be completed without explicit check")
	}
	if !IsCompleted(q, []string{"question"}, NewSet("question"), root) {
		t.Fatalf("should be completed when explicitly checked")
	}
}

func TestIsCompleted_GroupRollup(t *testing.T) {
	t.Parallel()

	root := mustParse(t, nightJSON)
	checked := NewSet("wind down (9:15)::charge earbuds")
	if IsCompletedID("wind down (9:15)", checked, root) {
		t.Fatalf("group with one unchecked child should not be complete")
	}
	checked.Add("wind down (9:15)::moisturization")
	if !IsCompletedID("wind down (9:15)", checked, root) {
		t.Fatalf("group with every child checked should be complete")
	}

	if IsCompletedID("reflect (9:25)", NewSet("reflect (9:25)::anything else notable"), root) {
		t.Fatalf("reflect should wait for the actionable note group")
	}
	if !IsCompletedID("reflect (9:25)", NewSet("reflect (9:25)::anything else notable", "reflect (9:25)::how was today?"), root) {
		t.Fatalf("reflect should be complete")
	}
	if !IsCompletedID("reflect (9:25)", NewSet("reflect (9:25)"), root) {
		t.Fatalf("explicit check on a group should short-circuit")
	}
}

func TestIsCompleted_GroupEdges(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{
		"empty": {},
		"onlyMeta": {"_checkable": true},
		"forced": {"_checkable": true, "a": true},
		"| heading |": {"a": null}
	}`)
	if !IsCompletedID("empty", nil, root) {
		t.Fatalf("empty mapping is vacuously complete")
	}
	if !IsCompletedID("onlyMeta", nil, root) {
		t.Fatalf("group without children is vacuously complete")
	}
	if IsCompletedID("forced", NewSet("forced::a"), root) {
		t.Fatalf("_checkable group must be checked explicitly")
	}
	if !IsCompletedID("forced", NewSet("forced"), root) {
		t.Fatalf("_checkable group should complete when checked")
	}
	if !IsCompletedID("| heading |", nil, root) {
		t.Fatalf("label group over inert children rolls up to complete")
	}
	if IsCompletedID("missing", NewSet("missing"), root) {
		t.Fatalf("unresolved ids are never complete")
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"A": true, "B": {"c": null, "d": null}, "E": true, "F": false}`)
	got := Progress(root, NewSet("A", "B"))
	want := Summary{Total: 3, Done: 2, Complete: false}
	if got != want {
		t.Fatalf("Progress: got %#v want %#v", got, want)
	}
	got = Progress(root, NewSet("A", "B", "E"))
	want = Summary{Total: 3, Done: 3, Complete: true}
	if got != want {
		t.Fatalf("Progress: got %#v want %#v", got, want)
	}
}

func TestProgress_LabelLeavesDoNotBlockCompletion(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"|Bathroom|": true, "teeth": true, "lights": {"| note |": "off", "hall": true}}`)
	got := Progress(root, NewSet("teeth"))
	if want := (Summary{Total: 2, Done: 1, Complete: false}); got != want {
		t.Fatalf("Progress: got %#v want %#v", got, want)
	}
	got = Progress(root, NewSet("teeth", "lights::hall"))
	if want := (Summary{Total: 2, Done: 2, Complete: true}); got != want {
		t.Fatalf("Progress: got %#v want %#v", got, want)
	}
	// The label itself still only completes by a check it can never receive.
	if IsCompletedID("|Bathroom|", NewSet("teeth"), root) {
		t.Fatalf("IsCompletedID(|Bathroom|): got true")
	}
}

func TestSetIDs_TreeOrderFirst(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"A": true, "B": true}`)
	got := NewSet("B", "A", "gone").IDs(root)
	if want := []string{"A", "B", "gone"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs: got %#v want %#v", got, want)
	}
}

func TestMoveForwardBackward(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"A": true, "B": {"c": null, "d": null}, "E": true}`)
	tests := []struct {
		name    string
		move    func(string, Value) (string, bool)
		current string
		want    string
	}{
		{"forward from A", MoveForward, "A", "B"},
		{"forward from E wraps", MoveForward, "E", "A"},
		{"forward from inert child", MoveForward, "B::c", "E"},
		{"forward from unknown", MoveForward, "nope", "A"},
		{"backward from A wraps", MoveBackward, "A", "E"},
		{"backward from E", MoveBackward, "E", "B"},
		{"backward from inert child", MoveBackward, "B::d", "B"},
		{"backward from unknown", MoveBackward, "nope", "E"},
	}
	for _, tt := range tests {
		got, ok := tt.move(tt.current, root)
		if !ok || got != tt.want {
			t.Fatalf("%s: got %q,%v want %q", tt.name, got, ok, tt.want)
		}
	}
}

func TestMove_NightChecklist(t *testing.T) {
	t.Parallel()

	night := mustParse(t, nightJSON)
	if got, _ := MoveForward("shower (no skipping!)", night); got != "wind down (9:15)::charge earbuds" {
		t.Fatalf("moveDown from first: got %q", got)
	}
	if got, _ := MoveBackward("meditate 5m", night); got != "reflect (9:25)::anything else notable" {
		t.Fatalf("moveUp from last: got %q", got)
	}
	if got, _ := MoveForward("meditate 5m", night); got != "shower (no skipping!)" {
		t.Fatalf("moveDown wrap: got %q", got)
	}
	if got, _ := MoveBackward("shower (no skipping!)", night); got != "meditate 5m" {
		t.Fatalf("moveUp wrap: got %q", got)
	}
}

func TestMove_SingleAndNoActionable(t *testing.T) {
	t.Parallel()

	none := mustParse(t, `{"a": false, "b": null, "|c|": true}`)
	if got, ok := MoveForward("a", none); ok {
		t.Fatalf("expected none, got %q", got)
	}
	if got, ok := MoveBackward("a", none); ok {
		t.Fatalf("expected none, got %q", got)
	}
	if _, ok := MoveForward("x", GroupValue(nil)); ok {
		t.Fatalf("expected none on an empty tree")
	}

	single := mustParse(t, `{"a": false, "b": true}`)
	if got, ok := MoveForward("b", single); !ok || got != "b" {
		t.Fatalf("single actionable should wrap to itself, got %q,%v", got, ok)
	}
	if got, ok := MoveBackward("b", single); !ok || got != "b" {
		t.Fatalf("single actionable should wrap to itself, got %q,%v", got, ok)
	}
}

func TestMove_ForwardThenBackwardReturns(t *testing.T) {
	t.Parallel()

	night := mustParse(t, nightJSON)
	for _, id := range Actionable(night) {
		next, ok := MoveForward(id, night)
		if !ok {
			t.Fatalf("MoveForward(%q): no result", id)
		}
		back, ok := MoveBackward(next, night)
		if !ok || back != id {
			t.Fatalf("MoveBackward(MoveForward(%q)) = %q, want %q", id, back, id)
		}
	}
}

func TestIndex_AgreesWithUncached(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"| h |": true, "a": {"b": null, "c": {"_checkable": true, "d": true}}, "e": {"f": true}, "g": 1}`)
	idx := NewIndex(root)
	if got, want := idx.Order(), Linearize(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("Order: got %#v want %#v", got, want)
	}
	checked := NewSet("a::c", "g")
	for _, id := range append(Linearize(root), "missing") {
		if got, want := idx.IsActionable(id), IsActionable(id, root); got != want {
			t.Fatalf("IsActionable(%q): index %v, uncached %v", id, got, want)
		}
		if got, want := idx.IsCompleted(id, checked), IsCompletedID(id, checked, root); got != want {
			t.Fatalf("IsCompleted(%q): index %v, uncached %v", id, got, want)
		}
		gn, gok := idx.Next(id)
		wn, wok := MoveForward(id, root)
		if gn != wn || gok != wok {
			t.Fatalf("Next(%q): index %q,%v uncached %q,%v", id, gn, gok, wn, wok)
		}
		gp, pok := idx.Prev(id)
		wp, wpok := MoveBackward(id, root)
		if gp != wp || pok != wpok {
			t.Fatalf("Prev(%q): index %q,%v uncached %q,%v", id, gp, pok, wp, wpok)
		}
	}
	if first, ok := idx.First(); !ok || first != "a::c" {
		t.Fatalf("First: got %q,%v", first, ok)
	}
}
