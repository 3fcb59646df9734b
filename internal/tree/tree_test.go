package tree

import (
	"reflect"
	"testing"
)

func mustParse(t *testing.T, s string) Value {
	t.Helper()
	v, err := Parse([]byte(s))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return v
}

const nightJSON = `{
  "shower (no skipping!)": true,
  "wind down (9:15)": {
    "charge earbuds": true,
    "moisturization": true
  },
  "reflect (9:25)": {
    "how was today?": {
      "habits note": null,
      "operation note": null
    },
    "anything else notable": true
  },
  "meditate 5m": true
}`

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	path := []string{"reflect (9:25)", "how was today?"}
	id := Encode(path)
	if id != "reflect (9:25)::how was today?" {
		t.Fatalf("Encode: got %q", id)
	}
	if got := Decode(id); !reflect.DeepEqual(got, path) {
		t.Fatalf("Decode: got %#v want %#v", got, path)
	}
}

func TestParse_KeepsKeyOrderAndMetadata(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"z": true, "a": {"_checkable": true, "y": true, "b": false}, "m": null, "n": 3, "s": "x", "arr": [1, {"q": 1}]}`)
	g, ok := root.Group()
	if !ok {
		t.Fatalf("expected root group")
	}
	if got, want := g.Keys(), []string{"z", "a", "m", "n", "s", "arr"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys: got %#v want %#v", got, want)
	}
	a, _ := g.Child("a")
	ag, _ := a.Group()
	if !ag.Checkable() {
		t.Fatalf("expected a to be _checkable")
	}
	if got, want := ag.Keys(), []string{"y", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("a keys: got %#v want %#v", got, want)
	}
	for key, want := range map[string]Kind{"z": KindTrue, "m": KindNull, "n": KindScalar, "s": KindScalar, "arr": KindScalar} {
		v, _ := g.Child(key)
		if v.Kind() != want {
			t.Fatalf("%s: got kind %v want %v", key, v.Kind(), want)
		}
	}

	b, err := root.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	want := `{"z":true,"a":{"_checkable":true,"y":true,"b":false},"m":null,"n":3,"s":"x","arr":[1,{"q":1}]}`
	if string(b) != want {
		t.Fatalf("MarshalJSON:\n got: %s\nwant: %s", b, want)
	}
}

func TestParse_RejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		``,
		`   `,
		`{"a": }`,
		`{"a": true`,
		`{"a": true}{"b": true}`,
		`{"a": true} x`,
		`{"a": true}}`,
		`true false`,
	} {
		if _, err := Parse([]byte(in)); err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"a": {"_checkable": true, "b": true}, "c": true}`)
	if v, ok := Resolve(root, []string{"a", "b"}); !ok || v.Kind() != KindTrue {
		t.Fatalf("Resolve a::b: got %v %v", v.Kind(), ok)
	}
	for _, path := range [][]string{{"x"}, {"c", "d"}, {"a", CheckableKey}} {
		if _, ok := Resolve(root, path); ok {
			t.Fatalf("Resolve %#v: expected unresolved", path)
		}
	}
}

func TestLinearize_PreOrderAndStable(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"A": true, "B": {"c": null, "d": null}, "E": true}`)
	want := []string{"A", "B", "B::c", "B::d", "E"}
	if got := Linearize(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("Linearize: got %#v want %#v", got, want)
	}
	if got := Linearize(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("Linearize (second call): got %#v want %#v", got, want)
	}

	night := mustParse(t, nightJSON)
	order := Linearize(night)
	if len(order) != 10 {
		t.Fatalf("expected 10 items, got %d: %#v", len(order), order)
	}
	if order[0] != "shower (no skipping!)" {
		t.Fatalf("first item: got %q", order[0])
	}
}

func TestLinearize_SkipsMetadataAndEmptyGroups(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"a": {"_checkable": true}, "b": {}, "c": {"_checkable": false, "d": true}}`)
	want := []string{"a", "b", "c", "c::d"}
	if got := Linearize(root); !reflect.DeepEqual(got, want) {
		t.Fatalf("Linearize: got %#v want %#v", got, want)
	}
}

func TestIsActionable(t *testing.T) {
	t.Parallel()

	night := mustParse(t, nightJSON)
	tests := []struct {
		id   string
		want bool
	}{
		{"shower (no skipping!)", true},
		{"meditate 5m", true},
		{"reflect (9:25)::how was today?::habits note", false},
		{"wind down (9:15)", false},
		{"reflect (9:25)::how was today?", true},
		{"wind down (9:15)::charge earbuds", true},
		{"missing", false},
		{"meditate 5m::deeper", false},
	}
	for _, tt := range tests {
		if got := IsActionable(tt.id, night); got != tt.want {
			t.Fatalf("IsActionable(%q): got %v want %v", tt.id, got, tt.want)
		}
	}
}

func TestIsActionable_Rules(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{
		"skip": false,
		"note": null,
		"| heading |": true,
		"|x|": {"a": null},
		"forced": {"_checkable": true, "a": true, "b": {"c": true}},
		"notForced": {"_checkable": "yes", "a": null},
		"mixed": {"a": null, "b": true},
		"nested": {"a": null, "b": {"c": null}},
		"scalarChild": {"a": false, "b": 1},
		"str": "todo",
		"num": 0,
		"empty": {},
		"onlyMeta": {"_checkable": true},
		"|": true
	}`)
	tests := []struct {
		id   string
		want bool
	}{
		{"skip", false},
		{"note", false},
		{"| heading |", false},
		{"|x|", false},
		{"forced", true},
		{"forced::a", true},
		{"notForced", true},
		{"mixed", false},
		{"mixed::b", true},
		{"nested", false},
		{"nested::b", true},
		{"scalarChild", false},
		{"scalarChild::b", true},
		{"str", true},
		{"num", true},
		{"empty", false},
		{"onlyMeta", true},
		{"|", true},
	}
	for _, tt := range tests {
		if got := IsActionable(tt.id, root); got != tt.want {
			t.Fatalf("IsActionable(%q): got %v want %v", tt.id, got, tt.want)
		}
	}
}

func TestIsPipeWrapped(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"| heading |": true,
		"  |a|  ":     true,
		"||":          true,
		"|":           false,
		"|a":          false,
		"a|":          false,
		"plain":       false,
	}
	for in, want := range tests {
		if got := IsPipeWrapped(in); got != want {
			t.Fatalf("IsPipeWrapped(%q): got %v want %v", in, got, want)
		}
	}
}

func TestActionable_EndToEnd(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `{"A": true, "B": {"c": null, "d": null}, "E": true}`)
	if got, want := Actionable(root), []string{"A", "B", "E"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Actionable: got %#v want %#v", got, want)
	}

	night := mustParse(t, nightJSON)
	if got := Actionable(night); len(got) != 6 {
		t.Fatalf("expected 6 actionable, got %d: %#v", len(got), got)
	}
}
