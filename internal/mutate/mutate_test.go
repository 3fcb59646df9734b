package mutate

import (
	"context"
	"errors"
	"testing"
	"time"

	"checklist-cli/internal/store"
	"checklist-cli/internal/tree"
)

func newStore(t *testing.T, name, body string) store.Store {
	t.Helper()
	st := store.Store{Dir: t.TempDir()}
	root, err := tree.Parse([]byte(body))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := st.SaveChecklist(name, root); err != nil {
		t.Fatalf("SaveChecklist: %v", err)
	}
	return st
}

func TestSetChecked_CompletesChecklist(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t, "night", `{"teeth": true, "lights": {"kitchen": true, "hall": false}}`)

	res, err := SetChecked(ctx, st, "night", "teeth", true)
	if err != nil {
		t.Fatalf("SetChecked: %v", err)
	}
	if !res.Changed || !res.ItemCompleted || res.Complete || res.BecameComplete {
		t.Fatalf("after teeth: got %+v", res)
	}

	res, err = SetChecked(ctx, st, "night", tree.Encode([]string{"lights", "kitchen"}), true)
	if err != nil {
		t.Fatalf("SetChecked: %v", err)
	}
	if !res.Complete || !res.BecameComplete {
		t.Fatalf("after kitchen: got %+v", res)
	}

	// No-op
	res, err = SetChecked(ctx, st, "night", "teeth", true)
	if err != nil {
		t.Fatalf("SetChecked no-op: %v", err)
	}
	if res.Changed || res.BecameComplete {
		t.Fatalf("no-op: got %+v", res)
	}
}

func TestSetChecked_Rejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t, "night", `{"teeth": true, "skip": false, "|Heading|": true}`)

	cases := []struct {
		name string
		list string
		id   string
		want any
	}{
		{"unknown checklist", "nope", "teeth", NotFoundError{}},
		{"unknown id", "night", "floss", NotFoundError{}},
		{"skipped", "night", "skip", NotActionableError{}},
		{"label", "night", "|Heading|", NotActionableError{}},
	}
	for _, tc := range cases {
		_, err := SetChecked(ctx, st, tc.list, tc.id, true)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		switch tc.want.(type) {
		case NotFoundError:
			var nf NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("%s: got %T (%v), want NotFoundError", tc.name, err, err)
			}
		case NotActionableError:
			var na NotActionableError
			if !errors.As(err, &na) {
				t.Fatalf("%s: got %T (%v), want NotActionableError", tc.name, err, err)
			}
		}
	}
}

func TestSetChecked_UnchecksStaleID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t, "night", `{"B": {"c": null}}`)

	if _, err := SetChecked(ctx, st, "night", "B", true); err != nil {
		t.Fatalf("SetChecked B: %v", err)
	}
	// An edit gives B a live child, so B is no longer actionable.
	root, err := tree.Parse([]byte(`{"B": {"c": null, "d": true}}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := st.SaveChecklist("night", root); err != nil {
		t.Fatalf("SaveChecklist: %v", err)
	}

	if _, err := SetChecked(ctx, st, "night", "B", true); !errors.As(err, new(NotActionableError)) {
		t.Fatalf("re-check B: got %v, want NotActionableError", err)
	}
	res, err := SetChecked(ctx, st, "night", "B", false)
	if err != nil {
		t.Fatalf("uncheck B: %v", err)
	}
	if !res.Changed || res.Checked || res.Complete {
		t.Fatalf("uncheck B: got %+v", res)
	}

	c, err := Open(ctx, st, "night")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c.Checked.Has("B") || c.Complete() {
		t.Fatalf("after uncheck: checked=%v complete=%v", c.Checked, c.Complete())
	}
}

func TestToggleAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t, "morning", `{"coffee": true}`)

	res, err := Toggle(ctx, st, "morning", "coffee")
	if err != nil || !res.Checked {
		t.Fatalf("Toggle on: res=%+v err=%v", res, err)
	}
	res, err = Toggle(ctx, st, "morning", "coffee")
	if err != nil || res.Checked {
		t.Fatalf("Toggle off: res=%+v err=%v", res, err)
	}
	if _, err := Toggle(ctx, st, "morning", "coffee"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	now := time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)
	if _, _, err := Move(ctx, st, "morning", "", true); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if err := Reset(ctx, st, "morning", now); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c, err := Open(ctx, st, "morning")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(c.Checked) != 0 {
		t.Fatalf("checked after reset: %v", c.Checked)
	}
	sess, err := st.Session("morning")
	if err != nil {
		t.Fatalf("Session: %v", err)
	}
	if sess.Cursor != "" || !sess.StartedAt.Equal(now) {
		t.Fatalf("session after reset: %+v", sess)
	}
}

func TestMove_UsesAndStoresCursor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := newStore(t, "night", `{"a": true, "b": null, "c": {"d": true}}`)
	cd := tree.Encode([]string{"c", "d"})

	steps := []struct {
		forward bool
		want    string
	}{
		{true, "a"},
		{true, cd},
		{true, "a"},
		{false, cd},
		{false, "a"},
	}
	for i, s := range steps {
		res, ok, err := Move(ctx, st, "night", "", s.forward)
		if err != nil || !ok {
			t.Fatalf("step %d: ok=%v err=%v", i, ok, err)
		}
		if res.ID != s.want {
			t.Fatalf("step %d: got %q, want %q", i, res.ID, s.want)
		}
	}

	res, ok, err := Move(ctx, st, "night", "a", false)
	if err != nil || !ok || res.ID != cd || res.From != "a" {
		t.Fatalf("explicit from: res=%+v ok=%v err=%v", res, ok, err)
	}
}

func TestMove_NothingActionable(t *testing.T) {
	t.Parallel()
	st := newStore(t, "empty", `{"x": false, "y": null}`)
	_, ok, err := Move(context.Background(), st, "empty", "", true)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false")
	}
}

func TestLogRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	st := store.Store{Dir: t.TempDir()}
	opts := RunOpts{
		Slots:        map[string]string{"night": "Night"},
		RolloverHour: 6,
		Now:          time.Date(2026, 3, 2, 1, 30, 0, 0, time.Local),
	}

	run, err := LogRun(ctx, st, "night", 3725, true, opts)
	if err != nil {
		t.Fatalf("LogRun: %v", err)
	}
	if run.Slot != "Night (rushed)" || run.LogDate != "3/1/2026" || run.Duration != "1h 2m 5s" {
		t.Fatalf("LogRun: got %+v", run)
	}

	for _, bad := range []struct {
		name    string
		seconds int
	}{{"", 1}, {"night", -1}} {
		if _, err := LogRun(ctx, st, bad.name, bad.seconds, false, opts); err == nil {
			t.Fatalf("LogRun(%q, %d): expected error", bad.name, bad.seconds)
		}
	}
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	st := store.Store{Dir: t.TempDir()}
	start := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	got, err := Elapsed(st, "night", start)
	if err != nil || got != 0 {
		t.Fatalf("first Elapsed: got %d err=%v", got, err)
	}
	got, err = Elapsed(st, "night", start.Add(90*time.Second))
	if err != nil || got != 90 {
		t.Fatalf("Elapsed: got %d err=%v, want 90", got, err)
	}
}
