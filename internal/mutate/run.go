package mutate

import (
	"context"
	"errors"
	"strings"
	"time"

	"checklist-cli/internal/model"
	"checklist-cli/internal/store"
)

// RunOpts controls how a finished run is labelled in the run log.
type RunOpts struct {
	Slots        map[string]string
	RolloverHour int
	Now          time.Time
}

// LogRun records a finished pass through a checklist. The checklist does not
// need to exist on disk; a run can be logged for a checklist that was since
// deleted or renamed.
func LogRun(ctx context.Context, st store.Store, name string, seconds int, rushed bool, opts RunOpts) (model.Run, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Run{}, errors.New("missing checklist name")
	}
	if seconds < 0 {
		return model.Run{}, errors.New("time must not be negative")
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	return st.RecordRun(ctx, model.Run{
		Checklist: name,
		Slot:      store.SlotFor(name, rushed, opts.Slots),
		LogDate:   store.LogDate(now, opts.RolloverHour),
		Seconds:   seconds,
		Rushed:    rushed,
		CreatedAt: now,
	})
}

// Elapsed is the number of whole seconds since the session of name started.
// A session without a start time is started now.
func Elapsed(st store.Store, name string, now time.Time) (int, error) {
	sess, err := st.UpdateSession(name, func(s *model.Session) {
		if s.StartedAt.IsZero() {
			s.StartedAt = now.UTC()
		}
	})
	if err != nil {
		return 0, err
	}
	d := now.Sub(sess.StartedAt)
	if d < 0 {
		return 0, nil
	}
	return int(d / time.Second), nil
}
