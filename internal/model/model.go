package model

import "time"

// ChecklistRef names a checklist file in the store.
type ChecklistRef struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
}

// Row is one node of a checklist as shown by the CLI, TUI and web views.
type Row struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Depth      int    `json:"depth"`
	Kind       string `json:"kind"`
	Label      bool   `json:"label,omitempty"`
	Actionable bool   `json:"actionable"`
	Checked    bool   `json:"checked"`
	Completed  bool   `json:"completed"`
}

// Run is one completed pass through a checklist.
type Run struct {
	ID        int64     `json:"id"`
	Checklist string    `json:"checklist"`
	Slot      string    `json:"slot"`
	LogDate   string    `json:"logDate"`
	Seconds   int       `json:"seconds"`
	Duration  string    `json:"duration"`
	Rushed    bool      `json:"rushed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Session is the per-checklist resume state.
type Session struct {
	Cursor    string    `toml:"cursor,omitempty" json:"cursor,omitempty"`
	StartedAt time.Time `toml:"started_at" json:"startedAt"`
}
