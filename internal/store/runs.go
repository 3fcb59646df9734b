package store

import (
	"fmt"
	"strings"
	"time"
)

// FormatDuration renders seconds as "1h 2m 3s", dropping zero parts.
// Zero renders as "0s".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60

	var parts []string
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	if sec > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", sec))
	}
	return strings.Join(parts, " ")
}

// LogDate is the M/D/YYYY day a run is logged under. Runs before
// rolloverHour count towards the previous day.
func LogDate(now time.Time, rolloverHour int) string {
	if now.Hour() < rolloverHour {
		now = now.AddDate(0, 0, -1)
	}
	return fmt.Sprintf("%d/%d/%d", int(now.Month()), now.Day(), now.Year())
}

// SlotFor maps a checklist name to its run-log slot. Unknown names log to "Day".
func SlotFor(name string, rushed bool, slots map[string]string) string {
	slot := ""
	key := strings.ToLower(strings.TrimSpace(name))
	for k, v := range slots {
		if strings.ToLower(strings.TrimSpace(k)) == key {
			slot = v
			break
		}
	}
	if slot == "" {
		slot = "Day"
	}
	if rushed {
		slot += " (rushed)"
	}
	return slot
}
