package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hochfrequenz/automation-portal/internal/domain"
)

// NotAvailable is shown for missing durations and timestamps
const NotAvailable = "N/A"

// FormatDuration renders d as 850ms, 42s, 3m 5s or 2h 10m. Zero renders as N/A.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	switch {
	case d <= 0:
		return NotAvailable
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60_000:
		return fmt.Sprintf("%ds", int(math.Round(float64(ms)/1000)))
	case ms < 3_600_000:
		minutes := ms / 60_000
		seconds := int(math.Round(float64(ms%60_000) / 1000))
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		hours := ms / 3_600_000
		minutes := int(math.Round(float64(ms%3_600_000) / 60_000))
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}

// FormatElapsed renders the time between two API timestamps. A missing end
// means the run is still going and now is used instead.
func FormatElapsed(start, end string, now time.Time) string {
	s := domain.ParseTimestamp(start)
	if s.IsZero() {
		return NotAvailable
	}
	e := domain.ParseTimestamp(end)
	if e.IsZero() {
		e = now
	}
	return FormatDuration(e.Sub(s))
}

// RelativeTime renders an API timestamp relative to now, e.g. "3 hours ago"
func RelativeTime(ts string, now time.Time) string {
	t := domain.ParseTimestamp(ts)
	if t.IsZero() {
		return NotAvailable
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatTimestamp renders an API timestamp in local time
func FormatTimestamp(ts string) string {
	t := domain.ParseTimestamp(ts)
	if t.IsZero() {
		return NotAvailable
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatPercent renders a 0-100 value
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatPayload pretty-prints a step's JSON payload, keeping at most maxLines
// lines. Invalid JSON is returned as-is. A marker line replaces the cut tail.
func FormatPayload(raw json.RawMessage, maxLines int) []string {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	text := string(raw)
	if err := json.Indent(&buf, raw, "", "  "); err == nil {
		text = buf.String()
	}
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if maxLines > 0 && len(lines) > maxLines {
		cut := len(lines) - maxLines
		lines = append(lines[:maxLines:maxLines], fmt.Sprintf("... %d more lines", cut))
	}
	return lines
}
