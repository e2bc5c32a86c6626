package domain

import "strings"

// StandardStatus is the closed set of states every upstream status collapses to
type StandardStatus string

const (
	StatusSuccess   StandardStatus = "success"
	StatusFailed    StandardStatus = "failed"
	StatusRunning   StandardStatus = "running"
	StatusPending   StandardStatus = "pending"
	StatusCancelled StandardStatus = "cancelled"
	StatusInactive  StandardStatus = "inactive"
)

// AllStatuses lists the standard statuses in display order
var AllStatuses = []StandardStatus{
	StatusSuccess,
	StatusFailed,
	StatusRunning,
	StatusPending,
	StatusCancelled,
	StatusInactive,
}

var statusSynonyms = map[string]StandardStatus{
	"success":   StatusSuccess,
	"completed": StatusSuccess,
	"complete":  StatusSuccess,
	"done":      StatusSuccess,
	"finished":  StatusSuccess,
	"passed":    StatusSuccess,
	"ok":        StatusSuccess,
	"active":    StatusSuccess,

	"failed":   StatusFailed,
	"error":    StatusFailed,
	"failure":  StatusFailed,
	"rejected": StatusFailed,
	"denied":   StatusFailed,
	"invalid":  StatusFailed,

	"running":     StatusRunning,
	"processing":  StatusRunning,
	"executing":   StatusRunning,
	"in_progress": StatusRunning,
	"in-progress": StatusRunning,
	"working":     StatusRunning,

	"pending":   StatusPending,
	"waiting":   StatusPending,
	"queued":    StatusPending,
	"scheduled": StatusPending,
	"ready":     StatusPending,

	"cancelled":  StatusCancelled,
	"canceled":   StatusCancelled,
	"stopped":    StatusCancelled,
	"aborted":    StatusCancelled,
	"terminated": StatusCancelled,
	"skipped":    StatusCancelled,

	"inactive":  StatusInactive,
	"disabled":  StatusInactive,
	"offline":   StatusInactive,
	"paused":    StatusInactive,
	"suspended": StatusInactive,
}

// NormalizeStatus maps any upstream status string to a StandardStatus.
// Unknown or empty input yields StatusInactive.
func NormalizeStatus(raw string) StandardStatus {
	if s, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusInactive
}

// IsKnownStatus reports whether raw appears in the synonym table.
// Callers use it to tell a genuinely inactive status from an unrecognized one.
func IsKnownStatus(raw string) bool {
	_, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ColorFamily returns the color family used to render the status
func (s StandardStatus) ColorFamily() string {
	switch s {
	case StatusSuccess:
		return "green"
	case StatusFailed:
		return "red"
	case StatusRunning:
		return "blue"
	case StatusPending:
		return "yellow"
	default:
		return "gray"
	}
}

// DisplayText returns the capitalized status name
func (s StandardStatus) DisplayText() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// IsSuccess reports whether the status is a success state
func (s StandardStatus) IsSuccess() bool { return s == StatusSuccess }

// IsFailure reports whether the status is a failure state
func (s StandardStatus) IsFailure() bool { return s == StatusFailed }

// IsActive reports whether work is still queued or in flight
func (s StandardStatus) IsActive() bool {
	return s == StatusRunning || s == StatusPending
}

// IsTerminal reports whether a run in this status will not change again
func (s StandardStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusCancelled
}

// ColorClassFor returns the color family for an arbitrary upstream status
func ColorClassFor(raw string) string {
	return NormalizeStatus(raw).ColorFamily()
}

// DisplayTextFor returns the display label for an arbitrary upstream status
func DisplayTextFor(raw string) string {
	return NormalizeStatus(raw).DisplayText()
}
