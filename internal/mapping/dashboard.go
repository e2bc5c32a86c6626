// Package mapping converts between wire records and presentation records.
//
// Every function here is pure. Absent optional wire values become the zero
// value of the presentation field (empty string, empty map, empty slice, 0) so
// nothing downstream has to nil-check. Read payloads are not validated.
package mapping

import (
	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// DashboardStats maps the dashboard counters
func DashboardStats(w wire.DashboardStats) domain.DashboardStats {
	return domain.DashboardStats{
		TotalProducts:      w.TotalProducts,
		ActiveProducts:     w.ActiveProducts,
		PatchNotifications: w.PatchNotifications,
		PatchesCreated:     w.PatchesCreated,
		FailedPatches:      w.FailedPatches,
		PatchesReady:       w.PatchesReady,
	}
}

// Activity maps one activity feed entry
func Activity(w wire.Activity) domain.Activity {
	return domain.Activity{
		ID:          w.ID,
		Type:        w.Type,
		Title:       w.Title,
		Description: deref(w.Description),
		Timestamp:   w.Timestamp,
	}
}

// Activities maps an activity feed, preserving order
func Activities(ws []wire.Activity) []domain.Activity {
	out := make([]domain.Activity, 0, len(ws))
	for _, w := range ws {
		out = append(out, Activity(w))
	}
	return out
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
