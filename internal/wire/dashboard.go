package wire

// DashboardStats are the six dashboard counters
type DashboardStats struct {
	TotalProducts      int `json:"total_products"`
	ActiveProducts     int `json:"active_products"`
	PatchNotifications int `json:"patch_notifications"`
	PatchesCreated     int `json:"patches_created"`
	FailedPatches      int `json:"failed_patches"`
	PatchesReady       int `json:"patches_ready"`
}

// DashboardStatsResponse is the body of GET /dashboard/stats
type DashboardStatsResponse struct {
	Stats DashboardStats `json:"stats"`
}

// Activity is one entry of the dashboard activity feed
type Activity struct {
	ID          int     `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Timestamp   string  `json:"timestamp"`
}

// ActivitiesResponse is the body of GET /dashboard/activities
type ActivitiesResponse struct {
	Activities []Activity `json:"activities"`
}
