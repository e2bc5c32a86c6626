package domain

// DashboardStats are the independently reported dashboard counters
type DashboardStats struct {
	TotalProducts      int
	ActiveProducts     int
	PatchNotifications int
	PatchesCreated     int
	FailedPatches      int
	PatchesReady       int
}

// Activity is one entry of the dashboard activity feed
type Activity struct {
	ID          int
	Type        string
	Title       string
	Description string
	Timestamp   string
}

// StatCard describes how a dashboard counter is labelled
type StatCard struct {
	Title    string
	Subtitle string
	Value    func(DashboardStats) int
}

// StatCards lists the dashboard counters in display order
var StatCards = []StatCard{
	{Title: "Total Products", Subtitle: "Number of products in the system", Value: func(s DashboardStats) int { return s.TotalProducts }},
	{Title: "Active Products", Subtitle: "Currently enabled or in production", Value: func(s DashboardStats) int { return s.ActiveProducts }},
	{Title: "Patch Notifications", Subtitle: "Notifications received today", Value: func(s DashboardStats) int { return s.PatchNotifications }},
	{Title: "Patches Created", Subtitle: "Patches created today", Value: func(s DashboardStats) int { return s.PatchesCreated }},
	{Title: "Failed Patches", Subtitle: "Patches that failed today", Value: func(s DashboardStats) int { return s.FailedPatches }},
	{Title: "Patches Ready", Subtitle: "Patches ready for deployment", Value: func(s DashboardStats) int { return s.PatchesReady }},
}
