package dashboard

// SnapshotResponse is the combined response for the main dashboard endpoint.
// All four figures describe the same instant; checked_in + not_checked_in
// always equals the number of active employees.
type SnapshotResponse struct {
	CheckedInToday     int64   `json:"checked_in_today"`
	CheckedOutToday    int64   `json:"checked_out_today"`
	NotCheckedInToday  int64   `json:"not_checked_in_today"`
	TotalHoursThisWeek float64 `json:"total_hours_this_week"`
	Date               string  `json:"date"`       // "YYYY-MM-DD"
	WeekStart          string  `json:"week_start"` // Sunday, "YYYY-MM-DD"
	WeekEnd            string  `json:"week_end"`   // Saturday, "YYYY-MM-DD"
}
