package domain

// AnalyticsSnapshot holds summary statistics derived from the full ticket
// set. It is computed on demand and never persisted.
type AnalyticsSnapshot struct {
	Total      int                  `json:"total"`
	Open       int                  `json:"open"`
	InProgress int                  `json:"in_progress"`
	Resolved   int                  `json:"resolved"`
	Closed     int                  `json:"closed"`
	High       int                  `json:"high"`
	Critical   int                  `json:"critical"`
	BySource   map[TicketSource]int `json:"by_source"`
	// AvgResolutionDays is the mean of (updated_at - created_at) in days
	// across resolved tickets, rounded to one decimal, 0 when none.
	AvgResolutionDays float64 `json:"avg_resolution_days"`
}
