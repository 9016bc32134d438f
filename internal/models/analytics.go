package models

// AnalyticsSnapshot is the pre-aggregated counter set served by the backend.
// The backend may omit fields; absent counters decode to zero and the
// console never recomputes them from raw collections.
type AnalyticsSnapshot struct {
	TotalUsers      int64 `json:"totalUsers"`
	MaleUsers       int64 `json:"maleUsers"`
	FemaleUsers     int64 `json:"femaleUsers"`
	TotalMatches    int64 `json:"totalMatches"`
	TotalMessages   int64 `json:"totalMessages"`
	TotalSwipes     int64 `json:"totalSwipes"`
	ActiveToday     int64 `json:"activeToday"`
	NewThisWeek     int64 `json:"newThisWeek"`
	MatchesThisWeek int64 `json:"matchesThisWeek"`
	BlockedUsers    int64 `json:"blockedUsers"`
}
