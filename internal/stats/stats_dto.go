package stats

// StatsResponse is the dashboard snapshot. Counts are computed fresh on
// every request so the expiry buckets never go stale.
type StatsResponse struct {
	TotalWorkers        int `json:"totalWorkers"`
	ActiveCourses       int `json:"activeCourses"`
	TotalCertifications int `json:"totalCertifications"`
	ExpiringSoon        int `json:"expiringSoon"`
	Expired             int `json:"expired"`
	PermitExpiringSoon  int `json:"permitExpiringSoon"`
	PermitExpired       int `json:"permitExpired"`
}
