package entity

// DashboardSummary holds the aggregate counters shown on the admin
// dashboard. A value of -1 means the underlying listing could not be
// loaded.
type DashboardSummary struct {
	TotalBooks  int
	TotalUsers  int
	ActiveLoans int
}

// FailedDashboard marks every counter as unavailable.
func FailedDashboard() DashboardSummary {
	return DashboardSummary{TotalBooks: -1, TotalUsers: -1, ActiveLoans: -1}
}
