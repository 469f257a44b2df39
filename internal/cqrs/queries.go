package cqrs

// ---------- Dashboard queries ----------

// GetDashboardQuery fetches the summary, recent transactions and monthly
// performance for one member, subject to ownership check.
type GetDashboardQuery struct {
	MemberID           string
	RequestingMemberID string
}

// ListInvestmentsQuery fetches one page of a member's investment history.
// Page is 1-indexed; SortBy outside the allow-list falls back to the
// transaction date.
type ListInvestmentsQuery struct {
	MemberID           string
	RequestingMemberID string
	Page               int
	Limit              int
	SortBy             string
	SortOrder          string
}

// GetProfileQuery fetches a member's profile, subject to ownership check.
type GetProfileQuery struct {
	MemberID           string
	RequestingMemberID string
}
