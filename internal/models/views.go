package models

import "time"

// MemberView is the read-optimised projection of a member.
// It never exposes PasswordHash; this is the shape the auth middleware
// attaches to the request context and the shape returned by /auth/verify.
type MemberView struct {
	MemberID  string `json:"csm_memberID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// ProfileView extends MemberView with the fields returned by
// /dashboard/:memberID/profile.
type ProfileView struct {
	MemberID       string    `json:"csm_memberID"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Telephone      string    `json:"telephone"`
	DateRegistered time.Time `json:"dateRegistered"`
	CustomerNumber string    `json:"customerNumber"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TransactionView is the trimmed row shape used by the recent-transactions
// section of the dashboard.
type TransactionView struct {
	TnxDate        time.Time `json:"tnx_date"`
	Description    string    `json:"description"`
	QtyBought      float64   `json:"qty_bought"`
	PurchasePrice  float64   `json:"purchase_price"`
	AmountInvested float64   `json:"amount_invested"`
	ShareBalance   float64   `json:"share_balance"`
	CurrentValue   float64   `json:"current_value"`
	Gain           float64   `json:"gain"`
	QtySold        float64   `json:"qty_sold"`
	Charges        float64   `json:"charges"`
}

// InvestmentSummary holds the dashboard totals. Fields are plain float64 so
// an empty ledger serialises as 0, never null.
type InvestmentSummary struct {
	TotalInvested float64 `json:"totalInvested"`
	TotalGains    float64 `json:"totalGains"`
	CurrentValue  float64 `json:"currentValue"`
	TotalSold     float64 `json:"totalSold"`
}

// MonthlyPerformance is one calendar-month bucket over the trailing twelve
// months. Months with no records are omitted (sparse, matching the wire
// contract chart consumers already handle).
type MonthlyPerformance struct {
	Month        time.Time `json:"month"`
	Invested     float64   `json:"invested"`
	Gains        float64   `json:"gains"`
	CurrentValue float64   `json:"currentValue"`
}

// Pagination describes one page of the investment list.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}
