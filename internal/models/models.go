package models

import "time"

type Member struct {
	ID             int64     `json:"id"`
	MemberID       string    `json:"csm_memberID"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Telephone      string    `json:"telephone"`
	DateRegistered time.Time `json:"dateRegistered"`
	CustomerNumber string    `json:"customerNumber"`
	PasswordHash   string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}

// InvestmentRecord is one ledger row for a member and fund. Rows are
// immutable once written; there is no update or delete path.
type InvestmentRecord struct {
	ID             int64     `json:"id"`
	MemberID       string    `json:"-"`
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
	Shareholder    string    `json:"shareholder"`
	CurrentPrice   float64   `json:"current_price"`
	CreatedAt      time.Time `json:"created_at"`
}
