package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
)

const recentTransactionLimit = 10

// sortColumns is the explicit allow-list for the investments list. Sort keys
// arrive as raw query parameters; anything not in this map falls back to the
// transaction date so user input can never reach the ORDER BY clause.
var sortColumns = map[string]string{
	"tnx_date":        "tnx_date",
	"description":     "description",
	"amount_invested": "amount_invested",
	"current_value":   "current_value",
	"gain":            "gain",
}

const defaultSortColumn = "tnx_date"

func resolveSortColumn(sortBy string) string {
	if col, ok := sortColumns[sortBy]; ok {
		return col
	}
	return defaultSortColumn
}

func resolveSortOrder(sortOrder string) string {
	if strings.EqualFold(sortOrder, "ASC") {
		return "ASC"
	}
	return "DESC"
}

// InvestmentReadRepository computes the read-only rollups over one member's
// investment ledger. Every query is scoped by member ID; ownership is
// enforced one layer up in the query service.
type InvestmentReadRepository struct {
	db *sql.DB
}

func NewInvestmentReadRepository(db *sql.DB) *InvestmentReadRepository {
	return &InvestmentReadRepository{db: db}
}

// Summary returns the member's totals. COALESCE keeps every field zero when
// no rows exist, never null.
func (r *InvestmentReadRepository) Summary(ctx context.Context, memberID string) (*models.InvestmentSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount_invested), 0) AS total_invested,
			COALESCE(SUM(gain), 0) AS total_gains,
			COALESCE(SUM(current_value), 0) AS current_value,
			COALESCE(SUM(qty_sold * current_price), 0) AS total_sold
		FROM investment_history
		WHERE csm_member_id = $1
	`
	var summary models.InvestmentSummary
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&summary.TotalInvested, &summary.TotalGains,
		&summary.CurrentValue, &summary.TotalSold,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get investment summary: %w", err)
	}
	return &summary, nil
}

// RecentTransactions returns the 10 most recent ledger rows. Insertion order
// (id) breaks date ties so the result is a deterministic total order.
func (r *InvestmentReadRepository) RecentTransactions(ctx context.Context, memberID string) ([]models.TransactionView, error) {
	query := `
		SELECT tnx_date, description, qty_bought, purchase_price, amount_invested,
		       share_balance, current_value, gain, qty_sold, charges
		FROM investment_history
		WHERE csm_member_id = $1
		ORDER BY tnx_date DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, memberID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	var views []models.TransactionView
	for rows.Next() {
		var view models.TransactionView
		if err := rows.Scan(
			&view.TnxDate, &view.Description, &view.QtyBought, &view.PurchasePrice,
			&view.AmountInvested, &view.ShareBalance, &view.CurrentValue,
			&view.Gain, &view.QtySold, &view.Charges,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return views, nil
}

// MonthlyPerformance buckets the trailing twelve months by calendar month.
// Months without records are omitted; chart consumers handle the sparse form.
func (r *InvestmentReadRepository) MonthlyPerformance(ctx context.Context, memberID string) ([]models.MonthlyPerformance, error) {
	query := `
		SELECT
			DATE_TRUNC('month', tnx_date) AS month,
			SUM(amount_invested) AS invested,
			SUM(gain) AS gains,
			SUM(current_value) AS current_value
		FROM investment_history
		WHERE csm_member_id = $1
		  AND tnx_date >= CURRENT_DATE - INTERVAL '12 months'
		GROUP BY DATE_TRUNC('month', tnx_date)
		ORDER BY month ASC
	`
	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly performance: %w", err)
	}
	defer rows.Close()

	var buckets []models.MonthlyPerformance
	for rows.Next() {
		var bucket models.MonthlyPerformance
		if err := rows.Scan(&bucket.Month, &bucket.Invested, &bucket.Gains, &bucket.CurrentValue); err != nil {
			return nil, fmt.Errorf("failed to scan performance bucket: %w", err)
		}
		buckets = append(buckets, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get monthly performance: %w", err)
	}
	return buckets, nil
}

// Count returns the member's total number of ledger rows.
func (r *InvestmentReadRepository) Count(ctx context.Context, memberID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM investment_history WHERE csm_member_id = $1`,
		memberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count investments: %w", err)
	}
	return count, nil
}

// List returns one page of the member's ledger. The sort column comes from
// the allow-list map, never from the raw parameter.
func (r *InvestmentReadRepository) List(ctx context.Context, memberID, sortBy, sortOrder string, limit, offset int) ([]models.InvestmentRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, tnx_date, description, qty_bought, purchase_price, amount_invested,
		       share_balance, current_value, gain, qty_sold, charges, shareholder,
		       current_price, created_at
		FROM investment_history
		WHERE csm_member_id = $1
		ORDER BY %s %s, id DESC
		LIMIT $2 OFFSET $3
	`, resolveSortColumn(sortBy), resolveSortOrder(sortOrder))

	rows, err := r.db.QueryContext(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var records []models.InvestmentRecord
	for rows.Next() {
		var rec models.InvestmentRecord
		var shareholder sql.NullString
		if err := rows.Scan(
			&rec.ID, &rec.TnxDate, &rec.Description, &rec.QtyBought, &rec.PurchasePrice,
			&rec.AmountInvested, &rec.ShareBalance, &rec.CurrentValue, &rec.Gain,
			&rec.QtySold, &rec.Charges, &shareholder, &rec.CurrentPrice, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		if shareholder.Valid {
			rec.Shareholder = shareholder.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	return records, nil
}
