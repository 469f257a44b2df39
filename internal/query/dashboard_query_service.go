package query

import (
	"context"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/cqrs"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// DashboardView is the composite payload for GET /dashboard/:memberID.
type DashboardView struct {
	Summary            *models.InvestmentSummary   `json:"summary"`
	RecentTransactions []models.TransactionView    `json:"recentTransactions"`
	Performance        []models.MonthlyPerformance `json:"performance"`
}

// InvestmentListView is the payload for GET /dashboard/:memberID/investments.
type InvestmentListView struct {
	Investments []models.InvestmentRecord `json:"investments"`
	Pagination  models.Pagination         `json:"pagination"`
}

// DashboardQueryService computes the member-scoped rollups. Every operation
// rejects cross-member access before touching the ledger, independent of
// whether the target member exists.
type DashboardQueryService struct {
	investRepo *repository.InvestmentReadRepository
	memberRepo *repository.MemberReadRepository
}

func NewDashboardQueryService(
	investRepo *repository.InvestmentReadRepository,
	memberRepo *repository.MemberReadRepository,
) *DashboardQueryService {
	return &DashboardQueryService{investRepo: investRepo, memberRepo: memberRepo}
}

// GetDashboard returns the summary totals, the ten most recent transactions
// and the trailing-twelve-month performance buckets.
func (s *DashboardQueryService) GetDashboard(q cqrs.GetDashboardQuery) (*DashboardView, error) {
	if q.MemberID != q.RequestingMemberID {
		return nil, &forbiddenError{}
	}

	ctx := context.Background()

	summary, err := s.investRepo.Summary(ctx, q.MemberID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.investRepo.RecentTransactions(ctx, q.MemberID)
	if err != nil {
		return nil, err
	}
	performance, err := s.investRepo.MonthlyPerformance(ctx, q.MemberID)
	if err != nil {
		return nil, err
	}

	// Empty slices serialise as [], not null.
	if transactions == nil {
		transactions = []models.TransactionView{}
	}
	if performance == nil {
		performance = []models.MonthlyPerformance{}
	}

	return &DashboardView{
		Summary:            summary,
		RecentTransactions: transactions,
		Performance:        performance,
	}, nil
}

// ListInvestments returns one page of the member's ledger with pagination
// metadata derived from the total count.
func (s *DashboardQueryService) ListInvestments(q cqrs.ListInvestmentsQuery) (*InvestmentListView, error) {
	if q.MemberID != q.RequestingMemberID {
		return nil, &forbiddenError{}
	}

	ctx := context.Background()

	page, limit := normalisePaging(q.Page, q.Limit)
	offset := (page - 1) * limit

	total, err := s.investRepo.Count(ctx, q.MemberID)
	if err != nil {
		return nil, err
	}
	records, err := s.investRepo.List(ctx, q.MemberID, q.SortBy, q.SortOrder, limit, offset)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.InvestmentRecord{}
	}

	return &InvestmentListView{
		Investments: records,
		Pagination:  buildPagination(page, limit, total),
	}, nil
}

// GetProfile returns the member's profile fields.
func (s *DashboardQueryService) GetProfile(q cqrs.GetProfileQuery) (*models.ProfileView, error) {
	if q.MemberID != q.RequestingMemberID {
		return nil, &forbiddenError{}
	}
	return s.memberRepo.GetProfile(context.Background(), q.MemberID)
}

// normalisePaging clamps the raw page/limit parameters: pages are 1-indexed,
// limits default to 20 and cap at 100.
func normalisePaging(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// buildPagination derives the page metadata: hasNext iff another full or
// partial page exists past the current offset, hasPrev iff page > 1.
func buildPagination(page, limit, total int) models.Pagination {
	totalPages := (total + limit - 1) / limit
	offset := (page - 1) * limit
	return models.Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     offset+limit < total,
		HasPrev:     page > 1,
	}
}

// forbiddenError signals that the requesting member does not own the resource.
type forbiddenError struct{}

func (e *forbiddenError) Error() string { return "forbidden" }
