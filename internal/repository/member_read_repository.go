package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	appredis "github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/redis"
	goredis "github.com/redis/go-redis/v9"
)

const memberViewKeyPrefix = "member:view:"

// MemberReadRepository handles all read operations for members.
// It uses Redis as the primary read store, falling back to PostgreSQL on a
// miss. The auth middleware resolves every bearer token through this path, so
// the hot set of member views stays in Redis.
type MemberReadRepository struct {
	db    *sql.DB
	cache *appredis.ViewCache[models.MemberView]
}

func NewMemberReadRepository(db *sql.DB, redisClient *goredis.Client) *MemberReadRepository {
	return &MemberReadRepository{
		db:    db,
		cache: appredis.NewViewCache[models.MemberView](redisClient, 0),
	}
}

// GetByMemberID returns a MemberView from Redis first, then PostgreSQL.
func (r *MemberReadRepository) GetByMemberID(ctx context.Context, memberID string) (*models.MemberView, error) {
	cacheKey := memberViewKeyPrefix + memberID

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	// Fallback: PostgreSQL
	query := `
		SELECT csm_member_id, first_name, last_name, email
		FROM members
		WHERE csm_member_id = $1
	`
	var view models.MemberView

	pgErr := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&view.MemberID, &view.FirstName, &view.LastName, &view.Email,
	)
	if pgErr == sql.ErrNoRows {
		return nil, fmt.Errorf("member not found")
	}
	if pgErr != nil {
		return nil, fmt.Errorf("failed to get member: %w", pgErr)
	}

	// Warm the cache
	r.CacheMemberView(ctx, &view)
	return &view, nil
}

// GetProfile returns the full profile projection. Profiles are read rarely
// compared to auth resolution, so this always goes to PostgreSQL.
func (r *MemberReadRepository) GetProfile(ctx context.Context, memberID string) (*models.ProfileView, error) {
	query := `
		SELECT csm_member_id, first_name, last_name, email, telephone, date_registered, customer_number, created_at
		FROM members
		WHERE csm_member_id = $1
	`
	var view models.ProfileView
	var telephone, customerNumber sql.NullString

	err := r.db.QueryRowContext(ctx, query, memberID).Scan(
		&view.MemberID, &view.FirstName, &view.LastName, &view.Email,
		&telephone, &view.DateRegistered, &customerNumber, &view.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if telephone.Valid {
		view.Telephone = telephone.String
	}
	if customerNumber.Valid {
		view.CustomerNumber = customerNumber.String
	}
	return &view, nil
}

// CacheMemberView stores or refreshes the Redis read model for a member.
// Called by the command service after registration and on fallback reads.
func (r *MemberReadRepository) CacheMemberView(ctx context.Context, view *models.MemberView) {
	r.cache.Set(ctx, memberViewKeyPrefix+view.MemberID, view)
}
