package repository

import (
	"database/sql"
	"fmt"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/lib/pq"
)

// MemberWriteRepository handles all state-mutating operations for members.
// It operates exclusively against the PostgreSQL write store (source of truth).
type MemberWriteRepository struct {
	db *sql.DB
}

func NewMemberWriteRepository(db *sql.DB) *MemberWriteRepository {
	return &MemberWriteRepository{db: db}
}

// Create inserts a new member and fills in the store-generated fields
// (internal id, registration date, created_at).
func (r *MemberWriteRepository) Create(member *models.Member) error {
	query := `
		INSERT INTO members (csm_member_id, first_name, last_name, email, telephone, customer_number, password_hash, date_registered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_DATE)
		RETURNING id, date_registered, created_at
	`
	err := r.db.QueryRow(query,
		member.MemberID, member.FirstName, member.LastName, member.Email,
		nullString(member.Telephone), nullString(member.CustomerNumber), member.PasswordHash,
	).Scan(&member.ID, &member.DateRegistered, &member.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("member already exists")
		}
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

// GetByIdentifier fetches the full write model (including PasswordHash) by
// member ID or email. Used by login only; the hash never leaves this layer
// in any view.
func (r *MemberWriteRepository) GetByIdentifier(identifier string) (*models.Member, error) {
	query := `
		SELECT id, csm_member_id, first_name, last_name, email, telephone, date_registered, customer_number, password_hash, created_at
		FROM members
		WHERE csm_member_id = $1 OR email = $1
	`
	var member models.Member
	var telephone, customerNumber sql.NullString

	err := r.db.QueryRow(query, identifier).Scan(
		&member.ID, &member.MemberID, &member.FirstName, &member.LastName,
		&member.Email, &telephone, &member.DateRegistered, &customerNumber,
		&member.PasswordHash, &member.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if telephone.Valid {
		member.Telephone = telephone.String
	}
	if customerNumber.Valid {
		member.CustomerNumber = customerNumber.String
	}
	return &member, nil
}

// Exists reports whether a member with the given member ID or email is
// already registered.
func (r *MemberWriteRepository) Exists(memberID, email string) (bool, error) {
	var id int64
	err := r.db.QueryRow(
		`SELECT id FROM members WHERE csm_member_id = $1 OR email = $2`,
		memberID, email,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check member existence: %w", err)
	}
	return true, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
