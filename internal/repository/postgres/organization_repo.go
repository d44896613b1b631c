package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"campusevents/internal/domain"
)

type organizationRepository struct {
	DB *sql.DB
}

func NewOrganizationRepository(db *sql.DB) domain.OrganizationRepository {
	return &organizationRepository{
		DB: db,
	}
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query := `
		INSERT INTO organizations (name, slug, description, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		org.Name, org.Slug, org.Description, org.IsVerified, org.CreatedAt, org.UpdatedAt,
	).Scan(&org.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateSlug
		}
		return err
	}
	return nil
}

func scanOrganization(row interface{ Scan(...any) error }) (*domain.Organization, error) {
	org := &domain.Organization{}
	err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.Description, &org.IsVerified, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return org, nil
}

const organizationColumns = `id, name, slug, description, is_verified, created_at, updated_at`

func (r *organizationRepository) GetByID(ctx context.Context, id int64) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE id = $1`
	org, err := scanOrganization(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (r *organizationRepository) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE slug = $1`
	org, err := scanOrganization(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return org, nil
}

func (r *organizationRepository) List(ctx context.Context, filter domain.OrganizationFilter) ([]*domain.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations`
	var args []any
	if filter.VerifiedOnly {
		if filter.MemberUserID != 0 {
			query += ` WHERE (is_verified OR id IN (SELECT organization_id FROM organization_members WHERE user_id = $1))`
			args = append(args, filter.MemberUserID)
		} else {
			query += ` WHERE is_verified`
		}
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := make([]*domain.Organization, 0)
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *organizationRepository) ListMembers(ctx context.Context, orgID int64) ([]*domain.OrganizationMember, error) {
	query := `
		SELECT m.organization_id, m.user_id, u.username, u.first_name, u.last_name, m.role
		FROM organization_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1
		ORDER BY m.role DESC, u.username ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.OrganizationMember, 0)
	for rows.Next() {
		m := &domain.OrganizationMember{}
		if err := rows.Scan(&m.OrganizationID, &m.UserID, &m.Username, &m.FirstName, &m.LastName, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *organizationRepository) UpsertMember(ctx context.Context, orgID, userID int64, role domain.MemberRole) error {
	query := `
		INSERT INTO organization_members (organization_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (organization_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`
	_, err := r.DB.ExecContext(ctx, query, orgID, userID, role)
	return err
}

func (r *organizationRepository) RemoveMember(ctx context.Context, orgID, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM organization_members WHERE organization_id = $1 AND user_id = $2`, orgID, userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *organizationRepository) IsMember(ctx context.Context, orgID, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM organization_members WHERE organization_id = $1 AND user_id = $2)`,
		orgID, userID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *organizationRepository) ListBoardOrgIDsByUserID(ctx context.Context, userID int64) ([]int64, error) {
	query := `
		SELECT organization_id
		FROM organization_members
		WHERE user_id = $1 AND role = 'board'
		ORDER BY organization_id
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *organizationRepository) ListBoardMemberEmails(ctx context.Context, orgID int64) ([]string, error) {
	query := `
		SELECT u.email
		FROM organization_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.organization_id = $1 AND m.role = 'board'
		ORDER BY u.email
	`
	rows, err := r.DB.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return emails, nil
}
