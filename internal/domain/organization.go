package domain

import (
	"context"
	"time"
)

// MemberRole is a user's role within an organization.
type MemberRole string

const (
	RoleMember MemberRole = "member"
	// RoleBoard grants administrative rights over the organization's events.
	RoleBoard MemberRole = "board"
)

// ValidMemberRole reports whether r is a known role.
func ValidMemberRole(r MemberRole) bool {
	return r == RoleMember || r == RoleBoard
}

// Organization represents a student organization that can host events.
// Only verified organizations appear in public listings; unverified ones stay
// visible to their own members and to admins.
// swagger:model Organization
type Organization struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	IsVerified  bool      `json:"is_verified"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrganizationMember is a roster entry.
// swagger:model OrganizationMember
type OrganizationMember struct {
	OrganizationID int64      `json:"organization_id"`
	UserID         int64      `json:"user_id"`
	Username       string     `json:"username"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           MemberRole `json:"role"`
}

// OrganizationFilter scopes organization listings. VerifiedOnly limits the
// result to verified organizations; MemberUserID, when non-zero, additionally
// includes organizations that user belongs to regardless of verification.
type OrganizationFilter struct {
	VerifiedOnly bool
	MemberUserID int64
}

// OrganizationRepository defines organization and roster storage.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetByID(ctx context.Context, id int64) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	// List returns organizations matching the filter.
	List(ctx context.Context, filter OrganizationFilter) ([]*Organization, error)
	ListMembers(ctx context.Context, orgID int64) ([]*OrganizationMember, error)
	// UpsertMember adds the user to the roster or updates their role.
	UpsertMember(ctx context.Context, orgID, userID int64, role MemberRole) error
	RemoveMember(ctx context.Context, orgID, userID int64) error
	IsMember(ctx context.Context, orgID, userID int64) (bool, error)
	// ListBoardOrgIDsByUserID returns the organizations the user administers.
	ListBoardOrgIDsByUserID(ctx context.Context, userID int64) ([]int64, error)
	// ListBoardMemberEmails returns the email addresses of the board roster,
	// used for approval decision notifications.
	ListBoardMemberEmails(ctx context.Context, orgID int64) ([]string, error)
}

// OrganizationWithMembers bundles an organization with its roster for the
// detail endpoint.
type OrganizationWithMembers struct {
	Organization *Organization         `json:"organization"`
	Members      []*OrganizationMember `json:"members"`
}

// OrganizationService defines organization operations.
type OrganizationService interface {
	// Register creates an organization; the acting user becomes its first
	// board member. New organizations start unverified.
	Register(ctx context.Context, actor Actor, name, slug, description string) (*Organization, error)
	GetBySlug(ctx context.Context, actor Actor, slug string) (*OrganizationWithMembers, error)
	List(ctx context.Context, actor Actor) ([]*Organization, error)
	SetMemberRole(ctx context.Context, actor Actor, slug, username string, role MemberRole) error
	RemoveMember(ctx context.Context, actor Actor, slug, username string) error
}
