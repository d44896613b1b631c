package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"campusevents/internal/domain"
)

var slugRegexp = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type organizationService struct {
	orgRepo  domain.OrganizationRepository
	userRepo domain.UserRepository
}

// NewOrganizationService creates an OrganizationService with the given repositories.
func NewOrganizationService(orgRepo domain.OrganizationRepository, userRepo domain.UserRepository) domain.OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		userRepo: userRepo,
	}
}

func (s *organizationService) Register(ctx context.Context, actor domain.Actor, name, slug, description string) (*domain.Organization, error) {
	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if !slugRegexp.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase letters, digits, and hyphens", domain.ErrInvalidInput)
	}

	now := time.Now()
	org := &domain.Organization{
		Name:        name,
		Slug:        slug,
		Description: strings.TrimSpace(description),
		IsVerified:  false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		if errors.Is(err, domain.ErrDuplicateSlug) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("create organization: %w", err)
	}
	// The registering user administers the new organization.
	if err := s.orgRepo.UpsertMember(ctx, org.ID, actor.UserID, domain.RoleBoard); err != nil {
		return nil, fmt.Errorf("add founding board member: %w", err)
	}
	return org, nil
}

func (s *organizationService) GetBySlug(ctx context.Context, actor domain.Actor, slug string) (*domain.OrganizationWithMembers, error) {
	org, err := s.orgRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}

	member := false
	if actor.Kind == domain.ActorStudent {
		member, err = s.orgRepo.IsMember(ctx, org.ID, actor.UserID)
		if err != nil {
			return nil, fmt.Errorf("check membership: %w", err)
		}
	}
	if !domain.CanViewOrganization(actor, org, member) {
		return nil, domain.ErrNotFound
	}

	members, err := s.orgRepo.ListMembers(ctx, org.ID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.OrganizationMember{}
	}
	return &domain.OrganizationWithMembers{Organization: org, Members: members}, nil
}

func (s *organizationService) List(ctx context.Context, actor domain.Actor) ([]*domain.Organization, error) {
	// Public listings contain only verified organizations; admins see all,
	// and students additionally see unverified organizations they belong to.
	filter := domain.OrganizationFilter{VerifiedOnly: actor.Kind != domain.ActorSiteAdmin}
	if actor.Kind == domain.ActorStudent {
		filter.MemberUserID = actor.UserID
	}
	orgs, err := s.orgRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	if orgs == nil {
		orgs = []*domain.Organization{}
	}
	return orgs, nil
}

func (s *organizationService) SetMemberRole(ctx context.Context, actor domain.Actor, slug, username string, role domain.MemberRole) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if !domain.ValidMemberRole(role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, role)
	}
	org, err := s.orgRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get organization: %w", err)
	}
	if !domain.CanManageOrganization(actor, org) {
		return domain.ErrForbidden
	}
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.orgRepo.UpsertMember(ctx, org.ID, user.ID, role); err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

func (s *organizationService) RemoveMember(ctx context.Context, actor domain.Actor, slug, username string) error {
	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	org, err := s.orgRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get organization: %w", err)
	}
	if !domain.CanManageOrganization(actor, org) {
		return domain.ErrForbidden
	}
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.orgRepo.RemoveMember(ctx, org.ID, user.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove member: %w", err)
	}
	return nil
}
