package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	rsvpRepo       domain.RSVPRepository
	orgRepo        domain.OrganizationRepository
	categoryRepo   domain.CategoryRepository
	emailService   domain.EmailService
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
// emailService may be nil; approval decision notifications are then skipped.
func NewEventService(
	eventRepo domain.EventRepository,
	rsvpRepo domain.RSVPRepository,
	orgRepo domain.OrganizationRepository,
	categoryRepo domain.CategoryRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		orgRepo:        orgRepo,
		categoryRepo:   categoryRepo,
		emailService:   emailService,
		contextTimeout: timeout,
	}
}

// validateEvent checks the field-level invariants shared by create and update.
func validateEvent(e *domain.Event) error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if e.StartDatetime.IsZero() {
		return fmt.Errorf("%w: start_datetime is required", domain.ErrInvalidInput)
	}
	if e.EndDatetime != nil && e.EndDatetime.Before(e.StartDatetime) {
		return fmt.Errorf("%w: start must precede end", domain.ErrInvalidInput)
	}
	if (e.HostOrganizationID == nil) == (e.HostUser == "") {
		return fmt.Errorf("%w: exactly one of host_organization_id and host_user is required", domain.ErrInvalidInput)
	}
	if e.Modality == "" {
		e.Modality = domain.ModalityInPerson
	}
	if !domain.ValidModality(e.Modality) {
		return fmt.Errorf("%w: unknown modality %q", domain.ErrInvalidInput, e.Modality)
	}
	if e.Latitude != nil && (*e.Latitude < -90 || *e.Latitude > 90) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrInvalidInput)
	}
	if e.Longitude != nil && (*e.Longitude < -180 || *e.Longitude > 180) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if !domain.CanCreateEvent(actor, event.HostOrganizationID) {
		return domain.ErrForbidden
	}
	if err := validateEvent(event); err != nil {
		return err
	}
	if event.HostOrganizationID != nil {
		if _, err := s.orgRepo.GetByID(ctx, *event.HostOrganizationID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: host organization does not exist", domain.ErrInvalidInput)
			}
			return fmt.Errorf("get host organization: %w", err)
		}
	}
	if event.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *event.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: category does not exist", domain.ErrInvalidInput)
			}
			return fmt.Errorf("get category: %w", err)
		}
	}

	// New events always enter as an unapproved draft.
	event.Status = domain.StatusDraft
	event.IsApproved = false
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, actor domain.Actor, id int64) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	// Non-visible events are indistinguishable from absent ones.
	if !domain.CanView(actor, event) {
		return nil, domain.ErrNotFound
	}
	return s.buildDetail(ctx, actor, event)
}

func (s *eventService) buildDetail(ctx context.Context, actor domain.Actor, event *domain.Event) (*domain.EventDetail, error) {
	count, err := s.rsvpRepo.CountByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count rsvps: %w", err)
	}
	detail := &domain.EventDetail{Event: event, RSVPCount: count}
	if actor.IsAuthenticated() {
		if _, err := s.rsvpRepo.GetByEventAndUser(ctx, event.ID, actor.UserID); err == nil {
			detail.UserHasRSVP = true
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get rsvp: %w", err)
		}
	}
	return detail, nil
}

func (s *eventService) ListEvents(ctx context.Context, actor domain.Actor, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.EventDetail, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Scope the query to what the actor may see. Admins see everything;
	// board members additionally see their organizations' events in any
	// state; everyone else sees only published approved events.
	switch actor.Kind {
	case domain.ActorSiteAdmin:
		// no scoping
	case domain.ActorStudent:
		filter.PublicOnly = true
		filter.AlsoHostOrgIDs = nil
		for orgID := range actor.BoardOf {
			filter.AlsoHostOrgIDs = append(filter.AlsoHostOrgIDs, orgID)
		}
	default:
		filter.PublicOnly = true
		filter.AlsoHostOrgIDs = nil
	}

	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	details := make([]*domain.EventDetail, 0, len(events))
	for _, event := range events {
		detail, err := s.buildDetail(ctx, actor, event)
		if err != nil {
			return nil, 0, err
		}
		details = append(details, detail)
	}
	return details, total, nil
}

// getEditable loads the event and applies the view/edit gates shared by
// update, delete, and status transitions.
func (s *eventService) getEditable(ctx context.Context, actor domain.Actor, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanView(actor, event) {
		return nil, domain.ErrNotFound
	}
	if !domain.CanEdit(actor, event) {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.getEditable(ctx, actor, event.ID)
	if err != nil {
		return nil, err
	}

	// Host identity and lifecycle fields are immutable through update;
	// status moves through SetEventStatus and approval through
	// Approve/Reject. Editing does not reset approval.
	event.HostOrganizationID = existing.HostOrganizationID
	event.HostUser = existing.HostUser
	event.Status = existing.Status
	event.IsApproved = existing.IsApproved
	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now()

	if err := validateEvent(event); err != nil {
		return nil, err
	}
	if event.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *event.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: category does not exist", domain.ErrInvalidInput)
			}
			return nil, fmt.Errorf("get category: %w", err)
		}
	}
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor domain.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getEditable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ApproveEvent(ctx context.Context, actor domain.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.CanApprove(actor) {
		return domain.ErrForbidden
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	// Approving an already-approved event is a no-op success.
	if event.IsApproved {
		return nil
	}
	if err := s.eventRepo.SetApproved(ctx, id, true); err != nil {
		return fmt.Errorf("set approved: %w", err)
	}
	s.notifyDecision(ctx, event, true)
	return nil
}

func (s *eventService) RejectEvent(ctx context.Context, actor domain.Actor, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.CanApprove(actor) {
		return domain.ErrForbidden
	}
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	// Rejecting an already-approved event is a no-op success; rejection
	// never revokes approval and never auto-approves.
	if event.IsApproved {
		return nil
	}
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete rejected event: %w", err)
	}
	s.notifyDecision(ctx, event, false)
	return nil
}

// notifyDecision emails the host organization's board members about an
// approval decision. Failures never fail the transition.
func (s *eventService) notifyDecision(ctx context.Context, event *domain.Event, approved bool) {
	if s.emailService == nil || event.HostOrganizationID == nil {
		return
	}
	org, err := s.orgRepo.GetByID(ctx, *event.HostOrganizationID)
	if err != nil {
		return
	}
	emails, err := s.orgRepo.ListBoardMemberEmails(ctx, org.ID)
	if err != nil {
		return
	}
	for _, email := range emails {
		data := &domain.EventDecisionEmailData{
			Email:            email,
			EventTitle:       event.Title,
			OrganizationName: org.Name,
		}
		if approved {
			_ = s.emailService.SendEventApproved(ctx, data)
		} else {
			_ = s.emailService.SendEventRejected(ctx, data)
		}
	}
}

func (s *eventService) SetEventStatus(ctx context.Context, actor domain.Actor, id int64, status domain.EventStatus) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidEventStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	event, err := s.getEditable(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if event.Status == status {
		return event, nil
	}
	if err := s.eventRepo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("set status: %w", err)
	}
	event.Status = status
	return event, nil
}
