package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

type rsvpService struct {
	eventRepo      domain.EventRepository
	rsvpRepo       domain.RSVPRepository
	contextTimeout time.Duration
}

// NewRSVPService creates an RSVPService with the given repositories.
func NewRSVPService(eventRepo domain.EventRepository, rsvpRepo domain.RSVPRepository, timeout time.Duration) domain.RSVPService {
	return &rsvpService{
		eventRepo:      eventRepo,
		rsvpRepo:       rsvpRepo,
		contextTimeout: timeout,
	}
}

func (s *rsvpService) RSVP(ctx context.Context, actor domain.Actor, eventID int64) (*domain.RSVP, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAuthenticated() {
		return nil, false, domain.ErrUnauthenticated
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanView(actor, event) {
		return nil, false, domain.ErrNotFound
	}
	if !domain.CanRSVP(actor, event) {
		return nil, false, domain.ErrForbidden
	}

	rsvp := &domain.RSVP{
		EventID:   eventID,
		UserID:    actor.UserID,
		CreatedAt: time.Now(),
	}
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		// A concurrent or repeated RSVP hits the unique constraint; report
		// the existing row as the idempotent outcome.
		if errors.Is(err, domain.ErrAlreadyRSVPed) {
			existing, getErr := s.rsvpRepo.GetByEventAndUser(ctx, eventID, actor.UserID)
			if getErr != nil {
				return nil, false, fmt.Errorf("get existing rsvp: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("create rsvp: %w", err)
	}
	return rsvp, true, nil
}

func (s *rsvpService) CancelRSVP(ctx context.Context, actor domain.Actor, eventID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAuthenticated() {
		return domain.ErrUnauthenticated
	}
	if err := s.rsvpRepo.Delete(ctx, eventID, actor.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete rsvp: %w", err)
	}
	return nil
}

func (s *rsvpService) ListMyRSVPs(ctx context.Context, actor domain.Actor) ([]*domain.RSVPWithEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !actor.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}
	rsvps, err := s.rsvpRepo.ListByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}

	result := []*domain.RSVPWithEvent{}
	eventsByID := make(map[int64]*domain.Event)
	for _, rsvp := range rsvps {
		event, ok := eventsByID[rsvp.EventID]
		if !ok {
			event, err = s.eventRepo.GetByID(ctx, rsvp.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but RSVP remains; skip the entry.
					continue
				}
				return nil, fmt.Errorf("get event for rsvp: %w", err)
			}
			eventsByID[rsvp.EventID] = event
		}
		result = append(result, &domain.RSVPWithEvent{RSVP: rsvp, Event: event})
	}
	return result, nil
}
