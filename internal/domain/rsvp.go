package domain

import (
	"context"
	"time"
)

// RSVP records a user's intent to attend an event. At most one RSVP exists
// per (event, user) pair; the store enforces this with a unique constraint so
// concurrent attempts collapse to a single row.
// swagger:model RSVP
type RSVP struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RSVPWithEvent bundles an RSVP with its event for profile listings.
type RSVPWithEvent struct {
	RSVP  *RSVP  `json:"rsvp"`
	Event *Event `json:"event"`
}

// RSVPRepository defines RSVP storage.
type RSVPRepository interface {
	// Create inserts the RSVP. A duplicate (event, user) pair returns
	// ErrAlreadyRSVPed.
	Create(ctx context.Context, rsvp *RSVP) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*RSVP, error)
	// Delete removes the user's RSVP; ErrNotFound if none exists.
	Delete(ctx context.Context, eventID, userID int64) error
	CountByEventID(ctx context.Context, eventID int64) (int, error)
	ListByUserID(ctx context.Context, userID int64) ([]*RSVP, error)
}

// RSVPService defines RSVP operations.
type RSVPService interface {
	// RSVP registers the actor for the event. created is false when the actor
	// already had an RSVP; that case is informational, not an error.
	RSVP(ctx context.Context, actor Actor, eventID int64) (rsvp *RSVP, created bool, err error)
	// CancelRSVP removes the actor's RSVP; ErrNotFound if none exists.
	CancelRSVP(ctx context.Context, actor Actor, eventID int64) error
	ListMyRSVPs(ctx context.Context, actor Actor) ([]*RSVPWithEvent, error)
}
