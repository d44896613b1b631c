package domain

import (
	"context"
	"time"
)

// EventStatus is the host-controlled lifecycle status of an event.
// Approval is tracked separately in Event.IsApproved; the two together form
// the composite lifecycle state.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusCancelled EventStatus = "cancelled"
)

// ValidEventStatus reports whether s is one of the known statuses.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusCancelled:
		return true
	}
	return false
}

// Modality describes how an event is attended.
type Modality string

const (
	ModalityInPerson Modality = "in-person"
	ModalityOnline   Modality = "online"
	ModalityHybrid   Modality = "hybrid"
)

// ValidModality reports whether m is one of the known modalities.
func ValidModality(m Modality) bool {
	switch m {
	case ModalityInPerson, ModalityOnline, ModalityHybrid:
		return true
	}
	return false
}

// Event represents a campus event.
// Exactly one of HostOrganizationID and HostUser is set: organization-hosted
// events are created by that organization's board members, free-text hosts by
// site admins only.
// swagger:model Event
type Event struct {
	ID            int64       `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	StartDatetime time.Time   `json:"start_datetime"`
	EndDatetime   *time.Time  `json:"end_datetime"`
	CategoryID    *int64      `json:"category_id"`
	Subcategory   string      `json:"subcategory"`

	HostOrganizationID *int64 `json:"host_organization_id"`
	HostUser           string `json:"host_user"`

	Status     EventStatus `json:"status"`
	IsApproved bool        `json:"is_approved"`

	HasFreeFood           bool   `json:"has_free_food"`
	HasFreeSwag           bool   `json:"has_free_swag"`
	OtherPerks            string `json:"other_perks"`
	EmployersInAttendance string `json:"employers_in_attendance"`

	Location  string   `json:"location"`
	Room      string   `json:"room"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Modality  Modality `json:"modality"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPubliclyVisible reports whether ordinary viewers may see the event:
// published status and admin approval are both required.
func (e *Event) IsPubliclyVisible() bool {
	return e.Status == StatusPublished && e.IsApproved
}

// EventDetail is an event together with its per-request derived fields.
// swagger:model EventDetail
type EventDetail struct {
	*Event
	RSVPCount   int  `json:"rsvp_count"`
	UserHasRSVP bool `json:"user_has_rsvp"`
}

// EventFilter holds the supported listing filters. Nil/zero fields are not
// applied. Visibility filtering is layered on top by the service per actor.
type EventFilter struct {
	CategoryID         *int64
	HostOrganizationID *int64
	Modality           *Modality
	HasFreeFood        *bool
	HasFreeSwag        *bool
	StartDate          *time.Time
	EndDate            *time.Time
	Status             *EventStatus
	IsApproved         *bool
	Search             string

	// Visibility scoping, set by the service from the actor, never from
	// client input. When PublicOnly is true only published+approved events
	// match, except events hosted by an organization in AlsoHostOrgIDs.
	PublicOnly     bool
	AlsoHostOrgIDs []int64
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
	SetApproved(ctx context.Context, id int64, approved bool) error
	SetStatus(ctx context.Context, id int64, status EventStatus) error
}

// EventService defines the event lifecycle operations. Every operation takes
// the requesting Actor; authorization is decided by the policy functions and
// never re-derived by callers.
type EventService interface {
	CreateEvent(ctx context.Context, actor Actor, event *Event) error
	GetEvent(ctx context.Context, actor Actor, id int64) (*EventDetail, error)
	ListEvents(ctx context.Context, actor Actor, filter EventFilter, params PaginationParams) ([]*EventDetail, int, error)
	UpdateEvent(ctx context.Context, actor Actor, event *Event) (*Event, error)
	DeleteEvent(ctx context.Context, actor Actor, id int64) error
	ApproveEvent(ctx context.Context, actor Actor, id int64) error
	RejectEvent(ctx context.Context, actor Actor, id int64) error
	SetEventStatus(ctx context.Context, actor Actor, id int64, status EventStatus) (*Event, error)
}
