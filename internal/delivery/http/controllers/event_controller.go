package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// EventRequest is the request body for POST /events and PUT /events/{eventID}.
// Status and approval are never accepted from the client; lifecycle changes go
// through the dedicated publish/unpublish/cancel and approve/reject routes.
type EventRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	StartDatetime time.Time  `json:"start_datetime"`
	EndDatetime   *time.Time `json:"end_datetime"`
	CategoryID    *int64     `json:"category_id"`
	Subcategory   string     `json:"subcategory"`

	HostOrganizationID *int64 `json:"host_organization_id"`
	HostUser           string `json:"host_user"`

	HasFreeFood           bool   `json:"has_free_food"`
	HasFreeSwag           bool   `json:"has_free_swag"`
	OtherPerks            string `json:"other_perks"`
	EmployersInAttendance string `json:"employers_in_attendance"`

	Location  string   `json:"location"`
	Room      string   `json:"room"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Modality  string   `json:"modality"`
}

// Validate implements Validator. Full validation (host exclusivity, time
// ordering) lives in the service; this catches the obvious shape errors early.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Title) == "" {
		errs = append(errs, "title is required")
	}
	if e.StartDatetime.IsZero() {
		errs = append(errs, "start_datetime is required")
	}
	if e.Modality != "" && !domain.ValidModality(domain.Modality(e.Modality)) {
		errs = append(errs, "modality must be one of in-person, online, hybrid")
	}
	if e.Latitude != nil && (*e.Latitude < -90 || *e.Latitude > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if e.Longitude != nil && (*e.Longitude < -180 || *e.Longitude > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

func (e EventRequest) toDomain() *domain.Event {
	return &domain.Event{
		Title:                 strings.TrimSpace(e.Title),
		Description:           e.Description,
		StartDatetime:         e.StartDatetime,
		EndDatetime:           e.EndDatetime,
		CategoryID:            e.CategoryID,
		Subcategory:           e.Subcategory,
		HostOrganizationID:    e.HostOrganizationID,
		HostUser:              strings.TrimSpace(e.HostUser),
		HasFreeFood:           e.HasFreeFood,
		HasFreeSwag:           e.HasFreeSwag,
		OtherPerks:            e.OtherPerks,
		EmployersInAttendance: e.EmployersInAttendance,
		Location:              e.Location,
		Room:                  e.Room,
		Latitude:              e.Latitude,
		Longitude:             e.Longitude,
		Modality:              domain.Modality(e.Modality),
	}
}

// EventSuccessResponse is the success response envelope for single-event routes.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDetailSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type EventDetailSuccessResponse struct {
	Data  *domain.EventDetail `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.EventDetail  `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// StatusResponse is the data payload for routes that return only a status string.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success response envelope for status-only routes.
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RSVPResponse is the data payload for POST /events/{eventID}/rsvp.
// Created is false when the caller already had an RSVP for the event.
type RSVPResponse struct {
	RSVP    *domain.RSVP `json:"rsvp"`
	Created bool         `json:"created"`
}

// RSVPSuccessResponse is the success response envelope for POST /events/{eventID}/rsvp.
type RSVPSuccessResponse struct {
	Data  RSVPResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMyRSVPsSuccessResponse is the success response envelope for GET /rsvps/me (200).
type ListMyRSVPsSuccessResponse struct {
	Data  []*domain.RSVPWithEvent `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []*domain.Category `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type EventController struct {
	Logger       *slog.Logger
	Events       domain.EventService
	RSVPs        domain.RSVPService
	CategoryRepo domain.CategoryRepository
}

func NewEventController(logger *slog.Logger, events domain.EventService, rsvps domain.RSVPService, categories domain.CategoryRepository) *EventController {
	return &EventController{
		Logger:       logger,
		Events:       events,
		RSVPs:        rsvps,
		CategoryRepo: categories,
	}
}

// pathID parses the named int64 path value. Writes a 400 and returns false on
// a malformed value.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// parseEventFilter reads the supported listing filters from the query string.
// Visibility scoping fields are left untouched; the service owns those.
func parseEventFilter(r *http.Request) domain.EventFilter {
	q := r.URL.Query()
	var f domain.EventFilter
	if s := q.Get("category_id"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			f.CategoryID = &v
		}
	}
	if s := q.Get("organization_id"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			f.HostOrganizationID = &v
		}
	}
	if s := q.Get("modality"); s != "" {
		m := domain.Modality(s)
		if domain.ValidModality(m) {
			f.Modality = &m
		}
	}
	if s := q.Get("has_free_food"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			f.HasFreeFood = &v
		}
	}
	if s := q.Get("has_free_swag"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			f.HasFreeSwag = &v
		}
	}
	if s := q.Get("start_date"); s != "" {
		if v, err := time.Parse(time.RFC3339, s); err == nil {
			f.StartDate = &v
		} else if v, err := time.Parse("2006-01-02", s); err == nil {
			f.StartDate = &v
		}
	}
	if s := q.Get("end_date"); s != "" {
		if v, err := time.Parse(time.RFC3339, s); err == nil {
			f.EndDate = &v
		} else if v, err := time.Parse("2006-01-02", s); err == nil {
			f.EndDate = &v
		}
	}
	if s := q.Get("status"); s != "" {
		st := domain.EventStatus(s)
		if domain.ValidEventStatus(st) {
			f.Status = &st
		}
	}
	if s := q.Get("is_approved"); s != "" {
		if v, err := strconv.ParseBool(s); err == nil {
			f.IsApproved = &v
		}
	}
	f.Search = strings.TrimSpace(q.Get("search"))
	return f
}

// ListEvents godoc
// @Summary List events
// @Description Returns a paginated list of events visible to the caller. Anonymous and student callers see published and approved events plus events of organizations they administer; admins see everything. Filters: category_id, organization_id, modality, has_free_food, has_free_swag, start_date, end_date, status, is_approved, search. Status and approval filters only narrow within the caller's visible set.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	filter := parseEventFilter(r)
	params := helpers.ParsePagination(r)
	events, total, err := c.Events.ListEvents(r.Context(), actor, filter, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.EventDetail{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its RSVP count and, for authenticated callers, whether they have an RSVP. Events the caller may not view return 404, indistinguishable from events that do not exist.
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventDetailSuccessResponse "data contains the event detail"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	detail, err := c.Events.GetEvent(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event in draft status, unapproved. Board members create events for their organization; admins may also create free-text hosted events. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event fields"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	event := req.toDomain()
	if err := c.Events.CreateEvent(r.Context(), actor, event); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the editable fields of an event. Host, status, and approval are not touched; an edit never resets approval. Only the hosting organization's board members and admins may update. Requires authentication.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param body body EventRequest true "Event fields"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	event := req.toDomain()
	event.ID = id
	updated, err := c.Events.UpdateEvent(r.Context(), actor, event)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and its RSVPs. Only the hosting organization's board members and admins may delete. Requires authentication.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Events.DeleteEvent(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ApproveEvent godoc
// @Summary Approve an event
// @Description Marks the event approved and notifies the hosting organization's board. Approving an already approved event is a no-op. Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/approve [post]
func (c *EventController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Events.ApproveEvent(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "approved"})
}

// RejectEvent godoc
// @Summary Reject an event
// @Description Rejects a pending event, deleting it, and notifies the hosting organization's board. Rejecting an already approved event is a no-op. Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/reject [post]
func (c *EventController) RejectEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Events.RejectEvent(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "rejected"})
}

func (c *EventController) setStatus(w http.ResponseWriter, r *http.Request, status domain.EventStatus) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	event, err := c.Events.SetEventStatus(r.Context(), actor, id, status)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// PublishEvent godoc
// @Summary Publish an event
// @Description Sets the event's status to published. The event only becomes publicly visible once it is also approved. Host board members and admins only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/publish [post]
func (c *EventController) PublishEvent(w http.ResponseWriter, r *http.Request) {
	c.setStatus(w, r, domain.StatusPublished)
}

// UnpublishEvent godoc
// @Summary Unpublish an event
// @Description Sets the event's status back to draft, hiding it from public listings. Approval is kept. Host board members and admins only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/unpublish [post]
func (c *EventController) UnpublishEvent(w http.ResponseWriter, r *http.Request) {
	c.setStatus(w, r, domain.StatusDraft)
}

// CancelEvent godoc
// @Summary Cancel an event
// @Description Sets the event's status to cancelled. Existing RSVPs are kept for the record but no new RSVPs are accepted. Host board members and admins only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancel [post]
func (c *EventController) CancelEvent(w http.ResponseWriter, r *http.Request) {
	c.setStatus(w, r, domain.StatusCancelled)
}

// RSVP godoc
// @Summary RSVP to an event
// @Description Registers the caller for the event. Repeating the call is not an error; created is false and the existing RSVP is returned. Cancelled events and events the caller cannot view do not accept RSVPs. Requires authentication.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} controllers.RSVPSuccessResponse "data contains the RSVP and created flag"
// @Success 200 {object} controllers.RSVPSuccessResponse "data contains the existing RSVP, created false"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (event cancelled)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/rsvp [post]
func (c *EventController) RSVP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	rsvp, created, err := c.RSVPs.RSVP(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, RSVPResponse{RSVP: rsvp, Created: created})
}

// CancelRSVP godoc
// @Summary Cancel an RSVP
// @Description Removes the caller's RSVP from the event. Returns 404 if the caller has no RSVP. Requires authentication.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/cancel_rsvp [delete]
func (c *EventController) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.RSVPs.CancelRSVP(r.Context(), actor, id); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "cancelled"})
}

// ListMyRSVPs godoc
// @Summary List the caller's RSVPs
// @Description Returns the caller's RSVPs with their events. Requires authentication.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyRSVPsSuccessResponse "data is an array of RSVPs with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rsvps/me [get]
func (c *EventController) ListMyRSVPs(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	rsvps, err := c.RSVPs.ListMyRSVPs(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if rsvps == nil {
		rsvps = []*domain.RSVPWithEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvps)
}

// ListCategories godoc
// @Summary List event categories
// @Description Returns the fixed set of event categories.
// @Tags categories
// @Produce json
// @Success 200 {object} controllers.ListCategoriesSuccessResponse "data is an array of categories"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /categories [get]
func (c *EventController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.CategoryRepo.List(r.Context())
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}
