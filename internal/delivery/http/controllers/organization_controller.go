package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// RegisterOrganizationRequest is the request body for POST /organizations.
type RegisterOrganizationRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Validate implements Validator. Slug format is checked again in the service.
func (o RegisterOrganizationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(o.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(o.Slug) == "" {
		errs = append(errs, "slug is required")
	}
	return errs
}

// SetMemberRoleRequest is the request body for POST /organizations/{slug}/members.
type SetMemberRoleRequest struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Validate implements Validator.
func (s SetMemberRoleRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Username) == "" {
		errs = append(errs, "username is required")
	}
	if !domain.ValidMemberRole(domain.MemberRole(s.Role)) {
		errs = append(errs, "role must be member or board")
	}
	return errs
}

// OrganizationSuccessResponse is the success response envelope for POST /organizations (201).
type OrganizationSuccessResponse struct {
	Data  *domain.Organization `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// OrganizationDetailSuccessResponse is the success response envelope for GET /organizations/{slug} (200).
type OrganizationDetailSuccessResponse struct {
	Data  *domain.OrganizationWithMembers `json:"data"`
	Error *helpers.APIError               `json:"error"`
}

// ListOrganizationsSuccessResponse is the success response envelope for GET /organizations (200).
type ListOrganizationsSuccessResponse struct {
	Data  []*domain.Organization `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type OrganizationController struct {
	Logger *slog.Logger
	Orgs   domain.OrganizationService
	Events domain.EventService
}

func NewOrganizationController(logger *slog.Logger, orgs domain.OrganizationService, events domain.EventService) *OrganizationController {
	return &OrganizationController{
		Logger: logger,
		Orgs:   orgs,
		Events: events,
	}
}

// ListOrganizations godoc
// @Summary List organizations
// @Description Returns organizations. Only verified organizations are listed unless the caller is an admin.
// @Tags organizations
// @Produce json
// @Success 200 {object} controllers.ListOrganizationsSuccessResponse "data is an array of organizations"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations [get]
func (c *OrganizationController) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	orgs, err := c.Orgs.List(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	if orgs == nil {
		orgs = []*domain.Organization{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, orgs)
}

// RegisterOrganization godoc
// @Summary Register an organization
// @Description Creates a new, unverified organization. The caller becomes its first board member. Requires authentication.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterOrganizationRequest true "Organization fields"
// @Success 201 {object} controllers.OrganizationSuccessResponse "data contains the created organization"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (invalid or duplicate slug)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations [post]
func (c *OrganizationController) RegisterOrganization(w http.ResponseWriter, r *http.Request) {
	var req RegisterOrganizationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	org, err := c.Orgs.Register(r.Context(), actor, req.Name, req.Slug, req.Description)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, org)
}

// GetOrganization godoc
// @Summary Get an organization by slug
// @Description Returns the organization with its member roster. Unverified organizations are visible only to their members and to admins; everyone else gets 404.
// @Tags organizations
// @Produce json
// @Param slug path string true "Organization slug"
// @Success 200 {object} controllers.OrganizationDetailSuccessResponse "data contains the organization and members"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{slug} [get]
func (c *OrganizationController) GetOrganization(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	org, err := c.Orgs.GetBySlug(r.Context(), actor, slug)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, org)
}

// SetMemberRole godoc
// @Summary Add or update an organization member
// @Description Adds the named user to the organization roster with the given role, or updates their role. Board members of the organization and admins only.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param body body SetMemberRoleRequest true "Username and role"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (organization or user)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{slug}/members [post]
func (c *OrganizationController) SetMemberRole(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req SetMemberRoleRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Orgs.SetMemberRole(r.Context(), actor, slug, req.Username, domain.MemberRole(req.Role)); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// RemoveMember godoc
// @Summary Remove an organization member
// @Description Removes the named user from the organization roster. Board members of the organization and admins only.
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Organization slug"
// @Param username path string true "Username of the member to remove"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (organization, user, or membership)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{slug}/members/{username} [delete]
func (c *OrganizationController) RemoveMember(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	username := r.PathValue("username")
	if slug == "" || username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug or username")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	if err := c.Orgs.RemoveMember(r.Context(), actor, slug, username); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "removed"})
}

// ListOrganizationEvents godoc
// @Summary List an organization's events
// @Description Returns the organization's events, visibility-filtered like GET /events: outsiders see only published and approved events, the organization's board sees everything.
// @Tags organizations
// @Produce json
// @Param slug path string true "Organization slug"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{slug}/events [get]
func (c *OrganizationController) ListOrganizationEvents(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	actor := middleware.ActorFromContext(r.Context())
	org, err := c.Orgs.GetBySlug(r.Context(), actor, slug)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	filter := parseEventFilter(r)
	filter.HostOrganizationID = &org.Organization.ID
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
