package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// Validate implements Validator. Username, email, and password rules are
// enforced in the service; the confirmation match is a transport concern.
func (s SignUpRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Username) == "" {
		errs = append(errs, "username is required")
	}
	if strings.TrimSpace(s.Email) == "" {
		errs = append(errs, "email is required")
	}
	if s.Password == "" {
		errs = append(errs, "password is required")
	}
	if s.Password != s.ConfirmPassword {
		errs = append(errs, "passwords do not match")
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	var errs []string
	if l.Username == "" {
		errs = append(errs, "username is required")
	}
	if l.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

// LoginResponse is the data payload for POST /auth/login (200). The token is
// also set as an HttpOnly session cookie; API clients may instead send it as
// a Bearer header.
type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// LoginSuccessResponse is the success response envelope for POST /auth/login (200).
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SignUpSuccessResponse is the success response envelope for POST /auth/signup (201).
type SignUpSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionResponse is the data payload for GET /auth/session (200).
type SessionResponse struct {
	Authenticated bool    `json:"authenticated"`
	UserID        int64   `json:"user_id,omitempty"`
	Username      string  `json:"username,omitempty"`
	IsAdmin       bool    `json:"is_admin"`
	BoardOrgIDs   []int64 `json:"board_org_ids,omitempty"`
}

// SessionSuccessResponse is the success response envelope for GET /auth/session (200).
type SessionSuccessResponse struct {
	Data  SessionResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CSRFResponse is the data payload for GET /csrf (200). The same token is set
// as a cookie; clients echo it back in the X-CSRF-Token header.
type CSRFResponse struct {
	Token string `json:"token"`
}

// CSRFSuccessResponse is the success response envelope for GET /csrf (200).
type CSRFSuccessResponse struct {
	Data  CSRFResponse      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AuthController struct {
	Logger *slog.Logger
	Users  domain.UserService

	// SessionTTL bounds both the JWT lifetime and the session cookie age.
	SessionTTL    time.Duration
	SecureCookies bool
}

func NewAuthController(logger *slog.Logger, users domain.UserService, sessionTTL time.Duration, secureCookies bool) *AuthController {
	return &AuthController{
		Logger:        logger,
		Users:         users,
		SessionTTL:    sessionTTL,
		SecureCookies: secureCookies,
	}
}

// SignUp godoc
// @Summary Register a new account
// @Description Creates a user account. Usernames are 3 to 30 characters of letters, digits, dot, dash, underscore; passwords are at least 8 characters and must match the confirmation.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Account fields"
// @Success 201 {object} controllers.SignUpSuccessResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (validation or duplicate username/email)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Users.SignUp(r.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and starts a session. The session token is returned in the body and also set as an HttpOnly cookie for browser clients.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} controllers.LoginSuccessResponse "data contains the token and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (bad credentials)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// Logout godoc
// @Summary Log out
// @Description Clears the session cookie. Always succeeds; the JWT itself simply expires.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Router /auth/logout [post]
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "logged out"})
}

// Session godoc
// @Summary Current session
// @Description Returns a snapshot of the caller's identity: whether they are authenticated, their admin flag, and the organizations they administer. Anonymous callers get authenticated false, not 401.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.SessionSuccessResponse "data contains the session snapshot"
// @Router /auth/session [get]
func (c *AuthController) Session(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())
	resp := SessionResponse{
		Authenticated: actor.IsAuthenticated(),
		IsAdmin:       actor.Kind == domain.ActorSiteAdmin,
	}
	if actor.IsAuthenticated() {
		resp.UserID = actor.UserID
		resp.Username = actor.Username
		for id := range actor.BoardOf {
			resp.BoardOrgIDs = append(resp.BoardOrgIDs, id)
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// CSRFToken godoc
// @Summary Issue a CSRF token
// @Description Issues a fresh CSRF token as both a cookie and a response field. The cookie is intentionally readable by scripts so single-page apps can echo it in the X-CSRF-Token header.
// @Tags auth
// @Produce json
// @Success 200 {object} controllers.CSRFSuccessResponse "data contains the token"
// @Router /csrf [get]
func (c *AuthController) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CSRFCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.SessionTTL.Seconds()),
		HttpOnly: false,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	helpers.WriteJSONSuccess(w, http.StatusOK, CSRFResponse{Token: token})
}
