package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"campusevents/internal/adapters/storage"
	"campusevents/internal/delivery/http/helpers"
	"campusevents/internal/delivery/http/middleware"
	"campusevents/internal/domain"
)

// ProfileSuccessResponse is the success response envelope for profile routes.
type ProfileSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ProfileController struct {
	Logger   *slog.Logger
	Users    domain.UserService
	Pictures domain.PictureStorage
}

func NewProfileController(logger *slog.Logger, users domain.UserService, pictures domain.PictureStorage) *ProfileController {
	return &ProfileController{
		Logger:   logger,
		Users:    users,
		Pictures: pictures,
	}
}

// GetProfile godoc
// @Summary Get a user profile
// @Description Returns the public profile for the given username.
// @Tags profiles
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the user"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/{username} [get]
func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing username")
		return
	}
	user, err := c.Users.GetProfile(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// formValue returns a pointer to the form field value when the field was
// present, nil when it was omitted. An empty string clears the field.
func formValue(r *http.Request, name string) *string {
	if vs, ok := r.MultipartForm.Value[name]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

// UpdateProfile godoc
// @Summary Update a user profile
// @Description Updates profile fields (first_name, last_name, bio, pronouns) and optionally uploads a new profile picture. Multipart form; omitted fields are unchanged. Only the profile owner and admins may update. Requires authentication.
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param first_name formData string false "First name"
// @Param last_name formData string false "Last name"
// @Param bio formData string false "Bio"
// @Param pronouns formData string false "Pronouns"
// @Param picture formData file false "Profile picture (jpeg, png, webp; max 5MB)"
// @Success 200 {object} controllers.ProfileSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (bad form or unsupported picture)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /profiles/{username} [put]
func (c *ProfileController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing username")
		return
	}
	if err := r.ParseMultipartForm(storage.MaxPictureSize + 1024*1024); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "expected multipart form: "+err.Error())
		return
	}
	update := domain.ProfileUpdate{
		FirstName: formValue(r, "first_name"),
		LastName:  formValue(r, "last_name"),
		Bio:       formValue(r, "bio"),
		Pronouns:  formValue(r, "pronouns"),
	}

	file, header, err := r.FormFile("picture")
	if err == nil {
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		url, uploadErr := c.Pictures.UploadPicture(r.Context(), header.Filename, contentType, file, header.Size)
		if uploadErr != nil {
			writeServiceError(w, r, c.Logger, uploadErr)
			return
		}
		if strings.TrimSpace(url) != "" {
			update.PictureURL = &url
		}
	} else if err != http.ErrMissingFile {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid picture upload")
		return
	}

	actor := middleware.ActorFromContext(r.Context())
	user, err := c.Users.UpdateProfile(r.Context(), actor, username, update)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}
