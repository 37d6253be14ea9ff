package handler

import (
	"net/http"

	"github.com/templui/userbase/internal/service"
)

type AccountHandler struct {
	userService *service.UserService
}

func NewAccountHandler(userService *service.UserService) *AccountHandler {
	return &AccountHandler{
		userService: userService,
	}
}

type updatePictureRequest struct {
	Email      string `json:"email"`
	PictureURL string `json:"pictureUrl"`
	ImageID    string `json:"unsplashImageId"`
}

// ListUsers returns the account summaries.
// GET /users
func (h *AccountHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to fetch users")
		return
	}
	writeSuccess(w, http.StatusOK, "users fetched successfully", users)
}

// DeleteUser removes the account. The profile stays.
// DELETE /user/{email}
func (h *AccountHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.userService.Delete(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, r, err, "failed to delete user")
		return
	}
	writeSuccess(w, http.StatusOK, "user deleted successfully", map[string]int64{"deletedCount": deleted})
}

// CheckEmail reports whether an account uses the email.
// GET /checkEmail/{email}
func (h *AccountHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.userService.EmailExists(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, r, err, "failed to check email")
		return
	}

	message := "email is available"
	if exists {
		message = "email already exists"
	}
	writeSuccess(w, http.StatusOK, message, map[string]bool{"exists": exists})
}

// UpdatePicture stores a chosen picture on the account and its profile.
// PUT /updateProfilePicture
func (h *AccountHandler) UpdatePicture(w http.ResponseWriter, r *http.Request) {
	var req updatePictureRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	err = h.userService.UpdatePicture(r.Context(), req.Email, req.PictureURL, req.ImageID)
	if err != nil {
		writeError(w, r, err, "failed to update profile picture")
		return
	}

	writeSuccess(w, http.StatusOK, "profile picture updated successfully", map[string]string{
		"email":   req.Email,
		"picture": req.PictureURL,
	})
}
