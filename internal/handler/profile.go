package handler

import (
	"net/http"

	"github.com/templui/userbase/internal/model"
	"github.com/templui/userbase/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

type updateProfileRequest struct {
	Email string `json:"email"`
	model.ProfileUpdate
}

// GET /userProfile/{email}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.ByEmail(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, r, err, "failed to fetch profile")
		return
	}
	writeSuccess(w, http.StatusOK, "profile fetched successfully", profile)
}

// Update changes only the fields present in the body.
// PUT /updateUserProfile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, r, err, "")
		return
	}

	profile, err := h.profileService.Update(r.Context(), req.Email, req.ProfileUpdate)
	if err != nil {
		writeError(w, r, err, "failed to update profile")
		return
	}
	writeSuccess(w, http.StatusOK, "profile updated successfully", profile)
}

// GET /allUserData
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		writeError(w, r, err, "failed to fetch profiles")
		return
	}
	writeSuccess(w, http.StatusOK, "profiles fetched successfully", profiles)
}

// Delete removes the profile. The account stays.
// DELETE /userProfile/{email}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.profileService.Delete(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, r, err, "failed to delete profile")
		return
	}
	writeSuccess(w, http.StatusOK, "profile deleted successfully", map[string]int64{"deletedCount": deleted})
}

// GET /checkUserProfile/{email}
func (h *ProfileHandler) Exists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.profileService.Exists(r.Context(), r.PathValue("email"))
	if err != nil {
		writeError(w, r, err, "failed to check profile")
		return
	}

	message := "profile not found"
	if exists {
		message = "profile exists"
	}
	writeSuccess(w, http.StatusOK, message, map[string]bool{"exists": exists})
}
