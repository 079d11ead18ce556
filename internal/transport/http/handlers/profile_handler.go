package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/pkg/validator"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	log            zerolog.Logger
}

func NewProfileHandler(profileService *service.ProfileService, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, log: log}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
		} else {
			h.log.Error().Err(err).Msg("get own profile")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Upsert handles POST /api/profile. Only supplied fields are written;
// omitted fields keep their stored values.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var patch service.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, skills := "", ""
	if patch.Status != nil {
		status = *patch.Status
	}
	if patch.Skills != nil {
		skills = *patch.Skills
	}
	if errs := validator.ValidateProfile(status, skills); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userID, patch)
	if err != nil {
		h.log.Error().Err(err).Msg("upsert profile")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// List handles GET /api/profile (public).
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list profiles")
		writeServerError(w)
		return
	}

	writeJSON(w, http.StatusOK, profiles)
}

// ByUserID handles GET /api/profile/user/{id} (public). Malformed and
// unknown ids answer the same 400.
func (h *ProfileHandler) ByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		writeMsg(w, http.StatusBadRequest, "Profile not found")
		return
	}

	profile, err := h.profileService.ByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "Profile not found")
		} else {
			h.log.Error().Err(err).Msg("get profile by user")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profile: removes the caller's profile and user.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.profileService.DeleteAccount(r.Context(), userID); err != nil {
		h.log.Error().Err(err).Msg("delete account")
		writeServerError(w)
		return
	}

	writeMsg(w, http.StatusOK, "User was deleted")
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validator.ValidateExperience(input.Title, input.Company, input.From); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
		} else {
			h.log.Error().Err(err).Msg("add experience")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{id}. An unknown
// entry id is tolerated: the profile comes back unchanged.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	// A malformed id cannot match any entry, so it takes the same no-op
	// path as an unknown one.
	expID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		expID = uuid.Nil
	}

	profile, err := h.profileService.RemoveExperience(r.Context(), userID, expID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeMsg(w, http.StatusBadRequest, "There is no profile for this user")
		} else {
			h.log.Error().Err(err).Msg("remove experience")
			writeServerError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
