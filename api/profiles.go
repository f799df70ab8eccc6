package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/newwork/workforce/internal/policy"
	"github.com/newwork/workforce/pkg/repository"
)

type ProfilesHandler struct {
	profileRepo repository.ProfileRepo
}

func NewProfilesHandler(pr repository.ProfileRepo) *ProfilesHandler {
	return &ProfilesHandler{profileRepo: pr}
}

// ListProfiles returns every profile projected for the actor: sensitive
// fields are present only where the actor holds read_sensitive on that
// profile.
func (h *ProfilesHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if d := policy.Authorize(actor, policy.ActionRead, policy.ResourceEmployeeProfile, nil); !d.Allowed {
		writeDeny(w, d)
		return
	}

	profiles, err := h.profileRepo.ListProfiles(r.Context())
	if err != nil {
		http.Error(w, "failed to list profiles", http.StatusInternalServerError)
		return
	}

	writeJSON(w, policy.ProjectProfiles(actor, profiles), http.StatusOK)
}

func (h *ProfilesHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	profile, err := h.profileRepo.GetProfileByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	if d := policy.Authorize(actor, policy.ActionRead, policy.ResourceEmployeeProfile, profile); !d.Allowed {
		writeDeny(w, d)
		return
	}

	writeJSON(w, policy.ProjectProfile(actor, *profile), http.StatusOK)
}

type updateProfileRequest struct {
	Position   *string  `json:"position"`
	Department *string  `json:"department"`
	Salary     *float64 `json:"salary"`
	Phone      *string  `json:"phone"`
	Address    *string  `json:"address"`
	HireDate   *int64   `json:"hire_date"`
}

// UpdateProfile applies a partial update. Managers may update any profile;
// employees only their own.
func (h *ProfilesHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	profile, err := h.profileRepo.GetProfileByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}
	if profile == nil {
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	if d := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceEmployeeProfile, profile); !d.Allowed {
		writeDeny(w, d)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Position != nil {
		profile.Position = *req.Position
	}
	if req.Department != nil {
		profile.Department = *req.Department
	}
	if req.Salary != nil {
		profile.Salary = *req.Salary
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.HireDate != nil {
		profile.HireDate = *req.HireDate
	}

	if err := h.profileRepo.UpdateProfile(r.Context(), profile); err != nil {
		http.Error(w, "failed to update profile", http.StatusInternalServerError)
		return
	}

	writeJSON(w, policy.ProjectProfile(actor, *profile), http.StatusOK)
}
