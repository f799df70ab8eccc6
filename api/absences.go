package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
	"github.com/newwork/workforce/internal/workflow"
	"github.com/newwork/workforce/pkg/repository"
)

type AbsencesHandler struct {
	absenceRepo repository.AbsenceRepo
}

func NewAbsencesHandler(ar repository.AbsenceRepo) *AbsencesHandler {
	return &AbsencesHandler{absenceRepo: ar}
}

type createAbsenceRequest struct {
	StartDate int64  `json:"start_date"`
	EndDate   int64  `json:"end_date"`
	Reason    string `json:"reason"`
}

// CreateAbsence files a request for the acting employee. Only employees
// create absence requests, and only for themselves.
func (h *AbsencesHandler) CreateAbsence(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	absence := models.AbsenceRequest{
		UserID:    actor.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    models.AbsencePending,
	}

	if d := policy.Authorize(actor, policy.ActionCreate, policy.ResourceAbsenceRequest, &absence); !d.Allowed {
		writeDeny(w, d)
		return
	}

	if ve := workflow.ValidateAbsence(req.StartDate, req.EndDate, req.Reason); ve != nil {
		writeValidation(w, ve)
		return
	}

	id, err := h.absenceRepo.CreateAbsence(r.Context(), &absence)
	if err != nil {
		http.Error(w, "failed to create absence request", http.StatusInternalServerError)
		return
	}
	absence.ID = id

	writeJSON(w, absence, http.StatusCreated)
}

// ListAbsences returns the requests visible to the actor. Coworkers get an
// empty sequence, not an error.
func (h *AbsencesHandler) ListAbsences(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requests, err := h.absenceRepo.ListAbsences(r.Context())
	if err != nil {
		http.Error(w, "failed to list absence requests", http.StatusInternalServerError)
		return
	}

	writeJSON(w, policy.FilterAbsences(actor, requests), http.StatusOK)
}

type updateAbsenceStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus drives the pending → approved/rejected transition. The
// outcome mirrors the workflow contract: ok with the new status, or a
// denial reason the client surfaces as-is.
func (h *AbsencesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid absence request id", http.StatusBadRequest)
		return
	}

	var req updateAbsenceStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	absence, err := h.absenceRepo.GetAbsenceByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load absence request", http.StatusInternalServerError)
		return
	}
	if absence == nil {
		http.Error(w, "absence request not found", http.StatusNotFound)
		return
	}

	outcome, err := workflow.ApplyTransition(r.Context(), h.absenceRepo, actor, absence, models.AbsenceStatus(req.Status))
	if err != nil {
		http.Error(w, "failed to apply transition", http.StatusInternalServerError)
		return
	}
	if !outcome.OK {
		writeJSON(w, outcome, http.StatusForbidden)
		return
	}

	writeJSON(w, outcome, http.StatusOK)
}
