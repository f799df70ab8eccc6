package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/newwork/workforce/internal/enhance"
	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
	"github.com/newwork/workforce/pkg/repository"
)

type DataItemsHandler struct {
	dataItemRepo repository.DataItemRepo
	feedbackRepo repository.FeedbackRepo
	userRepo     repository.UserRepo
	enhancer     enhance.Enhancer
}

func NewDataItemsHandler(dr repository.DataItemRepo, fr repository.FeedbackRepo, ur repository.UserRepo, e enhance.Enhancer) *DataItemsHandler {
	if e == nil {
		e = enhance.Disabled{}
	}
	return &DataItemsHandler{dataItemRepo: dr, feedbackRepo: fr, userRepo: ur, enhancer: e}
}

type createDataItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// Optional for managers assigning to others; defaults to the actor.
	OwnerID *int64 `json:"owner_id,omitempty"`
}

func (h *DataItemsHandler) CreateDataItem(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createDataItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ownerID := actor.ID
	if req.OwnerID != nil {
		ownerID = *req.OwnerID
	}

	item := models.DataItem{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		OwnerID:     ownerID,
	}

	if d := policy.Authorize(actor, policy.ActionCreate, policy.ResourceDataItem, &item); !d.Allowed {
		writeDeny(w, d)
		return
	}

	if item.Title == "" {
		writeValidation(w, &models.ValidationError{Field: "title", Reason: "must not be empty"})
		return
	}

	// A data item is never owned by a coworker. The evaluator cannot look up
	// the owner's role, so the boundary enforces the invariant here.
	owner, err := h.userRepo.GetUserByID(r.Context(), ownerID)
	if err != nil {
		http.Error(w, "failed to load owner", http.StatusInternalServerError)
		return
	}
	if owner == nil {
		writeValidation(w, &models.ValidationError{Field: "owner_id", Reason: "unknown user"})
		return
	}
	if owner.Role == models.RoleCoworker {
		writeValidation(w, &models.ValidationError{Field: "owner_id", Reason: "owner must be a manager or employee"})
		return
	}

	id, err := h.dataItemRepo.CreateDataItem(r.Context(), &item)
	if err != nil {
		http.Error(w, "failed to create data item", http.StatusInternalServerError)
		return
	}

	created, err := h.dataItemRepo.GetDataItemByID(r.Context(), id)
	if err != nil || created == nil {
		http.Error(w, "failed to load data item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

// ListDataItems returns the items visible to the actor: non-deleted items
// for everyone with a read grant, soft-deleted items only for managers and
// owning employees.
func (h *DataItemsHandler) ListDataItems(w http.ResponseWriter, r *http.Request) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.dataItemRepo.ListDataItems(r.Context())
	if err != nil {
		http.Error(w, "failed to list data items", http.StatusInternalServerError)
		return
	}

	writeJSON(w, policy.FilterDataItems(actor, items), http.StatusOK)
}

func (h *DataItemsHandler) GetDataItem(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if d := policy.Authorize(actor, policy.ActionRead, policy.ResourceDataItem, item); !d.Allowed {
		writeDeny(w, d)
		return
	}

	writeJSON(w, item, http.StatusOK)
}

type updateDataItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateDataItem edits title/description. Edits are refused while the item
// is soft-deleted; it must be restored first.
func (h *DataItemsHandler) UpdateDataItem(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if d := policy.Authorize(actor, policy.ActionUpdate, policy.ResourceDataItem, item); !d.Allowed {
		writeDeny(w, d)
		return
	}

	var req updateDataItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			writeValidation(w, &models.ValidationError{Field: "title", Reason: "must not be empty"})
			return
		}
		item.Title = title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}

	if err := h.dataItemRepo.UpdateDataItem(r.Context(), item); err != nil {
		http.Error(w, "failed to update data item", http.StatusInternalServerError)
		return
	}

	updated, err := h.dataItemRepo.GetDataItemByID(r.Context(), item.ID)
	if err != nil || updated == nil {
		http.Error(w, "failed to load data item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

func (h *DataItemsHandler) DeleteDataItem(w http.ResponseWriter, r *http.Request) {
	h.toggleDeleted(w, r, policy.ActionDelete, true)
}

func (h *DataItemsHandler) RestoreDataItem(w http.ResponseWriter, r *http.Request) {
	h.toggleDeleted(w, r, policy.ActionRestore, false)
}

// toggleDeleted flips the soft-delete flag; the record stays in place and
// updated advances on every toggle.
func (h *DataItemsHandler) toggleDeleted(w http.ResponseWriter, r *http.Request, action policy.Action, deleted bool) {
	actor, item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if d := policy.Authorize(actor, action, policy.ResourceDataItem, item); !d.Allowed {
		writeDeny(w, d)
		return
	}

	if err := h.dataItemRepo.SetDeleted(r.Context(), item.ID, deleted); err != nil {
		http.Error(w, "failed to update data item", http.StatusInternalServerError)
		return
	}

	updated, err := h.dataItemRepo.GetDataItemByID(r.Context(), item.ID)
	if err != nil || updated == nil {
		http.Error(w, "failed to load data item", http.StatusInternalServerError)
		return
	}

	writeJSON(w, updated, http.StatusOK)
}

type createFeedbackRequest struct {
	Content string `json:"content"`
	Polish  bool   `json:"polish,omitempty"`
}

// CreateFeedback attaches a coworker's feedback to a data item. When polish
// is requested the enhancement collaborator is consulted; its failure
// degrades to storing the original content only and never blocks creation.
func (h *DataItemsHandler) CreateFeedback(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if d := policy.Authorize(actor, policy.ActionCreate, policy.ResourceFeedback, nil); !d.Allowed {
		writeDeny(w, d)
		return
	}
	// The parent item must be visible to the author.
	if d := policy.Authorize(actor, policy.ActionRead, policy.ResourceDataItem, item); !d.Allowed {
		writeDeny(w, d)
		return
	}

	var req createFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if ve := models.ValidateFeedbackContent(req.Content); ve != nil {
		writeValidation(w, ve)
		return
	}

	feedback := models.Feedback{
		DataItemID: item.ID,
		FromUserID: actor.ID,
		Content:    req.Content,
	}

	if req.Polish {
		polished, err := h.enhancer.Enhance(r.Context(), req.Content)
		switch {
		case err == nil:
			feedback.PolishedContent = &polished
		case errors.Is(err, enhance.ErrUnavailable):
			logger.Warn("feedback enhancement unavailable, storing original only",
				slog.Int64("data_item_id", item.ID))
		default:
			logger.Error("feedback enhancement failed", slog.Any("err", err))
		}
	}

	id, err := h.feedbackRepo.CreateFeedback(r.Context(), &feedback)
	if err != nil {
		http.Error(w, "failed to create feedback", http.StatusInternalServerError)
		return
	}
	feedback.ID = id

	writeJSON(w, feedback, http.StatusCreated)
}

func (h *DataItemsHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	actor, item, ok := h.loadItem(w, r)
	if !ok {
		return
	}

	if d := policy.Authorize(actor, policy.ActionRead, policy.ResourceDataItem, item); !d.Allowed {
		writeDeny(w, d)
		return
	}
	if d := policy.Authorize(actor, policy.ActionRead, policy.ResourceFeedback, nil); !d.Allowed {
		writeDeny(w, d)
		return
	}

	entries, err := h.feedbackRepo.ListFeedbackByDataItem(r.Context(), item.ID)
	if err != nil {
		http.Error(w, "failed to list feedback", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.Feedback{}
	}

	writeJSON(w, entries, http.StatusOK)
}

// loadItem resolves the {id} path variable and fetches the record; it
// writes the error response itself when resolution fails.
func (h *DataItemsHandler) loadItem(w http.ResponseWriter, r *http.Request) (policy.Actor, *models.DataItem, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return policy.Actor{}, nil, false
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid data item id", http.StatusBadRequest)
		return policy.Actor{}, nil, false
	}

	item, err := h.dataItemRepo.GetDataItemByID(r.Context(), id)
	if err != nil {
		http.Error(w, "failed to load data item", http.StatusInternalServerError)
		return policy.Actor{}, nil, false
	}
	if item == nil {
		http.Error(w, "data item not found", http.StatusNotFound)
		return policy.Actor{}, nil, false
	}

	return actor, item, true
}
