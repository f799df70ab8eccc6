package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/newwork/workforce/api"
	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
	"github.com/newwork/workforce/internal/workflow"
	"github.com/newwork/workforce/pkg/repository/mock"
)

func TestCreateAbsence(t *testing.T) {
	valid := map[string]any{"start_date": 100, "end_date": 200, "reason": "vacation"}

	tests := []struct {
		name       string
		actor      policy.Actor
		body       map[string]any
		wantStatus int
	}{
		{"Employee_Creates", employeeActor, valid, http.StatusCreated},
		{"Manager_Denied", managerActor, valid, http.StatusForbidden},
		{"Coworker_Denied", coworkerActor, valid, http.StatusForbidden},
		{"EndBeforeStart", employeeActor, map[string]any{"start_date": 200, "end_date": 100, "reason": "vacation"}, http.StatusBadRequest},
		{"EmptyReason", employeeActor, map[string]any{"start_date": 100, "end_date": 200, "reason": "  "}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			absences := &mock.AbsenceRepo{}
			h := api.NewAbsencesHandler(absences)
			w := httptest.NewRecorder()
			h.CreateAbsence(w, newRequest(t, http.MethodPost, "/v1/absences", tt.body, &tt.actor, nil))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusCreated {
				if len(absences.Stored) != 0 {
					t.Fatal("absence stored despite denial")
				}
				return
			}

			var got models.AbsenceRequest
			decodeJSON(t, w, &got)
			if got.Status != models.AbsencePending {
				t.Fatalf("status = %q, want pending", got.Status)
			}
			// Requests are always filed for the actor, never someone else.
			if got.UserID != tt.actor.ID {
				t.Fatalf("user_id = %d, want %d", got.UserID, tt.actor.ID)
			}
		})
	}
}

func TestListAbsences(t *testing.T) {
	absences := &mock.AbsenceRepo{}
	for _, a := range []models.AbsenceRequest{
		{UserID: 2, Status: models.AbsencePending, Reason: "vacation"},
		{UserID: 9, Status: models.AbsenceApproved, Reason: "sick"},
	} {
		if _, err := absences.CreateAbsence(context.Background(), &a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	h := api.NewAbsencesHandler(absences)

	tests := []struct {
		name  string
		actor policy.Actor
		want  int
	}{
		{"Manager_SeesAll", managerActor, 2},
		{"Employee_SeesOwn", employeeActor, 1},
		{"Coworker_SeesNone", coworkerActor, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ListAbsences(w, newRequest(t, http.MethodGet, "/v1/absences", nil, &tt.actor, nil))
			// Visibility is a filter, not a denial: everyone gets 200.
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var got []models.AbsenceRequest
			decodeJSON(t, w, &got)
			if len(got) != tt.want {
				t.Fatalf("got %d requests, want %d", len(got), tt.want)
			}
		})
	}
}

func TestUpdateAbsenceStatus(t *testing.T) {
	seed := func(t *testing.T) (*mock.AbsenceRepo, int64) {
		absences := &mock.AbsenceRepo{}
		id, err := absences.CreateAbsence(context.Background(), &models.AbsenceRequest{
			UserID: 2, Status: models.AbsencePending, Reason: "vacation",
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		return absences, id
	}

	do := func(t *testing.T, h *api.AbsencesHandler, actor policy.Actor, id int64, status string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		idStr := strconv.FormatInt(id, 10)
		h.UpdateStatus(w, newRequest(t, http.MethodPut, "/v1/absences/"+idStr+"/status",
			map[string]string{"status": status}, &actor, map[string]string{"id": idStr}))
		return w
	}

	t.Run("Manager_Approves", func(t *testing.T) {
		absences, id := seed(t)
		h := api.NewAbsencesHandler(absences)
		w := do(t, h, managerActor, id, "approved")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d (body %q)", w.Code, w.Body.String())
		}
		var got workflow.Outcome
		decodeJSON(t, w, &got)
		if !got.OK || got.NewStatus != models.AbsenceApproved {
			t.Fatalf("outcome = %+v", got)
		}
	})

	t.Run("SecondTransitionDenied", func(t *testing.T) {
		absences, id := seed(t)
		h := api.NewAbsencesHandler(absences)
		if w := do(t, h, managerActor, id, "approved"); w.Code != http.StatusOK {
			t.Fatalf("first transition: %d", w.Code)
		}
		w := do(t, h, managerActor, id, "rejected")
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
		var got workflow.Outcome
		decodeJSON(t, w, &got)
		if got.OK || got.Reason != policy.ReasonNotPending {
			t.Fatalf("outcome = %+v", got)
		}
	})

	t.Run("Employee_Denied", func(t *testing.T) {
		absences, id := seed(t)
		h := api.NewAbsencesHandler(absences)
		w := do(t, h, employeeActor, id, "approved")
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
		stored, _ := absences.GetAbsenceByID(context.Background(), id)
		if stored.Status != models.AbsencePending {
			t.Fatalf("status moved to %q despite denial", stored.Status)
		}
	})

	t.Run("UnknownTarget", func(t *testing.T) {
		absences, id := seed(t)
		h := api.NewAbsencesHandler(absences)
		w := do(t, h, managerActor, id, "escalated")
		if w.Code != http.StatusForbidden {
			t.Fatalf("status = %d, want 403", w.Code)
		}
		var got workflow.Outcome
		decodeJSON(t, w, &got)
		if got.Reason != policy.ReasonUnrecognized {
			t.Fatalf("reason = %q", got.Reason)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		absences, _ := seed(t)
		h := api.NewAbsencesHandler(absences)
		w := do(t, h, managerActor, 99, "approved")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}
