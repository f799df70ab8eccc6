package workflow_test

import (
	"context"
	"testing"

	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
	"github.com/newwork/workforce/internal/workflow"
	"github.com/newwork/workforce/pkg/repository/mock"
)

func TestValidateAbsence(t *testing.T) {
	tests := []struct {
		name      string
		start     int64
		end       int64
		reason    string
		wantField string
	}{
		{"Valid", 100, 200, "vacation", ""},
		{"SingleDay", 100, 100, "appointment", ""},
		{"EndBeforeStart", 200, 100, "vacation", "end_date"},
		{"EmptyReason", 100, 200, "", "reason"},
		{"BlankReason", 100, 200, "   ", "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := workflow.ValidateAbsence(tt.start, tt.end, tt.reason)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected validation error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error, got nil")
			}
			if verr.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestApplyTransition(t *testing.T) {
	manager := policy.Actor{ID: 1, Role: models.RoleManager}
	employee := policy.Actor{ID: 2, Role: models.RoleEmployee}
	coworker := policy.Actor{ID: 3, Role: models.RoleCoworker}

	newStore := func(status models.AbsenceStatus) (*mock.AbsenceRepo, *models.AbsenceRequest) {
		store := &mock.AbsenceRepo{}
		req := &models.AbsenceRequest{UserID: 2, Status: status, Reason: "vacation"}
		id, err := store.CreateAbsence(context.Background(), req)
		if err != nil {
			t.Fatalf("seed absence: %v", err)
		}
		req.ID = id
		return store, req
	}

	t.Run("Manager_Approves", func(t *testing.T) {
		store, req := newStore(models.AbsencePending)
		outcome, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsenceApproved)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if !outcome.OK || outcome.NewStatus != models.AbsenceApproved {
			t.Fatalf("outcome = %+v, want approved", outcome)
		}
		stored, _ := store.GetAbsenceByID(context.Background(), req.ID)
		if stored.Status != models.AbsenceApproved {
			t.Fatalf("stored status = %q, want approved", stored.Status)
		}
	})

	t.Run("Manager_Rejects", func(t *testing.T) {
		store, req := newStore(models.AbsencePending)
		outcome, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsenceRejected)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if !outcome.OK || outcome.NewStatus != models.AbsenceRejected {
			t.Fatalf("outcome = %+v, want rejected", outcome)
		}
	})

	t.Run("SecondTransitionFails", func(t *testing.T) {
		store, req := newStore(models.AbsencePending)
		first, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsenceApproved)
		if err != nil || !first.OK {
			t.Fatalf("first transition failed: %+v, %v", first, err)
		}
		// The caller still holds the stale pending snapshot, as a racing
		// request would. The store CAS must refuse the second attempt.
		second, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsenceRejected)
		if err != nil {
			t.Fatalf("second transition errored: %v", err)
		}
		if second.OK || second.Reason != policy.ReasonNotPending {
			t.Fatalf("second outcome = %+v, want not pending", second)
		}
		stored, _ := store.GetAbsenceByID(context.Background(), req.ID)
		if stored.Status != models.AbsenceApproved {
			t.Fatalf("stored status = %q, first decision must stand", stored.Status)
		}
	})

	t.Run("TerminalStateDenied", func(t *testing.T) {
		store, req := newStore(models.AbsenceApproved)
		outcome, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsenceRejected)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if outcome.OK || outcome.Reason != policy.ReasonNotPending {
			t.Fatalf("outcome = %+v, want not pending", outcome)
		}
	})

	t.Run("TargetPendingDenied", func(t *testing.T) {
		store, req := newStore(models.AbsenceApproved)
		outcome, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsencePending)
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if outcome.OK || outcome.Reason != policy.ReasonUnrecognized {
			t.Fatalf("outcome = %+v, want unrecognized", outcome)
		}
	})

	t.Run("UnknownTargetDenied", func(t *testing.T) {
		store, req := newStore(models.AbsencePending)
		outcome, err := workflow.ApplyTransition(context.Background(), store, manager, req, models.AbsenceStatus("escalated"))
		if err != nil {
			t.Fatalf("transition: %v", err)
		}
		if outcome.OK || outcome.Reason != policy.ReasonUnrecognized {
			t.Fatalf("outcome = %+v, want unrecognized", outcome)
		}
	})

	t.Run("NonManagersDenied", func(t *testing.T) {
		for _, actor := range []policy.Actor{employee, coworker} {
			store, req := newStore(models.AbsencePending)
			outcome, err := workflow.ApplyTransition(context.Background(), store, actor, req, models.AbsenceApproved)
			if err != nil {
				t.Fatalf("transition: %v", err)
			}
			if outcome.OK || outcome.Reason != policy.ReasonNotPermitted {
				t.Fatalf("%s outcome = %+v, want not permitted", actor.Role, outcome)
			}
			stored, _ := store.GetAbsenceByID(context.Background(), req.ID)
			if stored.Status != models.AbsencePending {
				t.Fatalf("status moved to %q despite denial", stored.Status)
			}
		}
	})
}
