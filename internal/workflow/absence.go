// Package workflow drives the absence request lifecycle: pending is the
// initial state, approved and rejected are terminal. Both transitions are
// manager-only and valid only out of pending; everything else is a denial
// the caller must surface, never a silent no-op.
package workflow

import (
	"context"
	"strings"

	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
)

// StatusStore is the slice of the record store the workflow needs: an atomic
// compare-and-set on the request status. Advance must update the row only if
// its current status is still pending and report whether it did, so that the
// loser of a concurrent approve/reject race observes "not pending" instead
// of silently overwriting.
type StatusStore interface {
	Advance(ctx context.Context, id int64, from, to models.AbsenceStatus) (bool, error)
}

// Outcome is the result of a transition attempt.
type Outcome struct {
	OK        bool                 `json:"ok"`
	NewStatus models.AbsenceStatus `json:"new_status,omitempty"`
	Reason    string               `json:"reason,omitempty"`
}

// ValidateAbsence checks the creation preconditions: start must not be after
// end and the reason must be non-empty. A violation is a validation failure,
// distinct from an authorization failure.
func ValidateAbsence(startDate, endDate int64, reason string) *models.ValidationError {
	if endDate < startDate {
		return &models.ValidationError{Field: "end_date", Reason: "must not be before start_date"}
	}
	if strings.TrimSpace(reason) == "" {
		return &models.ValidationError{Field: "reason", Reason: "must not be empty"}
	}
	return nil
}

// ApplyTransition attempts to move a request to the target status on behalf
// of the actor. The policy check covers role and current state; the store
// call re-checks the state atomically so two concurrent manager actions
// cannot both win.
func ApplyTransition(ctx context.Context, store StatusStore, actor policy.Actor, req *models.AbsenceRequest, target models.AbsenceStatus) (Outcome, error) {
	if !target.Valid() || target == models.AbsencePending {
		return Outcome{OK: false, Reason: policy.ReasonUnrecognized}, nil
	}

	decision := policy.Authorize(actor, policy.ActionTransition, policy.ResourceAbsenceRequest, req)
	if !decision.Allowed {
		return Outcome{OK: false, Reason: decision.Reason}, nil
	}

	advanced, err := store.Advance(ctx, req.ID, models.AbsencePending, target)
	if err != nil {
		return Outcome{}, err
	}
	if !advanced {
		// Lost a race: someone else moved the request out of pending between
		// the policy check and the store update.
		return Outcome{OK: false, Reason: policy.ReasonNotPending}, nil
	}

	return Outcome{OK: true, NewStatus: target}, nil
}
