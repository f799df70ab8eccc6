// Package policy is the single authorization rule table for the service.
// Every mutating or listing request passes through Authorize (and, for
// listings, the visibility filter) before it touches storage. The functions
// here are pure and stateless; they may be called concurrently without
// synchronization.
package policy

import (
	"github.com/newwork/workforce/internal/models"
)

// Actor is the authenticated user performing an action.
type Actor struct {
	ID   int64
	Role models.Role
}

// Action is the closed set of operations the evaluator knows about.
type Action string

const (
	ActionCreate        Action = "create"
	ActionRead          Action = "read"
	ActionReadSensitive Action = "read_sensitive"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionRestore       Action = "restore"
	ActionTransition    Action = "transition"
)

// ResourceType is the closed set of record types.
type ResourceType string

const (
	ResourceUser            ResourceType = "user"
	ResourceEmployeeProfile ResourceType = "employee_profile"
	ResourceAbsenceRequest  ResourceType = "absence_request"
	ResourceDataItem        ResourceType = "data_item"
	ResourceFeedback        ResourceType = "feedback"
)

// Decision is the outcome of an authorization check. Reason is set only on
// denial.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// Denial reasons. These are stable strings the transport layer may surface
// verbatim.
const (
	ReasonUnrecognized  = "unrecognized"
	ReasonNotPermitted  = "not permitted"
	ReasonNotOwner      = "not owner"
	ReasonSelfDelete    = "cannot self-delete"
	ReasonItemDeleted   = "item is deleted"
	ReasonNotPending    = "not pending"
	ReasonMissingTarget = "resource required"
)

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Authorize maps (actor, action, resource type, resource state) to an
// allow/deny decision. It is total and deterministic: any combination it
// does not recognize is a denial, never a panic. The resource argument is
// optional; passing nil answers the generic capability question, while
// ownership- and state-qualified rules require the concrete record and deny
// without it for mutating actions.
func Authorize(actor Actor, action Action, resource ResourceType, res any) Decision {
	if !actor.Role.Valid() {
		return deny(ReasonUnrecognized)
	}

	switch resource {
	case ResourceUser:
		return authorizeUser(actor, action, res)
	case ResourceEmployeeProfile:
		return authorizeProfile(actor, action, res)
	case ResourceAbsenceRequest:
		return authorizeAbsence(actor, action, res)
	case ResourceDataItem:
		return authorizeDataItem(actor, action, res)
	case ResourceFeedback:
		return authorizeFeedback(actor, action)
	}

	return deny(ReasonUnrecognized)
}

func authorizeUser(actor Actor, action Action, res any) Decision {
	user, _ := res.(*models.User)

	switch actor.Role {
	case models.RoleManager:
		switch action {
		case ActionCreate, ActionRead:
			return allow()
		case ActionDelete:
			if user == nil {
				return deny(ReasonMissingTarget)
			}
			// An authenticated actor can never delete their own account,
			// regardless of role rule.
			if user.ID == actor.ID {
				return deny(ReasonSelfDelete)
			}
			return allow()
		}
	case models.RoleEmployee:
		// Self only; the directory listing is not granted.
		if action == ActionRead {
			if user == nil {
				return deny(ReasonNotPermitted)
			}
			if user.ID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		}
	case models.RoleCoworker:
		// Directory access only; sensitive data lives on the profile and is
		// gated separately.
		if action == ActionRead {
			return allow()
		}
	}

	return denyUnknown(action)
}

func authorizeProfile(actor Actor, action Action, res any) Decision {
	profile, _ := res.(*models.EmployeeProfile)

	switch actor.Role {
	case models.RoleManager:
		switch action {
		case ActionRead, ActionReadSensitive, ActionUpdate:
			return allow()
		}
	case models.RoleEmployee:
		switch action {
		case ActionRead:
			return allow()
		case ActionReadSensitive, ActionUpdate:
			if profile == nil {
				return deny(ReasonMissingTarget)
			}
			if profile.UserID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		}
	case models.RoleCoworker:
		// Non-sensitive fields only; read_sensitive is denied
		// unconditionally, independent of the generic read grant.
		if action == ActionRead {
			return allow()
		}
	}

	return denyUnknown(action)
}

func authorizeAbsence(actor Actor, action Action, res any) Decision {
	req, _ := res.(*models.AbsenceRequest)

	switch actor.Role {
	case models.RoleManager:
		switch action {
		case ActionRead:
			return allow()
		case ActionTransition:
			if req == nil {
				return deny(ReasonMissingTarget)
			}
			if req.Status != models.AbsencePending {
				return deny(ReasonNotPending)
			}
			return allow()
		}
	case models.RoleEmployee:
		switch action {
		case ActionCreate:
			if req != nil && req.UserID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		case ActionRead:
			if req != nil && req.UserID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		}
	case models.RoleCoworker:
		// No read, no create.
	}

	return denyUnknown(action)
}

func authorizeDataItem(actor Actor, action Action, res any) Decision {
	item, _ := res.(*models.DataItem)

	switch actor.Role {
	case models.RoleManager:
		switch action {
		case ActionCreate, ActionRead, ActionDelete, ActionRestore:
			return allow()
		case ActionUpdate:
			// Content edits are refused while soft-deleted, even for an
			// otherwise-authorized actor; restore first.
			if item != nil && item.IsDeleted {
				return deny(ReasonItemDeleted)
			}
			return allow()
		}
	case models.RoleEmployee:
		switch action {
		case ActionCreate:
			if item != nil && item.OwnerID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		case ActionRead:
			if item != nil && item.IsDeleted && item.OwnerID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		case ActionUpdate:
			if item == nil {
				return deny(ReasonMissingTarget)
			}
			if item.OwnerID != actor.ID {
				return deny(ReasonNotOwner)
			}
			if item.IsDeleted {
				return deny(ReasonItemDeleted)
			}
			return allow()
		case ActionDelete, ActionRestore:
			if item == nil {
				return deny(ReasonMissingTarget)
			}
			if item.OwnerID != actor.ID {
				return deny(ReasonNotOwner)
			}
			return allow()
		}
	case models.RoleCoworker:
		// Read-only, non-deleted records only.
		if action == ActionRead {
			if item != nil && item.IsDeleted {
				return deny(ReasonNotPermitted)
			}
			return allow()
		}
	}

	return denyUnknown(action)
}

func authorizeFeedback(actor Actor, action Action) Decision {
	switch action {
	case ActionRead:
		return allow()
	case ActionCreate:
		if actor.Role == models.RoleCoworker {
			return allow()
		}
		return deny(ReasonNotPermitted)
	}

	return denyUnknown(action)
}

// denyUnknown distinguishes a known action that a role simply lacks from an
// action outside the evaluator's vocabulary.
func denyUnknown(action Action) Decision {
	switch action {
	case ActionCreate, ActionRead, ActionReadSensitive, ActionUpdate,
		ActionDelete, ActionRestore, ActionTransition:
		return deny(ReasonNotPermitted)
	}
	return deny(ReasonUnrecognized)
}
