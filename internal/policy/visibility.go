package policy

import (
	"github.com/newwork/workforce/internal/models"
)

// The visibility filter narrows a retrieved record set to what the actor may
// see, preserving the original order. It must run after retrieval and before
// any sequence reaches the transport layer. Filtering is idempotent:
// applying it twice with the same actor yields the same sequence.

// FilterAbsences returns the subset of requests visible to the actor.
// Managers see all, employees see their own, coworkers see none (an empty
// sequence, not an error).
func FilterAbsences(actor Actor, requests []models.AbsenceRequest) []models.AbsenceRequest {
	out := make([]models.AbsenceRequest, 0, len(requests))
	for _, req := range requests {
		switch actor.Role {
		case models.RoleManager:
			out = append(out, req)
		case models.RoleEmployee:
			if req.UserID == actor.ID {
				out = append(out, req)
			}
		}
	}
	return out
}

// FilterDataItems returns the subset of items visible to the actor. A
// non-deleted item is visible to every role with a generic read grant; a
// soft-deleted item is visible only to a manager or to the employee who owns
// it, never to a coworker.
func FilterDataItems(actor Actor, items []models.DataItem) []models.DataItem {
	out := make([]models.DataItem, 0, len(items))
	for _, item := range items {
		if !Authorize(actor, ActionRead, ResourceDataItem, &item).Allowed {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ProjectProfile projects a profile into the shape the actor may see. For
// actors lacking read_sensitive on this profile, salary/phone/address are
// omitted from the returned shape entirely, not nulled.
func ProjectProfile(actor Actor, profile models.EmployeeProfile) models.ProfileView {
	view := models.ProfileView{
		ID:         profile.ID,
		UserID:     profile.UserID,
		Position:   profile.Position,
		Department: profile.Department,
		HireDate:   profile.HireDate,
	}
	if Authorize(actor, ActionReadSensitive, ResourceEmployeeProfile, &profile).Allowed {
		salary := profile.Salary
		phone := profile.Phone
		address := profile.Address
		view.Salary = &salary
		view.Phone = &phone
		view.Address = &address
	}
	return view
}

// ProjectProfiles applies ProjectProfile across a sequence, preserving order.
func ProjectProfiles(actor Actor, profiles []models.EmployeeProfile) []models.ProfileView {
	out := make([]models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, ProjectProfile(actor, p))
	}
	return out
}
