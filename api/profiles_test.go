package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/newwork/workforce/api"
	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
	"github.com/newwork/workforce/pkg/repository/mock"
)

func seedProfiles(t *testing.T) *mock.ProfileRepo {
	t.Helper()
	profiles := &mock.ProfileRepo{}
	for _, p := range []models.EmployeeProfile{
		{UserID: 1, Position: "Engineering Manager", Department: "Engineering", Salary: 120000, Phone: "+1-555-0101", Address: "123 Tech St"},
		{UserID: 2, Position: "Software Engineer", Department: "Engineering", Salary: 95000, Phone: "+1-555-0102", Address: "456 Dev Ave"},
	} {
		if _, err := profiles.CreateProfile(context.Background(), &p); err != nil {
			t.Fatalf("seed profile: %v", err)
		}
	}
	return profiles
}

func TestListProfiles(t *testing.T) {
	h := api.NewProfilesHandler(seedProfiles(t))

	t.Run("Manager_SeesSalaries", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListProfiles(w, newRequest(t, http.MethodGet, "/v1/employees", nil, &managerActor, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var got []models.ProfileView
		decodeJSON(t, w, &got)
		if len(got) != 2 {
			t.Fatalf("got %d profiles", len(got))
		}
		for _, v := range got {
			if v.Salary == nil {
				t.Fatalf("manager view missing salary: %+v", v)
			}
		}
	})

	t.Run("Coworker_SalaryAbsent", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListProfiles(w, newRequest(t, http.MethodGet, "/v1/employees", nil, &coworkerActor, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		// The key itself must be absent from the payload, not null.
		body := w.Body.String()
		for _, field := range []string{`"salary"`, `"phone"`, `"address"`} {
			if strings.Contains(body, field) {
				t.Fatalf("field %s present in coworker payload: %s", field, body)
			}
		}
	})

	t.Run("Employee_OwnSalaryOnly", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ListProfiles(w, newRequest(t, http.MethodGet, "/v1/employees", nil, &employeeActor, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var got []models.ProfileView
		decodeJSON(t, w, &got)
		for _, v := range got {
			if v.UserID == employeeActor.ID && v.Salary == nil {
				t.Fatalf("employee cannot see own salary: %+v", v)
			}
			if v.UserID != employeeActor.ID && v.Salary != nil {
				t.Fatalf("employee sees someone else's salary: %+v", v)
			}
		}
	})
}

func TestGetProfile(t *testing.T) {
	h := api.NewProfilesHandler(seedProfiles(t))

	t.Run("Found", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetProfile(w, newRequest(t, http.MethodGet, "/v1/employees/2", nil, &coworkerActor,
			map[string]string{"id": "2"}))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var got models.ProfileView
		decodeJSON(t, w, &got)
		if got.Position != "Software Engineer" {
			t.Fatalf("got %+v", got)
		}
		if got.Salary != nil {
			t.Fatal("coworker sees salary")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.GetProfile(w, newRequest(t, http.MethodGet, "/v1/employees/99", nil, &managerActor,
			map[string]string{"id": "99"}))
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	newSalary := 105000.0
	newPosition := "Senior Software Engineer"

	tests := []struct {
		name       string
		actor      policy.Actor
		profileID  string
		wantStatus int
	}{
		{"Manager_UpdatesAny", managerActor, "2", http.StatusOK},
		{"Employee_UpdatesOwn", employeeActor, "2", http.StatusOK},
		{"Employee_UpdatesOther", employeeActor, "1", http.StatusForbidden},
		{"Coworker_Denied", coworkerActor, "2", http.StatusForbidden},
		{"NotFound", managerActor, "99", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := seedProfiles(t)
			h := api.NewProfilesHandler(profiles)
			body := map[string]any{"position": newPosition, "salary": newSalary}
			w := httptest.NewRecorder()
			h.UpdateProfile(w, newRequest(t, http.MethodPut, "/v1/employees/"+tt.profileID, body, &tt.actor,
				map[string]string{"id": tt.profileID}))
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var got models.ProfileView
			decodeJSON(t, w, &got)
			if got.Position != newPosition {
				t.Fatalf("position = %q", got.Position)
			}
			// Partial update: untouched fields survive.
			stored, _ := profiles.GetProfileByID(context.Background(), got.ID)
			if stored.Department != "Engineering" {
				t.Fatalf("department clobbered: %+v", stored)
			}
			if stored.Salary != newSalary {
				t.Fatalf("salary = %v, want %v", stored.Salary, newSalary)
			}
		})
	}
}
