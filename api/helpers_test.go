package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/newwork/workforce/api"
	"github.com/newwork/workforce/internal/models"
	"github.com/newwork/workforce/internal/policy"
)

var (
	managerActor  = policy.Actor{ID: 1, Role: models.RoleManager}
	employeeActor = policy.Actor{ID: 2, Role: models.RoleEmployee}
	coworkerActor = policy.Actor{ID: 3, Role: models.RoleCoworker}
)

// newRequest builds a request carrying the actor in its context and the
// given mux path variables, mirroring what the middleware chain would do.
func newRequest(t *testing.T, method, target string, body any, actor *policy.Actor, vars map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	r := httptest.NewRequest(method, target, &buf)
	if actor != nil {
		r = r.WithContext(context.WithValue(r.Context(), api.CtxActor, *actor))
	}
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, w.Body.String())
	}
}

// stubEnhancer returns a canned result or error for feedback polish tests.
type stubEnhancer struct {
	out string
	err error
}

func (s stubEnhancer) Enhance(ctx context.Context, text string) (string, error) {
	return s.out, s.err
}
