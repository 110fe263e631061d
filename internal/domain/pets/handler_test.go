package pets

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-genetics/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func TestPetHandlers_OwnershipBeforeIntegrity(t *testing.T) {
	svc, repo := newTestService(t)

	// registro con genética ilegible (así lo devuelve el repo postgres)
	now := time.Now()
	repo.byID["broken"] = Pet{ID: "broken", OwnerUserID: "u1", Name: "Rota", CreatedAt: now, UpdatedAt: now}

	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil, nil))
	RegisterRoutes(r, svc)

	cases := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		want   int
	}{
		{"foreign get", http.MethodGet, "/pets/broken", "u2", "", http.StatusForbidden},
		{"foreign patch", http.MethodPatch, "/pets/broken", "u2", `{"name":"X"}`, http.StatusForbidden},
		{"owner get", http.MethodGet, "/pets/broken", "u1", "", http.StatusUnprocessableEntity},
		{"owner patch", http.MethodPatch, "/pets/broken", "u1", `{"name":"X"}`, http.StatusUnprocessableEntity},
		{"unknown", http.MethodGet, "/pets/nope", "u2", "", http.StatusNotFound},
		{"owner list skips it", http.MethodGet, "/pets", "u1", "", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewBufferString(tc.body))
		req.Header.Set(middleware.DebugUserHeader, tc.user)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d body=%s", tc.name, tc.want, rec.Code, rec.Body.String())
		}
		if tc.name == "owner list skips it" && rec.Body.String() != "[]\n" {
			t.Fatalf("expected empty list, got %s", rec.Body.String())
		}
	}
}
