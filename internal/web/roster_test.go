package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"care-compliance/internal/models"
)

func TestCreateOrganizationNeedsNoHeader(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/organizations", strings.NewReader(`{"name":"Little Oaks","kind":"daycare"}`))
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /organizations status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	var org models.Organization
	if err := json.Unmarshal(resp.Data, &org); err != nil {
		t.Fatalf("decode organization: %v", err)
	}
	if org.Kind != models.OrganizationDaycare {
		t.Errorf("kind = %q, want daycare", org.Kind)
	}
	if _, ok := ts.store.Orgs[org.ID]; !ok {
		t.Error("organization was not stored")
	}
}

func TestRosterRoutes(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t, nil)

	rec, resp := ts.do(t, http.MethodGet, "/organization", nil)
	if rec.Code != http.StatusOK || !strings.Contains(string(resp.Data), "Test Clinic") {
		t.Fatalf("GET /organization = %d %s", rec.Code, rec.Body.String())
	}

	rec, resp = ts.do(t, http.MethodPost, "/staff", map[string]string{"full_name": "Olive Tran", "role": "therapist", "discipline": "ot"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /staff status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var staff models.Staff
	if err := json.Unmarshal(resp.Data, &staff); err != nil {
		t.Fatalf("decode staff: %v", err)
	}

	rec, resp = ts.do(t, http.MethodPost, "/students", map[string]any{"first_name": "Mia", "last_name": "Hart", "therapist_id": staff.ID})
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /students status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var student models.Student
	if err := json.Unmarshal(resp.Data, &student); err != nil {
		t.Fatalf("decode student: %v", err)
	}
	if student.Discipline != "ot" {
		t.Errorf("student discipline = %q, want ot", student.Discipline)
	}

	rec, resp = ts.do(t, http.MethodPost, "/students", map[string]any{"first_name": "Mia"})
	if rec.Code != http.StatusBadRequest || resp.Error == nil || resp.Error.Fields["last_name"] == "" {
		t.Errorf("POST /students without last name = %d %s", rec.Code, rec.Body.String())
	}

	rec, resp = ts.do(t, http.MethodGet, "/students", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /students status = %d", rec.Code)
	}
	var students []models.Student
	if err := json.Unmarshal(resp.Data, &students); err != nil {
		t.Fatalf("decode students: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("GET /students = %d students, want 2", len(students))
	}

	rec, resp = ts.do(t, http.MethodGet, "/staff", nil)
	var list []models.Staff
	if err := json.Unmarshal(resp.Data, &list); err != nil || rec.Code != http.StatusOK || len(list) != 2 {
		t.Errorf("GET /staff = %d %s", rec.Code, rec.Body.String())
	}
}
