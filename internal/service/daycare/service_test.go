package daycare_service

import (
	"context"
	"errors"
	"testing"
	"time"

	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/repository"
	"care-compliance/internal/repository/memory"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	orgID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	now   = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
)

func daysFrom(n int) *time.Time {
	t := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return &t
}

func ptr[T any](v T) *T { return &v }

func newService(store *memory.Store) service.DaycareService {
	return NewDaycareService(
		memory.ClassroomRepo{S: store},
		memory.CredentialRepo{S: store},
		memory.ComplianceRepo{S: store},
		memory.StaffRepo{S: store},
		func() time.Time { return now },
		zap.NewNop(),
	)
}

func TestCreateClassroomValidatesRatio(t *testing.T) {
	t.Parallel()

	svc := newService(memory.NewStore())
	tests := []struct {
		ratio   *string
		wantErr bool
	}{
		{nil, false},
		{ptr("1:4"), false},
		{ptr(" 2 : 12 "), false},
		{ptr("1-4"), true},
		{ptr("0:4"), true},
	}
	for _, tt := range tests {
		_, err := svc.CreateClassroom(context.Background(), orgID, service.CreateClassroomInput{Name: "Toddlers", RatioRequirement: tt.ratio})
		if (err != nil) != tt.wantErr {
			t.Errorf("CreateClassroom(%v) error = %v, wantErr %v", tt.ratio, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, service.ErrValidation) {
			t.Errorf("CreateClassroom(%v) error = %v, want ErrValidation", tt.ratio, err)
		}
	}
}

func TestRecordHeadcountStampsClock(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	svc := newService(store)
	classroom, err := svc.CreateClassroom(context.Background(), orgID, service.CreateClassroomInput{Name: "Infants", RatioRequirement: ptr("1:4")})
	if err != nil {
		t.Fatalf("CreateClassroom() error = %v", err)
	}

	h, err := svc.RecordHeadcount(context.Background(), orgID, classroom.ID, service.RecordHeadcountInput{StaffCount: 1, StudentCount: 6})
	if err != nil {
		t.Fatalf("RecordHeadcount() error = %v", err)
	}
	if !h.RecordedAt.Equal(now) {
		t.Fatalf("RecordedAt = %v, want %v", h.RecordedAt, now)
	}

	if _, err := svc.RecordHeadcount(context.Background(), uuid.New(), classroom.ID, service.RecordHeadcountInput{StaffCount: 1}); err == nil {
		t.Fatal("RecordHeadcount() for another organization error = nil")
	}
}

func TestEvaluateRatios(t *testing.T) {
	t.Parallel()

	infants := models.Classroom{ID: uuid.New(), Name: "Infants", RatioRequirement: ptr("1:4")}
	toddlers := models.Classroom{ID: uuid.New(), Name: "Toddlers", RatioRequirement: ptr("1:6")}
	unconfigured := models.Classroom{ID: uuid.New(), Name: "Flex"}
	empty := models.Classroom{ID: uuid.New(), Name: "Empty", RatioRequirement: ptr("1:10")}

	headcounts := []models.Headcount{
		{ClassroomID: infants.ID, StaffCount: 1, StudentCount: 6, RecordedAt: now.Add(-2 * time.Hour)},
		{ClassroomID: infants.ID, StaffCount: 2, StudentCount: 8, RecordedAt: now.Add(-time.Hour)},
		{ClassroomID: toddlers.ID, StaffCount: 1, StudentCount: 7, RecordedAt: now},
		{ClassroomID: unconfigured.ID, StaffCount: 3, StudentCount: 1, RecordedAt: now},
	}

	got := EvaluateRatios([]models.Classroom{infants, toddlers, unconfigured, empty}, headcounts)
	if len(got) != 4 {
		t.Fatalf("EvaluateRatios() len = %d, want 4", len(got))
	}

	tests := []struct {
		name         string
		met          bool
		hasHeadcount bool
		maxStudents  *float64
	}{
		{"Infants", true, true, ptr(8.0)},
		{"Toddlers", false, true, ptr(6.0)},
		{"Flex", false, true, nil},
		{"Empty", false, false, ptr(0.0)},
	}
	for i, tt := range tests {
		r := got[i]
		if r.Classroom.Name != tt.name {
			t.Fatalf("ratio[%d] = %s, want %s", i, r.Classroom.Name, tt.name)
		}
		if r.Met != tt.met || r.HasHeadcount != tt.hasHeadcount {
			t.Errorf("%s: met=%v has=%v, want met=%v has=%v", tt.name, r.Met, r.HasHeadcount, tt.met, tt.hasHeadcount)
		}
		switch {
		case tt.maxStudents == nil && r.MaxStudents != nil:
			t.Errorf("%s: MaxStudents = %v, want nil", tt.name, *r.MaxStudents)
		case tt.maxStudents != nil && (r.MaxStudents == nil || *r.MaxStudents != *tt.maxStudents):
			t.Errorf("%s: MaxStudents = %v, want %v", tt.name, r.MaxStudents, *tt.maxStudents)
		}
	}
}

func TestEvaluateCompliance(t *testing.T) {
	t.Parallel()

	fire := models.ComplianceItem{ID: uuid.New(), Category: "safety", Title: "Fire drill log"}
	first := models.ComplianceItem{ID: uuid.New(), Category: "safety", Title: "First aid kit"}
	menu := models.ComplianceItem{ID: uuid.New(), Category: "nutrition", Title: "Posted menu"}
	license := models.ComplianceItem{ID: uuid.New(), Category: "licensing", Title: "Facility license"}

	evidence := []models.ComplianceEvidence{
		// The later rejection supersedes the earlier approval.
		{ItemID: fire.ID, Status: "approved", CreatedAt: now.Add(-48 * time.Hour)},
		{ItemID: fire.ID, Status: "rejected", CreatedAt: now.Add(-time.Hour)},
		{ItemID: first.ID, Status: "approved", ExpirationDate: daysFrom(0), CreatedAt: now.Add(-time.Hour)},
		{ItemID: license.ID, Status: "approved", ExpirationDate: daysFrom(-1), CreatedAt: now.Add(-time.Hour)},
	}

	summary, views := EvaluateCompliance([]models.ComplianceItem{fire, first, menu, license}, evidence, now)

	want := map[uuid.UUID]evaluator.ItemStatus{
		fire.ID:    evaluator.ItemMissing,
		first.ID:   evaluator.ItemCompliant,
		menu.ID:    evaluator.ItemMissing,
		license.ID: evaluator.ItemExpired,
	}
	for _, v := range views {
		if v.Status != want[v.Item.ID] {
			t.Errorf("%s status = %q, want %q", v.Item.Title, v.Status, want[v.Item.ID])
		}
	}
	if views[0].LatestEvidence == nil || views[0].LatestEvidence.Status != "rejected" {
		t.Fatalf("fire drill latest evidence = %+v, want rejected", views[0].LatestEvidence)
	}
	if views[2].LatestEvidence != nil {
		t.Fatalf("menu latest evidence = %+v, want nil", views[2].LatestEvidence)
	}

	if summary.Overall.Total != 4 || summary.Overall.Compliant != 1 || summary.Overall.Score != 25 {
		t.Fatalf("Overall = %+v, want 1 of 4 at 25", summary.Overall)
	}
	if len(summary.Categories) != 3 || summary.Categories[0].Category != "licensing" {
		t.Fatalf("Categories = %+v, want licensing, nutrition, safety", summary.Categories)
	}
	if summary.Categories[2].Score != 50 {
		t.Fatalf("safety score = %d, want 50", summary.Categories[2].Score)
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	staff := models.Staff{ID: uuid.New(), OrganizationID: orgID, FullName: "Tess Teacher", Role: "teacher"}
	store.Staff[staff.ID] = staff

	room, err := svc.CreateClassroom(ctx, orgID, service.CreateClassroomInput{Name: "Preschool", RatioRequirement: ptr("1:10")})
	if err != nil {
		t.Fatalf("CreateClassroom() error = %v", err)
	}
	if _, err := svc.RecordHeadcount(ctx, orgID, room.ID, service.RecordHeadcountInput{StaffCount: 2, StudentCount: 18}); err != nil {
		t.Fatalf("RecordHeadcount() error = %v", err)
	}

	credentials := []struct {
		name string
		exp  *time.Time
	}{
		{"CPR", daysFrom(-3)},
		{"First Aid", daysFrom(10)},
		{"Background check", daysFrom(60)},
		{"CDA", daysFrom(400)},
		{"Orientation", nil},
	}
	for _, c := range credentials {
		if _, err := svc.CreateCredential(ctx, orgID, service.CreateCredentialInput{StaffID: staff.ID, Name: c.name, ExpirationDate: c.exp}); err != nil {
			t.Fatalf("CreateCredential(%s) error = %v", c.name, err)
		}
	}

	item, err := svc.CreateComplianceItem(ctx, orgID, service.CreateComplianceItemInput{Category: "safety", Title: "Fire drill log"})
	if err != nil {
		t.Fatalf("CreateComplianceItem() error = %v", err)
	}
	if _, err := svc.AddEvidence(ctx, orgID, item.ID, service.AddEvidenceInput{Status: "pending", DocumentURL: "https://files.example.com/drill.pdf"}); err != nil {
		t.Fatalf("AddEvidence() error = %v", err)
	}

	d, err := svc.Dashboard(ctx, orgID)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.RatiosMet != 1 || len(d.Ratios) != 1 {
		t.Fatalf("ratios = %d of %d, want 1 of 1", d.RatiosMet, len(d.Ratios))
	}
	if len(d.Credentials.Expired) != 1 || len(d.Credentials.ExpiringSoon) != 1 ||
		len(d.Credentials.ExpiringLater) != 1 || len(d.Credentials.Active) != 2 {
		t.Fatalf("credential buckets = %d/%d/%d/%d, want 1/1/1/2",
			len(d.Credentials.Expired), len(d.Credentials.ExpiringSoon), len(d.Credentials.ExpiringLater), len(d.Credentials.Active))
	}
	if d.Credentials.Expired[0].Item.StaffName != "Tess Teacher" {
		t.Fatalf("expired credential staff = %q", d.Credentials.Expired[0].Item.StaffName)
	}
	if d.Compliance.Overall.Pending != 1 || d.Compliance.Overall.Score != 0 {
		t.Fatalf("Overall = %+v, want one pending at 0", d.Compliance.Overall)
	}
}

func TestDashboardWithNothingConfigured(t *testing.T) {
	t.Parallel()

	d, err := newService(memory.NewStore()).Dashboard(context.Background(), orgID)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if d.Compliance.Overall.Score != 100 || !d.Compliance.Overall.Vacuous {
		t.Fatalf("Overall = %+v, want vacuous 100", d.Compliance.Overall)
	}
	if d.Credentials.Concerns() != 0 || len(d.Ratios) != 0 {
		t.Fatalf("dashboard = %+v, want empty", d)
	}
}

func TestAddEvidenceRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc := newService(memory.NewStore())
	_, err := svc.AddEvidence(context.Background(), orgID, uuid.New(), service.AddEvidenceInput{Status: "maybe"})
	if !errors.Is(err, service.ErrValidation) {
		t.Fatalf("AddEvidence() error = %v, want ErrValidation", err)
	}
}

func TestStaffReferencesStayInOrganization(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	svc := newService(store)
	ctx := context.Background()

	member := models.Staff{ID: uuid.New(), OrganizationID: orgID, FullName: "Tess Teacher", Role: "teacher"}
	outsider := models.Staff{ID: uuid.New(), OrganizationID: uuid.New(), FullName: "Lee Park", Role: "teacher"}
	store.Staff[member.ID] = member
	store.Staff[outsider.ID] = outsider

	classroom, err := svc.CreateClassroom(ctx, orgID, service.CreateClassroomInput{Name: "Infants", RatioRequirement: ptr("1:4")})
	if err != nil {
		t.Fatalf("CreateClassroom() error = %v", err)
	}
	item, err := svc.CreateComplianceItem(ctx, orgID, service.CreateComplianceItemInput{Category: "safety", Title: "Fire drill log"})
	if err != nil {
		t.Fatalf("CreateComplianceItem() error = %v", err)
	}

	tests := []struct {
		name    string
		staffID uuid.UUID
		wantErr error
	}{
		{"member", member.ID, nil},
		{"unknown", uuid.New(), repository.ErrNotFound},
		{"other organization", outsider.ID, repository.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordHeadcount(ctx, orgID, classroom.ID, service.RecordHeadcountInput{StaffCount: 1, StudentCount: 3, RecordedBy: ptr(tt.staffID)})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordHeadcount(recorded_by) error = %v, want %v", err, tt.wantErr)
			}
			_, err = svc.AddEvidence(ctx, orgID, item.ID, service.AddEvidenceInput{Status: "approved", ReviewedBy: ptr(tt.staffID)})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEvidence(reviewed_by) error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if len(store.Headcounts) != 1 || len(store.Evidence) != 1 {
		t.Fatalf("stored %d headcounts and %d evidence, want only the member's", len(store.Headcounts), len(store.Evidence))
	}
}
