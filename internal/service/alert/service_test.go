package alert_service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var now = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

type stubDaycare struct {
	service.DaycareService
	dashboard *service.DaycareDashboard
	err       error
}

func (s stubDaycare) Dashboard(context.Context, uuid.UUID) (*service.DaycareDashboard, error) {
	return s.dashboard, s.err
}

type captureNotifier struct {
	texts []string
	err   error
}

func (c *captureNotifier) Notify(_ context.Context, text string) error {
	c.texts = append(c.texts, text)
	return c.err
}

func ptr[T any](v T) *T { return &v }

func dated(name string, days int) evaluator.Dated[models.Credential] {
	exp := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return evaluator.Dated[models.Credential]{
		Item:       models.Credential{Name: name, StaffName: "Tess Teacher"},
		Expiration: &exp,
		DaysUntil:  &days,
	}
}

func emptyBuckets() evaluator.ExpirationBuckets[models.Credential] {
	return evaluator.ExpirationBuckets[models.Credential]{
		Expired:       []evaluator.Dated[models.Credential]{},
		ExpiringSoon:  []evaluator.Dated[models.Credential]{},
		ExpiringLater: []evaluator.Dated[models.Credential]{},
		Active:        []evaluator.Dated[models.Credential]{},
	}
}

func TestFormatDigest(t *testing.T) {
	t.Parallel()

	credentials := emptyBuckets()
	credentials.Expired = append(credentials.Expired, dated("CPR", -3))
	credentials.ExpiringSoon = append(credentials.ExpiringSoon, dated("First Aid", 0))
	credentials.ExpiringLater = append(credentials.ExpiringLater, dated("Background check", 45))

	d := &service.DaycareDashboard{
		GeneratedAt: now,
		Ratios: []service.ClassroomRatio{
			{Classroom: models.Classroom{Name: "Infants", RatioRequirement: ptr("1:4")}, HasHeadcount: true, StaffCount: 1, StudentCount: 6},
			{Classroom: models.Classroom{Name: "Toddlers"}, HasHeadcount: true, StaffCount: 2, StudentCount: 4},
			{Classroom: models.Classroom{Name: "Preschool"}},
			{Classroom: models.Classroom{Name: "Pre-K", RatioRequirement: ptr("1:10")}, HasHeadcount: true, StaffCount: 1, StudentCount: 5, Met: true},
		},
		RatiosMet:   1,
		Credentials: credentials,
		Compliance: evaluator.ComplianceSummary{
			Overall: evaluator.CategoryScore{Total: 4, Compliant: 3, Score: 75},
		},
	}

	got := FormatDigest(d)
	for _, want := range []string{
		"Compliance digest for Tue, 10 Mar 2026",
		"Checklist: 75% (3 of 4 compliant)",
		"Ratios: 1 of 4 classrooms in ratio",
		"! Infants: 1 staff / 6 children (requires 1:4)",
		"! Toddlers: no ratio requirement configured",
		"! Preschool: no headcount recorded",
		"Expired (1):",
		"Tess Teacher: CPR (2026-03-07, 3 days ago)",
		"First Aid (2026-03-10, today)",
		"Expiring within 90 days (1):",
		"Background check (2026-04-24, in 45 days)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatDigest() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Pre-K") {
		t.Errorf("FormatDigest() lists a classroom in ratio:\n%s", got)
	}
	if strings.Contains(got, "all current") {
		t.Errorf("FormatDigest() reports credentials current:\n%s", got)
	}
}

func TestFormatDigestVacuousChecklist(t *testing.T) {
	t.Parallel()

	got := FormatDigest(&service.DaycareDashboard{
		GeneratedAt: now,
		Credentials: emptyBuckets(),
		Compliance: evaluator.ComplianceSummary{
			Overall: evaluator.CategoryScore{Score: 100, Vacuous: true},
		},
	})
	if !strings.Contains(got, "Checklist: no items configured (reported as 100%)") {
		t.Errorf("FormatDigest() = %q, want vacuous checklist line", got)
	}
	if !strings.Contains(got, "Credentials: all current") {
		t.Errorf("FormatDigest() = %q, want credentials current", got)
	}
}

func TestSendWithoutNotifier(t *testing.T) {
	t.Parallel()

	svc := NewAlertService(stubDaycare{}, nil, zap.NewNop())
	if err := svc.Send(context.Background(), uuid.New()); !errors.Is(err, service.ErrNotifierDisabled) {
		t.Fatalf("Send() error = %v, want ErrNotifierDisabled", err)
	}
}

func TestSendDeliversDigest(t *testing.T) {
	t.Parallel()

	notifier := &captureNotifier{}
	daycare := stubDaycare{dashboard: &service.DaycareDashboard{GeneratedAt: now, Credentials: emptyBuckets()}}
	svc := NewAlertService(daycare, notifier, zap.NewNop())

	if err := svc.Send(context.Background(), uuid.New()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if len(notifier.texts) != 1 || !strings.HasPrefix(notifier.texts[0], "Compliance digest") {
		t.Fatalf("notified = %q, want one digest", notifier.texts)
	}
}

func TestSendPropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	svc := NewAlertService(stubDaycare{err: boom}, &captureNotifier{}, zap.NewNop())
	if err := svc.Send(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Fatalf("Send() with dashboard failure error = %v, want %v", err, boom)
	}

	daycare := stubDaycare{dashboard: &service.DaycareDashboard{GeneratedAt: now, Credentials: emptyBuckets()}}
	svc = NewAlertService(daycare, &captureNotifier{err: boom}, zap.NewNop())
	if err := svc.Send(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Fatalf("Send() with delivery failure error = %v, want %v", err, boom)
	}
}
