package alert_service

import (
	"context"
	"fmt"
	"strings"

	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type alertService struct {
	daycare  service.DaycareService
	notifier service.Notifier
	log      *zap.Logger
}

// NewAlertService builds digests from the daycare dashboard. notifier may be
// nil, in which case Send reports ErrNotifierDisabled.
func NewAlertService(daycare service.DaycareService, notifier service.Notifier, log *zap.Logger) service.AlertService {
	return &alertService{
		daycare:  daycare,
		notifier: notifier,
		log:      log.Named("alerts"),
	}
}

func (s *alertService) Digest(ctx context.Context, orgID uuid.UUID) (string, error) {
	dashboard, err := s.daycare.Dashboard(ctx, orgID)
	if err != nil {
		return "", err
	}
	return FormatDigest(dashboard), nil
}

func (s *alertService) Send(ctx context.Context, orgID uuid.UUID) error {
	if s.notifier == nil {
		return service.ErrNotifierDisabled
	}

	text, err := s.Digest(ctx, orgID)
	if err != nil {
		return err
	}
	if err := s.notifier.Notify(ctx, text); err != nil {
		return fmt.Errorf("deliver digest: %w", err)
	}

	s.log.Info("compliance digest sent", zap.Stringer("organization_id", orgID))
	return nil
}

// FormatDigest renders the concerns of a dashboard as plain text.
func FormatDigest(d *service.DaycareDashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Compliance digest for %s\n", d.GeneratedAt.Format("Mon, 02 Jan 2006"))

	overall := d.Compliance.Overall
	if overall.Vacuous {
		b.WriteString("Checklist: no items configured (reported as 100%)\n")
	} else {
		fmt.Fprintf(&b, "Checklist: %d%% (%d of %d compliant)\n", overall.Score, overall.Compliant, overall.Total)
	}
	fmt.Fprintf(&b, "Ratios: %d of %d classrooms in ratio\n", d.RatiosMet, len(d.Ratios))

	for _, r := range d.Ratios {
		if r.Met {
			continue
		}
		switch {
		case !r.HasHeadcount:
			fmt.Fprintf(&b, "  ! %s: no headcount recorded\n", r.Classroom.Name)
		case r.Classroom.RatioRequirement == nil:
			fmt.Fprintf(&b, "  ! %s: no ratio requirement configured\n", r.Classroom.Name)
		default:
			fmt.Fprintf(&b, "  ! %s: %d staff / %d children (requires %s)\n",
				r.Classroom.Name, r.StaffCount, r.StudentCount, *r.Classroom.RatioRequirement)
		}
	}

	writeCredentials(&b, "Expired", d.Credentials.Expired)
	writeCredentials(&b, "Expiring within 30 days", d.Credentials.ExpiringSoon)
	writeCredentials(&b, "Expiring within 90 days", d.Credentials.ExpiringLater)

	if d.Credentials.Concerns() == 0 {
		b.WriteString("Credentials: all current\n")
	}
	return b.String()
}

func writeCredentials(b *strings.Builder, title string, records []evaluator.Dated[models.Credential]) {
	if len(records) == 0 {
		return
	}
	fmt.Fprintf(b, "%s (%d):\n", title, len(records))
	for _, r := range records {
		days := 0
		if r.DaysUntil != nil {
			days = *r.DaysUntil
		}
		when := fmt.Sprintf("in %d days", days)
		switch {
		case days < 0:
			when = fmt.Sprintf("%d days ago", -days)
		case days == 0:
			when = "today"
		}
		fmt.Fprintf(b, "  - %s: %s (%s, %s)\n", r.Item.StaffName, r.Item.Name, r.Expiration.Format("2006-01-02"), when)
	}
}
