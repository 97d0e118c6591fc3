package report_service

import (
	"context"
	"fmt"

	"care-compliance/internal/evaluator"
	"care-compliance/internal/models"
	"care-compliance/internal/service"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

type reportService struct {
	therapy service.TherapyService
	daycare service.DaycareService
}

func NewReportService(therapy service.TherapyService, daycare service.DaycareService) service.ReportService {
	return &reportService{therapy: therapy, daycare: daycare}
}

func (s *reportService) TherapyWorkbook(ctx context.Context, orgID uuid.UUID, period service.Period) ([]byte, error) {
	dashboard, err := s.therapy.Dashboard(ctx, orgID, period)
	if err != nil {
		return nil, err
	}
	return TherapyWorkbook(dashboard)
}

func (s *reportService) DaycareWorkbook(ctx context.Context, orgID uuid.UUID) ([]byte, error) {
	dashboard, err := s.daycare.Dashboard(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return DaycareWorkbook(dashboard)
}

// sheetWriter appends rows to one sheet and remembers the first error.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

func newSheet(f *excelize.File, name string, first bool) *sheetWriter {
	w := &sheetWriter{f: f, sheet: name}
	if first {
		w.err = f.SetSheetName("Sheet1", name)
	} else {
		_, w.err = f.NewSheet(name)
	}
	return w
}

func (w *sheetWriter) write(values ...any) {
	if w.err != nil {
		return
	}
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func finish(f *excelize.File, writers ...*sheetWriter) ([]byte, error) {
	for _, w := range writers {
		if w.err != nil {
			return nil, fmt.Errorf("write sheet %s: %w", w.sheet, w.err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// TherapyWorkbook renders a therapy dashboard as Summary, Caseload,
// Disciplines, Goals and Unsigned sheets.
func TherapyWorkbook(d *service.TherapyDashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	summary := newSheet(f, "Summary", true)
	summary.write("Period", d.Period.From.Format(dateLayout)+" to "+d.Period.To.Format(dateLayout))
	summary.write("Generated", d.GeneratedAt.Format("2006-01-02 15:04"))
	writeScore(summary, d.Score)

	caseload := newSheet(f, "Caseload", false)
	caseload.write("Therapist", "Discipline", "Students", "Sessions", "Documentation %", "Attendance %", "Compliance score", "Billable minutes")
	for _, c := range d.Caseload {
		caseload.write(c.TherapistName, c.Discipline, c.Students, c.Score.TotalSessions,
			c.Score.DocumentationRate, c.Score.AttendanceRate, c.Score.ComplianceScore, c.Score.BillableMinutes)
	}

	disciplines := newSheet(f, "Disciplines", false)
	disciplines.write("Discipline", "Students", "Without therapist")
	for _, c := range d.Disciplines {
		disciplines.write(c.Discipline, c.Students, c.Unassigned)
	}

	goals := newSheet(f, "Goals", false)
	goals.write("Student", "Goal", "Discipline", "Data points", "Average", "Trend")
	for _, g := range d.Goals {
		var avg any = ""
		if g.Trend.Average != nil {
			avg = *g.Trend.Average
		}
		goals.write(g.Goal.StudentName, g.Goal.Description, g.Goal.Discipline, g.Trend.Points, avg, string(g.Trend.Trend))
	}

	unsigned := newSheet(f, "Unsigned", false)
	unsigned.write("Date", "Student", "Therapist", "Attendance", "Documentation")
	for _, s := range d.UnsignedSessions {
		unsigned.write(s.SessionDate.Format(dateLayout), s.StudentName, s.TherapistName, s.AttendanceStatus, s.DocumentationStatus)
	}

	return finish(f, summary, caseload, disciplines, goals, unsigned)
}

func writeScore(w *sheetWriter, score evaluator.SessionScore) {
	w.write("Total sessions", score.TotalSessions)
	w.write("Signed sessions", score.SignedSessions)
	w.write("Present sessions", score.PresentSessions)
	w.write("Billable minutes", score.BillableMinutes)
	w.write("Documentation rate %", score.DocumentationRate)
	w.write("Attendance rate %", score.AttendanceRate)
	w.write("Compliance score", score.ComplianceScore)
}

// DaycareWorkbook renders a daycare dashboard as Ratios, Credentials and Checklist sheets.
func DaycareWorkbook(d *service.DaycareDashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	ratios := newSheet(f, "Ratios", true)
	ratios.write("Classroom", "Requirement", "Staff", "Children", "Max children", "In ratio", "Recorded at")
	for _, r := range d.Ratios {
		requirement, maxStudents, recorded := "", any(""), ""
		if r.Classroom.RatioRequirement != nil {
			requirement = *r.Classroom.RatioRequirement
		}
		if r.MaxStudents != nil {
			maxStudents = *r.MaxStudents
		}
		if r.RecordedAt != nil {
			recorded = r.RecordedAt.Format("2006-01-02 15:04")
		}
		ratios.write(r.Classroom.Name, requirement, r.StaffCount, r.StudentCount, maxStudents, yesNo(r.Met), recorded)
	}

	credentials := newSheet(f, "Credentials", false)
	credentials.write("Status", "Staff", "Credential", "Type", "Expires", "Days until")
	writeCredentialRows(credentials, evaluator.BucketExpired, d.Credentials.Expired)
	writeCredentialRows(credentials, evaluator.BucketExpiringSoon, d.Credentials.ExpiringSoon)
	writeCredentialRows(credentials, evaluator.BucketExpiringLater, d.Credentials.ExpiringLater)
	writeCredentialRows(credentials, evaluator.BucketActive, d.Credentials.Active)

	checklist := newSheet(f, "Checklist", false)
	checklist.write("Category", "Total", "Compliant", "Pending", "Expired", "Missing", "Score %")
	for _, c := range d.Compliance.Categories {
		checklist.write(c.Category, c.Total, c.Compliant, c.Pending, c.Expired, c.Missing, c.Score)
	}
	o := d.Compliance.Overall
	checklist.write("Overall", o.Total, o.Compliant, o.Pending, o.Expired, o.Missing, o.Score)
	checklist.write()
	checklist.write("Category", "Item", "Status")
	for _, v := range d.ComplianceItems {
		checklist.write(v.Item.Category, v.Item.Title, string(v.Status))
	}

	return finish(f, ratios, credentials, checklist)
}

func writeCredentialRows(w *sheetWriter, bucket evaluator.ExpirationBucket, records []evaluator.Dated[models.Credential]) {
	for _, r := range records {
		expires, days := "", any("")
		if r.Expiration != nil {
			expires = r.Expiration.Format(dateLayout)
		}
		if r.DaysUntil != nil {
			days = *r.DaysUntil
		}
		w.write(string(bucket), r.Item.StaffName, r.Item.Name, r.Item.CredentialType, expires, days)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
