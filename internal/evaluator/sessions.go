package evaluator

import "math"

// AttendanceStatus of a therapy session.
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceMakeup    AttendanceStatus = "makeup"
	AttendanceCancelled AttendanceStatus = "cancelled"
)

// DocumentationStatus of the note attached to a session.
type DocumentationStatus string

const (
	DocumentationDraft   DocumentationStatus = "draft"
	DocumentationSigned  DocumentationStatus = "signed"
	DocumentationLocked  DocumentationStatus = "locked"
	DocumentationAmended DocumentationStatus = "amended"
)

// Signed reports whether the note carries a valid signature. A locked note
// was signed before it was finalized.
func (d DocumentationStatus) Signed() bool {
	return d == DocumentationSigned || d == DocumentationLocked
}

// SessionInput is the slice of a session row the scorer needs.
type SessionInput struct {
	Attendance      AttendanceStatus
	Documentation   DocumentationStatus
	DurationMinutes int
}

// Billable reports whether the session's minutes count toward billing.
func (s SessionInput) Billable() bool {
	return s.Attendance == AttendancePresent && s.Documentation.Signed()
}

// SessionScore is the documentation/attendance summary for a period.
type SessionScore struct {
	TotalSessions     int `json:"total_sessions"`
	SignedSessions    int `json:"signed_sessions"`
	PresentSessions   int `json:"present_sessions"`
	AbsentSessions    int `json:"absent_sessions"`
	MakeupSessions    int `json:"makeup_sessions"`
	CancelledSessions int `json:"cancelled_sessions"`
	DraftSessions     int `json:"draft_sessions"`
	BillableMinutes   int `json:"billable_minutes"`
	DocumentationRate int `json:"documentation_rate"`
	AttendanceRate    int `json:"attendance_rate"`
	ComplianceScore   int `json:"compliance_score"`
}

const (
	documentationWeight = 0.5
	attendanceWeight    = 0.3
	// signedBonus is granted in full once a single session is signed.
	signedBonus = 20
)

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// ComplianceScore combines the two rates with the signed-session bonus.
func ComplianceScore(documentationRate, attendanceRate, signedSessions int) int {
	bonus := 0.0
	if signedSessions > 0 {
		bonus = signedBonus
	}
	return int(math.Round(float64(documentationRate)*documentationWeight + float64(attendanceRate)*attendanceWeight + bonus))
}

// ScoreSessions computes rates and the composite score over sessions.
func ScoreSessions(sessions []SessionInput) SessionScore {
	var score SessionScore
	score.TotalSessions = len(sessions)

	for _, s := range sessions {
		switch {
		case s.Documentation.Signed():
			score.SignedSessions++
		case s.Documentation == DocumentationDraft:
			score.DraftSessions++
		}

		switch s.Attendance {
		case AttendancePresent:
			score.PresentSessions++
		case AttendanceAbsent:
			score.AbsentSessions++
		case AttendanceMakeup:
			score.MakeupSessions++
		case AttendanceCancelled:
			score.CancelledSessions++
		}

		if s.Billable() {
			score.BillableMinutes += s.DurationMinutes
		}
	}

	score.DocumentationRate = Percent(score.SignedSessions, score.TotalSessions)
	score.AttendanceRate = Percent(score.PresentSessions, score.TotalSessions)
	score.ComplianceScore = ComplianceScore(score.DocumentationRate, score.AttendanceRate, score.SignedSessions)
	return score
}
