package ai

import (
	"fmt"
	"strings"
	"time"
)

// SessionContext is what the clinician already knows about the visit.
type SessionContext struct {
	StudentName      string
	Discipline       string
	SessionDate      time.Time
	AttendanceStatus string
	DurationMinutes  int
	Goals            []string
	TherapistNotes   string
}

const systemPrompt = `You are a clinical documentation assistant for pediatric therapists.
Write concise, objective SOAP notes. Never invent measurements that are not in the input.
Respond with a single JSON object with the string fields "subjective", "objective", "assessment" and "plan".`

func disciplineLabel(d string) string {
	switch strings.ToLower(d) {
	case "speech", "slp":
		return "speech-language therapy"
	case "ot":
		return "occupational therapy"
	case "pt":
		return "physical therapy"
	case "":
		return "therapy"
	default:
		return d
	}
}

// BuildPrompt renders the user message for a session.
func BuildPrompt(s SessionContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Draft a SOAP note for a %s session.\n", disciplineLabel(s.Discipline))
	fmt.Fprintf(&b, "Student: %s\n", s.StudentName)
	if !s.SessionDate.IsZero() {
		fmt.Fprintf(&b, "Date: %s\n", s.SessionDate.Format("2006-01-02"))
	}
	if s.DurationMinutes > 0 {
		fmt.Fprintf(&b, "Duration: %d minutes\n", s.DurationMinutes)
	}
	if s.AttendanceStatus != "" {
		fmt.Fprintf(&b, "Attendance: %s\n", s.AttendanceStatus)
	}

	if len(s.Goals) > 0 {
		b.WriteString("Goals addressed:\n")
		for _, g := range s.Goals {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}

	notes := strings.TrimSpace(s.TherapistNotes)
	if notes == "" {
		notes = "(none provided)"
	}
	fmt.Fprintf(&b, "Therapist notes:\n%s\n", notes)

	return b.String()
}
