package ai

import "fmt"

// Fallback returns a static template that the clinician edits by hand.
func Fallback(s SessionContext) Suggestion {
	name := s.StudentName
	if name == "" {
		name = "Student"
	}

	subjective := fmt.Sprintf("%s attended the %s session.", name, disciplineLabel(s.Discipline))
	switch s.AttendanceStatus {
	case "absent":
		subjective = fmt.Sprintf("%s was absent from the scheduled session.", name)
	case "cancelled":
		subjective = "Session was cancelled."
	case "makeup":
		subjective = fmt.Sprintf("%s attended a makeup %s session.", name, disciplineLabel(s.Discipline))
	}

	objective := "Document observed performance and data collected for each goal."
	if s.DurationMinutes > 0 {
		objective = fmt.Sprintf("%d-minute session. Document observed performance and data collected for each goal.", s.DurationMinutes)
	}

	return Suggestion{
		Subjective: subjective,
		Objective:  objective,
		Assessment: "Summarize progress toward goals compared to previous sessions.",
		Plan:       "Continue current plan of care. Note any changes to goals or frequency.",
		Source:     SourceFallback,
		Warnings:   []string{},
	}
}
