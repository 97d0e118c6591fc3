// Package evaluator holds the compliance arithmetic shared by the therapy and
// daycare dashboards. Every function is pure: callers pass already-fetched rows
// and the reference instant, nothing here reads the clock or the database.
package evaluator

import (
	"strconv"
	"strings"
)

// Ratio is a staff:student requirement such as "1:4".
type Ratio struct {
	StaffRequired    int
	StudentsPerStaff int
}

// ParseRatio parses "<staffRequired>:<studentsPerStaff>". Both sides must be
// positive integers.
func ParseRatio(s string) (Ratio, bool) {
	staffPart, studentPart, ok := strings.Cut(s, ":")
	if !ok {
		return Ratio{}, false
	}

	staff, err := strconv.Atoi(strings.TrimSpace(staffPart))
	if err != nil || staff <= 0 {
		return Ratio{}, false
	}
	students, err := strconv.Atoi(strings.TrimSpace(studentPart))
	if err != nil || students <= 0 {
		return Ratio{}, false
	}

	return Ratio{StaffRequired: staff, StudentsPerStaff: students}, true
}

// MaxStudents is the headcount the given staff may supervise. The value is not
// rounded: 2 staff at "2:5" allow exactly 5.0 students.
func (r Ratio) MaxStudents(staffCount int) float64 {
	return float64(staffCount) * (float64(r.StudentsPerStaff) / float64(r.StaffRequired))
}

func (r Ratio) String() string {
	return strconv.Itoa(r.StaffRequired) + ":" + strconv.Itoa(r.StudentsPerStaff)
}

// RatioMet reports whether studentCount children are within the requirement for
// staffCount adults. A missing or malformed requirement, or an empty room of
// staff, is never met.
func RatioMet(staffCount, studentCount int, requirement *string) bool {
	if requirement == nil || staffCount <= 0 || studentCount < 0 {
		return false
	}
	ratio, ok := ParseRatio(*requirement)
	if !ok {
		return false
	}
	return float64(studentCount) <= ratio.MaxStudents(staffCount)
}
