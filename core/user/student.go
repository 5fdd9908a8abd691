package user

import (
	"fmt"
	"io"
	"sort"
)

// Student owns a grade ledger: {course: {assignment: grade}}.
type Student struct {
	Person
	grades map[string]map[string]string
}

func NewStudent(id int, name, email string) *Student {
	return &Student{
		Person: NewPerson(id, name, email, RoleStudent),
		grades: make(map[string]map[string]string),
	}
}

// Enroll adds course to the ledger if absent. Existing grades are kept.
func (s *Student) Enroll(course string) {
	if _, ok := s.grades[course]; !ok {
		s.grades[course] = make(map[string]string)
	}
}

// SubmitAssignment sets (or overwrites) the grade of assignment in course.
// The student does not need to be enrolled in course.
func (s *Student) SubmitAssignment(course, assignment, grade string) {
	s.Enroll(course)
	s.grades[course][assignment] = grade
}

// Courses returns the ledger's courses in ascending order.
func (s *Student) Courses() []string {
	courses := make([]string, 0, len(s.grades))
	for course := range s.grades {
		courses = append(courses, course)
	}
	sort.Strings(courses)
	return courses
}

func (s *Student) Grade(course, assignment string) (string, bool) {
	grade, ok := s.grades[course][assignment]
	return grade, ok
}

// Grades returns a copy of the ledger.
func (s *Student) Grades() map[string]map[string]string {
	res := make(map[string]map[string]string, len(s.grades))
	for course, assignments := range s.grades {
		cp := make(map[string]string, len(assignments))
		for name, grade := range assignments {
			cp[name] = grade
		}
		res[course] = cp
	}
	return res
}

// WriteGrades writes the ledger grouped by course; courses and assignments are sorted.
func (s *Student) WriteGrades(w io.Writer) {
	for _, course := range s.Courses() {
		_, _ = fmt.Fprintf(w, "Grades for %s:\n", course)
		assignments := s.grades[course]
		names := make([]string, 0, len(assignments))
		for name := range assignments {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			_, _ = fmt.Fprintf(w, "- %s: %s\n", name, assignments[name])
		}
	}
}
