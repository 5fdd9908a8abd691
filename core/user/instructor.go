package user

import (
	"fmt"
	"io"
)

// Instructor owns the ordered list of courses they teach. Duplicates are kept.
type Instructor struct {
	Person
	courses []string
}

func NewInstructor(id int, name, email string) *Instructor {
	return &Instructor{Person: NewPerson(id, name, email, RoleInstructor)}
}

func (i *Instructor) AddCourse(course string) {
	i.courses = append(i.courses, course)
}

func (i *Instructor) Teaches(course string) bool {
	for _, c := range i.courses {
		if c == course {
			return true
		}
	}
	return false
}

// CreateAssignment reports to w whether the assignment was created.
// Nothing is created when the instructor does not teach course.
func (i *Instructor) CreateAssignment(w io.Writer, course, name string) bool {
	if !i.Teaches(course) {
		_, _ = fmt.Fprintln(w, "You are not teaching this course.")
		return false
	}
	_, _ = fmt.Fprintf(w, "Assignment '%s' created for course '%s'.\n", name, course)
	return true
}

// GradeAssignment records grade on the student's ledger. The roster is not checked.
func (i *Instructor) GradeAssignment(std *Student, course, assignment, grade string) {
	std.SubmitAssignment(course, assignment, grade)
}

func (i *Instructor) Courses() []string {
	courses := make([]string, len(i.courses))
	copy(courses, i.courses)
	return courses
}

func (i *Instructor) WriteCourses(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Courses taught by %s:\n", i.Name())
	for _, course := range i.courses {
		_, _ = fmt.Fprintf(w, "- %s\n", course)
	}
}
