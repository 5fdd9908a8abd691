package directory

import (
	"github.com/pkg/errors"

	"github.com/trezcool/minicanvas/core/user"
)

type PersonView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type StudentView struct {
	PersonView
	Grades map[string]map[string]string `json:"grades"`
}

type InstructorView struct {
	PersonView
	Courses []string `json:"courses"`
}

// Snapshot is a deep copy of the directory; changing it does not change the directory.
type Snapshot struct {
	Students       []StudentView    `json:"students"`
	Instructors    []InstructorView `json:"instructors"`
	Administrators []PersonView     `json:"administrators"`
	Courses        []string         `json:"courses"`
}

func newPersonView(p user.Person) PersonView {
	return PersonView{
		ID:    p.ID(),
		Name:  p.Name(),
		Email: p.Email(),
		Role:  p.Role().String(),
	}
}

func (svc *Service) Snapshot() (Snapshot, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.users.QueryAllStudents()
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "querying students")
	}
	instructors, err := svc.users.QueryAllInstructors()
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "querying instructors")
	}
	admins, err := svc.users.QueryAllAdministrators()
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "querying administrators")
	}
	courses, err := svc.courses.QueryAllCourses()
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "querying courses")
	}

	snap := Snapshot{
		Students:       make([]StudentView, 0, len(students)),
		Instructors:    make([]InstructorView, 0, len(instructors)),
		Administrators: make([]PersonView, 0, len(admins)),
		Courses:        courses,
	}
	for _, std := range students {
		snap.Students = append(snap.Students, StudentView{PersonView: newPersonView(std.Person), Grades: std.Grades()})
	}
	for _, ins := range instructors {
		snap.Instructors = append(snap.Instructors, InstructorView{PersonView: newPersonView(ins.Person), Courses: ins.Courses()})
	}
	for _, adm := range admins {
		snap.Administrators = append(snap.Administrators, newPersonView(adm.Person))
	}
	return snap, nil
}
