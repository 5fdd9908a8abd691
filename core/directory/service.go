// Package directory owns every student, instructor, administrator and course, and is the only
// place where they are mutated.
//
// Operations never return errors: outcomes, including failed lookups, are written to the
// service's output the way a console program reports them.
package directory

import (
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/course"
	"github.com/trezcool/minicanvas/core/user"
	"github.com/trezcool/minicanvas/storage/textfile"
)

type Service struct {
	users   user.Repository
	courses course.Repository
	logger  core.Logger
	out     io.Writer
	errOut  io.Writer

	// shared by every view returned by WithOutput
	mu *sync.Mutex
}

func NewService(users user.Repository, courses course.Repository, logger core.Logger, out, errOut io.Writer) *Service {
	return &Service{
		users:   users,
		courses: courses,
		logger:  logger,
		out:     out,
		errOut:  errOut,
		mu:      new(sync.Mutex),
	}
}

// WithOutput returns a view of the same directory writing to out and errOut.
func (svc *Service) WithOutput(out, errOut io.Writer) *Service {
	view := *svc
	view.out = out
	view.errOut = errOut
	return &view
}

func (svc *Service) println(a ...interface{}) {
	_, _ = fmt.Fprintln(svc.out, a...)
}

func (svc *Service) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(svc.out, format, a...)
}

// report prints err the way a caller of the directory sees it.
func (svc *Service) report(err error) {
	if errors.Is(err, user.ErrNotFound) {
		svc.logger.Debug("lookup failed", err)
		svc.println(errors.Cause(err).Error())
		return
	}
	svc.logger.Error("directory operation failed", err)
	svc.println(err.Error())
}

func (svc *Service) AddStudent(id int, name, email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, err := svc.users.CreateStudent(user.NewStudent(id, name, email)); err != nil {
		svc.report(errors.Wrap(err, "creating student"))
	}
}

func (svc *Service) AddInstructor(id int, name, email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, err := svc.users.CreateInstructor(user.NewInstructor(id, name, email)); err != nil {
		svc.report(errors.Wrap(err, "creating instructor"))
	}
}

func (svc *Service) AddAdministrator(id int, name, email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, err := svc.users.CreateAdministrator(user.NewAdministrator(id, name, email)); err != nil {
		svc.report(errors.Wrap(err, "creating administrator"))
	}
}

// FindStudent returns the live record of the first student with email.
// The record is shared with every view of the service: only mutate it while no other view is in use.
func (svc *Service) FindStudent(email string) (*user.Student, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.users.GetStudentByEmail(email)
}

// FindInstructor returns the live record of the first instructor with email.
// The record is shared with every view of the service: only mutate it while no other view is in use.
func (svc *Service) FindInstructor(email string) (*user.Instructor, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.users.GetInstructorByEmail(email)
}

// FindAdministrator returns the live record of the first administrator with email.
// The record is shared with every view of the service: only mutate it while no other view is in use.
func (svc *Service) FindAdministrator(email string) (*user.Administrator, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.users.GetAdministratorByEmail(email)
}

func (svc *Service) EnrollStudentInCourse(email, courseName string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	std, err := svc.users.GetStudentByEmail(email)
	if err != nil {
		svc.report(err)
		return
	}
	std.Enroll(courseName)
	svc.printf("%s enrolled in %s.\n", std.Name(), courseName)
}

func (svc *Service) AddInstructorToCourse(email, courseName string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	ins, err := svc.users.GetInstructorByEmail(email)
	if err != nil {
		svc.report(err)
		return
	}
	ins.AddCourse(courseName)
	svc.printf("%s assigned to %s.\n", ins.Name(), courseName)
}

func (svc *Service) CreateCourse(name string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := svc.courses.CreateCourse(name); err != nil {
		svc.report(errors.Wrap(err, "creating course"))
		return
	}
	svc.printf("Course '%s' created.\n", name)
}

func (svc *Service) DisplayCourses() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	courses, err := svc.courses.QueryAllCourses()
	if err != nil {
		svc.report(errors.Wrap(err, "querying courses"))
		return
	}
	svc.println("Courses:")
	for _, c := range courses {
		svc.printf("- %s\n", c)
	}
}

func (svc *Service) CreateAssignmentForCourse(instructorEmail, courseName, assignment string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	ins, err := svc.users.GetInstructorByEmail(instructorEmail)
	if err != nil {
		svc.report(err)
		return
	}
	ins.CreateAssignment(svc.out, courseName, assignment)
}

// GradeStudentAssignment looks the instructor up before the student;
// the grade is recorded only once both are found.
func (svc *Service) GradeStudentAssignment(instructorEmail, courseName, assignment, studentEmail, grade string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	ins, err := svc.users.GetInstructorByEmail(instructorEmail)
	if err != nil {
		svc.report(err)
		return
	}
	std, err := svc.users.GetStudentByEmail(studentEmail)
	if err != nil {
		svc.report(err)
		return
	}
	ins.GradeAssignment(std, courseName, assignment, grade)
}

func (svc *Service) ViewStudentGrades(email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	std, err := svc.users.GetStudentByEmail(email)
	if err != nil {
		svc.report(err)
		return
	}
	std.WriteGrades(svc.out)
}

func (svc *Service) ListInstructorCourses(email string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	ins, err := svc.users.GetInstructorByEmail(email)
	if err != nil {
		svc.report(err)
		return
	}
	ins.WriteCourses(svc.out)
}

// DisplayUsers prints every person: students, then instructors, then administrators.
func (svc *Service) DisplayUsers() {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	people, err := svc.people()
	if err != nil {
		svc.report(err)
		return
	}
	for _, p := range people {
		svc.println(p.Display())
	}
}

func (svc *Service) people() ([]user.Person, error) {
	students, err := svc.users.QueryAllStudents()
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	instructors, err := svc.users.QueryAllInstructors()
	if err != nil {
		return nil, errors.Wrap(err, "querying instructors")
	}
	admins, err := svc.users.QueryAllAdministrators()
	if err != nil {
		return nil, errors.Wrap(err, "querying administrators")
	}

	people := make([]user.Person, 0, len(students)+len(instructors)+len(admins))
	for _, std := range students {
		people = append(people, std.Person)
	}
	for _, ins := range instructors {
		people = append(people, ins.Person)
	}
	for _, adm := range admins {
		people = append(people, adm.Person)
	}
	return people, nil
}

// SaveDataToFile writes one "<Role>: <name>, <email>" line per person to path.
// Courses and grades are not saved.
func (svc *Service) SaveDataToFile(path string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	people, err := svc.people()
	if err != nil {
		svc.report(err)
		return
	}
	if err := textfile.Save(path, people); err != nil {
		svc.logger.Error("saving data", err)
		if textfile.IsOpenError(err) {
			_, _ = fmt.Fprintln(svc.errOut, "Failed to open file for writing.")
		} else {
			_, _ = fmt.Fprintln(svc.errOut, "Failed to write file.")
		}
	}
}

// LoadDataFromFile echoes the content of path. The directory is left untouched.
// Failing to read the file and failing to write to the output are reported separately.
func (svc *Service) LoadDataFromFile(path string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if err := textfile.Load(path, svc.out); err != nil {
		svc.logger.Error("loading data", err)
		switch {
		case textfile.IsOpenError(err):
			_, _ = fmt.Fprintln(svc.errOut, "Failed to open file for reading.")
		case textfile.IsOutputError(err):
			_, _ = fmt.Fprintln(svc.errOut, "Failed to write output.")
		default:
			_, _ = fmt.Fprintln(svc.errOut, "Failed to read file.")
		}
	}
}
