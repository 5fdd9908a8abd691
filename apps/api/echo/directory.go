package echoapi

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/minicanvas/core/directory"
)

type (
	directoryApi struct {
		dir      *directory.Service
		dataFile string
	}

	// Messages holds the lines the directory wrote while serving a request.
	Messages struct {
		Messages []string `json:"messages"`
		Errors   []string `json:"errors"`
	}

	NewPerson struct {
		ID    int    `json:"id"`
		Name  string `json:"name" validate:"required,notblank"`
		Email string `json:"email" validate:"required,notblank"`
	}

	NewCourse struct {
		Name string `json:"name" validate:"required,notblank"`
	}

	CourseRef struct {
		Course string `json:"course" validate:"required,notblank"`
	}

	NewAssignment struct {
		Course     string `json:"course" validate:"required,notblank"`
		Assignment string `json:"assignment" validate:"required,notblank"`
	}

	NewGrade struct {
		Course       string `json:"course" validate:"required,notblank"`
		Assignment   string `json:"assignment" validate:"required,notblank"`
		StudentEmail string `json:"student_email" validate:"required,notblank"`
		Grade        string `json:"grade" validate:"required,notblank"`
	}
)

func registerDirectoryAPI(g *echo.Group, dir *directory.Service, dataFile string) {
	api := directoryApi{dir: dir, dataFile: dataFile}

	g.GET("/directory", api.snapshot)
	g.GET("/users", api.displayUsers)
	g.POST("/students", api.addStudent)
	g.POST("/instructors", api.addInstructor)
	g.POST("/administrators", api.addAdministrator)

	g.GET("/courses", api.displayCourses)
	g.POST("/courses", api.createCourse)

	sg := g.Group("/students/:email")
	sg.POST("/enrollments", api.enroll)
	sg.GET("/grades", api.viewGrades)

	ig := g.Group("/instructors/:email")
	ig.GET("/courses", api.listCourses)
	ig.POST("/courses", api.assign)
	ig.POST("/assignments", api.createAssignment)
	ig.POST("/grades", api.grade)

	g.POST("/data", api.save)
	g.GET("/data", api.load)
}

// splitLines returns the lines written to buf, whatever their length.
func splitLines(buf *bytes.Buffer) []string {
	if buf.Len() == 0 {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

// respond runs op against a view of the directory and sends what it wrote.
func (api *directoryApi) respond(ctx echo.Context, code int, op func(dir *directory.Service)) error {
	var out, errOut bytes.Buffer
	op(api.dir.WithOutput(&out, &errOut))
	return ctx.JSON(code, Messages{Messages: splitLines(&out), Errors: splitLines(&errOut)})
}

// emailParam returns the decoded :email path parameter.
// The router matches on the raw path when the request has one, leaving its params escaped.
func emailParam(ctx echo.Context) (string, error) {
	email := ctx.Param("email")
	if ctx.Request().URL.RawPath == "" {
		return email, nil
	}
	email, err := url.PathUnescape(email)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "malformed email")
	}
	return email, nil
}

func bindAndValidate(ctx echo.Context, data interface{}) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding request body")
	}
	return ctx.Validate(data)
}

// Handlers

func (api *directoryApi) snapshot(ctx echo.Context) error {
	snap, err := api.dir.Snapshot()
	if err != nil {
		return errors.Wrap(err, "getting snapshot")
	}
	return ctx.JSON(http.StatusOK, snap)
}

func (api *directoryApi) displayUsers(ctx echo.Context) error {
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.DisplayUsers() })
}

func (api *directoryApi) addPerson(ctx echo.Context, add func(dir *directory.Service, p NewPerson)) error {
	var data NewPerson
	if err := bindAndValidate(ctx, &data); err != nil {
		return err
	}
	return api.respond(ctx, http.StatusCreated, func(dir *directory.Service) { add(dir, data) })
}

func (api *directoryApi) addStudent(ctx echo.Context) error {
	return api.addPerson(ctx, func(dir *directory.Service, p NewPerson) { dir.AddStudent(p.ID, p.Name, p.Email) })
}

func (api *directoryApi) addInstructor(ctx echo.Context) error {
	return api.addPerson(ctx, func(dir *directory.Service, p NewPerson) { dir.AddInstructor(p.ID, p.Name, p.Email) })
}

func (api *directoryApi) addAdministrator(ctx echo.Context) error {
	return api.addPerson(ctx, func(dir *directory.Service, p NewPerson) { dir.AddAdministrator(p.ID, p.Name, p.Email) })
}

func (api *directoryApi) displayCourses(ctx echo.Context) error {
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.DisplayCourses() })
}

func (api *directoryApi) createCourse(ctx echo.Context) error {
	var data NewCourse
	if err := bindAndValidate(ctx, &data); err != nil {
		return err
	}
	return api.respond(ctx, http.StatusCreated, func(dir *directory.Service) { dir.CreateCourse(data.Name) })
}

func (api *directoryApi) enroll(ctx echo.Context) error {
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}
	var data CourseRef
	if err := bindAndValidate(ctx, &data); err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.EnrollStudentInCourse(email, data.Course) })
}

func (api *directoryApi) viewGrades(ctx echo.Context) error {
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.ViewStudentGrades(email) })
}

func (api *directoryApi) listCourses(ctx echo.Context) error {
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.ListInstructorCourses(email) })
}

func (api *directoryApi) assign(ctx echo.Context) error {
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}
	var data CourseRef
	if err := bindAndValidate(ctx, &data); err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.AddInstructorToCourse(email, data.Course) })
}

func (api *directoryApi) createAssignment(ctx echo.Context) error {
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}
	var data NewAssignment
	if err := bindAndValidate(ctx, &data); err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) {
		dir.CreateAssignmentForCourse(email, data.Course, data.Assignment)
	})
}

func (api *directoryApi) grade(ctx echo.Context) error {
	email, err := emailParam(ctx)
	if err != nil {
		return err
	}
	var data NewGrade
	if err := bindAndValidate(ctx, &data); err != nil {
		return err
	}
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) {
		dir.GradeStudentAssignment(email, data.Course, data.Assignment, data.StudentEmail, data.Grade)
	})
}

func (api *directoryApi) save(ctx echo.Context) error {
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.SaveDataToFile(api.dataFile) })
}

func (api *directoryApi) load(ctx echo.Context) error {
	return api.respond(ctx, http.StatusOK, func(dir *directory.Service) { dir.LoadDataFromFile(api.dataFile) })
}
