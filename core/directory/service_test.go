package directory_test

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/minicanvas/core/directory"
	"github.com/trezcool/minicanvas/core/user"
	"github.com/trezcool/minicanvas/tests"
)

const (
	aliceEmail = "alice@student.com"
	smithEmail = "drsmith@instructor.com"
	bobEmail   = "admin@admin.com"
	ghostEmail = "ghost@nowhere.com"
)

func seed(svc *directory.Service) {
	svc.AddStudent(1, "Alice", aliceEmail)
	svc.AddInstructor(2, "Dr. Smith", smithEmail)
	svc.AddAdministrator(3, "Admin Bob", bobEmail)
}

func TestService_Find(t *testing.T) {
	svc, _, _ := testutil.NewDirectory(t)
	seed(svc)

	std, err := svc.FindStudent(aliceEmail)
	if assert.NoError(t, err) {
		assert.Equal(t, "Alice", std.Name())
	}
	ins, err := svc.FindInstructor(smithEmail)
	if assert.NoError(t, err) {
		assert.Equal(t, "Dr. Smith", ins.Name())
	}
	adm, err := svc.FindAdministrator(bobEmail)
	if assert.NoError(t, err) {
		assert.Equal(t, "Admin Bob", adm.Name())
	}

	tests := []struct {
		name string
		find func() error
	}{
		{name: "student", find: func() error { _, err := svc.FindStudent(ghostEmail); return err }},
		{name: "student by instructor email", find: func() error { _, err := svc.FindStudent(smithEmail); return err }},
		{name: "instructor", find: func() error { _, err := svc.FindInstructor(ghostEmail); return err }},
		{name: "administrator", find: func() error { _, err := svc.FindAdministrator(aliceEmail); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.find(); !errors.Is(err, user.ErrNotFound) {
				t.Errorf("find error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestService_FindStudent_liveRecord(t *testing.T) {
	svc, _, _ := testutil.NewDirectory(t)
	seed(svc)

	std, _ := svc.FindStudent(aliceEmail)
	std.SubmitAssignment("CS101", "HW1", "B")

	again, _ := svc.FindStudent(aliceEmail)
	grade, _ := again.Grade("CS101", "HW1")
	assert.Equal(t, "B", grade)

	// views share the records
	var viewOut bytes.Buffer
	svc.WithOutput(&viewOut, &viewOut).ViewStudentGrades(aliceEmail)
	assert.Equal(t, "Grades for CS101:\n- HW1: B\n", viewOut.String())
}

func TestService_AddStudent_silent(t *testing.T) {
	svc, out, errOut := testutil.NewDirectory(t)
	seed(svc)
	svc.AddStudent(1, "Alice Twin", aliceEmail) // duplicates are not checked

	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
	snap := testutil.Snapshot(t, svc)
	assert.Len(t, snap.Students, 2)

	std, _ := svc.FindStudent(aliceEmail)
	assert.Equal(t, "Alice", std.Name())
}

func TestService_EnrollStudentInCourse(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)

	svc.EnrollStudentInCourse(aliceEmail, "CS101")
	assert.Equal(t, "Alice enrolled in CS101.\n", out.String())

	std, _ := svc.FindStudent(aliceEmail)
	std.SubmitAssignment("CS101", "HW1", "A")
	svc.EnrollStudentInCourse(aliceEmail, "CS101")
	grade, ok := std.Grade("CS101", "HW1")
	assert.True(t, ok)
	assert.Equal(t, "A", grade)
}

func TestService_AddInstructorToCourse(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)

	svc.AddInstructorToCourse(smithEmail, "CS101")
	svc.AddInstructorToCourse(smithEmail, "CS101")
	assert.Equal(t, "Dr. Smith assigned to CS101.\nDr. Smith assigned to CS101.\n", out.String())

	ins, _ := svc.FindInstructor(smithEmail)
	assert.Equal(t, []string{"CS101", "CS101"}, ins.Courses())
}

func TestService_Courses(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)

	svc.DisplayCourses()
	assert.Equal(t, "Courses:\n", out.String())
	out.Reset()

	svc.CreateCourse("Computer Science 101")
	svc.CreateCourse("Math 101")
	svc.CreateCourse("Math 101")
	assert.Equal(t,
		"Course 'Computer Science 101' created.\nCourse 'Math 101' created.\nCourse 'Math 101' created.\n",
		out.String(),
	)
	out.Reset()

	svc.DisplayCourses()
	assert.Equal(t, "Courses:\n- Computer Science 101\n- Math 101\n- Math 101\n", out.String())
}

func TestService_CreateAssignmentForCourse(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)
	svc.AddInstructorToCourse(smithEmail, "CS101")
	out.Reset()

	tests := []struct {
		name   string
		email  string
		course string
		want   string
	}{
		{name: "teaching", email: smithEmail, course: "CS101", want: "Assignment 'HW1' created for course 'CS101'.\n"},
		{name: "not teaching", email: smithEmail, course: "Math 101", want: "You are not teaching this course.\n"},
		{name: "unknown instructor", email: ghostEmail, course: "CS101", want: "Instructor not found.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			before := testutil.Snapshot(t, svc)
			svc.CreateAssignmentForCourse(tt.email, tt.course, "HW1")
			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, before, testutil.Snapshot(t, svc))
		})
	}
}

func TestService_GradeStudentAssignment(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)

	// neither enrollment nor roster membership is required
	svc.GradeStudentAssignment(smithEmail, "CS101", "HW1", aliceEmail, "B")
	svc.GradeStudentAssignment(smithEmail, "CS101", "HW1", aliceEmail, "A+")
	assert.Empty(t, out.String())

	std, _ := svc.FindStudent(aliceEmail)
	assert.Equal(t, map[string]map[string]string{"CS101": {"HW1": "A+"}}, std.Grades())
}

func TestService_GradeStudentAssignment_notFound(t *testing.T) {
	tests := []struct {
		name       string
		insEmail   string
		stdEmail   string
		wantOutput string
	}{
		{name: "unknown instructor", insEmail: ghostEmail, stdEmail: aliceEmail, wantOutput: "Instructor not found.\n"},
		{name: "unknown student", insEmail: smithEmail, stdEmail: ghostEmail, wantOutput: "Student not found.\n"},
		{name: "both unknown", insEmail: ghostEmail, stdEmail: ghostEmail, wantOutput: "Instructor not found.\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, out, _ := testutil.NewDirectory(t)
			seed(svc)
			before := testutil.Snapshot(t, svc)

			svc.GradeStudentAssignment(tt.insEmail, "CS101", "HW1", tt.stdEmail, "A")
			assert.Equal(t, tt.wantOutput, out.String())
			assert.Equal(t, before, testutil.Snapshot(t, svc))
		})
	}
}

func TestService_ghostLeavesDirectoryUnchanged(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)
	svc.CreateCourse("CS101")
	svc.EnrollStudentInCourse(aliceEmail, "CS101")
	svc.AddInstructorToCourse(smithEmail, "CS101")
	before := testutil.Snapshot(t, svc)
	out.Reset()

	svc.EnrollStudentInCourse(ghostEmail, "CS101")
	svc.AddInstructorToCourse(ghostEmail, "CS101")
	svc.CreateAssignmentForCourse(ghostEmail, "CS101", "HW1")
	svc.GradeStudentAssignment(smithEmail, "CS101", "HW1", ghostEmail, "A")
	svc.ViewStudentGrades(ghostEmail)
	svc.ListInstructorCourses(ghostEmail)

	assert.Equal(t,
		"Student not found.\nInstructor not found.\nInstructor not found.\nStudent not found.\nStudent not found.\nInstructor not found.\n",
		out.String(),
	)
	assert.Equal(t, before, testutil.Snapshot(t, svc))
}

func TestService_endToEnd(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)

	svc.AddStudent(1, "Alice", aliceEmail)
	svc.AddInstructor(2, "Dr. Smith", smithEmail)
	svc.CreateCourse("CS101")

	svc.EnrollStudentInCourse(aliceEmail, "CS101")
	std, _ := svc.FindStudent(aliceEmail)
	assert.Equal(t, map[string]map[string]string{"CS101": {}}, std.Grades())

	svc.AddInstructorToCourse(smithEmail, "CS101")
	ins, _ := svc.FindInstructor(smithEmail)
	assert.Equal(t, []string{"CS101"}, ins.Courses())

	out.Reset()
	svc.CreateAssignmentForCourse(smithEmail, "CS101", "HW1")
	assert.Equal(t, "Assignment 'HW1' created for course 'CS101'.\n", out.String())

	svc.GradeStudentAssignment(smithEmail, "CS101", "HW1", aliceEmail, "A+")
	assert.Equal(t, map[string]map[string]string{"CS101": {"HW1": "A+"}}, std.Grades())

	out.Reset()
	svc.ViewStudentGrades(aliceEmail)
	assert.Equal(t, "Grades for CS101:\n- HW1: A+\n", out.String())
}

func TestService_ListInstructorCourses(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)
	svc.AddInstructorToCourse(smithEmail, "Math 101")
	svc.AddInstructorToCourse(smithEmail, "CS101")
	out.Reset()

	svc.ListInstructorCourses(smithEmail)
	assert.Equal(t, "Courses taught by Dr. Smith:\n- Math 101\n- CS101\n", out.String())
}

func TestService_DisplayUsers(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	svc.AddAdministrator(3, "Admin Bob", bobEmail)
	svc.AddInstructor(2, "Dr. Smith", smithEmail)
	svc.AddStudent(1, "Alice", aliceEmail)

	svc.DisplayUsers()
	assert.Equal(t,
		"Name: Alice, Email: alice@student.com, Role: Student\n"+
			"Name: Dr. Smith, Email: drsmith@instructor.com, Role: Instructor\n"+
			"Name: Admin Bob, Email: admin@admin.com, Role: Administrator\n",
		out.String(),
	)
}

func TestService_Snapshot(t *testing.T) {
	svc, _, _ := testutil.NewDirectory(t)
	seed(svc)
	svc.CreateCourse("CS101")
	svc.GradeStudentAssignment(smithEmail, "CS101", "HW1", aliceEmail, "A")
	svc.AddInstructorToCourse(smithEmail, "CS101")

	snap := testutil.Snapshot(t, svc)
	want := directory.Snapshot{
		Students: []directory.StudentView{{
			PersonView: directory.PersonView{ID: 1, Name: "Alice", Email: aliceEmail, Role: "Student"},
			Grades:     map[string]map[string]string{"CS101": {"HW1": "A"}},
		}},
		Instructors: []directory.InstructorView{{
			PersonView: directory.PersonView{ID: 2, Name: "Dr. Smith", Email: smithEmail, Role: "Instructor"},
			Courses:    []string{"CS101"},
		}},
		Administrators: []directory.PersonView{{ID: 3, Name: "Admin Bob", Email: bobEmail, Role: "Administrator"}},
		Courses:        []string{"CS101"},
	}
	assert.Equal(t, want, snap)

	// deep copy
	snap.Students[0].Grades["CS101"]["HW1"] = "F"
	snap.Courses[0] = "changed"
	assert.Equal(t, want, testutil.Snapshot(t, svc))
}

func TestService_SaveLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "minicanvas")
	if err != nil {
		t.Fatalf("ioutil.TempDir() failed: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "lms_data.txt")

	svc, out, errOut := testutil.NewDirectory(t)
	seed(svc)
	svc.AddStudent(4, "Carol", "carol@student.com")
	svc.CreateCourse("CS101")
	svc.GradeStudentAssignment(smithEmail, "CS101", "HW1", aliceEmail, "A")
	out.Reset()

	svc.SaveDataToFile(path)
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())

	written, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("ioutil.ReadFile() failed: %v", err)
	}
	assert.Equal(t,
		"Student: Alice, alice@student.com\n"+
			"Student: Carol, carol@student.com\n"+
			"Instructor: Dr. Smith, drsmith@instructor.com\n"+
			"Administrator: Admin Bob, admin@admin.com\n",
		string(written),
	)

	before := testutil.Snapshot(t, svc)
	svc.LoadDataFromFile(path)
	assert.Equal(t, string(written), out.String())
	assert.Equal(t, before, testutil.Snapshot(t, svc))
}

func TestService_SaveLoad_openFailures(t *testing.T) {
	dir, err := ioutil.TempDir("", "minicanvas")
	if err != nil {
		t.Fatalf("ioutil.TempDir() failed: %v", err)
	}
	defer os.RemoveAll(dir)

	svc, out, errOut := testutil.NewDirectory(t)
	seed(svc)

	svc.SaveDataToFile(filepath.Join(dir, "missing", "data.txt"))
	assert.Equal(t, "Failed to open file for writing.\n", errOut.String())

	errOut.Reset()
	svc.LoadDataFromFile(filepath.Join(dir, "nope.txt"))
	assert.Equal(t, "Failed to open file for reading.\n", errOut.String())
	assert.Empty(t, out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, os.ErrClosed }

func TestService_SaveLoad_ioFailures(t *testing.T) {
	dir, err := ioutil.TempDir("", "minicanvas")
	if err != nil {
		t.Fatalf("ioutil.TempDir() failed: %v", err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "lms_data.txt")

	svc, out, errOut := testutil.NewDirectory(t)
	seed(svc)
	svc.SaveDataToFile(path)

	svc.LoadDataFromFile(dir)
	assert.Equal(t, "Failed to read file.\n", errOut.String())
	assert.Empty(t, out.String())

	var viewErrOut bytes.Buffer
	svc.WithOutput(failingWriter{}, &viewErrOut).LoadDataFromFile(path)
	assert.Equal(t, "Failed to write output.\n", viewErrOut.String())

	if _, err := os.Stat("/dev/full"); err == nil {
		errOut.Reset()
		svc.SaveDataToFile("/dev/full")
		assert.Equal(t, "Failed to write file.\n", errOut.String())
	}
}

func TestService_WithOutput(t *testing.T) {
	svc, out, _ := testutil.NewDirectory(t)
	seed(svc)

	var viewOut, viewErr bytes.Buffer
	view := svc.WithOutput(&viewOut, &viewErr)
	view.EnrollStudentInCourse(aliceEmail, "CS101")

	assert.Empty(t, out.String())
	assert.Equal(t, "Alice enrolled in CS101.\n", viewOut.String())

	// same directory
	std, _ := svc.FindStudent(aliceEmail)
	assert.Equal(t, []string{"CS101"}, std.Courses())
}

func TestService_concurrentViews(t *testing.T) {
	svc, _, _ := testutil.NewDirectory(t)
	seed(svc)
	svc.AddInstructorToCourse(smithEmail, "CS101")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var buf bytes.Buffer
			view := svc.WithOutput(&buf, &buf)
			view.EnrollStudentInCourse(aliceEmail, "CS101")
			view.GradeStudentAssignment(smithEmail, "CS101", "HW1", aliceEmail, "A")
			view.ViewStudentGrades(aliceEmail)
		}()
	}
	wg.Wait()

	std, _ := svc.FindStudent(aliceEmail)
	assert.Equal(t, map[string]map[string]string{"CS101": {"HW1": "A"}}, std.Grades())
}
