package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/directory"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf       *core.Config
	dir        *directory.Service
	stdin      io.Reader
	stdout     io.Writer
	validate   *validator.Validate
	translator ut.Translator
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.stdout, "Usage:")
	_, _ = fmt.Fprintln(cli.stdout, "  demo [-file PATH]   - run the demonstration scenario, save it to PATH and print it back")
	_, _ = fmt.Fprintln(cli.stdout, "  show -file PATH     - print a saved data file")
	_, _ = fmt.Fprintln(cli.stdout, "  shell               - start an interactive session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	demoCmd := flag.NewFlagSet("demo", flag.ContinueOnError)
	demoCmd.SetOutput(cli.stdout)
	demoFile := demoCmd.String("file", cli.conf.DataFile, "The file the directory is saved to.")

	showCmd := flag.NewFlagSet("show", flag.ContinueOnError)
	showCmd.SetOutput(cli.stdout)
	showFile := showCmd.String("file", "", "The file to print.")

	switch args[1] {
	case "demo":
		if err := demoCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *demoFile == "" {
			demoCmd.Usage()
			return errHelp
		}
		cli.demo(*demoFile)
		return nil
	case "show":
		if err := showCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *showFile == "" {
			showCmd.Usage()
			return errHelp
		}
		cli.dir.LoadDataFromFile(*showFile)
		return nil
	case "shell":
		return cli.shell()
	default:
		cli.printUsage()
		return errHelp
	}
}

// demo replays the reference scenario.
func (cli *commandLine) demo(path string) {
	d := cli.dir

	d.AddStudent(1, "Alice", "alice@student.com")
	d.AddInstructor(2, "Dr. Smith", "drsmith@instructor.com")
	d.AddAdministrator(3, "Admin Bob", "admin@admin.com")

	d.CreateCourse("Computer Science 101")
	d.CreateCourse("Math 101")
	d.DisplayCourses()

	d.EnrollStudentInCourse("alice@student.com", "Computer Science 101")
	d.AddInstructorToCourse("drsmith@instructor.com", "Computer Science 101")
	d.CreateAssignmentForCourse("drsmith@instructor.com", "Computer Science 101", "Assignment 1")
	d.GradeStudentAssignment("drsmith@instructor.com", "Computer Science 101", "Assignment 1", "alice@student.com", "A+")
	d.ViewStudentGrades("alice@student.com")

	d.SaveDataToFile(path)
	d.LoadDataFromFile(path)
}
