package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/minicanvas/apps"
	"github.com/trezcool/minicanvas/core"
	"github.com/trezcool/minicanvas/core/directory"
)

const (
	shellPrompt = "minicanvas> "

	// minimum similarity for an unknown command to get a suggestion
	suggestionRatio = 0.6
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errExit = errors.New("exit")
)

type (
	param struct {
		name     string
		tag      string // validator tag
		optional bool
	}

	shellCommand struct {
		name   string
		params []param
		help   string
		run    func(s *session, args []string) error
	}

	session struct {
		cli *commandLine
		dir *directory.Service
		out io.Writer
	}
)

var (
	pID         = param{name: "ID", tag: "required,number"}
	pName       = param{name: "NAME", tag: "required,notblank"}
	pEmail      = param{name: "EMAIL", tag: "required,notblank"}
	pCourse     = param{name: "COURSE", tag: "required,notblank"}
	pAssignment = param{name: "ASSIGNMENT", tag: "required,notblank"}
	pGrade      = param{name: "GRADE", tag: "required,notblank"}
	pPath       = param{name: "PATH", tag: "omitempty,notblank", optional: true}
)

var shellCommands = []shellCommand{
	{
		name: "add-student", params: []param{pID, pName, pEmail}, help: "add a student",
		run: func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s.dir.AddStudent(id, args[1], args[2])
			return nil
		},
	},
	{
		name: "add-instructor", params: []param{pID, pName, pEmail}, help: "add an instructor",
		run: func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s.dir.AddInstructor(id, args[1], args[2])
			return nil
		},
	},
	{
		name: "add-admin", params: []param{pID, pName, pEmail}, help: "add an administrator",
		run: func(s *session, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s.dir.AddAdministrator(id, args[1], args[2])
			return nil
		},
	},
	{
		name: "users", help: "list every user",
		run: func(s *session, args []string) error {
			s.dir.DisplayUsers()
			return nil
		},
	},
	{
		name: "create-course", params: []param{pName}, help: "create a course",
		run: func(s *session, args []string) error {
			s.dir.CreateCourse(args[0])
			return nil
		},
	},
	{
		name: "courses", help: "list every course",
		run: func(s *session, args []string) error {
			s.dir.DisplayCourses()
			return nil
		},
	},
	{
		name: "enroll", params: []param{pEmail, pCourse}, help: "enroll a student in a course",
		run: func(s *session, args []string) error {
			s.dir.EnrollStudentInCourse(args[0], args[1])
			return nil
		},
	},
	{
		name: "assign", params: []param{pEmail, pCourse}, help: "assign an instructor to a course",
		run: func(s *session, args []string) error {
			s.dir.AddInstructorToCourse(args[0], args[1])
			return nil
		},
	},
	{
		name: "teaching", params: []param{pEmail}, help: "list the courses of an instructor",
		run: func(s *session, args []string) error {
			s.dir.ListInstructorCourses(args[0])
			return nil
		},
	},
	{
		name: "create-assignment", params: []param{pEmail, pCourse, pAssignment}, help: "create an assignment (instructor EMAIL)",
		run: func(s *session, args []string) error {
			s.dir.CreateAssignmentForCourse(args[0], args[1], args[2])
			return nil
		},
	},
	{
		name:   "grade",
		params: []param{pEmail, pCourse, pAssignment, {name: "STUDENT_EMAIL", tag: "required,notblank"}, pGrade},
		help:   "grade a student's assignment (instructor EMAIL)",
		run: func(s *session, args []string) error {
			s.dir.GradeStudentAssignment(args[0], args[1], args[2], args[3], args[4])
			return nil
		},
	},
	{
		name: "grades", params: []param{pEmail}, help: "print the grades of a student",
		run: func(s *session, args []string) error {
			s.dir.ViewStudentGrades(args[0])
			return nil
		},
	},
	{
		name: "save", params: []param{pPath}, help: "save users to PATH (default: configured data file)",
		run: func(s *session, args []string) error {
			s.dir.SaveDataToFile(s.dataFile(args))
			return nil
		},
	},
	{
		name: "load", params: []param{pPath}, help: "print PATH (default: configured data file)",
		run: func(s *session, args []string) error {
			s.dir.LoadDataFromFile(s.dataFile(args))
			return nil
		},
	},
	{name: "help", help: "show this help"},
	{name: "exit", help: "leave the shell"},
}

// parseID converts an ID argument already checked to be digits; it can still overflow an int.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, apps.NewArgumentError(fmt.Sprintf("ID %s is out of range", arg))
	}
	return id, nil
}

func (c shellCommand) usage() string {
	parts := []string{c.name}
	for _, p := range c.params {
		if p.optional {
			parts = append(parts, "["+p.name+"]")
		} else {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, " ")
}

func findCommand(name string) (shellCommand, bool) {
	for _, c := range shellCommands {
		if c.name == name {
			return c, true
		}
	}
	return shellCommand{}, false
}

// suggestCommand returns the known command closest to name, if any is close enough.
func suggestCommand(name string) (string, bool) {
	var best string
	var bestRatio float64
	for _, c := range shellCommands {
		m := difflib.NewMatcher(strings.Split(name, ""), strings.Split(c.name, ""))
		if ratio := m.Ratio(); ratio > bestRatio {
			best, bestRatio = c.name, ratio
		}
	}
	return best, bestRatio >= suggestionRatio
}

// splitArgs splits line on whitespace. Double or single quotes group words; no escapes.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	var quote rune
	inArg := false
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, apps.NewArgumentError("unterminated quote")
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}

// checkArgs validates args against the command's params.
func (s *session) checkArgs(c shellCommand, args []string) error {
	var required int
	for _, p := range c.params {
		if !p.optional {
			required++
		}
	}
	if len(args) < required || len(args) > len(c.params) {
		return apps.NewArgumentError(fmt.Sprintf("%s expects %d argument(s), got %d", c.name, required, len(args)), c.usage())
	}

	var fldErrs []core.FieldError
	for i, p := range c.params {
		var val string
		if i < len(args) {
			val = args[i]
		}
		if err := s.cli.validate.Var(val, p.tag); err != nil {
			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				return errors.Wrap(err, "validating arguments")
			}
			for _, msg := range core.TranslateErrors(vErrs, s.cli.translator) {
				fldErrs = append(fldErrs, core.FieldError{Field: p.name, Error: msg})
			}
		}
	}
	if len(fldErrs) > 0 {
		return core.NewValidationError(apps.NewArgumentError("invalid arguments", c.usage()), fldErrs...)
	}
	return nil
}

func (s *session) printHelp() {
	cmds := make([]shellCommand, len(shellCommands))
	copy(cmds, shellCommands)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].name < cmds[j].name })
	for _, c := range cmds {
		_, _ = fmt.Fprintf(s.out, "  %-60s %s\n", c.usage(), c.help)
	}
}

// exec runs one shell line. It returns errExit when the session should end.
func (s *session) exec(line string) error {
	args, err := splitArgs(core.CleanString(line))
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	name := strings.ToLower(args[0])
	switch name {
	case "exit", "quit":
		return errExit
	case "help":
		s.printHelp()
		return nil
	}

	c, ok := findCommand(name)
	if !ok {
		if suggestion, ok := suggestCommand(name); ok {
			return apps.NewArgumentError(fmt.Sprintf("unknown command %q, did you mean %q?", name, suggestion))
		}
		return apps.NewArgumentError(fmt.Sprintf("unknown command %q, type \"help\" for the list of commands", name))
	}
	if err := s.checkArgs(c, args[1:]); err != nil {
		return err
	}

	return c.run(s, args[1:])
}

// dataFile returns the optional PATH argument, or the configured data file.
func (s *session) dataFile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return s.cli.conf.DataFile
}

// printError writes err, with one line per invalid field.
func (s *session) printError(err error) {
	if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
		_, _ = fmt.Fprintf(s.out, "error: %s\n", vErr.Error())
		for _, fErr := range vErr.Fields {
			_, _ = fmt.Fprintf(s.out, "  %s: %s\n", fErr.Field, fErr.Error)
		}
		return
	}
	_, _ = fmt.Fprintf(s.out, "error: %s\n", err)
}

// loop reads lines until EOF or exit.
func (s *session) loop(readLine func() (string, error)) error {
	for {
		line, err := readLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading line")
		}
		if err := s.exec(line); err != nil {
			if err == errExit {
				return nil
			}
			s.printError(err)
		}
	}
}

func (cli *commandLine) shell() error {
	if f, ok := cli.stdin.(*os.File); ok && isTerminalFunc(int(f.Fd())) {
		return cli.terminalShell(f)
	}

	// piped input: no prompt, no line editing
	s := &session{cli: cli, dir: cli.dir.WithOutput(cli.stdout, cli.stdout), out: cli.stdout}
	scanner := bufio.NewScanner(cli.stdin)
	return s.loop(func() (string, error) {
		if scanner.Scan() {
			return scanner.Text(), nil
		}
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	})
}

func (cli *commandLine) terminalShell(f *os.File) error {
	oldState, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		return errors.Wrap(err, "setting terminal raw mode")
	}
	defer func() { _ = term.Restore(int(f.Fd()), oldState) }()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, cli.stdout}, shellPrompt)
	if w, h, err := term.GetSize(int(f.Fd())); err == nil {
		_ = t.SetSize(w, h)
	}

	// the terminal translates "\n" to "\r\n" while in raw mode
	s := &session{cli: cli, dir: cli.dir.WithOutput(t, t), out: t}
	_, _ = fmt.Fprintln(t, `Type "help" for the list of commands.`)
	return s.loop(t.ReadLine)
}
