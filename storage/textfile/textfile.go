// Package textfile writes a flat, one-line-per-user summary of the directory and echoes it back.
// Loading does not rebuild any state.
package textfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/trezcool/minicanvas/core/user"
)

type openError struct {
	err error
}

func (e *openError) Error() string { return e.err.Error() }

// IsOpenError reports whether err was caused by failing to open the file.
func IsOpenError(err error) bool {
	_, ok := errors.Cause(err).(*openError)
	return ok
}

type outputError struct {
	err error
}

func (e *outputError) Error() string { return e.err.Error() }

// IsOutputError reports whether Load failed writing to its destination rather than reading the file.
func IsOutputError(err error) bool {
	_, ok := errors.Cause(err).(*outputError)
	return ok
}

// FormatLine returns the saved line of p, without the line terminator.
func FormatLine(p user.Person) string {
	return fmt.Sprintf("%s: %s, %s", p.Role(), p.Name(), p.Email())
}

// Save truncates path and writes one line per person, in the given order.
func Save(path string, people []user.Person) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(&openError{err}, "opening %s for writing", path)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrapf(cErr, "closing %s", path)
		}
	}()

	w := bufio.NewWriter(f)
	for _, p := range people {
		if _, err = fmt.Fprintln(w, FormatLine(p)); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
	}
	if err = w.Flush(); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Load copies every line of path to w unchanged.
// A last line missing its terminator gets one.
func Load(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(&openError{err}, "opening %s for reading", path)
	}
	defer func() { _ = f.Close() }()

	r := bufio.NewReader(f)
	for {
		line, rErr := r.ReadString('\n')
		if line != "" {
			if line[len(line)-1] != '\n' {
				line += "\n"
			}
			if _, err := io.WriteString(w, line); err != nil {
				return errors.Wrap(&outputError{err}, "echoing line")
			}
		}
		if rErr == io.EOF {
			return nil
		}
		if rErr != nil {
			return errors.Wrapf(rErr, "reading %s", path)
		}
	}
}
