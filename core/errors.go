package core

import "strings"

// FieldError tells why the value of a single argument or body field was rejected.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is a rejected request: Err says what was wrong with it, Fields which values.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err *ValidationError) Error() string {
	if err.Err == nil {
		names := make([]string, 0, len(err.Fields))
		for _, f := range err.Fields {
			names = append(names, f.Field)
		}
		return "invalid " + strings.Join(names, ", ")
	}
	return err.Err.Error()
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}

// FieldMap returns the field errors keyed by field name, or nil when there are none.
func (err *ValidationError) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	m := make(map[string]string, len(err.Fields))
	for _, f := range err.Fields {
		m[f.Field] = f.Error
	}
	return m
}
