package apps

// ArgumentError is returned when a command is called with missing or malformed arguments.
type ArgumentError struct {
	msg   string
	Usage string
}

func NewArgumentError(msg string, usage ...string) *ArgumentError {
	err := &ArgumentError{msg: msg}
	if len(usage) > 0 {
		err.Usage = usage[0]
	}
	return err
}

func (err *ArgumentError) Error() string {
	if err.Usage == "" {
		return err.msg
	}
	return err.msg + " (usage: " + err.Usage + ")"
}
