package reporting

// Error is an error returned by the reporting API client. It carries the
// response status code, when there is one, and data for structured logging.
type Error struct {
	err        error
	statusCode int
	logData    map[string]interface{}
}

func (e *Error) Error() string {
	if e.err == nil {
		return "nil"
	}
	return e.err.Error()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the status code returned by the reporting API, 0 if no
// response was received
func (e *Error) Code() int {
	return e.statusCode
}

// LogData implements the DataLogger interface which allows you extract
// embedded log.Data from an error
func (e *Error) LogData() map[string]interface{} {
	return e.logData
}
