package http

import "fmt"

// BadInput marks a failure caused by the caller's input. The connection
// handler maps it to a 400 response at the invocation boundary; any
// other error escaping a handler is an infrastructure fault and maps
// to 500.
type BadInput struct {
	Msg string
	Err error
}

func (e *BadInput) Error() string {
	return e.Msg
}

func (e *BadInput) Unwrap() error {
	return e.Err
}

func BadInputf(format string, args ...any) *BadInput {
	return &BadInput{Msg: fmt.Sprintf(format, args...)}
}
