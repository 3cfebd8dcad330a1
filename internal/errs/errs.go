package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-stack/stack"
)

// Error enforces errors that include a stacktrace
type Error interface {
	Unwrap() error
	Stack() stack.CallStack
}

// WrappedErr is what we use for errors created from this package, this does not mean every error returned from this
// package is wrapping something, it simply has the plumbing to.
type WrappedErr struct {
	msg     string
	wrapped error
	stack   stack.CallStack
}

// Error returns the error message
func (e *WrappedErr) Error() string {
	return e.msg
}

// Unwrap returns the parent error, if one exists
func (e *WrappedErr) Unwrap() error {
	return e.wrapped
}

// Stack returns the stacktrace for where this error was created
func (e *WrappedErr) Stack() stack.CallStack {
	return e.stack
}

func newError(msg string, wrapTarget error) error {
	// Skip newError and the exported constructor that called it
	return &WrappedErr{
		msg,
		wrapTarget,
		stack.Trace().TrimBelow(stack.Caller(2)).TrimRuntime(),
	}
}

// New creates a new error, similar to errors.New
func New(message string, args ...interface{}) error {
	return newError(fmt.Sprintf(message, args...), nil)
}

// Wrap creates a new error that wraps the given error
func Wrap(wrapTarget error, message string, args ...interface{}) error {
	return newError(fmt.Sprintf(message, args...), wrapTarget)
}

// Join all error messages in the Unwrap stack
func Join(err error, sep string) error {
	return newError(JoinMessage(err, sep), nil)
}

// JoinMessage returns all error messages in the Unwrap stack joined by sep
func JoinMessage(err error, sep ...string) string {
	separator := ": "
	if len(sep) > 0 {
		separator = sep[0]
	}
	var message []string
	for _, e := range Unpack(err) {
		if _, ok := e.(*ExitCode); ok {
			continue
		}
		// wrappers such as silenced errors repeat the message of what they wrap
		if msg := e.Error(); msg != "" && (len(message) == 0 || message[len(message)-1] != msg) {
			message = append(message, msg)
		}
	}
	return strings.Join(message, separator)
}

// Unpack returns every error in the Unwrap chain, outermost first
func Unpack(err error) []error {
	var result []error
	for err != nil {
		result = append(result, err)
		err = errors.Unwrap(err)
	}
	return result
}

// StackString returns the formatted creation stack of the outermost errs.Error in the chain, if any
func StackString(err error) string {
	var ee Error
	if !errors.As(err, &ee) {
		return "not provided"
	}
	var lines []string
	for _, call := range ee.Stack() {
		lines = append(lines, fmt.Sprintf("%+v (%n)", call, call))
	}
	return strings.Join(lines, "\n")
}
