package errs

import (
	"errors"
)

// UserFacingError is an error whose UserError message can be shown to the operator as-is.
type UserFacingError interface {
	error
	UserError() string
}

type ErrOpt func(err *userFacingError)

type userFacingError struct {
	wrapped error
	message string
	input   bool
	tips    []string
}

func (e *userFacingError) Error() string {
	return e.message
}

func (e *userFacingError) UserError() string {
	return e.message
}

func (e *userFacingError) ErrorTips() []string {
	return e.tips
}

func (e *userFacingError) InputError() bool {
	return e.input
}

func (e *userFacingError) Unwrap() error {
	return e.wrapped
}

func NewUserFacing(message string, opts ...ErrOpt) error {
	return WrapUserFacing(nil, message, opts...)
}

func WrapUserFacing(wrapTarget error, message string, opts ...ErrOpt) error {
	err := &userFacingError{
		wrapTarget,
		message,
		false,
		nil,
	}

	for _, opt := range opts {
		opt(err)
	}

	return err
}

func IsUserFacing(err error) bool {
	var userFacingError UserFacingError
	return errors.As(err, &userFacingError)
}

// UserMessage returns the message of the first user facing error in the chain, or false if there is none.
func UserMessage(err error) (string, bool) {
	var ufe UserFacingError
	if !errors.As(err, &ufe) {
		return "", false
	}
	return ufe.UserError(), true
}

// Tips collects the tips of every user facing error in the chain.
func Tips(err error) []string {
	var tips []string
	for _, e := range Unpack(err) {
		if t, ok := e.(interface{ ErrorTips() []string }); ok {
			tips = append(tips, t.ErrorTips()...)
		}
	}
	return tips
}

// IsInputError returns true if any user facing error in the chain was marked as caused by operator input.
func IsInputError(err error) bool {
	for _, e := range Unpack(err) {
		if ie, ok := e.(interface{ InputError() bool }); ok && ie.InputError() {
			return true
		}
	}
	return false
}

// SetIf is a helper for setting options if some conditional evaluated to true.
func SetIf(evaluated bool, opt ErrOpt) ErrOpt {
	if evaluated {
		return opt
	}
	return func(err *userFacingError) {}
}

func SetTips(tips ...string) ErrOpt {
	return func(err *userFacingError) {
		err.tips = append(err.tips, tips...)
	}
}

func SetInput() ErrOpt {
	return func(err *userFacingError) {
		err.input = true
	}
}
