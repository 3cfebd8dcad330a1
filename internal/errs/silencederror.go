package errs

import (
	"errors"
)

// silencedError marks an error whose message has already been communicated to the user, so it should only affect
// the exit code.
type silencedError struct {
	error
}

func Silence(err error) error {
	return &silencedError{err}
}

func (s *silencedError) Unwrap() error { return s.error }

func (s *silencedError) IsSilent() bool { return true }

func IsSilent(err error) bool {
	var silentErr interface {
		IsSilent() bool
	}
	return errors.As(err, &silentErr) && silentErr.IsSilent()
}
