package errorsx

import (
	"errors"
)

// Ignore returns nil when err matches any of the provided errors.
func Ignore(err error, ignore ...error) error {
	for _, i := range ignore {
		if errors.Is(err, i) {
			return nil
		}
	}

	return err
}

// String useful wrapper for string constants as errors.
type String string

func (t String) Error() string {
	return string(t)
}

// UserFriendly represents an error that will be displayed to users
// without a stack trace.
func UserFriendly(err error) error {
	if err == nil {
		return nil
	}

	return userfriendly{
		error: err,
	}
}

// IsUserFriendly reports if the error chain contains a user friendly error.
func IsUserFriendly(err error) bool {
	var uf userfriendly
	return errors.As(err, &uf)
}

type userfriendly struct {
	error
}

// user friendly error
func (t userfriendly) UserFriendly() {}
func (t userfriendly) Unwrap() error {
	return t.error
}
func (t userfriendly) Cause() error {
	return t.error
}
