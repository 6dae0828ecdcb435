package service

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyMember      = errors.New("user already belongs to a group")
	ErrNotInGroup         = errors.New("user does not belong to a group")
	ErrNotResponsible     = errors.New("only the group responsible can do this")
	ErrGroupNotFound      = errors.New("group not found")
	ErrCodeSpaceExhausted = errors.New("could not generate an unused group code")

	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrNoPendingPayment = errors.New("user has no payment awaiting review")
	ErrUnauthorized     = errors.New("not allowed to register attendance")
	ErrInvalidTarget    = errors.New("invalid attendee identifier")
	ErrTargetNotFound   = errors.New("attendee not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// PersistenceError wraps a storage failure that is not one of the expected
// user-facing conditions. The in-flight transaction has already been rolled
// back when it is returned.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

var domainErrors = []error{
	ErrAlreadyMember,
	ErrNotInGroup,
	ErrNotResponsible,
	ErrGroupNotFound,
	ErrCodeSpaceExhausted,
	ErrInvalidAmount,
	ErrNoPendingPayment,
	ErrUnauthorized,
	ErrInvalidTarget,
	ErrTargetNotFound,
	ErrEmailTaken,
	ErrInvalidCredentials,
	ErrUserNotFound,
}

// IsDomainError reports whether err is one of the expected conditions a
// caller should show to the user as-is.
func IsDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// persistence passes domain errors through and wraps everything else.
func persistence(op string, err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
