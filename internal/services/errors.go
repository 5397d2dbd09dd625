package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized              = errors.New("unauthorized")
	ErrValidation                = errors.New("invalid request")
	ErrItemNotFound              = errors.New("exchange item not found")
	ErrRewardCatalogInconsistent = errors.New("reward catalog inconsistent")
	ErrInsufficientPoints        = errors.New("insufficient points")
	ErrTransactionFailure        = errors.New("transaction failed")
	ErrOrderNotFound             = errors.New("recharge order not found")
	ErrAlreadyCheckedIn          = errors.New("already checked in today")
	ErrEmailTaken                = errors.New("email already registered")

	ErrAccountNotFound = fmt.Errorf("%w: account not found", ErrUnauthorized)
)

// IsBusinessError reports whether err is an expected rule violation
// rather than an infrastructure failure.
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrUnauthorized,
		ErrValidation,
		ErrItemNotFound,
		ErrRewardCatalogInconsistent,
		ErrInsufficientPoints,
		ErrOrderNotFound,
		ErrAlreadyCheckedIn,
		ErrEmailTaken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
