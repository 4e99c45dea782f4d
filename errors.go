package main

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnauthenticated    = errors.New("please sign in first")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidBucket      = errors.New("unknown earnings bucket")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInvalidPhoneFormat = errors.New("please enter a valid M-Pesa phone number (e.g., +2547XXXXXXXX or 07XXXXXXXX)")
	ErrBelowMinimum       = errors.New("amount is below the minimum")
	ErrRemoteWriteFailed  = errors.New("profile store write failed")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")

	ErrCategoryOnCooldown     = errors.New("category was completed recently, try again later")
	ErrUnknownCategory        = errors.New("unknown quiz category")
	ErrTierLocked             = errors.New("upgrade your plan to access this category")
	ErrSpinLimitReached       = errors.New("free spins used up, activate your betting account to keep spinning")
	ErrAccountAlreadyActive   = errors.New("betting account is already active")
	ErrStakeAlreadySettled    = errors.New("stake has already been settled")
	ErrInvalidReceipt         = errors.New("stake receipt does not belong to this user")
	ErrWelcomeRewardCollected = errors.New("welcome reward already collected")
	ErrInvalidPlan            = errors.New("invalid plan upgrade")
	ErrInvalidSlot            = errors.New("spin slot is not on the wheel")
	ErrInvalidScore           = errors.New("score cannot exceed the number of questions")
)

// BelowMinimumError reports which threshold an amount failed to reach.
type BelowMinimumError struct {
	Operation string
	Threshold decimal.Decimal
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("%s amount must be at least KSh %s", e.Operation, e.Threshold.StringFixed(2))
}

func (e *BelowMinimumError) Is(target error) bool {
	return target == ErrBelowMinimum
}

func belowMinimum(operation string, threshold decimal.Decimal) error {
	return &BelowMinimumError{Operation: operation, Threshold: threshold}
}

func remoteWriteFailed(err error) error {
	return fmt.Errorf("%w: %v", ErrRemoteWriteFailed, err)
}

// isValidationError reports errors the client should see verbatim.
func isValidationError(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount, ErrInvalidBucket, ErrInsufficientFunds, ErrInvalidPhoneFormat,
		ErrBelowMinimum, ErrCategoryOnCooldown, ErrUnknownCategory, ErrTierLocked, ErrSpinLimitReached,
		ErrAccountAlreadyActive, ErrInvalidPlan, ErrInvalidReceipt, ErrInvalidSlot, ErrInvalidScore,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
