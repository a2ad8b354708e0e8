package domain

import "errors"

// Infrastructure failures. These are logged with full detail server-side and
// reported to clients only through their generic message text.
var (
	ErrProductLookup    = errors.New("failed to verify product details")
	ErrOrderPersistence = errors.New("failed to save order")
	ErrOtpPersistence   = errors.New("failed to generate OTP")
)

// OTP flow failures surfaced to the caller.
var (
	ErrMissingFields      = errors.New("email and customer name are required")
	ErrNotificationFailed = errors.New("failed to send OTP email")
	ErrOtpNotFound        = errors.New("no active OTP found for this email")
	ErrOtpExpired         = errors.New("OTP has expired, please request a new one")
	ErrOtpMismatch        = errors.New("incorrect OTP, please try again")
)

// ValidationError rejects an order submission with a reason the customer can
// act on. The order endpoint reports these with success=false in the body
// rather than an error status.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
