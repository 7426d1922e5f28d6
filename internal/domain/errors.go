package domain

import "errors"

// Sentinel errors shared across layers.
var (
	// ErrBookingRejected matches every *BookingRejectedError via errors.Is.
	ErrBookingRejected = errors.New("booking rejected")
	// ErrInvalidInput is returned when a request is missing required data.
	ErrInvalidInput = errors.New("invalid input")
)

// RejectReason is the human readable reason a booking was refused.
type RejectReason string

const (
	ReasonMalformedTime       RejectReason = "malformed time"
	ReasonOffGrid             RejectReason = "bookable only on the hour or half-hour"
	ReasonFinishBeforeStart   RejectReason = "start must precede finish"
	ReasonTooLong             RejectReason = "exceeds 3-hour maximum"
	ReasonOutsideWorkingHours RejectReason = "outside working hours"
	ReasonStartCollision      RejectReason = "start collides with an existing booking"
	ReasonFinishCollision     RejectReason = "finish collides with an existing booking"
)

// IsCollision reports whether the reason is an overlap with an existing booking.
func (r RejectReason) IsCollision() bool {
	return r == ReasonStartCollision || r == ReasonFinishCollision
}

// BookingRejectedError is returned when a proposed booking breaks a booking rule.
// Callers may correct the request and resubmit it.
type BookingRejectedError struct {
	Reason RejectReason
	// Err is the underlying cause, set for ReasonMalformedTime.
	Err error
}

// NewBookingRejected returns a rejection with the given reason.
func NewBookingRejected(reason RejectReason) *BookingRejectedError {
	return &BookingRejectedError{Reason: reason}
}

func (e *BookingRejectedError) Error() string {
	if e.Err != nil {
		return string(e.Reason) + ": " + e.Err.Error()
	}
	return string(e.Reason)
}

func (e *BookingRejectedError) Unwrap() error { return e.Err }

func (e *BookingRejectedError) Is(target error) bool {
	return target == ErrBookingRejected
}

// RejectReasonOf returns the reason carried by err, if err is a booking rejection.
func RejectReasonOf(err error) (RejectReason, bool) {
	var rejected *BookingRejectedError
	if errors.As(err, &rejected) {
		return rejected.Reason, true
	}
	return "", false
}
