package services

import (
	"fmt"
	"time"

	"roombooking/internal/domain"
)

// MaxBookingDuration is the longest slot a single booking may hold.
const MaxBookingDuration = 3 * time.Hour

// BookingValidator decides whether a proposed booking may be stored.
type BookingValidator struct {
	hours domain.WorkingHours
}

// NewBookingValidator returns a validator enforcing the given working hours window.
func NewBookingValidator(hours domain.WorkingHours) *BookingValidator {
	return &BookingValidator{hours: hours}
}

// Validate checks req against the booking rules and the events already booked on
// the same date. Rules are applied in a fixed order and the first failure is returned
// as a *domain.BookingRejectedError. A non-rejection error means an existing event
// could not be read back.
func (v *BookingValidator) Validate(req domain.CreateEventRequest, existing []*domain.Event) error {
	start, err := domain.ParseTimeOfDay(req.Start)
	if err != nil {
		return &domain.BookingRejectedError{Reason: domain.ReasonMalformedTime, Err: err}
	}
	finish, err := domain.ParseTimeOfDay(req.Finish)
	if err != nil {
		return &domain.BookingRejectedError{Reason: domain.ReasonMalformedTime, Err: err}
	}

	if !domain.OnHalfHourGrid(req.Start) || !domain.OnHalfHourGrid(req.Finish) {
		return domain.NewBookingRejected(domain.ReasonOffGrid)
	}
	if finish.Before(start) {
		return domain.NewBookingRejected(domain.ReasonFinishBeforeStart)
	}
	if start.Add(MaxBookingDuration).Before(finish) {
		return domain.NewBookingRejected(domain.ReasonTooLong)
	}
	if !v.hours.Contains(start) || !v.hours.Contains(finish) {
		return domain.NewBookingRejected(domain.ReasonOutsideWorkingHours)
	}
	return checkCollisions(start, finish, existing)
}

// checkCollisions rejects a slot whose start or finish falls strictly inside an
// existing booking. Touching bookings are allowed. A slot that strictly contains an
// existing booking is not detected.
func checkCollisions(start, finish domain.TimeOfDay, existing []*domain.Event) error {
	for _, e := range existing {
		bookedStart, err := domain.ParseTimeOfDay(e.Start)
		if err != nil {
			return fmt.Errorf("stored event %s: %w", e.ID, err)
		}
		bookedFinish, err := domain.ParseTimeOfDay(e.Finish)
		if err != nil {
			return fmt.Errorf("stored event %s: %w", e.ID, err)
		}
		if start.After(bookedStart) && start.Before(bookedFinish) {
			return domain.NewBookingRejected(domain.ReasonStartCollision)
		}
		if finish.After(bookedStart) && finish.Before(bookedFinish) {
			return domain.NewBookingRejected(domain.ReasonFinishCollision)
		}
	}
	return nil
}
