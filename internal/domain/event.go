package domain

import (
	"context"
	"time"
)

// Event represents a booked time slot on a given date.
// swagger:model Event
type Event struct {
	ID        string `json:"id"`
	Users     string `json:"users"`
	EventDate Date   `json:"eventDate" swaggertype:"string" example:"2026-10-19"`
	Start     string `json:"start" example:"09:00"`
	Finish    string `json:"finish" example:"10:30"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on save.
func NewEvent(users string, eventDate Date, start, finish string) *Event {
	return &Event{
		Users:     users,
		EventDate: eventDate,
		Start:     start,
		Finish:    finish,
	}
}

// CreateEventRequest is a proposed booking as submitted by a caller. It is not
// validated; ToEvent should only be called once the booking has been accepted.
type CreateEventRequest struct {
	Users     string
	EventDate Date
	Start     string
	Finish    string
}

// ToEvent converts an accepted request into an Event ready to be saved.
func (r CreateEventRequest) ToEvent() *Event {
	return NewEvent(r.Users, r.EventDate, r.Start, r.Finish)
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Save(ctx context.Context, event *Event) error
	FindByDate(ctx context.Context, date Date) ([]*Event, error)
	// FindByDateRange returns events whose date lies in [from, to], both inclusive.
	FindByDateRange(ctx context.Context, from, to Date) ([]*Event, error)
}

// DateLocker is implemented by repositories that can serialise work per event date.
// fn runs while no other WithDateLock call for the same date is in progress; repository
// calls made with the context passed to fn take part in the same unit of work.
type DateLocker interface {
	WithDateLock(ctx context.Context, date Date, fn func(ctx context.Context) error) error
}

// EventService defines the business logic for booking and listing events.
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEventsByDate(ctx context.Context, date Date) ([]*Event, error)
	GetEventsForWeek(ctx context.Context) ([]*Event, error)
}

// WeekStartDay is the weekday the booking week starts on.
const WeekStartDay = time.Monday

// WeekLength is the number of days after the week start covered by the week query.
// The window is Monday through Saturday inclusive.
const WeekLength = 5
