package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"roombooking/internal/clock"
	"roombooking/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	validator      *BookingValidator
	emailService   domain.EmailService
	notifyEmail    string
	clock          clock.Clock
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewEventService returns the booking service. emailService may be nil, and no
// confirmation is sent when notifyEmail is empty.
func NewEventService(eventRepo domain.EventRepository,
	validator *BookingValidator,
	emailService domain.EmailService,
	notifyEmail string,
	clk clock.Clock,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		validator:      validator,
		emailService:   emailService,
		notifyEmail:    notifyEmail,
		clock:          clk,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(req.Users) == "" {
		return nil, fmt.Errorf("%w: users is required", domain.ErrInvalidInput)
	}
	if req.EventDate.IsZero() {
		return nil, fmt.Errorf("%w: eventDate is required", domain.ErrInvalidInput)
	}

	var event *domain.Event
	book := func(ctx context.Context) error {
		existing, err := s.eventRepo.FindByDate(ctx, req.EventDate)
		if err != nil {
			return fmt.Errorf("find events by date: %w", err)
		}
		if err := s.validator.Validate(req, existing); err != nil {
			return err
		}
		e := req.ToEvent()
		if err := s.eventRepo.Save(ctx, e); err != nil {
			return fmt.Errorf("save event: %w", err)
		}
		event = e
		return nil
	}

	var err error
	if locker, ok := s.eventRepo.(domain.DateLocker); ok {
		err = locker.WithDateLock(ctx, req.EventDate, book)
	} else {
		err = book(ctx)
	}
	if err != nil {
		if reason, ok := domain.RejectReasonOf(err); ok {
			s.logger.InfoContext(ctx, "booking rejected",
				"event_date", req.EventDate.String(),
				"start", req.Start,
				"finish", req.Finish,
				"reason", string(reason),
			)
			return nil, err
		}
		s.logger.ErrorContext(ctx, "create event failed", "event_date", req.EventDate.String(), "err", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "event created",
		"id", event.ID,
		"event_date", event.EventDate.String(),
		"start", event.Start,
		"finish", event.Finish,
	)
	s.sendConfirmation(ctx, event)
	return event, nil
}

// sendConfirmation is best effort: the booking is already stored.
func (s *eventService) sendConfirmation(ctx context.Context, event *domain.Event) {
	if s.emailService == nil || s.notifyEmail == "" {
		return
	}
	data := domain.NewBookingConfirmationEmailData(s.notifyEmail, event)
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "booking confirmation not sent", "id", event.ID, "err", err)
	}
}

func (s *eventService) GetEventsByDate(ctx context.Context, date domain.Date) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find events by date: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventsForWeek(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	from, to := WeekRange(domain.DateOf(s.clock.Now()))
	events, err := s.eventRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("find events by date range: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

// WeekRange returns the inclusive booking week containing today: from the most
// recent week start day on or before today through WeekLength days later.
func WeekRange(today domain.Date) (from, to domain.Date) {
	offset := (int(today.Weekday()) - int(domain.WeekStartDay) + 7) % 7
	from = today.AddDays(-offset)
	return from, from.AddDays(domain.WeekLength)
}
