package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"roombooking/internal/delivery/http/helpers"
	"roombooking/internal/domain"
)

// CreateEventRequest is the request body for PUT /event.
type CreateEventRequest struct {
	Users     string `json:"users" validate:"required,max=255" example:"Geza, Olga"`
	EventDate string `json:"eventDate" validate:"required,datetime=2006-01-02" example:"2026-10-19"`
	Start     string `json:"start" validate:"required" example:"09:00"`
	Finish    string `json:"finish" validate:"required" example:"10:30"`
}

// EventSuccessResponse is the success response envelope for PUT /event (201).
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for the event listings (200).
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Book a time slot
// @Description Books the room for a time slot on a date. Times are HH:MM on the hour or half-hour, at most 3 hours long, inside working hours and not colliding with an existing booking.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Booking"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the booked event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or booking_rejected"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event [put]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	date, err := domain.ParseDate(req.EventDate)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), domain.CreateEventRequest{
		Users:     req.Users,
		EventDate: date,
		Start:     req.Start,
		Finish:    req.Finish,
	})
	if err != nil {
		var rejected *domain.BookingRejectedError
		switch {
		case errors.As(err, &rejected) && rejected.Reason.IsCollision():
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, rejected.Error())
		case errors.As(err, &rejected):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBookingRejected, rejected.Error())
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		}
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventsByDate godoc
// @Summary List events on a date
// @Description Returns every booking on the given date.
// @Tags events
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event/{date} [get]
func (c *EventController) GetEventsByDate(w http.ResponseWriter, r *http.Request) {
	date, err := domain.ParseDate(r.PathValue("date"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	events, err := c.Service.GetEventsByDate(r.Context(), date)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventsForWeek godoc
// @Summary List events for the current week
// @Description Returns every booking from Monday through Saturday of the current week.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event/for-week [get]
func (c *EventController) GetEventsForWeek(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.GetEventsForWeek(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
