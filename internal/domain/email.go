package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmationEmailData holds data for the booking confirmation email.
type BookingConfirmationEmailData struct {
	Email     string
	EventID   string
	Users     string
	EventDate string
	Start     string
	Finish    string
}

// NewBookingConfirmationEmailData fills the confirmation data from a saved event.
func NewBookingConfirmationEmailData(to string, e *Event) *BookingConfirmationEmailData {
	return &BookingConfirmationEmailData{
		Email:     to,
		EventID:   e.ID,
		Users:     e.Users,
		EventDate: e.EventDate.String(),
		Start:     e.Start,
		Finish:    e.Finish,
	}
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, data *BookingConfirmationEmailData) error
}
