package services

import (
	"context"
	"errors"
	"testing"

	"roombooking/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	f.to, f.subject, f.html, f.text = to, subject, html, text
	return f.err
}

type fakeRenderer struct {
	lastTemplate string
	err          error
}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	f.lastTemplate = templateName
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

func TestEmailService_SendBookingConfirmation(t *testing.T) {
	data := domain.NewBookingConfirmationEmailData("office@example.com", &domain.Event{
		ID: "ev-1", Users: "Geza", EventDate: domain.MustParseDate("2026-10-19"), Start: "09:00", Finish: "10:00",
	})

	tests := []struct {
		name      string
		data      *domain.BookingConfirmationEmailData
		renderErr error
		mailErr   error
		wantErr   string
	}{
		{name: "success", data: data},
		{name: "nil data", data: nil, wantErr: "nil"},
		{name: "render error", data: data, renderErr: errors.New("bad template"), wantErr: "render"},
		{name: "mailer error", data: data, mailErr: errors.New("ses down"), wantErr: "send"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &fakeMailer{err: tt.mailErr}
			renderer := &fakeRenderer{err: tt.renderErr}
			svc := NewEmailService(mailer, renderer, testLogger)

			err := svc.SendBookingConfirmation(context.Background(), tt.data)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "booking_confirmation", renderer.lastTemplate)
			assert.Equal(t, "office@example.com", mailer.to)
			assert.Equal(t, "subject", mailer.subject)
			assert.Equal(t, "text", mailer.text)
		})
	}
}
