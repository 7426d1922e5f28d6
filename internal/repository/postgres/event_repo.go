package postgres

import (
	"context"
	"database/sql"
	"time"

	"roombooking/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a PostgreSQL event store. The returned value also
// implements domain.DateLocker.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// conn returns the transaction carried by ctx, if any, or the pool.
func (r *eventRepository) conn(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return r.DB
}

func (r *eventRepository) Save(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (users, event_date, start_time, finish_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.conn(ctx).QueryRowContext(ctx, query, e.Users, e.EventDate.Time(), e.Start, e.Finish).Scan(&e.ID)
}

func (r *eventRepository) FindByDate(ctx context.Context, date domain.Date) ([]*domain.Event, error) {
	query := `
		SELECT id, users, event_date, start_time, finish_time
		FROM events
		WHERE event_date = $1
		ORDER BY start_time
	`
	return r.list(ctx, query, date.Time())
}

func (r *eventRepository) FindByDateRange(ctx context.Context, from, to domain.Date) ([]*domain.Event, error) {
	query := `
		SELECT id, users, event_date, start_time, finish_time
		FROM events
		WHERE event_date >= $1 AND event_date <= $2
		ORDER BY event_date, start_time
	`
	return r.list(ctx, query, from.Time(), to.Time())
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var eventDate time.Time
		if err := rows.Scan(&e.ID, &e.Users, &eventDate, &e.Start, &e.Finish); err != nil {
			return nil, err
		}
		e.EventDate = domain.DateOf(eventDate)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
