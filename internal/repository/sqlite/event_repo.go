package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"roombooking/internal/domain"
)

type eventRepository struct {
	DB    *sql.DB
	locks *dateLocks
}

// NewEventRepository returns an SQLite event store for a single process. The
// returned value also implements domain.DateLocker with in-process locks.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB:    db,
		locks: newDateLocks(),
	}
}

func (r *eventRepository) Save(ctx context.Context, e *domain.Event) error {
	id := uuid.NewString()
	query := `INSERT INTO events (id, users, event_date, start_time, finish_time) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.DB.ExecContext(ctx, query, id, e.Users, e.EventDate.String(), e.Start, e.Finish); err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (r *eventRepository) FindByDate(ctx context.Context, date domain.Date) ([]*domain.Event, error) {
	query := `
		SELECT id, users, event_date, start_time, finish_time
		FROM events
		WHERE event_date = ?
		ORDER BY start_time
	`
	return r.list(ctx, query, date.String())
}

// FindByDateRange relies on DateLayout sorting lexically in date order.
func (r *eventRepository) FindByDateRange(ctx context.Context, from, to domain.Date) ([]*domain.Event, error) {
	query := `
		SELECT id, users, event_date, start_time, finish_time
		FROM events
		WHERE event_date >= ? AND event_date <= ?
		ORDER BY event_date, start_time
	`
	return r.list(ctx, query, from.String(), to.String())
}

func (r *eventRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var eventDate string
		if err := rows.Scan(&e.ID, &e.Users, &eventDate, &e.Start, &e.Finish); err != nil {
			return nil, err
		}
		if e.EventDate, err = domain.ParseDate(eventDate); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) WithDateLock(ctx context.Context, date domain.Date, fn func(ctx context.Context) error) error {
	unlock, err := r.locks.lock(ctx, date)
	if err != nil {
		return err
	}
	defer unlock()
	return fn(ctx)
}

// dateLocks hands out one lock per date. A lock is a buffered channel so waiting
// can be abandoned when the context ends.
type dateLocks struct {
	mu    sync.Mutex
	locks map[domain.Date]*dateLock
}

type dateLock struct {
	ch      chan struct{}
	holders int
}

func newDateLocks() *dateLocks {
	return &dateLocks{locks: make(map[domain.Date]*dateLock)}
}

func (d *dateLocks) lock(ctx context.Context, date domain.Date) (func(), error) {
	d.mu.Lock()
	l, ok := d.locks[date]
	if !ok {
		l = &dateLock{ch: make(chan struct{}, 1)}
		d.locks[date] = l
	}
	l.holders++
	d.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			d.release(date, l)
		}, nil
	case <-ctx.Done():
		d.release(date, l)
		return nil, ctx.Err()
	}
}

// release drops the entry once nobody holds or waits for it.
func (d *dateLocks) release(date domain.Date, l *dateLock) {
	d.mu.Lock()
	defer d.mu.Unlock()
	l.holders--
	if l.holders == 0 {
		delete(d.locks, date)
	}
}
