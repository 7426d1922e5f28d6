package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"roombooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var eventColumns = []string{"id", "users", "event_date", "start_time", "finish_time"}

func TestEventRepository_Save(t *testing.T) {
	ctx := context.Background()
	date := domain.MustParseDate("2026-10-19")

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr bool
	}{
		{
			name:  "success",
			event: domain.NewEvent("Geza", date, "09:00", "10:00"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(users, event_date, start_time, finish_time\)`).
					WithArgs("Geza", date.Time(), "09:00", "10:00").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("0b5e4a5c-1f7e-4c55-9d0c-3b8b2a6f4b11"))
			},
			wantID:  "0b5e4a5c-1f7e-4c55-9d0c-3b8b2a6f4b11",
			wantErr: false,
		},
		{
			name:  "db error",
			event: domain.NewEvent("Geza", date, "09:00", "10:00"),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantID:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Save(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_FindByDate(t *testing.T) {
	ctx := context.Background()
	date := domain.MustParseDate("2026-10-19")
	rowDate := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []*domain.Event
		wantErr bool
	}{
		{
			name: "success multiple",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventColumns).
					AddRow("ev-1", "Geza", rowDate, "09:00", "10:00").
					AddRow("ev-2", "Maja", rowDate, "11:00", "12:30")
				mock.ExpectQuery(`SELECT id, users, event_date, start_time, finish_time FROM events WHERE event_date = \$1`).
					WithArgs(date.Time()).
					WillReturnRows(rows)
			},
			want: []*domain.Event{
				{ID: "ev-1", Users: "Geza", EventDate: date, Start: "09:00", Finish: "10:00"},
				{ID: "ev-2", Users: "Maja", EventDate: date, Start: "11:00", Finish: "12:30"},
			},
		},
		{
			name: "success empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, users, event_date, start_time, finish_time`).
					WithArgs(date.Time()).
					WillReturnRows(sqlmock.NewRows(eventColumns))
			},
			want: []*domain.Event{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, users, event_date, start_time, finish_time`).
					WithArgs(date.Time()).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
		{
			name: "row error",
			mock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(eventColumns).
					AddRow("ev-1", "Geza", rowDate, "09:00", "10:00").
					RowError(0, errors.New("broken row"))
				mock.ExpectQuery(`SELECT id, users, event_date, start_time, finish_time`).
					WithArgs(date.Time()).
					WillReturnRows(rows)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.FindByDate(ctx, date)
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				require.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_FindByDateRange(t *testing.T) {
	ctx := context.Background()
	from := domain.MustParseDate("2026-10-19")
	to := domain.MustParseDate("2026-10-24")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(eventColumns).
		AddRow("ev-1", "Geza", time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), "09:00", "10:00").
		AddRow("ev-2", "Olga", time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC), "15:00", "17:00")
	mock.ExpectQuery(`WHERE event_date >= \$1 AND event_date <= \$2`).
		WithArgs(from.Time(), to.Time()).
		WillReturnRows(rows)

	repo := NewEventRepository(db)
	got, err := repo.FindByDateRange(ctx, from, to)
	require.NoError(t, err)
	require.Equal(t, []*domain.Event{
		{ID: "ev-1", Users: "Geza", EventDate: from, Start: "09:00", Finish: "10:00"},
		{ID: "ev-2", Users: "Olga", EventDate: to, Start: "15:00", Finish: "17:00"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_WithDateLock(t *testing.T) {
	ctx := context.Background()
	date := domain.MustParseDate("2026-10-19")
	errRejected := domain.NewBookingRejected(domain.ReasonStartCollision)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		fn      func(ctx context.Context, repo domain.EventRepository) error
		wantErr error
	}{
		{
			name: "read and write share the transaction",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`SELECT pg_advisory_xact_lock\(hashtext\(\$1\)\)`).
					WithArgs("event_date:2026-10-19").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectQuery(`WHERE event_date = \$1`).
					WithArgs(date.Time()).
					WillReturnRows(sqlmock.NewRows(eventColumns))
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-1"))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, repo domain.EventRepository) error {
				if _, err := repo.FindByDate(ctx, date); err != nil {
					return err
				}
				return repo.Save(ctx, domain.NewEvent("Geza", date, "09:00", "10:00"))
			},
		},
		{
			name: "callback error rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, repo domain.EventRepository) error {
				return errRejected
			},
			wantErr: errRejected,
		},
		{
			name: "lock error rolls back",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, repo domain.EventRepository) error {
				t.Fatal("callback must not run without the lock")
				return nil
			},
			wantErr: sql.ErrConnDone,
		},
		{
			name: "begin error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(sql.ErrConnDone)
			},
			fn: func(ctx context.Context, repo domain.EventRepository) error {
				t.Fatal("callback must not run without a transaction")
				return nil
			},
			wantErr: sql.ErrConnDone,
		},
		{
			name: "nested call reuses the transaction",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs("event_date:2026-10-19").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`pg_advisory_xact_lock`).WithArgs("event_date:2026-10-20").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, repo domain.EventRepository) error {
				return repo.(domain.DateLocker).WithDateLock(ctx, date.AddDays(1), func(ctx context.Context) error {
					return nil
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			locker, ok := repo.(domain.DateLocker)
			require.True(t, ok)

			err = locker.WithDateLock(ctx, date, func(ctx context.Context) error {
				return tt.fn(ctx, repo)
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
