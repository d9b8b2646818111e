package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-routine/routine-api/internal/models"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func bookingMockRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_date", "day", "slot", "room", "status", "user_type",
		"student", "teacher", "comment", "created_at", "updated_at",
	})
}

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db, nil)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "2024-06-13", "Thursday", "08:30-10:00", "KT-501",
			"requested", "student", sqlmock.AnyArg(), nil, "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	b := &models.Booking{
		Date:     "2024-06-13",
		Day:      "Thursday",
		Slot:     "08:30-10:00",
		Room:     "KT-501",
		Status:   models.BookingRequested,
		UserType: models.UserStudent,
		Student:  &models.BookingStudent{Name: "A Student", BatchSection: "64-A"},
	}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.NotEmpty(t, b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db, nil)

	now := time.Now().UTC()
	rows := bookingMockRows().AddRow(
		"b1", "2024-06-13", "Thursday", "08:30-10:00", "KT-501", "requested", "teacher",
		nil, []byte(`{"name":"Bob Clark","initial":"BC"}`), "projector needed", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, booking_date, day, slot, room, status, user_type, student, teacher, comment, created_at, updated_at FROM bookings WHERE id = $1")).
		WithArgs("b1").
		WillReturnRows(rows)

	b, err := repo.FindByID(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingRequested, b.Status)
	assert.Nil(t, b.Student)
	require.NotNil(t, b.Teacher)
	assert.Equal(t, "BC", b.Teacher.Initial)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db, nil)

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByDate(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db, nil)

	now := time.Now().UTC()
	rows := bookingMockRows().
		AddRow("b2", "2024-06-13", "Thursday", "10:00-11:30", "KT-502", "approved", "student",
			[]byte(`{"batchSection":"64-A","course":"CSE101"}`), nil, "", now, now).
		AddRow("b1", "2024-06-13", "Thursday", "08:30-10:00", "KT-501", "requested", "student",
			[]byte(`{"batchSection":"64-B"}`), nil, "", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT .+ FROM bookings WHERE booking_date").
		WithArgs("2024-06-13").
		WillReturnRows(rows)

	list, err := repo.ListByDate(context.Background(), "2024-06-13")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b2", list[0].ID)
	require.NotNil(t, list[0].Student)
	assert.Equal(t, "CSE101", list[0].Student.Course)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestBookingRepositoryObservesQueryTimings(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewBookingRepository(db, observer)

	mock.ExpectQuery("SELECT .+ FROM bookings ORDER BY created_at DESC").
		WillReturnRows(bookingMockRows())
	_, err := repo.ListAll(context.Background())
	require.NoError(t, err)

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("approved", sqlmock.AnyArg(), "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), "b1", models.BookingApproved))

	assert.Equal(t, []string{"list_bookings", "update_booking_status"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()
	repo := NewBookingRepository(db, nil)

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("approved", sqlmock.AnyArg(), "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), "b1", models.BookingApproved))

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("approved", sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.Error(t, repo.UpdateStatus(context.Background(), "missing", models.BookingApproved))

	assert.NoError(t, mock.ExpectationsWereMet())
}
