package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-routine/routine-api/internal/models"
)

type fakeRoutineSource struct {
	payload models.RoutinePayload
}

func (f *fakeRoutineSource) PublishedRoutine(context.Context) (models.RoutinePayload, error) {
	return f.payload, nil
}

type fakeBookingSource struct {
	bookings []models.Booking
}

func (f *fakeBookingSource) ListAll(context.Context) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingSource) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func TestExportServiceWeeklyRoutinePDF(t *testing.T) {
	routines := &fakeRoutineSource{payload: models.RoutinePayload{
		Data: []models.ClassRow{
			{Day: "Saturday", Slot: "08:30-10:00", Room: "KT-501", Batch: "64-A", Course: "CSE101", Teacher: "ABC - Alice Brown"},
			{Day: "Sunday", Slot: "10:00-11:30", Room: "KT-502", Batch: "64-B", Course: "CSE102", Teacher: "BC - Bob Clark"},
		},
	}}
	svc := NewExportService(routines, &fakeBookingSource{}, nil)

	t.Run("full grid", func(t *testing.T) {
		buf, name, err := svc.WeeklyRoutinePDF(context.Background(), RoutineExportFilter{})
		require.NoError(t, err)
		assert.Equal(t, "routine.pdf", name)
		assert.True(t, bytes.HasPrefix(buf, []byte("%PDF")))
	})

	t.Run("batch filter names the file", func(t *testing.T) {
		buf, name, err := svc.WeeklyRoutinePDF(context.Background(), RoutineExportFilter{Batch: "64-A"})
		require.NoError(t, err)
		assert.Equal(t, "routine-64-A.pdf", name)
		assert.NotEmpty(t, buf)
	})

	t.Run("teacher filter normalizes the initial", func(t *testing.T) {
		_, name, err := svc.WeeklyRoutinePDF(context.Background(), RoutineExportFilter{Initial: "abc - Alice Brown"})
		require.NoError(t, err)
		assert.Equal(t, "routine-ABC.pdf", name)
	})
}

func TestExportServiceBookingsCSV(t *testing.T) {
	created := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	bookings := &fakeBookingSource{bookings: []models.Booking{
		{
			ID: "b1", Date: "2024-06-13", Day: "Thursday", Slot: "08:30-10:00", Room: "KT-501",
			Status: models.BookingRequested, UserType: models.UserStudent,
			Student:   &models.BookingStudent{Name: "A Student", StudentID: "101", BatchSection: "64-A", Course: "CSE101"},
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "b2", Date: "2024-06-14", Day: "Friday", Slot: "10:00-11:30", Room: "KT-502",
			Status: models.BookingApproved, UserType: models.UserTeacher,
			Teacher:   &models.BookingTeacher{Name: "Bob Clark", Initial: "BC"},
			CreatedAt: created, UpdatedAt: created,
		},
	}}
	svc := NewExportService(&fakeRoutineSource{}, bookings, nil)

	buf, name, err := svc.BookingsCSV(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "bookings.csv", name)
	body := string(buf)
	assert.Contains(t, body, "A Student")
	assert.Contains(t, body, "Bob Clark")
	assert.Contains(t, body, "requested")

	buf, name, err = svc.BookingsCSV(context.Background(), "2024-06-13")
	require.NoError(t, err)
	assert.Equal(t, "bookings-2024-06-13.csv", name)
	body = string(buf)
	assert.Contains(t, body, "KT-501")
	assert.NotContains(t, body, "KT-502")
}

func TestExportServiceBookingsPDF(t *testing.T) {
	created := time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC)
	bookings := &fakeBookingSource{bookings: []models.Booking{
		{
			ID: "b1", Date: "2024-06-13", Day: "Thursday", Slot: "08:30-10:00", Room: "KT-501",
			Status: models.BookingRequested, UserType: models.UserStudent,
			Student:   &models.BookingStudent{Name: "A Student", BatchSection: "64-A"},
			CreatedAt: created, UpdatedAt: created,
		},
	}}
	svc := NewExportService(&fakeRoutineSource{}, bookings, nil)

	buf, name, err := svc.BookingsPDF(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "bookings.pdf", name)
	assert.True(t, bytes.HasPrefix(buf, []byte("%PDF")))

	buf, name, err = svc.BookingsPDF(context.Background(), "2024-06-13")
	require.NoError(t, err)
	assert.Equal(t, "bookings-2024-06-13.pdf", name)
	assert.NotEmpty(t, buf)
}
