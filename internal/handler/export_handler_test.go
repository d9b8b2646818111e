package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-routine/routine-api/internal/service"
)

type fakeExportService struct{}

func (f *fakeExportService) WeeklyRoutinePDF(_ context.Context, filter service.RoutineExportFilter) ([]byte, string, error) {
	name := "routine.pdf"
	if filter.Batch != "" {
		name = "routine-" + filter.Batch + ".pdf"
	}
	return []byte("%PDF-routine"), name, nil
}

func (f *fakeExportService) BookingsCSV(_ context.Context, date string) ([]byte, string, error) {
	if date != "" {
		return []byte("csv"), "bookings-" + date + ".csv", nil
	}
	return []byte("csv"), "bookings.csv", nil
}

func (f *fakeExportService) BookingsPDF(_ context.Context, date string) ([]byte, string, error) {
	if date != "" {
		return []byte("%PDF-bookings"), "bookings-" + date + ".pdf", nil
	}
	return []byte("%PDF-bookings"), "bookings.pdf", nil
}

func TestExportHandlerRoutine(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportService{})

	req := httptest.NewRequest(http.MethodGet, "/api/export/routine?batch=64-A", nil)
	w := performRequest(t, h.Routine, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "routine-64-A.pdf")
}

func TestExportHandlerBookings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewExportHandler(&fakeExportService{})

	t.Run("csv by default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/bookings?date=2024-06-13", nil)
		w := performRequest(t, h.Bookings, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings-2024-06-13.csv")
	})

	t.Run("pdf on request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/export/bookings?format=pdf", nil)
		w := performRequest(t, h.Bookings, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings.pdf")
		assert.Contains(t, w.Body.String(), "%PDF")
	})
}
