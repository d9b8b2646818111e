package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-routine/routine-api/internal/service"
	"github.com/campus-routine/routine-api/pkg/response"
)

type exportService interface {
	WeeklyRoutinePDF(ctx context.Context, filter service.RoutineExportFilter) ([]byte, string, error)
	BookingsCSV(ctx context.Context, date string) ([]byte, string, error)
	BookingsPDF(ctx context.Context, date string) ([]byte, string, error)
}

// ExportHandler serves the routine PDF and bookings CSV downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Routine godoc
// @Summary Download the published routine as a weekly PDF
// @Tags Export
// @Produce application/pdf
// @Param batch query string false "Batch/section filter"
// @Param initial query string false "Teacher initial filter"
// @Success 200 {file} binary
// @Router /export/routine [get]
func (h *ExportHandler) Routine(c *gin.Context) {
	buf, fileName, err := h.service.WeeklyRoutinePDF(c.Request.Context(), service.RoutineExportFilter{
		Batch:   c.Query("batch"),
		Initial: c.Query("initial"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", buf)
}

// Bookings godoc
// @Summary Download bookings as CSV or PDF
// @Tags Export
// @Produce text/csv
// @Param date query string false "YYYY-MM-DD"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} binary
// @Router /export/bookings [get]
func (h *ExportHandler) Bookings(c *gin.Context) {
	date := c.Query("date")

	if c.Query("format") == "pdf" {
		buf, fileName, err := h.service.BookingsPDF(c.Request.Context(), date)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
		c.Data(http.StatusOK, "application/pdf", buf)
		return
	}

	buf, fileName, err := h.service.BookingsCSV(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/csv", buf)
}
