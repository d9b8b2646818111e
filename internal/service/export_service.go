package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/routine"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
	"github.com/campus-routine/routine-api/pkg/export"
)

type routineSource interface {
	PublishedRoutine(ctx context.Context) (models.RoutinePayload, error)
}

type bookingSource interface {
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
}

// RoutineExportFilter narrows the weekly PDF to one batch or one teacher.
// Exactly one of the fields should be set; with neither the full grid is
// rendered.
type RoutineExportFilter struct {
	Batch   string
	Initial string
}

// ExportService renders the published routine as a weekly PDF and the
// booking ledger as CSV.
type ExportService struct {
	routines routineSource
	bookings bookingSource
	pdf      *export.PDFExporter
	csv      *export.CSVExporter
	logger   *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(routines routineSource, bookings bookingSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		routines: routines,
		bookings: bookings,
		pdf:      export.NewPDFExporter(),
		csv:      export.NewCSVExporter(),
		logger:   logger,
	}
}

// WeeklyRoutinePDF renders the published routine as a day-by-slot grid.
func (s *ExportService) WeeklyRoutinePDF(ctx context.Context, filter RoutineExportFilter) ([]byte, string, error) {
	payload, err := s.routines.PublishedRoutine(ctx)
	if err != nil {
		return nil, "", err
	}

	title := "Class Routine"
	fileName := "routine.pdf"
	switch {
	case filter.Batch != "":
		title = "Class Routine - " + filter.Batch
		fileName = "routine-" + sanitizeFileName(filter.Batch) + ".pdf"
	case filter.Initial != "":
		initial := routine.InitialOf(filter.Initial)
		title = "Class Routine - " + initial
		fileName = "routine-" + sanitizeFileName(initial) + ".pdf"
	}

	cells := map[string]map[string][]string{}
	for _, row := range payload.Data {
		if filter.Batch != "" && !strings.EqualFold(strings.TrimSpace(row.Batch), strings.TrimSpace(filter.Batch)) {
			continue
		}
		if filter.Initial != "" && routine.InitialOf(row.Teacher) != routine.InitialOf(filter.Initial) {
			continue
		}
		if cells[row.Day] == nil {
			cells[row.Day] = map[string][]string{}
		}
		entry := row.Course
		if row.Room != "" {
			entry += " @" + row.Room
		}
		if row.Batch != "" && filter.Batch == "" {
			entry += " (" + row.Batch + ")"
		}
		if ini := routine.InitialOf(row.Teacher); ini != "" && filter.Initial == "" {
			entry += " " + ini
		}
		cells[row.Day][row.Slot] = append(cells[row.Day][row.Slot], strings.TrimSpace(entry))
	}

	buf, err := s.pdf.RenderWeekly(routine.PortalDays, routine.Slots, cells, title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render routine pdf")
	}
	return buf, fileName, nil
}

// BookingsCSV renders bookings (of one date, or all when date is empty) as
// a CSV download.
func (s *ExportService) BookingsCSV(ctx context.Context, date string) ([]byte, string, error) {
	list, baseName, err := s.bookingsForExport(ctx, date)
	if err != nil {
		return nil, "", err
	}

	buf, err := s.csv.Render(bookingsDataset(list))
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render bookings csv")
	}
	return buf, baseName + ".csv", nil
}

// BookingsPDF renders the same ledger as a tabular PDF.
func (s *ExportService) BookingsPDF(ctx context.Context, date string) ([]byte, string, error) {
	list, baseName, err := s.bookingsForExport(ctx, date)
	if err != nil {
		return nil, "", err
	}

	title := "Room Bookings"
	if date != "" {
		title += " - " + date
	}
	buf, err := s.pdf.Render(bookingsDataset(list), title)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render bookings pdf")
	}
	return buf, baseName + ".pdf", nil
}

func (s *ExportService) bookingsForExport(ctx context.Context, date string) ([]models.Booking, string, error) {
	if date != "" {
		list, err := s.bookings.ListByDate(ctx, date)
		return list, "bookings-" + date, err
	}
	list, err := s.bookings.ListAll(ctx)
	return list, "bookings", err
}

func bookingsDataset(list []models.Booking) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Date", "Day", "Slot", "Room", "Status", "User Type", "Name", "ID/Initial", "Batch/Section", "Course", "Mobile", "Email", "Comment"},
	}
	for _, b := range list {
		row := map[string]string{
			"Date":      b.Date,
			"Day":       b.Day,
			"Slot":      b.Slot,
			"Room":      b.Room,
			"Status":    string(b.Status),
			"User Type": string(b.UserType),
			"Comment":   b.Comment,
		}
		if b.Student != nil {
			row["Name"] = b.Student.Name
			row["ID/Initial"] = b.Student.StudentID
			row["Batch/Section"] = b.Student.BatchSection
			row["Course"] = b.Student.Course
			row["Mobile"] = b.Student.Mobile
			row["Email"] = b.Student.Email
		}
		if b.Teacher != nil {
			row["Name"] = b.Teacher.Name
			row["ID/Initial"] = b.Teacher.Initial
			row["Batch/Section"] = b.Teacher.BatchSection
			row["Course"] = b.Teacher.Course
			row["Mobile"] = b.Teacher.Mobile
			row["Email"] = b.Teacher.Email
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}

func sanitizeFileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, s)
}
