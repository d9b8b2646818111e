package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campus-routine/routine-api/internal/dateutil"
	"github.com/campus-routine/routine-api/internal/models"
	"github.com/campus-routine/routine-api/internal/routine"
	appErrors "github.com/campus-routine/routine-api/pkg/errors"
)

type bookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}

// CreateBookingRequest is the booking creation payload.
type CreateBookingRequest struct {
	Date     string                 `json:"date" validate:"required"`
	Day      string                 `json:"day"`
	Slot     string                 `json:"slot" validate:"required"`
	Room     string                 `json:"room" validate:"required"`
	UserType models.UserType        `json:"userType" validate:"required"`
	Student  *models.BookingStudent `json:"student"`
	Teacher  *models.BookingTeacher `json:"teacher"`
	Comment  string                 `json:"comment"`
}

// UpdateBookingStatusRequest is the status transition payload.
type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" validate:"required"`
}

// BookingService orchestrates room booking requests.
type BookingService struct {
	repo      bookingRepository
	calendar  *dateutil.Calendar
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookingService constructs a BookingService.
func NewBookingService(repo bookingRepository, calendar *dateutil.Calendar, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{repo: repo, calendar: calendar, validator: validate, logger: logger}
}

// Create validates and stores a new booking request. Status always starts
// at "requested"; overlapping requests for the same room and slot are
// allowed and left to the admin to resolve.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date, slot, room and userType are required")
	}
	if _, err := s.calendar.ParseISO(req.Date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if routine.SlotIndex(req.Slot) < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown time slot")
	}

	switch req.UserType {
	case models.UserStudent:
		if req.Student == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "student details are required for student bookings")
		}
	case models.UserTeacher:
		if req.Teacher == nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "teacher details are required for teacher bookings")
		}
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "userType must be student or teacher")
	}

	day := req.Day
	if day == "" {
		derived, err := s.calendar.WeekdayOf(req.Date)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
		}
		day = derived
	}

	booking := &models.Booking{
		Date:     req.Date,
		Day:      day,
		Slot:     req.Slot,
		Room:     req.Room,
		Status:   models.BookingRequested,
		UserType: req.UserType,
		Student:  req.Student,
		Teacher:  req.Teacher,
		Comment:  req.Comment,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "create booking")
	}

	s.logger.Info("booking created",
		zap.String("id", booking.ID),
		zap.String("date", booking.Date),
		zap.String("slot", booking.Slot),
		zap.String("room", booking.Room))
	return booking, nil
}

// ListByDate returns the full bookings of a date for the admin view.
func (s *BookingService) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	if _, err := s.calendar.ParseISO(date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	list, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list bookings")
	}
	return list, nil
}

// ListPublicByDate returns the condensed availability view of a date. Only
// requested and approved bookings occupy a slot; declined and cancelled ones
// are invisible to the public.
func (s *BookingService) ListPublicByDate(ctx context.Context, date string) ([]models.PublicBooking, error) {
	list, err := s.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	out := []models.PublicBooking{}
	for _, b := range list {
		if b.Status != models.BookingRequested && b.Status != models.BookingApproved {
			continue
		}
		out = append(out, b.Public())
	}
	return out, nil
}

// ListAll returns every booking, newest first. Bookings missing a createdAt
// stamp fall back to their booking date for ordering.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	list, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list bookings")
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SortKey().After(list[j].SortKey())
	})
	return list, nil
}

// UpdateStatus transitions a booking out of "requested". Re-applying the
// status a booking already holds is a no-op success; any other transition
// from a terminal state conflicts.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, req UpdateBookingStatusRequest) (*models.Booking, error) {
	if req.Status == models.BookingRequested || !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be approved, declined or cancelled")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load booking")
	}

	if booking.Status.Terminal() {
		if booking.Status == req.Status {
			return booking, nil
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, "booking already "+string(booking.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "update booking status")
	}

	booking.Status = req.Status
	s.logger.Info("booking status updated", zap.String("id", id), zap.String("status", string(req.Status)))
	return booking, nil
}
