package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campus-routine/routine-api/internal/models"
)

type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// BookingRepository manages persistence for room booking requests.
type BookingRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewBookingRepository constructs a BookingRepository. The observer may be
// nil when query timings are not collected.
func NewBookingRepository(db *sqlx.DB, metrics queryObserver) *BookingRepository {
	return &BookingRepository{db: db, metrics: metrics}
}

func (r *BookingRepository) observe(label string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

const bookingColumns = `id, booking_date, day, slot, room, status, user_type, student, teacher, comment, created_at, updated_at`

// bookingRecord is the row shape: the student/teacher sub-records live in
// JSONB columns and are decoded into the model after scanning.
type bookingRecord struct {
	ID          string    `db:"id"`
	BookingDate string    `db:"booking_date"`
	Day         string    `db:"day"`
	Slot        string    `db:"slot"`
	Room        string    `db:"room"`
	Status      string    `db:"status"`
	UserType    string    `db:"user_type"`
	StudentJSON []byte    `db:"student"`
	TeacherJSON []byte    `db:"teacher"`
	Comment     string    `db:"comment"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (rec bookingRecord) toModel() (models.Booking, error) {
	b := models.Booking{
		ID:        rec.ID,
		Date:      rec.BookingDate,
		Day:       rec.Day,
		Slot:      rec.Slot,
		Room:      rec.Room,
		Status:    models.BookingStatus(rec.Status),
		UserType:  models.UserType(rec.UserType),
		Comment:   rec.Comment,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if len(rec.StudentJSON) > 0 {
		var s models.BookingStudent
		if err := json.Unmarshal(rec.StudentJSON, &s); err != nil {
			return models.Booking{}, fmt.Errorf("decode student for booking %s: %w", rec.ID, err)
		}
		b.Student = &s
	}
	if len(rec.TeacherJSON) > 0 {
		var tc models.BookingTeacher
		if err := json.Unmarshal(rec.TeacherJSON, &tc); err != nil {
			return models.Booking{}, fmt.Errorf("decode teacher for booking %s: %w", rec.ID, err)
		}
		b.Teacher = &tc
	}
	return b, nil
}

func toModels(recs []bookingRecord) ([]models.Booking, error) {
	out := make([]models.Booking, 0, len(recs))
	for _, rec := range recs {
		b, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Create inserts a new booking, assigning its id and timestamps.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	defer r.observe("insert_booking", time.Now())

	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now

	var studentJSON, teacherJSON []byte
	var err error
	if b.Student != nil {
		if studentJSON, err = json.Marshal(b.Student); err != nil {
			return fmt.Errorf("encode student: %w", err)
		}
	}
	if b.Teacher != nil {
		if teacherJSON, err = json.Marshal(b.Teacher); err != nil {
			return fmt.Errorf("encode teacher: %w", err)
		}
	}

	const query = `INSERT INTO bookings (id, booking_date, day, slot, room, status, user_type, student, teacher, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.db.ExecContext(ctx, query,
		b.ID, b.Date, b.Day, b.Slot, b.Room, string(b.Status), string(b.UserType),
		studentJSON, teacherJSON, b.Comment, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// FindByID fetches a booking by id. Returns sql.ErrNoRows when absent.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	defer r.observe("find_booking", time.Now())

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)
	var rec bookingRecord
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		return nil, err
	}
	b, err := rec.toModel()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByDate returns all bookings for a calendar date, newest first.
func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	defer r.observe("list_bookings_by_date", time.Now())

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE booking_date = $1 ORDER BY created_at DESC`, bookingColumns)
	var recs []bookingRecord
	if err := r.db.SelectContext(ctx, &recs, query, date); err != nil {
		return nil, fmt.Errorf("list bookings by date: %w", err)
	}
	return toModels(recs)
}

// ListAll returns every booking, newest first. The service layer re-sorts
// with the booking-date fallback for rows missing a created_at stamp.
func (r *BookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	defer r.observe("list_bookings", time.Now())

	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY created_at DESC`, bookingColumns)
	var recs []bookingRecord
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return toModels(recs)
}

// UpdateStatus rewrites a booking's status and bumps updated_at.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	defer r.observe("update_booking_status", time.Now())

	const query = `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("booking %s not found", id)
	}
	return nil
}
