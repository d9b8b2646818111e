package models

import "time"

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

const (
	BookingRequested BookingStatus = "requested"
	BookingApproved  BookingStatus = "approved"
	BookingDeclined  BookingStatus = "declined"
	// BookingCancelled is a reserved terminal value; no portal flow
	// currently initiates it.
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingRequested, BookingApproved, BookingDeclined, BookingCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transition.
func (s BookingStatus) Terminal() bool {
	return s == BookingApproved || s == BookingDeclined || s == BookingCancelled
}

// UserType discriminates who submitted a booking request.
type UserType string

const (
	UserStudent UserType = "student"
	UserTeacher UserType = "teacher"
)

// BookingStudent identifies the student behind a request.
type BookingStudent struct {
	Name                 string `json:"name,omitempty"`
	StudentID            string `json:"studentId,omitempty"`
	BatchSection         string `json:"batchSection,omitempty"`
	Mobile               string `json:"mobile,omitempty"`
	Email                string `json:"email,omitempty"`
	Course               string `json:"course,omitempty"`
	CourseTeacherInitial string `json:"courseTeacherInitial,omitempty"`
}

// BookingTeacher identifies the teacher behind a request.
type BookingTeacher struct {
	Name         string `json:"name,omitempty"`
	TeacherID    string `json:"teacherId,omitempty"`
	Initial      string `json:"initial,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`
	BatchSection string `json:"batchSection,omitempty"`
	Course       string `json:"course,omitempty"`
}

// Booking is a room reservation request.
type Booking struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Day       string          `json:"day"`
	Slot      string          `json:"slot"`
	Room      string          `json:"room"`
	Status    BookingStatus   `json:"status"`
	UserType  UserType        `json:"userType"`
	Student   *BookingStudent `json:"student,omitempty"`
	Teacher   *BookingTeacher `json:"teacher,omitempty"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// PublicBookingStudent is the student fields safe for the public
// availability view.
type PublicBookingStudent struct {
	BatchSection         string `json:"batchSection,omitempty"`
	Course               string `json:"course,omitempty"`
	CourseTeacherInitial string `json:"courseTeacherInitial,omitempty"`
}

// PublicBookingTeacher is the teacher fields safe for the public
// availability view.
type PublicBookingTeacher struct {
	Initial      string `json:"initial,omitempty"`
	BatchSection string `json:"batchSection,omitempty"`
	Course       string `json:"course,omitempty"`
}

// PublicBooking is the condensed projection served without authentication.
// Contact details (name, id, mobile, email) must never appear here.
type PublicBooking struct {
	Room     string                `json:"room"`
	Slot     string                `json:"slot"`
	Status   BookingStatus         `json:"status"`
	UserType UserType              `json:"userType"`
	Student  *PublicBookingStudent `json:"student,omitempty"`
	Teacher  *PublicBookingTeacher `json:"teacher,omitempty"`
}

// Public reduces a booking to the condensed projection.
func (b Booking) Public() PublicBooking {
	pub := PublicBooking{
		Room:     b.Room,
		Slot:     b.Slot,
		Status:   b.Status,
		UserType: b.UserType,
	}
	if b.Student != nil {
		pub.Student = &PublicBookingStudent{
			BatchSection:         b.Student.BatchSection,
			Course:               b.Student.Course,
			CourseTeacherInitial: b.Student.CourseTeacherInitial,
		}
	}
	if b.Teacher != nil {
		pub.Teacher = &PublicBookingTeacher{
			Initial:      b.Teacher.Initial,
			BatchSection: b.Teacher.BatchSection,
			Course:       b.Teacher.Course,
		}
	}
	return pub
}

// SortKey is the instant used for newest-first ordering: createdAt when
// stamped, otherwise the booking date at midnight.
func (b Booking) SortKey() time.Time {
	if !b.CreatedAt.IsZero() {
		return b.CreatedAt
	}
	if t, err := time.Parse("2006-01-02", b.Date); err == nil {
		return t
	}
	return time.Time{}
}
