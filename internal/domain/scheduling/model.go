package scheduling

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("Appointment not found")
	ErrForbidden         = errors.New("Unauthorized")
	ErrInvalidStatus     = errors.New("Invalid status")
	ErrInvalidTransition = errors.New("Cannot cancel confirmed appointments")
	ErrConfirmedDelete   = errors.New("Cannot delete confirmed appointments")
	ErrLoginRequired     = errors.New("You must be logged in to book an appointment")
	ErrDoctorNotFound    = errors.New("Selected doctor not found")
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

var validAppointmentStatuses = map[string]bool{
	StatusPending:   true,
	StatusConfirmed: true,
	StatusCancelled: true,
	StatusCompleted: true,
}

// Appointment links a patient to a doctor account. DoctorID is the doctor's
// user id, not the directory listing id.
type Appointment struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"appointment_date"`
	Time      string    `json:"appointment_time"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// AppointmentView is an appointment joined with the other party. Doctors see
// patient details; patients see doctor details.
type AppointmentView struct {
	Appointment

	Patient      string `json:"patient,omitempty"`
	PatientEmail string `json:"patient_email,omitempty"`

	Doctor    string  `json:"doctor,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	City      *string `json:"city,omitempty"`
	Country   *string `json:"country,omitempty"`
	Location  string  `json:"location,omitempty"`
}

type Consultation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ConsultationRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,notblank,max=40"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Type     string `json:"type" validate:"required,notblank,max=100"`
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Message  string `json:"message" validate:"max=2000"`
}

type AppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
	Date     string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"appointment_time" validate:"required,datetime=15:04"`
	Notes    string `json:"notes" validate:"max=2000"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// Booking is the result of a consultation request.
type Booking struct {
	ConsultationID uuid.UUID
	AppointmentID  uuid.UUID
}

func consultationNotes(kind, message string) string {
	return "Consultation Type: " + kind + ". " + message
}

func formatLocation(city, country *string) string {
	var c, k string
	if city != nil {
		c = *city
	}
	if country != nil {
		k = *country
	}
	if c == "" && k == "" {
		return "Location TBD"
	}
	return c + ", " + k
}
