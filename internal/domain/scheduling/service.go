package scheduling

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mentiq/mentiq/internal/domain/directory"
	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/db"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

// DoctorLookup resolves a doctor account to its directory listing.
// *directory.Service satisfies it.
type DoctorLookup interface {
	DoctorByUserID(ctx context.Context, userID uuid.UUID) (*directory.Doctor, error)
}

type Service struct {
	appointments  AppointmentRepository
	consultations ConsultationRepository
	doctors       DoctorLookup
	tx            db.TxBeginner
}

func NewService(appointments AppointmentRepository, consultations ConsultationRepository, doctors DoctorLookup, tx db.TxBeginner) *Service {
	return &Service{appointments: appointments, consultations: consultations, doctors: doctors, tx: tx}
}

func (s *Service) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.tx == nil {
		return fn(ctx)
	}
	return db.WithTx(ctx, s.tx, fn)
}

func (s *Service) requireDoctor(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrDoctorNotFound
	}
	if _, err := s.doctors.DoctorByUserID(ctx, id); err != nil {
		if errors.Is(err, directory.ErrDoctorNotFound) {
			return uuid.Nil, ErrDoctorNotFound
		}
		return uuid.Nil, err
	}
	return id, nil
}

// BookConsultation records a consultation request and the pending
// appointment it creates. Both rows are written in one transaction.
func (s *Service) BookConsultation(ctx context.Context, req *ConsultationRequest) (*Booking, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	p, ok := auth.PrincipalFromContext(ctx)
	if !ok {
		return nil, ErrLoginRequired
	}
	doctorID, err := s.requireDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	cons := &Consultation{
		UserID:   p.UserID,
		DoctorID: doctorID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Date:     req.Date,
		Time:     req.Time,
		Type:     req.Type,
		Message:  req.Message,
		Status:   StatusPending,
	}
	appt := &Appointment{
		PatientID: p.UserID,
		DoctorID:  doctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusPending,
		Notes:     consultationNotes(req.Type, req.Message),
	}
	err = s.inTx(ctx, func(ctx context.Context) error {
		if err := s.consultations.Create(ctx, cons); err != nil {
			return err
		}
		return s.appointments.Create(ctx, appt)
	})
	if err != nil {
		return nil, err
	}
	return &Booking{ConsultationID: cons.ID, AppointmentID: appt.ID}, nil
}

// BookAppointment creates a pending appointment for the signed-in user.
func (s *Service) BookAppointment(ctx context.Context, p auth.Principal, req *AppointmentRequest) (*Appointment, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	doctorID, err := s.requireDoctor(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}
	appt := &Appointment{
		PatientID: p.UserID,
		DoctorID:  doctorID,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusPending,
		Notes:     req.Notes,
	}
	if err := s.appointments.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// ListForUser returns the caller's appointments, newest date first. Doctors
// see the appointments booked with them.
func (s *Service) ListForUser(ctx context.Context, p auth.Principal) ([]*AppointmentView, error) {
	if p.IsDoctor() {
		return s.appointments.ListByDoctor(ctx, p.UserID)
	}
	return s.appointments.ListByPatient(ctx, p.UserID)
}

func (s *Service) owned(ctx context.Context, p auth.Principal, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsDoctor() && a.DoctorID != p.UserID {
		return nil, ErrForbidden
	}
	if !p.IsDoctor() && a.PatientID != p.UserID {
		return nil, ErrForbidden
	}
	return a, nil
}

// UpdateStatus moves an appointment to status. A confirmed appointment
// cannot be cancelled.
func (s *Service) UpdateStatus(ctx context.Context, p auth.Principal, id uuid.UUID, status string) error {
	if !validAppointmentStatuses[status] {
		return ErrInvalidStatus
	}
	return s.inTx(ctx, func(ctx context.Context) error {
		a, err := s.owned(ctx, p, id)
		if err != nil {
			return err
		}
		if a.Status == StatusConfirmed && status == StatusCancelled {
			return ErrInvalidTransition
		}
		return s.appointments.UpdateStatus(ctx, id, status)
	})
}

// Delete removes an appointment that has not been confirmed.
func (s *Service) Delete(ctx context.Context, p auth.Principal, id uuid.UUID) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		a, err := s.owned(ctx, p, id)
		if err != nil {
			return err
		}
		if a.Status == StatusConfirmed {
			return ErrConfirmedDelete
		}
		return s.appointments.Delete(ctx, id)
	})
}
