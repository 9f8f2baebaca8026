package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*AppointmentView, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ConsultationRepository interface {
	Create(ctx context.Context, c *Consultation) error
}
