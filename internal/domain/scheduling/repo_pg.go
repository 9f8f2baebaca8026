package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mentiq/mentiq/internal/platform/db"
)

// =========== Appointment Repository ===========

type appointmentRepoPG struct{ q db.Querier }

func NewAppointmentRepoPG(q db.Querier) AppointmentRepository { return &appointmentRepoPG{q: q} }

func (r *appointmentRepoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

const apptCols = `a.id, a.patient_id, a.doctor_id, a.appointment_date::text,
	to_char(a.appointment_time, 'HH24:MI'), a.status, COALESCE(a.notes, ''), a.created_at`

func scanAppointment(row pgx.Row, extra ...interface{}) (*Appointment, error) {
	var a Appointment
	dest := append([]interface{}{&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.Time,
		&a.Status, &a.Notes, &a.CreatedAt}, extra...)
	err := row.Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &a, err
}

func (r *appointmentRepoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	if a.Status == "" {
		a.Status = StatusPending
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, appointment_time,
			status, notes)
		VALUES ($1,$2,$3,$4::date,$5::time,$6,$7)
		RETURNING created_at`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.Time, a.Status, a.Notes).Scan(&a.CreatedAt)
}

func (r *appointmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `SELECT `+apptCols+` FROM appointments a WHERE a.id = $1`, id))
}

func (r *appointmentRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*AppointmentView, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`, u.name, u.email
		FROM appointments a
		JOIN users u ON a.patient_id = u.id
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentView
	for rows.Next() {
		var v AppointmentView
		a, err := scanAppointment(rows, &v.Patient, &v.PatientEmail)
		if err != nil {
			return nil, err
		}
		v.Appointment = *a
		items = append(items, &v)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*AppointmentView, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+apptCols+`, COALESCE(d.name, u.name, 'Unknown Doctor'), d.specialty, d.city, d.country
		FROM appointments a
		LEFT JOIN doctors d ON a.doctor_id = d.user_id
		LEFT JOIN users u ON a.doctor_id = u.id
		WHERE a.patient_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*AppointmentView
	for rows.Next() {
		var v AppointmentView
		a, err := scanAppointment(rows, &v.Doctor, &v.Specialty, &v.City, &v.Country)
		if err != nil {
			return nil, err
		}
		v.Appointment = *a
		v.Location = formatLocation(v.City, v.Country)
		items = append(items, &v)
	}
	return items, rows.Err()
}

func (r *appointmentRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.conn(ctx).Exec(ctx, `UPDATE appointments SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *appointmentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// =========== Consultation Repository ===========

type consultationRepoPG struct{ q db.Querier }

func NewConsultationRepoPG(q db.Querier) ConsultationRepository { return &consultationRepoPG{q: q} }

func (r *consultationRepoPG) conn(ctx context.Context) db.Querier { return db.Conn(ctx, r.q) }

func (r *consultationRepoPG) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	if c.Status == "" {
		c.Status = StatusPending
	}
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultations (id, user_id, doctor_id, name, email, phone, consultation_date,
			consultation_time, consultation_type, message, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7::date,$8::time,$9,$10,$11)
		RETURNING created_at`,
		c.ID, c.UserID, c.DoctorID, c.Name, c.Email, c.Phone, c.Date, c.Time, c.Type,
		c.Message, c.Status).Scan(&c.CreatedAt)
}
