package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mentiq/mentiq/internal/domain/directory"
	"github.com/mentiq/mentiq/internal/platform/auth"
	"github.com/mentiq/mentiq/internal/platform/validate"
)

// -- Mock Repositories --

type mockAppointmentRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*Appointment
	names map[uuid.UUID]string
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appts: make(map[uuid.UUID]*Appointment), names: make(map[uuid.UUID]string)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	m.appts[a.ID] = a
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAppointmentRepo) list(match func(a *Appointment) bool, decorate func(v *AppointmentView)) []*AppointmentView {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*AppointmentView
	for _, a := range m.appts {
		if match(a) {
			v := &AppointmentView{Appointment: *a}
			decorate(v)
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out
}

func (m *mockAppointmentRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*AppointmentView, error) {
	return m.list(func(a *Appointment) bool { return a.DoctorID == doctorID }, func(v *AppointmentView) {
		v.Patient = m.names[v.PatientID]
	}), nil
}

func (m *mockAppointmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*AppointmentView, error) {
	return m.list(func(a *Appointment) bool { return a.PatientID == patientID }, func(v *AppointmentView) {
		v.Doctor = m.names[v.DoctorID]
		v.Location = formatLocation(nil, nil)
	}), nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[id]; !ok {
		return ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

type mockConsultationRepo struct {
	items []*Consultation
	err   error
}

func (m *mockConsultationRepo) Create(_ context.Context, c *Consultation) error {
	if m.err != nil {
		return m.err
	}
	c.ID = uuid.New()
	m.items = append(m.items, c)
	return nil
}

type mockDoctorLookup struct {
	doctors map[uuid.UUID]*directory.Doctor
}

func (m *mockDoctorLookup) DoctorByUserID(_ context.Context, userID uuid.UUID) (*directory.Doctor, error) {
	d, ok := m.doctors[userID]
	if !ok {
		return nil, directory.ErrDoctorNotFound
	}
	return d, nil
}

// -- Fixtures --

type fixture struct {
	svc     *Service
	appts   *mockAppointmentRepo
	cons    *mockConsultationRepo
	doctor  auth.Principal
	patient auth.Principal
}

func newFixture() *fixture {
	doctorID, patientID := uuid.New(), uuid.New()
	uid := doctorID
	lookup := &mockDoctorLookup{doctors: map[uuid.UUID]*directory.Doctor{
		doctorID: {ID: uuid.New(), UserID: &uid, Name: "Dr. Sarah Ahmed"},
	}}
	appts := newMockAppointmentRepo()
	appts.names[doctorID] = "Dr. Sarah Ahmed"
	appts.names[patientID] = "Pat Patient"
	cons := &mockConsultationRepo{}
	return &fixture{
		svc:     NewService(appts, cons, lookup, nil),
		appts:   appts,
		cons:    cons,
		doctor:  auth.Principal{UserID: doctorID, Role: auth.RoleDoctor},
		patient: auth.Principal{UserID: patientID, Role: auth.RolePatient},
	}
}

func (f *fixture) consultation() *ConsultationRequest {
	return &ConsultationRequest{
		Name:     "Pat Patient",
		Email:    "pat@example.com",
		Phone:    "+20 100 000 0000",
		Date:     "2025-12-01",
		Time:     "10:30",
		Type:     "Video Call",
		DoctorID: f.doctor.UserID.String(),
		Message:  "First visit",
	}
}

func (f *fixture) book(t *testing.T, date, at string) *Appointment {
	t.Helper()
	a, err := f.svc.BookAppointment(context.Background(), f.patient, &AppointmentRequest{
		DoctorID: f.doctor.UserID.String(), Date: date, Time: at,
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return a
}

// -- Tests --

func TestService_BookConsultation(t *testing.T) {
	f := newFixture()
	ctx := auth.WithPrincipal(context.Background(), f.patient)

	booking, err := f.svc.BookConsultation(ctx, f.consultation())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.cons.items) != 1 || f.cons.items[0].ID != booking.ConsultationID {
		t.Fatalf("expected consultation to be stored")
	}
	appt, err := f.appts.GetByID(ctx, booking.AppointmentID)
	if err != nil {
		t.Fatalf("expected appointment: %v", err)
	}
	if appt.Status != StatusPending {
		t.Errorf("expected pending, got %s", appt.Status)
	}
	if appt.Notes != "Consultation Type: Video Call. First visit" {
		t.Errorf("unexpected notes %q", appt.Notes)
	}
	if appt.DoctorID != f.doctor.UserID || appt.PatientID != f.patient.UserID {
		t.Errorf("unexpected parties %+v", appt)
	}
}

func TestService_BookConsultationRequiresLogin(t *testing.T) {
	f := newFixture()
	if _, err := f.svc.BookConsultation(context.Background(), f.consultation()); !errors.Is(err, ErrLoginRequired) {
		t.Errorf("expected ErrLoginRequired, got %v", err)
	}
}

func TestService_BookConsultationFieldsCheckedBeforeLogin(t *testing.T) {
	f := newFixture()
	req := f.consultation()
	req.Phone = ""
	_, err := f.svc.BookConsultation(context.Background(), req)
	var fe *validate.FieldError
	if !errors.As(err, &fe) || fe.Field != "phone" {
		t.Errorf("expected phone field error, got %v", err)
	}
}

func TestService_BookConsultationUnknownDoctor(t *testing.T) {
	f := newFixture()
	ctx := auth.WithPrincipal(context.Background(), f.patient)
	req := f.consultation()
	req.DoctorID = uuid.NewString()
	if _, err := f.svc.BookConsultation(ctx, req); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
	if len(f.cons.items) != 0 || len(f.appts.appts) != 0 {
		t.Error("nothing should be stored for an unknown doctor")
	}
}

func TestService_BookConsultationConsultationFailure(t *testing.T) {
	f := newFixture()
	f.cons.err = errors.New("insert failed")
	ctx := auth.WithPrincipal(context.Background(), f.patient)
	if _, err := f.svc.BookConsultation(ctx, f.consultation()); err == nil {
		t.Fatal("expected error")
	}
	if len(f.appts.appts) != 0 {
		t.Error("appointment must not be created when the consultation fails")
	}
}

func TestService_BookAppointmentValidation(t *testing.T) {
	f := newFixture()
	_, err := f.svc.BookAppointment(context.Background(), f.patient, &AppointmentRequest{
		DoctorID: f.doctor.UserID.String(), Date: "tomorrow", Time: "10:00",
	})
	var fe *validate.FieldError
	if !errors.As(err, &fe) || fe.Field != "appointment_date" {
		t.Errorf("expected appointment_date error, got %v", err)
	}
}

func TestService_ListForUser(t *testing.T) {
	f := newFixture()
	f.book(t, "2025-11-01", "09:00")
	f.book(t, "2025-12-01", "08:00")
	f.book(t, "2025-12-01", "15:00")

	mine, err := f.svc.ListForUser(context.Background(), f.patient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3, got %d", len(mine))
	}
	if mine[0].Date != "2025-12-01" || mine[0].Time != "15:00" || mine[2].Date != "2025-11-01" {
		t.Errorf("unexpected order: %s %s / %s", mine[0].Date, mine[0].Time, mine[2].Date)
	}
	if mine[0].Doctor != "Dr. Sarah Ahmed" {
		t.Errorf("expected doctor name, got %q", mine[0].Doctor)
	}

	theirs, err := f.svc.ListForUser(context.Background(), f.doctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(theirs) != 3 || theirs[0].Patient != "Pat Patient" {
		t.Errorf("unexpected doctor view %+v", theirs)
	}

	other := auth.Principal{UserID: uuid.New(), Role: auth.RolePatient}
	none, _ := f.svc.ListForUser(context.Background(), other)
	if len(none) != 0 {
		t.Errorf("expected no appointments for another patient, got %d", len(none))
	}
}

func TestService_UpdateStatus(t *testing.T) {
	f := newFixture()
	a := f.book(t, "2025-12-01", "10:00")
	ctx := context.Background()

	if err := f.svc.UpdateStatus(ctx, f.doctor, a.ID, "done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, f.doctor, uuid.New(), StatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	stranger := auth.Principal{UserID: uuid.New(), Role: auth.RoleDoctor}
	if err := f.svc.UpdateStatus(ctx, stranger, a.ID, StatusConfirmed); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another doctor, got %v", err)
	}
	otherPatient := auth.Principal{UserID: uuid.New(), Role: auth.RolePatient}
	if err := f.svc.UpdateStatus(ctx, otherPatient, a.ID, StatusCancelled); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for another patient, got %v", err)
	}

	if err := f.svc.UpdateStatus(ctx, f.doctor, a.ID, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, f.patient, a.ID, StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
	if err := f.svc.UpdateStatus(ctx, f.doctor, a.ID, StatusCompleted); err != nil {
		t.Errorf("complete: %v", err)
	}
	got, _ := f.appts.GetByID(ctx, a.ID)
	if got.Status != StatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
}

func TestService_PatientCancelsPending(t *testing.T) {
	f := newFixture()
	a := f.book(t, "2025-12-01", "10:00")
	if err := f.svc.UpdateStatus(context.Background(), f.patient, a.ID, StatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_Delete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	pending := f.book(t, "2025-12-01", "10:00")
	confirmed := f.book(t, "2025-12-02", "10:00")
	if err := f.svc.UpdateStatus(ctx, f.doctor, confirmed.ID, StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := f.svc.Delete(ctx, f.patient, confirmed.ID); !errors.Is(err, ErrConfirmedDelete) {
		t.Errorf("expected ErrConfirmedDelete, got %v", err)
	}
	stranger := auth.Principal{UserID: uuid.New(), Role: auth.RolePatient}
	if err := f.svc.Delete(ctx, stranger, pending.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.Delete(ctx, f.patient, pending.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.appts.GetByID(ctx, pending.ID); !errors.Is(err, ErrNotFound) {
		t.Error("expected appointment to be gone")
	}
	if err := f.svc.Delete(ctx, f.patient, pending.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestFormatLocation(t *testing.T) {
	city, country := "Cairo", "Egypt"
	if got := formatLocation(&city, &country); got != "Cairo, Egypt" {
		t.Errorf("got %q", got)
	}
	if got := formatLocation(nil, nil); got != "Location TBD" {
		t.Errorf("got %q", got)
	}
}
