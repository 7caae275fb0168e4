package store

import (
	"context"

	"aihc/backend/internal/domain"
)

// AppointmentFilter narrows List to one patient's or one doctor's
// appointments. Zero values mean no filter.
type AppointmentFilter struct {
	PatientID int64
	DoctorID  int64
}

// AppointmentRepository is the external store for appointment records. Updates
// always carry the complete field set; there is no partial update.
type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Get(ctx context.Context, id int64) (domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}
