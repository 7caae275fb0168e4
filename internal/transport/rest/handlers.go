package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/service/appointments"
	"aihc/backend/internal/service/doctors"
	"aihc/backend/internal/service/patients"
	"aihc/backend/internal/store"
)

type patientsService interface {
	Create(ctx context.Context, in patients.Input) (domain.Patient, error)
	Update(ctx context.Context, id int64, in patients.Input) (domain.Patient, error)
	Get(ctx context.Context, id int64) (domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
	Delete(ctx context.Context, id int64) error
}

type doctorsService interface {
	Create(ctx context.Context, in doctors.Input) (domain.Doctor, error)
	Update(ctx context.Context, id int64, in doctors.Input) (domain.Doctor, error)
	Get(ctx context.Context, id int64) (domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	Delete(ctx context.Context, id int64) error
}

type schedulingService interface {
	Submit(ctx context.Context, in appointments.SubmitInput) (appointments.SubmitResult, error)
	ConfirmOverride(ctx context.Context, token string) (domain.Appointment, error)
	DismissOverride(token string) error

	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Get(ctx context.Context, id int64) (domain.Appointment, error)
	List(ctx context.Context, filter store.AppointmentFilter) ([]domain.Appointment, error)
	Delete(ctx context.Context, id int64) error

	Availability(ctx context.Context, doctorID int64, day time.Time, excludeID int64) ([]string, error)
	Today(ctx context.Context, now time.Time) ([]appointments.TodayEntry, error)
}

type sessionService interface {
	Enabled() bool
	Login(username, password string) (string, error)
	Verify(token string) error
}

type handlers struct {
	log          *slog.Logger
	patients     patientsService
	doctors      doctorsService
	appointments schedulingService
	auth         sessionService
}

func urlID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// appointmentPayload is the wire shape of an appointment. DateTime is the
// combined stamp; Date and Time are its decomposition for pre-populating an
// edit form, with the time part snapped onto the slot grid.
type appointmentPayload struct {
	ID        int64  `json:"id"`
	PatientID int64  `json:"patientId"`
	DoctorID  int64  `json:"doctorId"`
	DateTime  string `json:"dateTime"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Reason    string `json:"reason"`
}

func toAppointmentPayload(a domain.Appointment) appointmentPayload {
	datePart, slotPart := domain.SplitDateTime(a.DateTime)
	return appointmentPayload{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		DateTime:  a.DateTime.In(time.Local).Format(domain.DateTimeLayout),
		Date:      datePart,
		Time:      slotPart,
		Reason:    a.Reason,
	}
}

func toAppointmentPayloads(appts []domain.Appointment) []appointmentPayload {
	out := make([]appointmentPayload, 0, len(appts))
	for _, a := range appts {
		out = append(out, toAppointmentPayload(a))
	}
	return out
}
