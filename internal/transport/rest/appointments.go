package rest

import (
	"net/http"
	"strconv"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/store"
)

// appointmentRequest is the raw store write: a combined timestamp, no
// conflict evaluation. The scheduling workflow under /api/schedule is the
// checked path.
type appointmentRequest struct {
	PatientID int64  `json:"patientId"`
	DoctorID  int64  `json:"doctorId"`
	DateTime  string `json:"dateTime"`
	Reason    string `json:"reason"`
}

func (a appointmentRequest) model(id int64) (domain.Appointment, error) {
	when, err := domain.ParseDateTime(a.DateTime)
	if err != nil {
		return domain.Appointment{}, err
	}
	return domain.Appointment{
		ID:        id,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		DateTime:  when,
		Reason:    a.Reason,
	}, nil
}

func appointmentFilter(r *http.Request) store.AppointmentFilter {
	var f store.AppointmentFilter
	if v, err := strconv.ParseInt(r.URL.Query().Get("patientId"), 10, 64); err == nil {
		f.PatientID = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("doctorId"), 10, 64); err == nil {
		f.DoctorID = v
	}
	return f
}

func (h *handlers) listAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.appointments.List(r.Context(), appointmentFilter(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentPayloads(list))
}

func (h *handlers) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}
	a, err := h.appointments.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentPayload(a))
}

func (h *handlers) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	appt, err := req.model(0)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid dateTime")
		return
	}
	created, err := h.appointments.Create(r.Context(), appt)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAppointmentPayload(created))
}

func (h *handlers) updateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req appointmentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	appt, err := req.model(id)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid dateTime")
		return
	}
	updated, err := h.appointments.Update(r.Context(), appt)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentPayload(updated))
}

func (h *handlers) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.appointments.Delete(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
