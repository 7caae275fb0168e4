package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/service/appointments"
)

func (h *handlers) listSlots(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"slots": domain.TimeSlots()})
}

// availability reports a doctor's busy slot labels on a day. With no doctor
// or no date selected yet there is nothing to report, so the busy set is
// empty rather than an error; a slot picker can render before the form is
// complete.
func (h *handlers) availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	doctorID, _ := strconv.ParseInt(q.Get("doctorId"), 10, 64)
	excludeID, _ := strconv.ParseInt(q.Get("exclude"), 10, 64)
	var day time.Time
	if raw := q.Get("date"); raw != "" {
		if parsed, err := domain.ParseDate(raw); err == nil {
			day = parsed
		}
	}

	busy, err := h.appointments.Availability(r.Context(), doctorID, day, excludeID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"busy": busy})
}

type todayEntryPayload struct {
	appointmentPayload
	Slot string `json:"slot"`
}

func (h *handlers) today(w http.ResponseWriter, r *http.Request) {
	entries, err := h.appointments.Today(r.Context(), time.Now())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	out := make([]todayEntryPayload, 0, len(entries))
	for _, e := range entries {
		out = append(out, todayEntryPayload{
			appointmentPayload: toAppointmentPayload(e.Appointment),
			Slot:               e.Slot,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": out})
}

type submitRequest struct {
	AppointmentID int64  `json:"appointmentId"`
	PatientID     int64  `json:"patientId"`
	DoctorID      int64  `json:"doctorId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Reason        string `json:"reason"`
}

// submitAppointment runs the checked create/edit workflow. A clear slot
// commits immediately; a double booking returns 409 with an override token
// the caller must confirm or dismiss.
func (h *handlers) submitAppointment(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.appointments.Submit(r.Context(), appointments.SubmitInput{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		Date:          req.Date,
		TimeSlot:      req.Time,
		Reason:        req.Reason,
	})
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	if !res.Committed {
		writeJSON(w, http.StatusConflict, map[string]any{
			"status":          "conflict",
			"overrideToken":   res.OverrideToken,
			"doctorConflict":  res.DoctorConflict,
			"patientConflict": res.PatientConflict,
		})
		return
	}

	status := http.StatusCreated
	if req.AppointmentID != 0 {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{
		"status":      "committed",
		"appointment": toAppointmentPayload(res.Appointment),
	})
}

func (h *handlers) confirmOverride(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	appt, err := h.appointments.ConfirmOverride(r.Context(), token)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "committed",
		"appointment": toAppointmentPayload(appt),
	})
}

func (h *handlers) dismissOverride(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := h.appointments.DismissOverride(token); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
