package rest

import (
	"net/http"

	"aihc/backend/internal/service/doctors"
)

type doctorRequest struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Bio       string `json:"bio"`
}

func (d doctorRequest) input() doctors.Input {
	return doctors.Input{Name: d.Name, Specialty: d.Specialty, Bio: d.Bio}
}

func (h *handlers) listDoctors(w http.ResponseWriter, r *http.Request) {
	list, err := h.doctors.List(r.Context())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handlers) getDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}
	d, err := h.doctors.Get(r.Context(), id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *handlers) createDoctor(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := h.doctors.Create(r.Context(), req.input())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *handlers) updateDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req doctorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d, err := h.doctors.Update(r.Context(), id, req.input())
	if err != nil {
		h.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *handlers) deleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.doctors.Delete(r.Context(), id); err != nil {
		h.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
