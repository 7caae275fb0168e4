package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aihc/backend/internal/auth"
	"aihc/backend/internal/domain"
	"aihc/backend/internal/service/appointments"
	"aihc/backend/internal/service/doctors"
	"aihc/backend/internal/service/patients"
	"aihc/backend/internal/store"
)

type fakeScheduling struct {
	submitFn       func(ctx context.Context, in appointments.SubmitInput) (appointments.SubmitResult, error)
	confirmFn      func(ctx context.Context, token string) (domain.Appointment, error)
	dismissFn      func(token string) error
	availabilityFn func(ctx context.Context, doctorID int64, day time.Time, excludeID int64) ([]string, error)
	getFn          func(ctx context.Context, id int64) (domain.Appointment, error)
	listFn         func(ctx context.Context, filter store.AppointmentFilter) ([]domain.Appointment, error)
}

func (f *fakeScheduling) Submit(ctx context.Context, in appointments.SubmitInput) (appointments.SubmitResult, error) {
	if f.submitFn == nil {
		panic("Submit not configured")
	}
	return f.submitFn(ctx, in)
}

func (f *fakeScheduling) ConfirmOverride(ctx context.Context, token string) (domain.Appointment, error) {
	if f.confirmFn == nil {
		panic("ConfirmOverride not configured")
	}
	return f.confirmFn(ctx, token)
}

func (f *fakeScheduling) DismissOverride(token string) error {
	if f.dismissFn == nil {
		panic("DismissOverride not configured")
	}
	return f.dismissFn(token)
}

func (f *fakeScheduling) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	panic("Create not configured")
}

func (f *fakeScheduling) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	panic("Update not configured")
}

func (f *fakeScheduling) Get(ctx context.Context, id int64) (domain.Appointment, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakeScheduling) List(ctx context.Context, filter store.AppointmentFilter) ([]domain.Appointment, error) {
	if f.listFn == nil {
		panic("List not configured")
	}
	return f.listFn(ctx, filter)
}

func (f *fakeScheduling) Delete(ctx context.Context, id int64) error {
	panic("Delete not configured")
}

func (f *fakeScheduling) Availability(ctx context.Context, doctorID int64, day time.Time, excludeID int64) ([]string, error) {
	if f.availabilityFn == nil {
		panic("Availability not configured")
	}
	return f.availabilityFn(ctx, doctorID, day, excludeID)
}

func (f *fakeScheduling) Today(ctx context.Context, now time.Time) ([]appointments.TodayEntry, error) {
	panic("Today not configured")
}

type fakePatients struct {
	createFn func(ctx context.Context, in patients.Input) (domain.Patient, error)
	getFn    func(ctx context.Context, id int64) (domain.Patient, error)
}

func (f *fakePatients) Create(ctx context.Context, in patients.Input) (domain.Patient, error) {
	if f.createFn == nil {
		panic("Create not configured")
	}
	return f.createFn(ctx, in)
}

func (f *fakePatients) Update(ctx context.Context, id int64, in patients.Input) (domain.Patient, error) {
	panic("Update not configured")
}

func (f *fakePatients) Get(ctx context.Context, id int64) (domain.Patient, error) {
	if f.getFn == nil {
		panic("Get not configured")
	}
	return f.getFn(ctx, id)
}

func (f *fakePatients) List(ctx context.Context) ([]domain.Patient, error) {
	return []domain.Patient{}, nil
}

func (f *fakePatients) Delete(ctx context.Context, id int64) error {
	panic("Delete not configured")
}

type fakeDoctors struct{}

func (f *fakeDoctors) Create(ctx context.Context, in doctors.Input) (domain.Doctor, error) {
	panic("Create not configured")
}

func (f *fakeDoctors) Update(ctx context.Context, id int64, in doctors.Input) (domain.Doctor, error) {
	panic("Update not configured")
}

func (f *fakeDoctors) Get(ctx context.Context, id int64) (domain.Doctor, error) {
	panic("Get not configured")
}

func (f *fakeDoctors) List(ctx context.Context) ([]domain.Doctor, error) {
	return []domain.Doctor{}, nil
}

func (f *fakeDoctors) Delete(ctx context.Context, id int64) error {
	panic("Delete not configured")
}

func newTestRouter(t *testing.T, sched *fakeScheduling, pats *fakePatients) http.Handler {
	t.Helper()
	if sched == nil {
		sched = &fakeScheduling{}
	}
	if pats == nil {
		pats = &fakePatients{}
	}
	return NewRouter(Config{
		Patients:     pats,
		Doctors:      &fakeDoctors{},
		Appointments: sched,
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestListSlots(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/schedule/slots", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Slots) != 96 {
		t.Fatalf("slots = %d, want 96", len(body.Slots))
	}
	if body.Slots[0] != "00:00" || body.Slots[95] != "23:45" {
		t.Fatalf("slot bounds = %q..%q", body.Slots[0], body.Slots[95])
	}
}

func TestSubmit_CommitReturnsCreated(t *testing.T) {
	when, _ := domain.ParseDateTime("2026-06-15T10:30")
	sched := &fakeScheduling{
		submitFn: func(ctx context.Context, in appointments.SubmitInput) (appointments.SubmitResult, error) {
			if in.PatientID != 3 || in.DoctorID != 7 || in.Date != "2026-06-15" || in.TimeSlot != "10:30" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return appointments.SubmitResult{
				Committed: true,
				Appointment: domain.Appointment{
					ID: 12, PatientID: 3, DoctorID: 7, DateTime: when, Reason: "checkup",
				},
			}, nil
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/appointments",
		`{"patientId":3,"doctorId":7,"date":"2026-06-15","time":"10:30","reason":"checkup"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body)
	}

	var body struct {
		Status      string `json:"status"`
		Appointment struct {
			ID       int64  `json:"id"`
			DateTime string `json:"dateTime"`
			Date     string `json:"date"`
			Time     string `json:"time"`
		} `json:"appointment"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "committed" || body.Appointment.ID != 12 {
		t.Fatalf("body = %+v", body)
	}
	if body.Appointment.DateTime != "2026-06-15T10:30" {
		t.Fatalf("dateTime = %q", body.Appointment.DateTime)
	}
	if body.Appointment.Date != "2026-06-15" || body.Appointment.Time != "10:30" {
		t.Fatalf("decomposed parts = %q %q", body.Appointment.Date, body.Appointment.Time)
	}
}

func TestSubmit_ConflictReturns409WithToken(t *testing.T) {
	sched := &fakeScheduling{
		submitFn: func(ctx context.Context, in appointments.SubmitInput) (appointments.SubmitResult, error) {
			return appointments.SubmitResult{
				OverrideToken:  "tok-1",
				DoctorConflict: true,
			}, nil
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/appointments",
		`{"patientId":3,"doctorId":7,"date":"2026-06-15","time":"10:30","reason":"checkup"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var body struct {
		Status          string `json:"status"`
		OverrideToken   string `json:"overrideToken"`
		DoctorConflict  bool   `json:"doctorConflict"`
		PatientConflict bool   `json:"patientConflict"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "conflict" || body.OverrideToken != "tok-1" {
		t.Fatalf("body = %+v", body)
	}
	if !body.DoctorConflict || body.PatientConflict {
		t.Fatalf("conflict flags = %+v", body)
	}
}

func TestSubmit_ValidationReturns422(t *testing.T) {
	sched := &fakeScheduling{
		submitFn: func(ctx context.Context, in appointments.SubmitInput) (appointments.SubmitResult, error) {
			return appointments.SubmitResult{}, &appointments.ValidationError{Fields: []string{"patient", "reason"}}
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/appointments", `{"doctorId":7}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}

	var body struct {
		Error   string   `json:"error"`
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "validation" {
		t.Fatalf("error = %q", body.Error)
	}
	if strings.Join(body.Missing, ",") != "patient,reason" {
		t.Fatalf("missing = %v", body.Missing)
	}
}

func TestConfirmOverride_UnknownTokenReturns404(t *testing.T) {
	sched := &fakeScheduling{
		confirmFn: func(ctx context.Context, token string) (domain.Appointment, error) {
			return domain.Appointment{}, appointments.ErrOverrideNotFound
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/overrides/nope/confirm", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDismissOverride_ReturnsNoContent(t *testing.T) {
	var gotToken string
	sched := &fakeScheduling{
		dismissFn: func(token string) error {
			gotToken = token
			return nil
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/overrides/tok-9/dismiss", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if gotToken != "tok-9" {
		t.Fatalf("token = %q, want tok-9", gotToken)
	}
}

func TestAvailability_PassesQueryThrough(t *testing.T) {
	sched := &fakeScheduling{
		availabilityFn: func(ctx context.Context, doctorID int64, day time.Time, excludeID int64) ([]string, error) {
			if doctorID != 7 {
				t.Fatalf("doctorID = %d, want 7", doctorID)
			}
			if day.Format(domain.DateLayout) != "2026-06-15" {
				t.Fatalf("day = %v", day)
			}
			if excludeID != 4 {
				t.Fatalf("excludeID = %d, want 4", excludeID)
			}
			return []string{"09:00", "10:30"}, nil
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/schedule/availability?doctorId=7&date=2026-06-15&exclude=4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Busy []string `json:"busy"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if strings.Join(body.Busy, ",") != "09:00,10:30" {
		t.Fatalf("busy = %v", body.Busy)
	}
}

func TestAvailability_MissingParamsYieldEmptyBusySet(t *testing.T) {
	sched := &fakeScheduling{
		availabilityFn: func(ctx context.Context, doctorID int64, day time.Time, excludeID int64) ([]string, error) {
			if doctorID != 0 || !day.IsZero() {
				t.Fatalf("expected zero selection, got doctor=%d day=%v", doctorID, day)
			}
			return []string{}, nil
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/schedule/availability", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		Busy []string `json:"busy"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Busy) != 0 {
		t.Fatalf("busy = %v, want empty", body.Busy)
	}
}

func TestListAppointments_FilterFromQuery(t *testing.T) {
	sched := &fakeScheduling{
		listFn: func(ctx context.Context, filter store.AppointmentFilter) ([]domain.Appointment, error) {
			if filter.PatientID != 3 || filter.DoctorID != 0 {
				t.Fatalf("filter = %+v", filter)
			}
			return []domain.Appointment{}, nil
		},
	}
	h := newTestRouter(t, sched, nil)

	rec := doJSON(t, h, http.MethodGet, "/api/appointments?patientId=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestGetPatient_NotFoundMapsTo404(t *testing.T) {
	pats := &fakePatients{
		getFn: func(ctx context.Context, id int64) (domain.Patient, error) {
			return domain.Patient{}, store.ErrNotFound
		},
	}
	h := newTestRouter(t, nil, pats)

	rec := doJSON(t, h, http.MethodGet, "/api/patients/99", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestCreatePatient_ValidationMapsTo422(t *testing.T) {
	pats := &fakePatients{
		createFn: func(ctx context.Context, in patients.Input) (domain.Patient, error) {
			return domain.Patient{}, &patients.ValidationError{Fields: []string{"name", "age"}}
		},
	}
	h := newTestRouter(t, nil, pats)

	rec := doJSON(t, h, http.MethodPost, "/api/patients", `{"gender":"female"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestAuth_ProtectsAPIWhenEnabled(t *testing.T) {
	sched := &fakeScheduling{}
	h := NewRouter(Config{
		Patients:     &fakePatients{},
		Doctors:      &fakeDoctors{},
		Appointments: sched,
		Auth:         auth.NewService("admin", "admin", "secret", time.Hour),
	})

	rec := doJSON(t, h, http.MethodGet, "/api/patients", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/login", `{"username":"admin","password":"admin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	req.Header.Set("Authorization", "Bearer "+body.Token)
	recOK := httptest.NewRecorder()
	h.ServeHTTP(recOK, req)
	if recOK.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d, want %d", recOK.Code, http.StatusOK)
	}
}

func TestAuth_WrongCredentialReturns401(t *testing.T) {
	h := NewRouter(Config{
		Patients:     &fakePatients{},
		Doctors:      &fakeDoctors{},
		Appointments: &fakeScheduling{},
		Auth:         auth.NewService("admin", "admin", "secret", time.Hour),
	})

	rec := doJSON(t, h, http.MethodPost, "/api/login", `{"username":"admin","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLogin_RateLimited(t *testing.T) {
	h := NewRouter(Config{
		Patients:            &fakePatients{},
		Doctors:             &fakeDoctors{},
		Appointments:        &fakeScheduling{},
		Auth:                auth.NewService("admin", "admin", "secret", time.Hour),
		LoginRateLimitRPS:   0.001,
		LoginRateLimitBurst: 1,
	})

	rec := doJSON(t, h, http.MethodPost, "/api/login", `{"username":"admin","password":"admin"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("first login status = %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/login", `{"username":"admin","password":"admin"}`)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second login status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
}
