// Package appointments drives the appointment create/edit workflow: required
// field validation, double-booking detection over the current appointment
// collection, and the user-confirmed override path. Conflicts are advisory;
// the store is never asked to reject a double booking.
package appointments

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/observability/metrics"
	"aihc/backend/internal/sanitize"
	"aihc/backend/internal/store"
)

// ValidationError reports the missing or malformed required fields of a
// submission. Nothing reaches the store while one of these is outstanding.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// ErrOverrideNotFound marks an override token that is unknown, already used,
// or expired.
var ErrOverrideNotFound = errors.New("pending override not found")

type Service struct {
	repo    store.AppointmentRepository
	pending *overrideStore
	metrics *metrics.SchedulingMetrics
	now     func() time.Time
}

func NewService(repo store.AppointmentRepository, overrideTTL time.Duration, m *metrics.SchedulingMetrics) *Service {
	return &Service{
		repo:    repo,
		pending: newOverrideStore(overrideTTL, time.Now),
		metrics: m,
		now:     time.Now,
	}
}

// SubmitInput carries one submission of the appointment form. AppointmentID
// zero means create; non-zero means a full-field edit of that appointment.
type SubmitInput struct {
	AppointmentID int64
	PatientID     int64
	DoctorID      int64
	Date          string // YYYY-MM-DD
	TimeSlot      string // HH:MM, one of the fixed grid labels
	Reason        string
}

// SubmitResult is either a committed appointment or a pending conflict
// decision. When Committed is false the caller must resolve the conflict via
// ConfirmOverride or DismissOverride using OverrideToken.
type SubmitResult struct {
	Committed       bool
	Appointment     domain.Appointment
	OverrideToken   string
	DoctorConflict  bool
	PatientConflict bool
}

// Submit validates the form, evaluates double-booking against the current
// appointment collection, and commits immediately when the slot is clear.
// The collection is re-fetched on every submit; nothing is cached between
// mutations.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (SubmitResult, error) {
	reason := sanitize.Text(in.Reason, sanitize.DefaultMaxLen)

	var missing []string
	if in.PatientID == 0 {
		missing = append(missing, "patient")
	}
	if in.DoctorID == 0 {
		missing = append(missing, "doctor")
	}
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(in.TimeSlot) == "" {
		missing = append(missing, "time")
	}
	if reason == "" {
		missing = append(missing, "reason")
	}
	if len(missing) > 0 {
		return SubmitResult{}, &ValidationError{Fields: missing}
	}

	day, err := domain.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return SubmitResult{}, &ValidationError{Fields: []string{"date"}}
	}
	slot := strings.TrimSpace(in.TimeSlot)
	if _, err := time.Parse(domain.SlotLayout, slot); err != nil {
		return SubmitResult{}, &ValidationError{Fields: []string{"time"}}
	}

	when, err := domain.ParseDateTime(domain.CombineDateTime(day.Format(domain.DateLayout), slot))
	if err != nil {
		return SubmitResult{}, &ValidationError{Fields: []string{"time"}}
	}

	appt := domain.Appointment{
		ID:        in.AppointmentID,
		PatientID: in.PatientID,
		DoctorID:  in.DoctorID,
		DateTime:  when,
		Reason:    reason,
	}

	all, err := s.repo.List(ctx, store.AppointmentFilter{})
	if err != nil {
		return SubmitResult{}, err
	}

	res := domain.EvaluateConflict(all, domain.SlotProposal{
		PatientID:            in.PatientID,
		DoctorID:             in.DoctorID,
		Day:                  day,
		Slot:                 slot,
		ExcludeAppointmentID: in.AppointmentID,
	})
	if res.Conflict() {
		s.metrics.ObserveConflict(res.Doctor, res.Patient)
		token := s.pending.put(pendingOverride{
			appt:            appt,
			doctorConflict:  res.Doctor,
			patientConflict: res.Patient,
		})
		return SubmitResult{
			OverrideToken:   token,
			DoctorConflict:  res.Doctor,
			PatientConflict: res.Patient,
		}, nil
	}

	committed, err := s.commit(ctx, appt)
	if err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Committed: true, Appointment: committed}, nil
}

// ConfirmOverride commits exactly the payload captured when the conflict was
// detected. It is not re-validated and not re-checked against newer data. A
// failed commit re-arms the pending entry under the same token so the caller
// can retry or dismiss.
func (s *Service) ConfirmOverride(ctx context.Context, token string) (domain.Appointment, error) {
	p, ok := s.pending.take(token)
	if !ok {
		return domain.Appointment{}, ErrOverrideNotFound
	}

	committed, err := s.commit(ctx, p.appt)
	if err != nil {
		s.pending.restore(token, p)
		return domain.Appointment{}, err
	}

	s.metrics.ObserveOverride("confirmed")
	return committed, nil
}

// DismissOverride discards the pending payload; the caller adjusts the form
// and submits again.
func (s *Service) DismissOverride(token string) error {
	if !s.pending.dismiss(token) {
		return ErrOverrideNotFound
	}
	s.metrics.ObserveOverride("dismissed")
	return nil
}

func (s *Service) commit(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if appt.ID == 0 {
		return s.repo.Create(ctx, appt)
	}
	return s.repo.Update(ctx, appt)
}

// Create writes directly to the store without conflict evaluation. Double
// booking is advisory, so the raw write path stays open to external callers.
func (s *Service) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	appt.ID = 0
	appt.Reason = sanitize.Text(appt.Reason, sanitize.DefaultMaxLen)
	return s.repo.Create(ctx, appt)
}

// Update replaces all fields of an existing appointment, again without
// conflict evaluation.
func (s *Service) Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	appt.Reason = sanitize.Text(appt.Reason, sanitize.DefaultMaxLen)
	return s.repo.Update(ctx, appt)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter store.AppointmentFilter) ([]domain.Appointment, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Availability returns the busy slot labels for a doctor on a day, sorted,
// optionally excluding the appointment being edited.
func (s *Service) Availability(ctx context.Context, doctorID int64, day time.Time, excludeID int64) ([]string, error) {
	if doctorID == 0 || day.IsZero() {
		return []string{}, nil
	}

	appts, err := s.repo.List(ctx, store.AppointmentFilter{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}

	busy := domain.BusySlots(appts, doctorID, day, excludeID)
	out := make([]string, 0, len(busy))
	for slot := range busy {
		out = append(out, slot)
	}
	sort.Strings(out)
	return out, nil
}

// TodayEntry pairs an appointment with its snapped slot label for the daily
// schedule panel.
type TodayEntry struct {
	Appointment domain.Appointment
	Slot        string
}

// Today lists the appointments falling on the calendar day of now, in time
// order.
func (s *Service) Today(ctx context.Context, now time.Time) ([]TodayEntry, error) {
	all, err := s.repo.List(ctx, store.AppointmentFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]TodayEntry, 0)
	for _, a := range all {
		if a.DateTime.IsZero() || !domain.SameDay(a.DateTime, now) {
			continue
		}
		entries = append(entries, TodayEntry{Appointment: a, Slot: domain.SnapToSlot(a.DateTime)})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Appointment.DateTime.Before(entries[j].Appointment.DateTime)
	})
	return entries, nil
}
