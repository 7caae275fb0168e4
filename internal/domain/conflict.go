package domain

import "time"

// BusySlots computes the set of slot labels already occupied for a doctor on
// a calendar day, derived fresh from the full appointment collection on every
// call. excludeID names an appointment whose own slot must stay selectable
// (the one currently being edited); zero means no exclusion.
//
// A zero doctor id or zero day yields an empty set: with nothing selected
// there is nothing to check against. Zero-valued timestamps are skipped, they
// cannot collide.
func BusySlots(appts []Appointment, doctorID int64, day time.Time, excludeID int64) map[string]struct{} {
	busy := make(map[string]struct{})
	if doctorID == 0 || day.IsZero() {
		return busy
	}

	for _, a := range appts {
		if a.DoctorID != doctorID {
			continue
		}
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if a.DateTime.IsZero() {
			continue
		}
		if !SameDay(a.DateTime, day) {
			continue
		}
		busy[SnapToSlot(a.DateTime)] = struct{}{}
	}

	return busy
}

// SlotProposal is a candidate (doctor, patient, day, slot) tuple to be checked
// for double-booking. ExcludeAppointmentID is the appointment being edited, if
// any; its own bookings never count against the proposal.
type SlotProposal struct {
	PatientID            int64
	DoctorID             int64
	Day                  time.Time
	Slot                 string
	ExcludeAppointmentID int64
}

// ConflictResult carries the two independent collision checks. Either one is
// enough to flag the proposal; both are advisory and overridable.
type ConflictResult struct {
	Doctor  bool
	Patient bool
}

func (r ConflictResult) Conflict() bool {
	return r.Doctor || r.Patient
}

// EvaluateConflict decides whether committing the proposal would double-book
// the doctor or the patient on the proposed day and slot. It is a total
// function over the in-memory appointment collection and never fails.
func EvaluateConflict(appts []Appointment, p SlotProposal) ConflictResult {
	var res ConflictResult

	busy := BusySlots(appts, p.DoctorID, p.Day, p.ExcludeAppointmentID)
	if _, taken := busy[p.Slot]; taken {
		res.Doctor = true
	}

	for _, a := range appts {
		if a.PatientID != p.PatientID {
			continue
		}
		if p.ExcludeAppointmentID != 0 && a.ID == p.ExcludeAppointmentID {
			continue
		}
		if a.DateTime.IsZero() || !SameDay(a.DateTime, p.Day) {
			continue
		}
		if SnapToSlot(a.DateTime) == p.Slot {
			res.Patient = true
			break
		}
	}

	return res
}
