package domain

import (
	"fmt"
	"time"
)

// The bookable day is discretized into fixed 15-minute slots, 00:00 through
// 23:45. A slot is identified solely by its HH:MM label; label equality is the
// only "same slot" comparison anywhere in the system.

const (
	slotMinutes    = 15
	slotsPerDay    = 24 * 60 / slotMinutes
	lastSlotMinute = 23*60 + 45

	// DateTimeLayout is the combined date+time wire format exchanged with
	// clients and decomposed back into date and time parts for editing.
	DateTimeLayout = "2006-01-02T15:04"
	DateLayout     = "2006-01-02"
	SlotLayout     = "15:04"
)

// TimeSlots returns all 96 slot labels of a day in increasing order.
func TimeSlots() []string {
	slots := make([]string, 0, slotsPerDay)
	for i := 0; i < slotsPerDay; i++ {
		h := i / 4
		m := (i % 4) * slotMinutes
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
	}
	return slots
}

// SnapToSlot maps a stored timestamp to its slot label: minutes since
// midnight rounded up to the next multiple of 15, clamped to the last slot of
// the day. It applies wherever a stored timestamp's slot is derived; user
// chosen labels come straight from the fixed list and are never re-snapped.
func SnapToSlot(t time.Time) string {
	local := t.In(time.Local)
	total := local.Hour()*60 + local.Minute()

	snapped := ((total + slotMinutes - 1) / slotMinutes) * slotMinutes
	if snapped > lastSlotMinute {
		snapped = lastSlotMinute
	}
	return fmt.Sprintf("%02d:%02d", snapped/60, snapped%60)
}

// SameDay reports whether t falls on the given calendar day, compared by
// exact year/month/day equality in local time.
func SameDay(t, day time.Time) bool {
	ty, tm, td := t.In(time.Local).Date()
	dy, dm, dd := day.In(time.Local).Date()
	return ty == dy && tm == dm && td == dd
}

// CombineDateTime assembles the wire timestamp from separately edited date
// and time parts.
func CombineDateTime(datePart, timePart string) string {
	return datePart + "T" + timePart
}

// SplitDateTime decomposes a stored timestamp into a date part and a snapped
// slot label for pre-populating an edit form. The snap is display-only: a
// value created externally may not be grid-aligned.
func SplitDateTime(t time.Time) (datePart, slotPart string) {
	local := t.In(time.Local)
	return local.Format(DateLayout), SnapToSlot(local)
}

// ParseDateTime parses the combined wire format in local time.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, s, time.Local)
}

// ParseDate parses a bare calendar date in local time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}
