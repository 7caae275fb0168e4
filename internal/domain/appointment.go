package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Appointment is a single scheduled meeting between one patient and one
// doctor. It is a point in time, not an interval: collisions are decided by
// snapping DateTime onto the 15-minute slot grid.
type Appointment struct {
	bun.BaseModel `bun:"table:appointments"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	PatientID int64     `bun:"patient_id,notnull" json:"patientId"`
	DoctorID  int64     `bun:"doctor_id,notnull" json:"doctorId"`
	DateTime  time.Time `bun:"date_time,notnull" json:"-"`
	Reason    string    `bun:"reason" json:"reason"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
