package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type Patient struct {
	bun.BaseModel `bun:"table:patients"`

	ID             int64     `bun:"id,pk,autoincrement" json:"id"`
	Name           string    `bun:"name,notnull" json:"name"`
	Age            int       `bun:"age,notnull" json:"age"`
	Gender         string    `bun:"gender,notnull" json:"gender"`
	MedicalHistory string    `bun:"medical_history" json:"medicalHistory"`
	CreatedAt      time.Time `bun:"created_at,notnull" json:"-"`
	UpdatedAt      time.Time `bun:"updated_at,notnull" json:"-"`
}

func (p *Patient) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		p.UpdatedAt = now
	}
	return nil
}
