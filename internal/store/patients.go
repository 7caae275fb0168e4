package store

import (
	"context"

	"aihc/backend/internal/domain"
)

type PatientRepository interface {
	Create(ctx context.Context, p domain.Patient) (domain.Patient, error)
	Update(ctx context.Context, p domain.Patient) (domain.Patient, error)
	Get(ctx context.Context, id int64) (domain.Patient, error)
	List(ctx context.Context) ([]domain.Patient, error)
	Delete(ctx context.Context, id int64) error
}
