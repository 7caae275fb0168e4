package store

import (
	"context"

	"aihc/backend/internal/domain"
)

type DoctorRepository interface {
	Create(ctx context.Context, d domain.Doctor) (domain.Doctor, error)
	Update(ctx context.Context, d domain.Doctor) (domain.Doctor, error)
	Get(ctx context.Context, id int64) (domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	Delete(ctx context.Context, id int64) error
}
