// Package doctors validates and stores doctor records.
package doctors

import (
	"context"
	"strings"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/sanitize"
	"aihc/backend/internal/store"
)

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

type Service struct {
	repo store.DoctorRepository
}

func NewService(repo store.DoctorRepository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name      string
	Specialty string
	Bio       string
}

func (s *Service) validate(in Input) (domain.Doctor, error) {
	d := domain.Doctor{
		Name:      sanitize.Text(in.Name, sanitize.DefaultMaxLen),
		Specialty: sanitize.Text(in.Specialty, sanitize.DefaultMaxLen),
		Bio:       sanitize.Text(in.Bio, sanitize.LongMaxLen),
	}

	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Specialty == "" {
		missing = append(missing, "specialty")
	}
	if d.Bio == "" {
		missing = append(missing, "bio")
	}
	if len(missing) > 0 {
		return domain.Doctor{}, &ValidationError{Fields: missing}
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, in Input) (domain.Doctor, error) {
	d, err := s.validate(in)
	if err != nil {
		return domain.Doctor{}, err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (domain.Doctor, error) {
	d, err := s.validate(in)
	if err != nil {
		return domain.Doctor{}, err
	}
	d.ID = id
	return s.repo.Update(ctx, d)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
