// Package patients validates and stores patient records. The edit form treats
// every field as required even though storage does not enforce it.
package patients

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
	repo store.PatientRepository
}

func NewService(repo store.PatientRepository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name           string
	Age            int
	Gender         string
	MedicalHistory string
}

func (s *Service) validate(in Input) (domain.Patient, error) {
	p := domain.Patient{
		Name:           sanitize.Text(in.Name, sanitize.DefaultMaxLen),
		Age:            in.Age,
		Gender:         sanitize.Text(in.Gender, sanitize.DefaultMaxLen),
		MedicalHistory: sanitize.Text(in.MedicalHistory, sanitize.LongMaxLen),
	}

	var missing []string
	if p.Name == "" {
		missing = append(missing, "name")
	}
	if in.Age <= 0 {
		missing = append(missing, "age")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if p.MedicalHistory == "" {
		missing = append(missing, "medicalHistory")
	}
	if len(missing) > 0 {
		return domain.Patient{}, &ValidationError{Fields: missing}
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (domain.Patient, error) {
	p, err := s.validate(in)
	if err != nil {
		return domain.Patient{}, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (domain.Patient, error) {
	p, err := s.validate(in)
	if err != nil {
		return domain.Patient{}, err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Patient, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
