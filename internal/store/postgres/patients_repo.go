package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/store"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

type PatientRepo struct {
	db *bun.DB
}

func NewPatientRepo(db *bun.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

func (r *PatientRepo) Create(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	m := p
	m.ID = 0
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Patient{}, err
	}
	return m, nil
}

func (r *PatientRepo) Update(ctx context.Context, p domain.Patient) (domain.Patient, error) {
	m := p
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "age", "gender", "medical_history", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Patient{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Patient{}, err
	}
	if affected == 0 {
		return domain.Patient{}, store.ErrNotFound
	}
	return m, nil
}

func (r *PatientRepo) Get(ctx context.Context, id int64) (domain.Patient, error) {
	var m domain.Patient
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return domain.Patient{}, store.ErrNotFound
		}
		return domain.Patient{}, err
	}
	return m, nil
}

func (r *PatientRepo) List(ctx context.Context) ([]domain.Patient, error) {
	rows := make([]domain.Patient, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PatientRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.Patient)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
