package postgres

import (
	"context"

	"github.com/uptrace/bun"

	"aihc/backend/internal/domain"
	"aihc/backend/internal/store"
)

type DoctorRepo struct {
	db *bun.DB
}

func NewDoctorRepo(db *bun.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func (r *DoctorRepo) Create(ctx context.Context, d domain.Doctor) (domain.Doctor, error) {
	m := d
	m.ID = 0
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Doctor{}, err
	}
	return m, nil
}

func (r *DoctorRepo) Update(ctx context.Context, d domain.Doctor) (domain.Doctor, error) {
	m := d
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "specialty", "bio", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Doctor{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Doctor{}, err
	}
	if affected == 0 {
		return domain.Doctor{}, store.ErrNotFound
	}
	return m, nil
}

func (r *DoctorRepo) Get(ctx context.Context, id int64) (domain.Doctor, error) {
	var m domain.Doctor
	err := r.db.NewSelect().
		Model(&m).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return domain.Doctor{}, store.ErrNotFound
		}
		return domain.Doctor{}, err
	}
	return m, nil
}

func (r *DoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	rows := make([]domain.Doctor, 0)
	err := r.db.NewSelect().
		Model(&rows).
		OrderExpr("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DoctorRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*domain.Doctor)(nil)).
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
