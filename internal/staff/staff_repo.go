package staff

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Staff) error
	FindAll(ctx context.Context) ([]Staff, error)
	FindByID(ctx context.Context, id string) (*Staff, error)
	FindActiveByRole(ctx context.Context, role string) ([]Staff, error)
	Update(ctx context.Context, m *Staff) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, m *Staff) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Staff, error) {
	var members []Staff
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&members).Error
	return members, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Staff, error) {
	var m Staff
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) FindActiveByRole(ctx context.Context, role string) ([]Staff, error) {
	db := r.db.WithContext(ctx).Where("active = ?", true)

	switch role {
	case RoleSupervisor:
		db = db.Where("is_supervisor = ?", true)
	case RoleHR:
		db = db.Where("is_hr = ?", true)
	case RoleED:
		db = db.Where("is_ed = ?", true)
	}

	var members []Staff
	err := db.Order("full_name ASC").Find(&members).Error
	return members, err
}

func (r *repository) Update(ctx context.Context, m *Staff) error {
	return r.db.WithContext(ctx).Save(m).Error
}
