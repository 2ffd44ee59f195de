package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
)

type StaffRepository struct {
	db *gorm.DB
}

type StaffRepositoryInterface interface {
	Create(ctx context.Context, user *model.StaffUser) error
	FindByEmail(ctx context.Context, email string) (*model.StaffUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.StaffUser, error)
}

var _ StaffRepositoryInterface = (*StaffRepository)(nil)

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, user *model.StaffUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	var user model.StaffUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.StaffUser, error) {
	var user model.StaffUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}
