package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/model"
	"github.com/PittsfordPerformanceCare/ppc-outcome-registry-sub002/internal/taskqueue"
)

// ClinicianRepository reads the clinician directory maintained by the
// practice management system. This service never creates or removes entries.
type ClinicianRepository struct {
	db *gorm.DB
}

var _ taskqueue.ClinicianDirectory = (*ClinicianRepository)(nil)

func NewClinicianRepository(db *gorm.DB) *ClinicianRepository {
	return &ClinicianRepository{db: db}
}

func (r *ClinicianRepository) LookupClinician(ctx context.Context, id uuid.UUID) (*model.Clinician, error) {
	var clinician model.Clinician
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&clinician).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &clinician, nil
}

func (r *ClinicianRepository) List(ctx context.Context) ([]model.Clinician, error) {
	var clinicians []model.Clinician
	err := r.db.WithContext(ctx).Order("name").Find(&clinicians).Error
	return clinicians, err
}
