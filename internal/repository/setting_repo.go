package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"officecal/internal/domain"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Upsert writes the value for (employee, key), inserting or overwriting.
func (r *SettingRepository) Upsert(ctx context.Context, s *domain.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(s).Error
}

func (r *SettingRepository) ListForEmployee(ctx context.Context, employeeID int64) ([]domain.Setting, error) {
	var out []domain.Setting
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("key ASC").
		Find(&out).Error
	return out, err
}

func (r *SettingRepository) Get(ctx context.Context, employeeID int64, key string) (*domain.Setting, error) {
	var s domain.Setting
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND key = ?", employeeID, key).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) Delete(ctx context.Context, employeeID int64, key string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("employee_id = ? AND key = ?", employeeID, key).
		Delete(&domain.Setting{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
