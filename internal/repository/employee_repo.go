package repository

import (
	"context"

	"gorm.io/gorm"

	"officecal/internal/domain"
)

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	var e domain.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var out []domain.Employee
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) (bool, error) {
	updates := map[string]any{
		"name":      e.Name,
		"email":     e.Email,
		"role":      e.Role,
		"is_active": e.IsActive,
	}
	if e.PasswordHash != "" {
		updates["password_hash"] = e.PasswordHash
	}

	res := r.db.WithContext(ctx).Model(&domain.Employee{}).Where("id = ?", e.ID).Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
