package employee

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"officecal/internal/domain"
	"officecal/internal/pkg/validator"
)

type Service struct {
	employees EmployeeStore
}

func NewService(employees EmployeeStore) *Service {
	return &Service{employees: employees}
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*domain.Employee, error) {
	if _, err := s.employees.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := domain.RoleEmployee
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	e := &domain.Employee{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if errs := validator.Validate(e); errs != nil {
		return nil, ErrValidation
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Employee, error) {
	return s.employees.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*domain.Employee, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != existing.Email {
		if other, err := s.employees.GetByEmail(ctx, req.Email); err == nil && other.ID != id {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	e := &domain.Employee{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Role:     existing.Role,
		IsActive: existing.IsActive,
	}
	if req.Role != "" {
		e.Role = domain.Role(req.Role)
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		e.PasswordHash = string(hash)
	}

	ok, err := s.employees.Update(ctx, e)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return s.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.employees.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
