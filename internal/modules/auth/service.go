package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"officecal/internal/domain"
)

type Service struct {
	employees EmployeeStore
	tokens    TokenIssuer
}

func NewService(employees EmployeeStore, tokens TokenIssuer) *Service {
	return &Service{employees: employees, tokens: tokens}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	e, err := s.employees.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !e.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.tokens.GenerateToken(e.ID, string(e.Role))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:    token,
		Employee: toEmployeeResponse(e),
	}, nil
}

func (s *Service) Me(ctx context.Context, employeeID int64) (*EmployeeResponse, error) {
	e, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	resp := toEmployeeResponse(e)
	return &resp, nil
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:    e.ID,
		Name:  e.Name,
		Email: e.Email,
		Role:  string(e.Role),
	}
}
