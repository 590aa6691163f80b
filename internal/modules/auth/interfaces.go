package auth

import (
	"context"

	"officecal/internal/domain"
)

type EmployeeStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
}

type TokenIssuer interface {
	GenerateToken(employeeID int64, role string) (string, error)
}
