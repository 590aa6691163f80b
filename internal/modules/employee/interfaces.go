package employee

import (
	"context"

	"officecal/internal/domain"
)

type EmployeeStore interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
