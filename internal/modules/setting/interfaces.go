package setting

import (
	"context"

	"officecal/internal/domain"
)

type SettingStore interface {
	Upsert(ctx context.Context, s *domain.Setting) error
	ListForEmployee(ctx context.Context, employeeID int64) ([]domain.Setting, error)
	Get(ctx context.Context, employeeID int64, key string) (*domain.Setting, error)
	Delete(ctx context.Context, employeeID int64, key string) (bool, error)
}
