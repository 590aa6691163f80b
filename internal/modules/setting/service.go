package setting

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"officecal/internal/domain"
)

type Service struct {
	settings SettingStore
}

func NewService(settings SettingStore) *Service {
	return &Service{settings: settings}
}

// Set writes a preference for the employee, overwriting any previous
// value for the same key.
func (s *Service) Set(ctx context.Context, employeeID int64, req SettingRequest) (*domain.Setting, error) {
	entry := &domain.Setting{
		EmployeeID: employeeID,
		Key:        req.Key,
		Value:      req.Value,
	}
	if err := s.settings.Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return s.settings.Get(ctx, employeeID, req.Key)
}

func (s *Service) List(ctx context.Context, employeeID int64) ([]domain.Setting, error) {
	return s.settings.ListForEmployee(ctx, employeeID)
}

func (s *Service) Get(ctx context.Context, employeeID int64, key string) (*domain.Setting, error) {
	entry, err := s.settings.Get(ctx, employeeID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, employeeID int64, key string) error {
	ok, err := s.settings.Delete(ctx, employeeID, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
