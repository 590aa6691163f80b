package employee

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"officecal/internal/domain"
)

type MockEmployeeStore struct {
	mock.Mock
}

func (m *MockEmployeeStore) Create(ctx context.Context, e *domain.Employee) error {
	args := m.Called(ctx, e)
	e.ID = 42
	return args.Error(0)
}

func (m *MockEmployeeStore) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeStore) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeStore) List(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeStore) Update(ctx context.Context, e *domain.Employee) (bool, error) {
	args := m.Called(ctx, e)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeStore) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestCreate_HashesPassword(t *testing.T) {
	store := new(MockEmployeeStore)
	store.On("GetByEmail", mock.Anything, "new@office.test").Return(nil, gorm.ErrRecordNotFound)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(store)
	e, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:     "New Person",
		Email:    "new@office.test",
		Password: "supersecret",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), e.ID)
	assert.Equal(t, domain.RoleEmployee, e.Role)
	assert.True(t, e.IsActive)
	assert.NotEqual(t, "supersecret", e.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte("supersecret")))
}

func TestCreate_EmailTaken(t *testing.T) {
	store := new(MockEmployeeStore)
	store.On("GetByEmail", mock.Anything, "taken@office.test").
		Return(&domain.Employee{ID: 7, Email: "taken@office.test"}, nil)

	svc := NewService(store)
	_, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Name:     "Dup",
		Email:    "taken@office.test",
		Password: "supersecret",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_KeepsRoleWhenOmitted(t *testing.T) {
	store := new(MockEmployeeStore)
	existing := &domain.Employee{ID: 5, Name: "Old", Email: "old@office.test", Role: domain.RoleAdmin, IsActive: true}
	store.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	store.On("Update", mock.Anything, mock.MatchedBy(func(e *domain.Employee) bool {
		return e.Role == domain.RoleAdmin && e.Name == "New Name"
	})).Return(true, nil)

	svc := NewService(store)
	_, err := svc.Update(context.Background(), 5, UpdateEmployeeRequest{
		Name:  "New Name",
		Email: "old@office.test",
	})

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	store := new(MockEmployeeStore)
	store.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(store)
	_, err := svc.Update(context.Background(), 99, UpdateEmployeeRequest{
		Name:  "Ghost",
		Email: "ghost@office.test",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	store := new(MockEmployeeStore)
	store.On("Delete", mock.Anything, int64(99)).Return(false, nil)

	svc := NewService(store)
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrNotFound)
}
