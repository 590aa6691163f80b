package setting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"officecal/internal/domain"
)

type fakeSettingStore struct {
	entries map[int64]map[string]string
}

func newFakeSettingStore() *fakeSettingStore {
	return &fakeSettingStore{entries: map[int64]map[string]string{}}
}

func (f *fakeSettingStore) Upsert(_ context.Context, s *domain.Setting) error {
	if f.entries[s.EmployeeID] == nil {
		f.entries[s.EmployeeID] = map[string]string{}
	}
	f.entries[s.EmployeeID][s.Key] = s.Value
	return nil
}

func (f *fakeSettingStore) ListForEmployee(_ context.Context, employeeID int64) ([]domain.Setting, error) {
	var out []domain.Setting
	for k, v := range f.entries[employeeID] {
		out = append(out, domain.Setting{EmployeeID: employeeID, Key: k, Value: v})
	}
	return out, nil
}

func (f *fakeSettingStore) Get(_ context.Context, employeeID int64, key string) (*domain.Setting, error) {
	v, ok := f.entries[employeeID][key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &domain.Setting{EmployeeID: employeeID, Key: key, Value: v}, nil
}

func (f *fakeSettingStore) Delete(_ context.Context, employeeID int64, key string) (bool, error) {
	if _, ok := f.entries[employeeID][key]; !ok {
		return false, nil
	}
	delete(f.entries[employeeID], key)
	return true, nil
}

func TestSet_OverwritesPreviousValue(t *testing.T) {
	store := newFakeSettingStore()
	svc := NewService(store)

	_, err := svc.Set(context.Background(), 1, SettingRequest{Key: "locale", Value: "en"})
	assert.NoError(t, err)

	entry, err := svc.Set(context.Background(), 1, SettingRequest{Key: "locale", Value: "de"})
	assert.NoError(t, err)
	assert.Equal(t, "de", entry.Value)

	list, err := svc.List(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSettings_IsolatedPerEmployee(t *testing.T) {
	store := newFakeSettingStore()
	svc := NewService(store)

	_, err := svc.Set(context.Background(), 1, SettingRequest{Key: "locale", Value: "en"})
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), 2, "locale")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_MissingKey(t *testing.T) {
	store := newFakeSettingStore()
	svc := NewService(store)

	assert.ErrorIs(t, svc.Delete(context.Background(), 1, "ghost"), ErrNotFound)
}
