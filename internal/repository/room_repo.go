package repository

import (
	"context"

	"gorm.io/gorm"

	"officecal/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", room.ID).Updates(map[string]any{
		"name":      room.Name,
		"capacity":  room.Capacity,
		"location":  room.Location,
		"is_active": room.IsActive,
	})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Room{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
