package repo

import (
	"errors"

	"gorm.io/gorm"

	"roomdesk/internal/domain"
)

type RoomRepo struct{ db *gorm.DB }

func NewRoomRepo(db *gorm.DB) *RoomRepo { return &RoomRepo{db: db} }

func (r *RoomRepo) Create(m *domain.Room) error { return r.db.Create(m).Error }

func (r *RoomRepo) FindAll() ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.Order("name asc").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepo) FindByID(id string) (*domain.Room, error) {
	var m domain.Room
	err := r.db.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RoomRepo) FindPublic() ([]domain.Room, error) {
	var rooms []domain.Room
	err := r.db.Where("is_active = ? AND is_reservable = ?", true, true).
		Order("name asc").Find(&rooms).Error
	return rooms, err
}

// FindPublicByID applies the public predicate in the query itself, so a room
// that exists but is inactive or unreservable is indistinguishable from one
// that does not exist.
func (r *RoomRepo) FindPublicByID(id string) (*domain.Room, error) {
	var m domain.Room
	err := r.db.First(&m, "id = ? AND is_active = ? AND is_reservable = ?", id, true, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RoomRepo) Update(m *domain.Room) error { return r.db.Save(m).Error }

func (r *RoomRepo) Delete(id string) (*domain.Room, error) {
	m, err := r.FindByID(id)
	if err != nil || m == nil {
		return nil, err
	}
	if err := r.db.Delete(&domain.Room{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return m, nil
}
