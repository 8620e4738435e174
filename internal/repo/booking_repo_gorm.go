package repo

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"roomdesk/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

func (r *BookingRepo) Create(b *domain.Booking) error { return r.db.Create(b).Error }

func (r *BookingRepo) FindAll() ([]domain.Booking, error) {
	var bs []domain.Booking
	err := r.db.Find(&bs).Error
	return bs, err
}

// FindByFilter keeps containment semantics on the date pair: a booking only
// matches when it lies entirely inside [From, To]. One that overlaps the
// range but starts before From or ends after To is excluded.
func (r *BookingRepo) FindByFilter(f domain.BookingFilter) ([]domain.Booking, error) {
	var bs []domain.Booking
	err := applyBookingFilter(r.db.Model(&domain.Booking{}), f).Find(&bs).Error
	return bs, err
}

// applyBookingFilter narrows q by owner, room and date containment. The date
// range only applies when both ends are present; a single date is ignored.
func applyBookingFilter(q *gorm.DB, f domain.BookingFilter) *gorm.DB {
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.RoomID != "" {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.From != nil && f.To != nil {
		q = q.Where("start_date >= ? AND end_date <= ?", *f.From, *f.To)
	}
	return q
}

func (r *BookingRepo) FindByID(id string) (*domain.Booking, error) {
	return r.firstWith(r.db, id)
}

func (r *BookingRepo) FindByIDWithRefs(id string) (*domain.Booking, error) {
	return r.firstWith(r.db.Preload("User").Preload("Room"), id)
}

func (r *BookingRepo) Update(b *domain.Booking) error { return r.db.Save(b).Error }

func (r *BookingRepo) UpdateStatus(id, status string) error {
	res := r.db.Model(&domain.Booking{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *BookingRepo) Delete(id string) (*domain.Booking, error) {
	b, err := r.FindByID(id)
	if err != nil || b == nil {
		return nil, err
	}
	if err := r.db.Delete(&domain.Booking{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return b, nil
}

func (r *BookingRepo) RoomIDsBookedSince(since time.Time) ([]string, error) {
	var ids []string
	err := r.db.Model(&domain.Booking{}).
		Where("start_date >= ?", since).
		Distinct().Pluck("room_id", &ids).Error
	return ids, err
}

func (r *BookingRepo) firstWith(tx *gorm.DB, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := tx.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
