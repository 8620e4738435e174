package repo

import (
	"errors"

	"gorm.io/gorm"

	"roomdesk/internal/domain"
)

type SettingRepo struct{ db *gorm.DB }

func NewSettingRepo(db *gorm.DB) *SettingRepo { return &SettingRepo{db: db} }

func (r *SettingRepo) Create(s *domain.AccountSetting) error { return r.db.Create(s).Error }

func (r *SettingRepo) FindByUser(userID string) (*domain.AccountSetting, error) {
	var s domain.AccountSetting
	err := r.db.First(&s, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepo) Update(s *domain.AccountSetting) error { return r.db.Save(s).Error }
