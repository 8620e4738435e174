package service

import (
	"fmt"

	"roomdesk/internal/domain"
	"roomdesk/pkg/utils"
)

type SettingsService struct {
	settings domain.SettingRepository
}

func NewSettingsService(settings domain.SettingRepository) *SettingsService {
	return &SettingsService{settings: settings}
}

// CreateDefaults provisions the one settings row a user gets, right after
// user creation. SMS defaults on only when the user has a phone on file.
func (s *SettingsService) CreateDefaults(u *domain.User) error {
	setting := &domain.AccountSetting{
		ID:       utils.NewID(),
		UserID:   u.ID,
		Language: domain.LangFR,
		Mode:     domain.ModeLight,
		NotificationPreferences: domain.NotificationPreferences{
			domain.ModuleBooking: {
				Email: true,
				Push:  true,
				SMS:   u.Phone != "",
			},
		},
	}
	return s.settings.Create(setting)
}

func (s *SettingsService) FindByUser(userID string) (*domain.AccountSetting, error) {
	setting, err := s.settings.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, fmt.Errorf("%w: settings for user %s", ErrNotFound, userID)
	}
	return setting, nil
}

type UpdateSettingInput struct {
	Language *string `json:"language" binding:"omitempty,oneof=fr en"`
	Mode     *string `json:"mode" binding:"omitempty,oneof=dark light"`
	// When present, the whole preference map is replaced, not merged
	// per module. The merge is flat at the top level only.
	NotificationPreferences domain.NotificationPreferences `json:"notificationPreferences" binding:"omitempty"`
}

// UpdateByUser applies a flat merge of the supplied top-level fields.
// Supplying notificationPreferences swaps the stored map wholesale; omitting
// it leaves every module untouched.
func (s *SettingsService) UpdateByUser(userID string, in UpdateSettingInput) (*domain.AccountSetting, error) {
	setting, err := s.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if in.Language != nil {
		setting.Language = *in.Language
	}
	if in.Mode != nil {
		setting.Mode = *in.Mode
	}
	if in.NotificationPreferences != nil {
		setting.NotificationPreferences = in.NotificationPreferences
	}
	if err := s.settings.Update(setting); err != nil {
		return nil, err
	}
	return setting, nil
}
