package domain

import "time"

const (
	LangFR = "fr"
	LangEN = "en"

	ModeDark  = "dark"
	ModeLight = "light"
)

// ModuleBooking is the only notification module today. The preference map
// stays keyed by name so new modules slot in without a schema change.
const ModuleBooking = "booking"

// AccountSetting holds per-user display and notification preferences.
// At most one row exists per user; it is created with defaults right after
// the user itself and only ever updated by its owner.
type AccountSetting struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"uniqueIndex;size:36;not null" json:"user"`

	Language string `gorm:"size:8;not null;default:fr" json:"language"`
	Mode     string `gorm:"size:8;not null;default:light" json:"mode"`

	NotificationPreferences NotificationPreferences `gorm:"type:text" json:"notificationPreferences"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (AccountSetting) TableName() string { return "account_settings" }

// BookingPrefs returns the booking module preferences and whether the
// module is configured at all.
func (s *AccountSetting) BookingPrefs() (ChannelPrefs, bool) {
	return s.ModulePrefs(ModuleBooking)
}

func (s *AccountSetting) ModulePrefs(module string) (ChannelPrefs, bool) {
	if s.NotificationPreferences == nil {
		return ChannelPrefs{}, false
	}
	p, ok := s.NotificationPreferences[module]
	return p, ok
}

type SettingRepository interface {
	Create(s *AccountSetting) error
	FindByUser(userID string) (*AccountSetting, error)
	Update(s *AccountSetting) error
}
