package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON-valued columns shared by Room and AccountSetting. gorm has no map
// column type that is portable across mysql and postgres, so these scan and
// value themselves as serialized JSON in a text column.

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst any, src any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(s, dst)
	case string:
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue([]string(l))
}

func (l *StringList) Scan(src any) error { return jsonScan(l, src) }

// DayHours is one day of the weekly availability table. Open and Close are
// "HH:MM" strings; both nil means closed that day.
type DayHours struct {
	Open  *string `json:"open"`
	Close *string `json:"close"`
}

type WeekSchedule map[string]DayHours

func (s WeekSchedule) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	return jsonValue(map[string]DayHours(s))
}

func (s *WeekSchedule) Scan(src any) error { return jsonScan(s, src) }

// ChannelPrefs is the per-module notification channel triple.
type ChannelPrefs struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	SMS   bool `json:"sms"`
}

// NotificationPreferences maps a notification module name (today only
// ModuleBooking) to its channel preferences.
type NotificationPreferences map[string]ChannelPrefs

func (p NotificationPreferences) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	return jsonValue(map[string]ChannelPrefs(p))
}

func (p *NotificationPreferences) Scan(src any) error { return jsonScan(p, src) }
