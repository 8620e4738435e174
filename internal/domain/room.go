package domain

import "time"

const (
	RoomMeeting    = "meeting"
	RoomOpenSpace  = "open-space"
	RoomStudio     = "studio"
	RoomRelaxation = "relaxation"
	RoomKitchen    = "kitchen"
)

var RoomTypes = []string{RoomMeeting, RoomOpenSpace, RoomStudio, RoomRelaxation, RoomKitchen}

type Room struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Name        string     `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Type        string     `gorm:"size:16;not null" json:"type"`
	Description string     `gorm:"size:1024" json:"description,omitempty"`
	Amenities   StringList `gorm:"type:text" json:"amenities"`
	Capacity    int        `gorm:"not null;default:1" json:"capacity"`
	Images      StringList `gorm:"type:text" json:"images"`

	IsActive     bool    `gorm:"not null;default:true" json:"isActive"`
	PricePerHour float64 `gorm:"not null;default:0" json:"pricePerHour"`
	PricePerDay  float64 `gorm:"not null;default:0" json:"pricePerDay"`

	AvailabilitySchedule WeekSchedule `gorm:"type:text" json:"availabilitySchedule"`

	IsReservable   bool `gorm:"not null;default:false" json:"isReservable"`
	ShowInHomepage bool `gorm:"not null;default:false" json:"showInHomepage"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Room) TableName() string { return "rooms" }

// IsPublic reports whether the room is visible without authentication:
// active and open for reservation.
func (r *Room) IsPublic() bool { return r.IsActive && r.IsReservable }

// DefaultWeekSchedule is the catalog default: weekdays 08:00-18:00, closed
// on the weekend.
func DefaultWeekSchedule() WeekSchedule {
	open, close := "08:00", "18:00"
	s := WeekSchedule{}
	for _, d := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		o, c := open, close
		s[d] = DayHours{Open: &o, Close: &c}
	}
	s["saturday"] = DayHours{}
	s["sunday"] = DayHours{}
	return s
}

type RoomRepository interface {
	Create(r *Room) error
	FindAll() ([]Room, error)
	FindByID(id string) (*Room, error)
	FindPublic() ([]Room, error)
	FindPublicByID(id string) (*Room, error)
	Update(r *Room) error
	Delete(id string) (*Room, error)
}
