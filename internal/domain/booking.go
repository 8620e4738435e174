package domain

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusCanceled = "canceled"
	StatusRefused  = "refused"
)

var BookingStatuses = []string{StatusPending, StatusApproved, StatusCanceled, StatusRefused}

func ValidBookingStatus(s string) bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Booking references its owner and room; it does not own them. There is
// deliberately no transition graph on Status: any status may follow any
// other through the status update operation.
type Booking struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;index;not null" json:"user"`
	RoomID string `gorm:"size:36;index;not null" json:"room"`

	User *User `gorm:"foreignKey:UserID" json:"userRef,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID" json:"roomRef,omitempty"`

	StartDate time.Time `gorm:"not null;index" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	Status    string    `gorm:"size:16;not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Booking) TableName() string { return "bookings" }

// BookingFilter narrows listing queries. The date pair selects bookings
// contained in [From, To] (start >= From and end <= To), not bookings that
// merely overlap it. Both dates must be set for the range to apply.
type BookingFilter struct {
	UserID string
	RoomID string
	From   *time.Time
	To     *time.Time
}

// HourCount is one peak-hours histogram bucket; Hour is 0-23 in UTC.
type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type BookingRepository interface {
	Create(b *Booking) error
	FindAll() ([]Booking, error)
	FindByFilter(f BookingFilter) ([]Booking, error)
	FindByID(id string) (*Booking, error)
	// FindByIDWithRefs loads the booking along with its user and room.
	FindByIDWithRefs(id string) (*Booking, error)
	Update(b *Booking) error
	UpdateStatus(id, status string) error
	Delete(id string) (*Booking, error)
	// RoomIDsBookedSince returns the distinct rooms referenced by bookings
	// whose start falls at or after since.
	RoomIDsBookedSince(since time.Time) ([]string, error)
}
