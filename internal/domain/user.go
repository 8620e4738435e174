package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	Username     string `gorm:"size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string `gorm:"size:100" json:"-"`
	Role         string `gorm:"size:16;not null;default:user" json:"role"`
	Phone        string `gorm:"size:32" json:"phone,omitempty"`
	FcmToken     string `gorm:"size:255" json:"fcmToken,omitempty"`

	// Reset token and expiry are set and cleared together.
	ResetPasswordToken   *string    `gorm:"size:64;index" json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`

	Provider string `gorm:"size:16" json:"provider,omitempty"` // "", "google", "facebook", "apple"

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type UserRepository interface {
	Create(u *User) error
	FindAll() ([]User, error)
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByResetToken(token string) (*User, error)
	FindAdmins() ([]User, error)
	Update(u *User) error
	Delete(id string) (*User, error)
}
