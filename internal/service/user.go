package service

import (
	"fmt"
	"strings"

	"roomdesk/internal/domain"
	"roomdesk/pkg/utils"
)

// UserService is the user directory. Password hashing happens here, at the
// service boundary, so the transformation is explicit and testable rather
// than hidden in a persistence hook.
type UserService struct {
	users    domain.UserRepository
	settings *SettingsService
}

func NewUserService(users domain.UserRepository, settings *SettingsService) *UserService {
	return &UserService{users: users, settings: settings}
}

type CreateUserInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Provider string `json:"provider" binding:"omitempty,oneof=google facebook apple"`
}

type UpdateUserInput struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=64"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin user"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
}

// Create stores the user and auto-creates their account settings with
// defaults. Non-SSO users must carry a password.
func (s *UserService) Create(in CreateUserInput) (*domain.User, error) {
	if in.Provider == "" && in.Password == "" {
		return nil, fmt.Errorf("%w: password required", ErrInvalid)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	u := &domain.User{
		ID:       utils.NewID(),
		Username: strings.TrimSpace(in.Username),
		Email:    strings.TrimSpace(strings.ToLower(in.Email)),
		Role:     role,
		Phone:    strings.TrimSpace(in.Phone),
		Provider: in.Provider,
	}
	if in.Password != "" {
		u.PasswordHash = utils.HashPassword(in.Password)
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	if err := s.settings.CreateDefaults(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) FindAll() ([]domain.User, error) { return s.users.FindAll() }

func (s *UserService) FindByID(id string) (*domain.User, error) {
	u, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return u, nil
}

func (s *UserService) FindByEmail(email string) (*domain.User, error) {
	return s.users.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
}

func (s *UserService) FindAdmins() ([]domain.User, error) { return s.users.FindAdmins() }

// Update applies the supplied fields; a new password is hashed on the way in.
func (s *UserService) Update(id string, in UpdateUserInput) (*domain.User, error) {
	u, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		u.Username = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		u.Email = strings.TrimSpace(strings.ToLower(*in.Email))
	}
	if in.Password != nil && *in.Password != "" {
		u.PasswordHash = utils.HashPassword(*in.Password)
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateFcmToken(id, token string) error {
	u, err := s.FindByID(id)
	if err != nil {
		return err
	}
	u.FcmToken = token
	return s.users.Update(u)
}

func (s *UserService) Delete(id string) (*domain.User, error) {
	u, err := s.users.Delete(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return u, nil
}
