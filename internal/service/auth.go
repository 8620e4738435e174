package service

import (
	"context"
	"fmt"
	"time"

	"roomdesk/internal/core/auth"
	"roomdesk/internal/domain"
	"roomdesk/internal/notify"
	"roomdesk/internal/sso"
	"roomdesk/pkg/utils"
)

const resetTokenTTL = time.Hour

// AuthService handles credential login, password reset and SSO upsert.
// Token mechanics stay in core/auth; mail transport stays in notify.
type AuthService struct {
	users       *UserService
	repo        domain.UserRepository
	jwter       *auth.JWTer
	mail        notify.EmailSender
	frontendURL string
	now         func() time.Time
}

func NewAuthService(users *UserService, repo domain.UserRepository, jwter *auth.JWTer, mail notify.EmailSender, frontendURL string) *AuthService {
	return &AuthService{
		users:       users,
		repo:        repo,
		jwter:       jwter,
		mail:        mail,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// Login verifies email/password and issues an access token. An unknown email
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", ErrUnauthorized)
	}
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return s.issue(u)
}

// Register creates the account (and its default settings) and logs it in.
func (s *AuthService) Register(in CreateUserInput) (*LoginResult, error) {
	in.Role = domain.RoleUser
	in.Provider = ""
	u, err := s.users.Create(in)
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// RequestPasswordReset stores a fresh single-use token on the user and mails
// the reset link. The response does not include the token.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("%w: no account for %s", ErrNotFound, email)
	}

	token := utils.NewID()
	expires := s.now().Add(resetTokenTTL)
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
	if err := s.repo.Update(u); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	return s.mail.Send(ctx, u.Email, "Reset your password", "reset-password",
		map[string]any{"resetLink": resetLink})
}

// ResetPasswordConfirm validates the token, replaces the credential and
// clears the token pair. Expired and unknown tokens fail the same way.
func (s *AuthService) ResetPasswordConfirm(token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrInvalid)
	}
	u, err := s.repo.FindByResetToken(token)
	if err != nil {
		return err
	}
	if u == nil || u.ResetPasswordExpires == nil || s.now().After(*u.ResetPasswordExpires) {
		return fmt.Errorf("%w: invalid or expired reset token", ErrUnauthorized)
	}

	u.PasswordHash = utils.HashPassword(newPassword)
	u.ResetPasswordToken = nil
	u.ResetPasswordExpires = nil
	return s.repo.Update(u)
}

// ValidateSSOUser upserts by email: a first SSO login creates the account
// (no local password), later logins reuse it. Either way a token is issued.
func (s *AuthService) ValidateSSOUser(profile *sso.Profile, provider string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(profile.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		username := profile.DisplayName
		if username == "" {
			username = profile.Email
		}
		u, err = s.users.Create(CreateUserInput{
			Username: username,
			Email:    profile.Email,
			Role:     domain.RoleUser,
			Provider: provider,
		})
		if err != nil {
			return nil, err
		}
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *domain.User) (*LoginResult, error) {
	tok, err := s.jwter.Issue(u.ID, u.Email, u.Username, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, User: u}, nil
}
