package repo

import (
	"errors"

	"gorm.io/gorm"

	"roomdesk/internal/domain"
)

// Repositories follow the nil-on-not-found convention: a missing row is
// (nil, nil), everything else is a real error.

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(u *domain.User) error { return r.db.Create(u).Error }

func (r *UserRepo) FindAll() ([]domain.User, error) {
	var us []domain.User
	err := r.db.Order("created_at desc").Find(&us).Error
	return us, err
}

func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	return r.first("id = ?", id)
}

func (r *UserRepo) FindByEmail(email string) (*domain.User, error) {
	return r.first("email = ?", email)
}

func (r *UserRepo) FindByResetToken(token string) (*domain.User, error) {
	return r.first("reset_password_token = ?", token)
}

func (r *UserRepo) FindAdmins() ([]domain.User, error) {
	var us []domain.User
	err := r.db.Where("role = ?", domain.RoleAdmin).Find(&us).Error
	return us, err
}

func (r *UserRepo) Update(u *domain.User) error { return r.db.Save(u).Error }

func (r *UserRepo) Delete(id string) (*domain.User, error) {
	u, err := r.FindByID(id)
	if err != nil || u == nil {
		return nil, err
	}
	if err := r.db.Delete(&domain.User{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepo) first(query string, arg any) (*domain.User, error) {
	var u domain.User
	err := r.db.First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
