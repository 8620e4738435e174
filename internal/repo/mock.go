package repo

import (
	"time"

	"github.com/stretchr/testify/mock"

	"roomdesk/internal/domain"
)

// Hand-written testify mocks of the domain repository interfaces, used by the
// service tests so nothing needs a live database.

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(u *domain.User) error { return m.Called(u).Error(0) }

func (m *MockUserRepo) FindAll() ([]domain.User, error) {
	args := m.Called()
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(email string) (*domain.User, error) {
	args := m.Called(email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepo) FindByResetToken(token string) (*domain.User, error) {
	args := m.Called(token)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *MockUserRepo) FindAdmins() ([]domain.User, error) {
	args := m.Called()
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(u *domain.User) error { return m.Called(u).Error(0) }

func (m *MockUserRepo) Delete(id string) (*domain.User, error) {
	args := m.Called(id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func userOrNil(v any) *domain.User {
	if u, ok := v.(*domain.User); ok {
		return u
	}
	return nil
}

type MockRoomRepo struct{ mock.Mock }

func (m *MockRoomRepo) Create(r *domain.Room) error { return m.Called(r).Error(0) }

func (m *MockRoomRepo) FindAll() ([]domain.Room, error) {
	args := m.Called()
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepo) FindByID(id string) (*domain.Room, error) {
	args := m.Called(id)
	return roomOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRoomRepo) FindPublic() ([]domain.Room, error) {
	args := m.Called()
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepo) FindPublicByID(id string) (*domain.Room, error) {
	args := m.Called(id)
	return roomOrNil(args.Get(0)), args.Error(1)
}

func (m *MockRoomRepo) Update(r *domain.Room) error { return m.Called(r).Error(0) }

func (m *MockRoomRepo) Delete(id string) (*domain.Room, error) {
	args := m.Called(id)
	return roomOrNil(args.Get(0)), args.Error(1)
}

func roomOrNil(v any) *domain.Room {
	if r, ok := v.(*domain.Room); ok {
		return r
	}
	return nil
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(b *domain.Booking) error { return m.Called(b).Error(0) }

func (m *MockBookingRepo) FindAll() ([]domain.Booking, error) {
	args := m.Called()
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindByFilter(f domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) FindByID(id string) (*domain.Booking, error) {
	args := m.Called(id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBookingRepo) FindByIDWithRefs(id string) (*domain.Booking, error) {
	args := m.Called(id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBookingRepo) Update(b *domain.Booking) error { return m.Called(b).Error(0) }

func (m *MockBookingRepo) UpdateStatus(id, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *MockBookingRepo) Delete(id string) (*domain.Booking, error) {
	args := m.Called(id)
	return bookingOrNil(args.Get(0)), args.Error(1)
}

func (m *MockBookingRepo) RoomIDsBookedSince(since time.Time) ([]string, error) {
	args := m.Called(since)
	return args.Get(0).([]string), args.Error(1)
}

func bookingOrNil(v any) *domain.Booking {
	if b, ok := v.(*domain.Booking); ok {
		return b
	}
	return nil
}

type MockSettingRepo struct{ mock.Mock }

func (m *MockSettingRepo) Create(s *domain.AccountSetting) error { return m.Called(s).Error(0) }

func (m *MockSettingRepo) FindByUser(userID string) (*domain.AccountSetting, error) {
	args := m.Called(userID)
	if s, ok := args.Get(0).(*domain.AccountSetting); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingRepo) Update(s *domain.AccountSetting) error { return m.Called(s).Error(0) }
