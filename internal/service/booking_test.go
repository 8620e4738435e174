package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"roomdesk/internal/domain"
	"roomdesk/internal/repo"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) NotifyUserByPreference(ctx context.Context, user *domain.User, module, title, message, emailTemplate string, emailContext map[string]any) error {
	return m.Called(ctx, user, module, title, message, emailTemplate, emailContext).Error(0)
}

func (m *mockNotifier) NotifyAdmins(ctx context.Context, module, title, message, emailTemplate string, emailContext map[string]any) error {
	return m.Called(ctx, module, title, message, emailTemplate, emailContext).Error(0)
}

func newBookingFixture() (*BookingService, *repo.MockBookingRepo, *repo.MockRoomRepo, *repo.MockUserRepo, *mockNotifier) {
	bookings := &repo.MockBookingRepo{}
	rooms := &repo.MockRoomRepo{}
	users := &repo.MockUserRepo{}
	notifier := &mockNotifier{}
	svc := NewBookingService(bookings, rooms, users, notifier, zap.NewNop())
	return svc, bookings, rooms, users, notifier
}

func TestBookingCreateAttribution(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name      string
		isAdmin   bool
		targetIn  string
		wantOwner string
	}{
		{"non-admin target ignored", false, "someone-else", "requester-1"},
		{"admin attributes to target", true, "target-1", "target-1"},
		{"admin without target books for self", true, "", "requester-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookings, _, users, notifier := newBookingFixture()

			var created *domain.Booking
			bookings.On("Create", mock.AnythingOfType("*domain.Booking")).
				Run(func(args mock.Arguments) { created = args.Get(0).(*domain.Booking) }).
				Return(nil)
			bookings.On("FindByIDWithRefs", mock.AnythingOfType("string")).
				Return(&domain.Booking{ID: "b1", UserID: tt.wantOwner, Status: domain.StatusPending}, nil)
			users.On("FindByID", tt.wantOwner).
				Return(&domain.User{ID: tt.wantOwner, Email: "o@x.io"}, nil)
			notifier.On("NotifyUserByPreference", mock.Anything, mock.Anything, domain.ModuleBooking,
				"Booking Created", mock.Anything, "booking-created", mock.Anything).Return(nil)
			notifier.On("NotifyAdmins", mock.Anything, domain.ModuleBooking,
				"New Booking Created", mock.Anything, "admin-booking-created", mock.Anything).Return(nil)

			b, err := svc.Create(context.Background(), CreateBookingInput{
				Room:      "room-1",
				StartDate: start,
				EndDate:   end,
				User:      tt.targetIn,
			}, "requester-1", tt.isAdmin)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOwner, created.UserID)
			assert.Equal(t, domain.StatusPending, created.Status)
			assert.Equal(t, tt.wantOwner, b.UserID)
			notifier.AssertExpectations(t)
		})
	}
}

func TestBookingUpdateStatusHasNoTransitionGraph(t *testing.T) {
	// approved back to pending is legal; the status set is flat.
	svc, bookings, _, users, notifier := newBookingFixture()

	bookings.On("FindByID", "b1").
		Return(&domain.Booking{ID: "b1", UserID: "u1", Status: domain.StatusApproved}, nil)
	bookings.On("UpdateStatus", "b1", domain.StatusPending).Return(nil)
	bookings.On("FindByIDWithRefs", "b1").
		Return(&domain.Booking{ID: "b1", UserID: "u1", Status: domain.StatusPending}, nil)
	users.On("FindByID", "u1").Return(&domain.User{ID: "u1"}, nil)
	notifier.On("NotifyUserByPreference", mock.Anything, mock.Anything, domain.ModuleBooking,
		"Booking pending", mock.Anything, "booking-pending", mock.Anything).Return(nil)

	b, err := svc.UpdateStatus(context.Background(), "b1", domain.StatusPending)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPending, b.Status)
	notifier.AssertNotCalled(t, "NotifyAdmins",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingUpdateStatusCancelNotifiesAdmins(t *testing.T) {
	svc, bookings, _, users, notifier := newBookingFixture()

	bookings.On("FindByID", "b1").
		Return(&domain.Booking{ID: "b1", UserID: "u1", Status: domain.StatusPending}, nil)
	bookings.On("UpdateStatus", "b1", domain.StatusCanceled).Return(nil)
	bookings.On("FindByIDWithRefs", "b1").
		Return(&domain.Booking{ID: "b1", UserID: "u1", Status: domain.StatusCanceled}, nil)
	users.On("FindByID", "u1").Return(&domain.User{ID: "u1"}, nil)
	notifier.On("NotifyUserByPreference", mock.Anything, mock.Anything, domain.ModuleBooking,
		"Booking canceled", mock.Anything, "booking-canceled", mock.Anything).Return(nil)
	notifier.On("NotifyAdmins", mock.Anything, domain.ModuleBooking,
		"Booking Canceled", mock.Anything, "admin-booking-canceled", mock.Anything).Return(nil)

	_, err := svc.UpdateStatus(context.Background(), "b1", domain.StatusCanceled)
	assert.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestBookingUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _, _, _ := newBookingFixture()
	_, err := svc.UpdateStatus(context.Background(), "b1", "archived")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBookingUpdateStatusUnknownID(t *testing.T) {
	svc, bookings, _, _, _ := newBookingFixture()
	bookings.On("FindByID", "missing").Return((*domain.Booking)(nil), nil)
	_, err := svc.UpdateStatus(context.Background(), "missing", domain.StatusApproved)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingNotificationFailureDoesNotFailCreate(t *testing.T) {
	svc, bookings, _, users, notifier := newBookingFixture()

	bookings.On("Create", mock.Anything).Return(nil)
	bookings.On("FindByIDWithRefs", mock.Anything).
		Return(&domain.Booking{ID: "b1", UserID: "u1"}, nil)
	users.On("FindByID", "u1").Return(&domain.User{ID: "u1"}, nil)
	notifier.On("NotifyUserByPreference", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))
	notifier.On("NotifyAdmins", mock.Anything, mock.Anything, mock.Anything,
		mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("smtp down"))

	_, err := svc.Create(context.Background(), CreateBookingInput{
		Room:      "room-1",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(time.Hour),
	}, "u1", false)
	assert.NoError(t, err)
}

func TestFindByFiltersPassesFilterVerbatim(t *testing.T) {
	svc, bookings, _, _, _ := newBookingFixture()

	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	f := domain.BookingFilter{UserID: "u1", RoomID: "r1", From: &from, To: &to}

	bookings.On("FindByFilter", f).Return([]domain.Booking{{ID: "b1"}}, nil)

	got, err := svc.FindByFilters(f)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	bookings.AssertCalled(t, "FindByFilter", f)
}

func TestPeakHoursHistogram(t *testing.T) {
	svc, bookings, _, _, _ := newBookingFixture()

	at := func(h int) domain.Booking {
		return domain.Booking{StartDate: time.Date(2026, 2, 1, h, 30, 0, 0, time.UTC)}
	}
	bookings.On("FindAll").Return([]domain.Booking{at(9), at(14), at(9)}, nil)

	got, err := svc.PeakHours()
	assert.NoError(t, err)
	assert.Equal(t, []domain.HourCount{{Hour: 9, Count: 2}, {Hour: 14, Count: 1}}, got)
}

func TestPeakHoursCountsUTCHour(t *testing.T) {
	svc, bookings, _, _, _ := newBookingFixture()

	tz := time.FixedZone("UTC+3", 3*3600)
	bookings.On("FindAll").Return([]domain.Booking{
		{StartDate: time.Date(2026, 2, 1, 12, 0, 0, 0, tz)}, // 09:00 UTC
	}, nil)

	got, err := svc.PeakHours()
	assert.NoError(t, err)
	assert.Equal(t, []domain.HourCount{{Hour: 9, Count: 1}}, got)
}

func TestIdleRoomsWindow(t *testing.T) {
	svc, bookings, rooms, _, _ := newBookingFixture()

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	bookings.On("RoomIDsBookedSince", now.AddDate(0, 0, -30)).Return([]string{"busy"}, nil)
	rooms.On("FindPublic").Return([]domain.Room{{ID: "busy"}, {ID: "quiet"}}, nil)

	idle, err := svc.IdleRooms(0) // zero falls back to the 30-day default
	assert.NoError(t, err)
	assert.Len(t, idle, 1)
	assert.Equal(t, "quiet", idle[0].ID)
}

func TestIdleRoomsCustomWindow(t *testing.T) {
	svc, bookings, rooms, _, _ := newBookingFixture()

	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	bookings.On("RoomIDsBookedSince", now.AddDate(0, 0, -7)).Return([]string{}, nil)
	rooms.On("FindPublic").Return([]domain.Room{{ID: "a"}}, nil)

	idle, err := svc.IdleRooms(7)
	assert.NoError(t, err)
	assert.Len(t, idle, 1)
}
