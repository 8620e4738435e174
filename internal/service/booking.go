package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"roomdesk/internal/domain"
	"roomdesk/pkg/utils"
)

// Notifier is the slice of the dispatcher the booking lifecycle needs.
type Notifier interface {
	NotifyUserByPreference(ctx context.Context, user *domain.User, module, title, message, emailTemplate string, emailContext map[string]any) error
	NotifyAdmins(ctx context.Context, module, title, message, emailTemplate string, emailContext map[string]any) error
}

// BookingService owns the booking lifecycle: creation, status transitions,
// filtered retrieval and the read-only analytics. Every lifecycle event
// notifies the owning user through their preferences; admins are notified on
// creation and on cancellation. Notification dispatch runs after the write
// and its failures are logged, never returned, so a channel outage cannot
// fail a booking request.
type BookingService struct {
	bookings domain.BookingRepository
	rooms    domain.RoomRepository
	users    domain.UserRepository
	notifier Notifier
	log      *zap.Logger
	now      func() time.Time
}

func NewBookingService(
	bookings domain.BookingRepository,
	rooms domain.RoomRepository,
	users domain.UserRepository,
	notifier Notifier,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		rooms:    rooms,
		users:    users,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

type CreateBookingInput struct {
	Room      string    `json:"room" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	// Only honored for admin requesters.
	User string `json:"user" binding:"omitempty"`
}

// Create stores a booking for the requester. An admin may attribute it to a
// target user; anyone else's user field is ignored and the booking is theirs.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput, requesterID string, isAdmin bool) (*domain.Booking, error) {
	userID := requesterID
	if isAdmin && in.User != "" {
		userID = in.User
	}

	b := &domain.Booking{
		ID:        utils.NewID(),
		UserID:    userID,
		RoomID:    in.Room,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    domain.StatusPending,
	}
	if err := s.bookings.Create(b); err != nil {
		return nil, err
	}

	booking, err := s.bookings.FindByIDWithRefs(b.ID)
	if err != nil || booking == nil {
		return b, err
	}

	user, err := s.users.FindByID(userID)
	if err == nil && user != nil {
		s.dispatchUser(ctx, user,
			"Booking Created",
			"Your booking has been successfully created.",
			"booking-created", booking)
	}
	s.dispatchAdmins(ctx,
		"New Booking Created",
		"A new booking has been made.",
		"admin-booking-created", booking)

	return booking, nil
}

func (s *BookingService) FindAll() ([]domain.Booking, error) { return s.bookings.FindAll() }

// FindByFilters narrows by owner, room and date containment. The date pair
// keeps the historical containment semantics: a booking must lie entirely
// inside the range to match.
func (s *BookingService) FindByFilters(f domain.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.FindByFilter(f)
}

func (s *BookingService) FindByID(id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	return b, nil
}

type UpdateBookingInput struct {
	Room      *string    `json:"room"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	User      *string    `json:"user"`
}

func (s *BookingService) Update(id string, in UpdateBookingInput) (*domain.Booking, error) {
	b, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Room != nil {
		b.RoomID = *in.Room
	}
	if in.StartDate != nil {
		b.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		b.EndDate = *in.EndDate
	}
	if in.User != nil {
		b.UserID = *in.User
	}
	if err := s.bookings.Update(b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateStatus sets the status unconditionally: there is no transition
// graph, any member of the status set may follow any other. The owning user
// is notified of the new status; admins are additionally notified only when
// the booking was canceled.
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		return nil, fmt.Errorf("%w: status %q", ErrInvalid, status)
	}
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	booking, err := s.bookings.FindByIDWithRefs(id)
	if err != nil {
		return nil, err
	}

	if booking != nil {
		user, uerr := s.users.FindByID(booking.UserID)
		if uerr == nil && user != nil {
			s.dispatchUser(ctx, user,
				fmt.Sprintf("Booking %s", status),
				fmt.Sprintf("Your booking status has been changed to %s.", status),
				"booking-"+status, booking)
		}
	}
	if status == domain.StatusCanceled {
		s.dispatchAdmins(ctx,
			"Booking Canceled",
			"A booking was canceled.",
			"admin-booking-canceled", booking)
	}
	return booking, nil
}

func (s *BookingService) Delete(id string) (*domain.Booking, error) {
	b, err := s.bookings.Delete(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", ErrNotFound, id)
	}
	return b, nil
}

// PeakHours groups all bookings by the UTC hour of their start and returns
// the histogram ordered by count descending (hour ascending on ties).
func (s *BookingService) PeakHours() ([]domain.HourCount, error) {
	bookings, err := s.bookings.FindAll()
	if err != nil {
		return nil, err
	}
	counts := map[int]int64{}
	for i := range bookings {
		counts[bookings[i].StartDate.UTC().Hour()]++
	}
	out := make([]domain.HourCount, 0, len(counts))
	for h, n := range counts {
		out = append(out, domain.HourCount{Hour: h, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Hour < out[j].Hour
	})
	return out, nil
}

// IdleRooms reports the public rooms with no booking starting in the last
// sinceDays days: the public set minus the recently-booked set. A room whose
// last booking started just outside the window counts as idle.
func (s *BookingService) IdleRooms(sinceDays int) ([]domain.Room, error) {
	if sinceDays <= 0 {
		sinceDays = 30
	}
	since := s.now().AddDate(0, 0, -sinceDays)

	bookedIDs, err := s.bookings.RoomIDsBookedSince(since)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	public, err := s.rooms.FindPublic()
	if err != nil {
		return nil, err
	}
	idle := make([]domain.Room, 0, len(public))
	for _, r := range public {
		if _, ok := booked[r.ID]; !ok {
			idle = append(idle, r)
		}
	}
	return idle, nil
}

func (s *BookingService) dispatchUser(ctx context.Context, user *domain.User, title, message, template string, booking *domain.Booking) {
	err := s.notifier.NotifyUserByPreference(ctx, user, domain.ModuleBooking, title, message, template,
		map[string]any{"booking": booking})
	if err != nil {
		s.log.Error("user notification failed", zap.String("user", user.ID), zap.Error(err))
	}
}

func (s *BookingService) dispatchAdmins(ctx context.Context, title, message, template string, booking *domain.Booking) {
	err := s.notifier.NotifyAdmins(ctx, domain.ModuleBooking, title, message, template,
		map[string]any{"booking": booking})
	if err != nil {
		s.log.Error("admin notification failed", zap.Error(err))
	}
}
