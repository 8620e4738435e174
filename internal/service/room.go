package service

import (
	"context"
	"fmt"
	"time"

	"roomdesk/internal/core/cache"
	"roomdesk/internal/domain"
	"roomdesk/pkg/utils"
)

const (
	publicRoomsCacheKey = "rooms:public"
	publicRoomsCacheTTL = 5 * time.Minute
)

// RoomService is the room catalog. The public listing is the only
// unauthenticated hot path, so it runs through the redis read-through cache;
// every catalog write invalidates it.
type RoomService struct {
	rooms domain.RoomRepository
	cache *cache.Cache
}

func NewRoomService(rooms domain.RoomRepository, c *cache.Cache) *RoomService {
	return &RoomService{rooms: rooms, cache: c}
}

type CreateRoomInput struct {
	Name         string              `json:"name" binding:"required,max=128"`
	Type         string              `json:"type" binding:"required,oneof=meeting open-space studio relaxation kitchen"`
	Description  string              `json:"description" binding:"omitempty,max=1024"`
	Amenities    []string            `json:"amenities"`
	Capacity     int                 `json:"capacity" binding:"omitempty,min=1"`
	Images       []string            `json:"images"`
	IsActive     *bool               `json:"isActive"`
	PricePerHour float64             `json:"pricePerHour" binding:"omitempty,min=0"`
	PricePerDay  float64             `json:"pricePerDay" binding:"omitempty,min=0"`
	Schedule     domain.WeekSchedule `json:"availabilitySchedule"`
	IsReservable bool                `json:"isReservable"`
	ShowInHome   bool                `json:"showInHomepage"`
}

func (s *RoomService) Create(ctx context.Context, in CreateRoomInput) (*domain.Room, error) {
	capacity := in.Capacity
	if capacity == 0 {
		capacity = 1
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	schedule := in.Schedule
	if schedule == nil {
		schedule = domain.DefaultWeekSchedule()
	}
	r := &domain.Room{
		ID:                   utils.NewID(),
		Name:                 in.Name,
		Type:                 in.Type,
		Description:          in.Description,
		Amenities:            in.Amenities,
		Capacity:             capacity,
		Images:               in.Images,
		IsActive:             active,
		PricePerHour:         in.PricePerHour,
		PricePerDay:          in.PricePerDay,
		AvailabilitySchedule: schedule,
		IsReservable:         in.IsReservable,
		ShowInHomepage:       in.ShowInHome,
	}
	if err := s.rooms.Create(r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

func (s *RoomService) FindAll() ([]domain.Room, error) { return s.rooms.FindAll() }

func (s *RoomService) FindByID(id string) (*domain.Room, error) {
	r, err := s.rooms.FindByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, id)
	}
	return r, nil
}

// FindPublic serves the cached active+reservable subset; on a cache outage
// it falls through to the repository directly.
func (s *RoomService) FindPublic(ctx context.Context) ([]domain.Room, error) {
	if s.cache == nil {
		return s.rooms.FindPublic()
	}
	out, err := cache.GetOrLoadJSON(s.cache, ctx, publicRoomsCacheKey, publicRoomsCacheTTL,
		func(ctx context.Context) (*[]domain.Room, error) {
			rooms, err := s.rooms.FindPublic()
			if err != nil {
				return nil, err
			}
			return &rooms, nil
		})
	if err != nil {
		return s.rooms.FindPublic()
	}
	if out == nil {
		return []domain.Room{}, nil
	}
	return *out, nil
}

// FindPublicByID answers not-found for rooms that exist but fail the public
// predicate, so callers cannot probe the private catalog.
func (s *RoomService) FindPublicByID(id string) (*domain.Room, error) {
	r, err := s.rooms.FindPublicByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, id)
	}
	return r, nil
}

type UpdateRoomInput struct {
	Name         *string             `json:"name" binding:"omitempty,max=128"`
	Type         *string             `json:"type" binding:"omitempty,oneof=meeting open-space studio relaxation kitchen"`
	Description  *string             `json:"description" binding:"omitempty,max=1024"`
	Amenities    []string            `json:"amenities"`
	Capacity     *int                `json:"capacity" binding:"omitempty,min=1"`
	Images       []string            `json:"images"`
	IsActive     *bool               `json:"isActive"`
	PricePerHour *float64            `json:"pricePerHour" binding:"omitempty,min=0"`
	PricePerDay  *float64            `json:"pricePerDay" binding:"omitempty,min=0"`
	Schedule     domain.WeekSchedule `json:"availabilitySchedule"`
	IsReservable *bool               `json:"isReservable"`
	ShowInHome   *bool               `json:"showInHomepage"`
}

func (s *RoomService) Update(ctx context.Context, id string, in UpdateRoomInput) (*domain.Room, error) {
	r, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		r.Name = *in.Name
	}
	if in.Type != nil {
		r.Type = *in.Type
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.Amenities != nil {
		r.Amenities = in.Amenities
	}
	if in.Capacity != nil {
		r.Capacity = *in.Capacity
	}
	if in.Images != nil {
		r.Images = in.Images
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if in.PricePerHour != nil {
		r.PricePerHour = *in.PricePerHour
	}
	if in.PricePerDay != nil {
		r.PricePerDay = *in.PricePerDay
	}
	if in.Schedule != nil {
		r.AvailabilitySchedule = in.Schedule
	}
	if in.IsReservable != nil {
		r.IsReservable = *in.IsReservable
	}
	if in.ShowInHome != nil {
		r.ShowInHomepage = *in.ShowInHome
	}
	if err := s.rooms.Update(r); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return r, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) (*domain.Room, error) {
	r, err := s.rooms.Delete(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, id)
	}
	s.invalidate(ctx)
	return r, nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, publicRoomsCacheKey)
	}
}
