package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomdesk/internal/domain"
	"roomdesk/internal/service"
	"roomdesk/internal/transport/http/ez"
)

type RoomHandler struct {
	rooms *service.RoomService
}

func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// MountPublic exposes the reservable catalogue without authentication.
// Rooms that are inactive or not reservable do not exist on this surface.
func (h *RoomHandler) MountPublic(public *gin.RouterGroup) {
	e := ez.New(public)

	ez.Register(e, ez.Action[struct{}, []domain.Room]{
		Method: http.MethodGet,
		Path:   "/rooms/public",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Room, error) {
			return h.rooms.FindPublic(c.Request.Context())
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Room]{
		Method: http.MethodGet,
		Path:   "/rooms/public/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Room, error) {
			return h.rooms.FindPublicByID(c.Param("id"))
		},
	})
}

func (h *RoomHandler) Mount(authed *gin.RouterGroup) {
	e := ez.New(authed)
	admin := []string{domain.RoleAdmin}

	ez.Register(e, ez.Action[service.CreateRoomInput, *domain.Room]{
		Method: http.MethodPost,
		Path:   "/rooms",
		Binder: ez.BindJSON,
		Roles:  admin,
		Handler: func(c *gin.Context, in *service.CreateRoomInput) (*domain.Room, error) {
			return h.rooms.Create(c.Request.Context(), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, []domain.Room]{
		Method: http.MethodGet,
		Path:   "/rooms",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Room, error) {
			return h.rooms.FindAll()
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Room]{
		Method: http.MethodGet,
		Path:   "/rooms/:id",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Room, error) {
			return h.rooms.FindByID(c.Param("id"))
		},
	})

	ez.Register(e, ez.Action[service.UpdateRoomInput, *domain.Room]{
		Method: http.MethodPatch,
		Path:   "/rooms/:id",
		Binder: ez.BindJSON,
		Roles:  admin,
		Handler: func(c *gin.Context, in *service.UpdateRoomInput) (*domain.Room, error) {
			return h.rooms.Update(c.Request.Context(), c.Param("id"), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Room]{
		Method: http.MethodDelete,
		Path:   "/rooms/:id",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Room, error) {
			return h.rooms.Delete(c.Request.Context(), c.Param("id"))
		},
	})
}
