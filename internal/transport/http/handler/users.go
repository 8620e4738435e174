package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomdesk/internal/domain"
	"roomdesk/internal/service"
	"roomdesk/internal/transport/http/ez"
	"roomdesk/internal/transport/http/middleware"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Mount(authed *gin.RouterGroup) {
	e := ez.New(authed)
	admin := []string{domain.RoleAdmin}

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/me",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.users.FindByID(c.GetString(middleware.KeyUserID))
		},
	})

	ez.Register(e, ez.Action[service.UpdateUserInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/me",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateUserInput) (*domain.User, error) {
			// Callers cannot promote themselves.
			in.Role = nil
			return h.users.Update(c.GetString(middleware.KeyUserID), *in)
		},
	})

	type fcmIn struct {
		FcmToken string `json:"fcmToken" binding:"required"`
	}
	ez.Register(e, ez.Action[fcmIn, gin.H]{
		Method: http.MethodPatch,
		Path:   "/users/fcm-token",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *fcmIn) (gin.H, error) {
			if err := h.users.UpdateFcmToken(c.GetString(middleware.KeyUserID), in.FcmToken); err != nil {
				return nil, err
			}
			return gin.H{"updated": true}, nil
		},
	})

	ez.Register(e, ez.Action[service.CreateUserInput, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: ez.BindJSON,
		Roles:  admin,
		Handler: func(c *gin.Context, in *service.CreateUserInput) (*domain.User, error) {
			return h.users.Create(*in)
		},
	})

	ez.Register(e, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.users.FindAll()
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.users.FindByID(c.Param("id"))
		},
	})

	ez.Register(e, ez.Action[service.UpdateUserInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: ez.BindJSON,
		Roles:  admin,
		Handler: func(c *gin.Context, in *service.UpdateUserInput) (*domain.User, error) {
			return h.users.Update(c.Param("id"), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.users.Delete(c.Param("id"))
		},
	})
}
