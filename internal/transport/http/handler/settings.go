package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomdesk/internal/domain"
	"roomdesk/internal/service"
	"roomdesk/internal/transport/http/ez"
	"roomdesk/internal/transport/http/middleware"
)

type SettingHandler struct {
	settings *service.SettingsService
}

func NewSettingHandler(settings *service.SettingsService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

func (h *SettingHandler) Mount(authed *gin.RouterGroup) {
	e := ez.New(authed)

	ez.Register(e, ez.Action[struct{}, *domain.AccountSetting]{
		Method: http.MethodGet,
		Path:   "/account-settings/my",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.AccountSetting, error) {
			return h.settings.FindByUser(c.GetString(middleware.KeyUserID))
		},
	})

	ez.Register(e, ez.Action[service.UpdateSettingInput, *domain.AccountSetting]{
		Method: http.MethodPatch,
		Path:   "/account-settings/my",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateSettingInput) (*domain.AccountSetting, error) {
			return h.settings.UpdateByUser(c.GetString(middleware.KeyUserID), *in)
		},
	})
}
