package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"roomdesk/internal/service"
	"roomdesk/internal/sso"
	"roomdesk/internal/transport/http/ez"
	resp "roomdesk/internal/transport/http/response"
)

type AuthHandler struct {
	auth        *service.AuthService
	providers   map[string]sso.Provider
	frontendURL string
	log         *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, providers map[string]sso.Provider, frontendURL string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, providers: providers, frontendURL: frontendURL, log: log}
}

// Mount registers the auth surface on the public group; none of these
// routes require a token.
func (h *AuthHandler) Mount(public *gin.RouterGroup) {
	e := ez.New(public)

	type loginIn struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	ez.Register(e, ez.Action[loginIn, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (*service.LoginResult, error) {
			return h.auth.Login(in.Email, in.Password)
		},
	})

	ez.Register(e, ez.Action[service.CreateUserInput, *service.LoginResult]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CreateUserInput) (*service.LoginResult, error) {
			return h.auth.Register(*in)
		},
	})

	type resetReqIn struct {
		Email string `json:"email" binding:"required,email"`
	}
	ez.Register(e, ez.Action[resetReqIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/request-password-reset",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *resetReqIn) (gin.H, error) {
			if err := h.auth.RequestPasswordReset(c.Request.Context(), in.Email); err != nil {
				return nil, err
			}
			return gin.H{"message": fmt.Sprintf("Password reset link sent to %s", in.Email)}, nil
		},
	})

	type resetConfirmIn struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	ez.Register(e, ez.Action[resetConfirmIn, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/reset-password-confirm",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *resetConfirmIn) (gin.H, error) {
			if err := h.auth.ResetPasswordConfirm(in.Token, in.NewPassword); err != nil {
				return nil, err
			}
			return gin.H{"message": "Password has been successfully reset."}, nil
		},
	})

	// OAuth: /auth/:provider kicks off consent, /auth/:provider/callback
	// finishes the code exchange and hands the token to the frontend.
	e.Raw(http.MethodGet, "/auth/:provider", h.oauthRedirect)
	e.Raw(http.MethodGet, "/auth/:provider/callback", h.oauthCallback)
}

func (h *AuthHandler) oauthRedirect(c *gin.Context) {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, "unknown provider"))
		return
	}
	c.Redirect(http.StatusFound, p.AuthURL(uuid.NewString()))
}

func (h *AuthHandler) oauthCallback(c *gin.Context) {
	p, ok := h.providers[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusOK, resp.Error(resp.CodeNotFound, "unknown provider"))
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "missing code"))
		return
	}
	profile, err := p.Exchange(c.Request.Context(), code)
	if err != nil {
		h.log.Warn("oauth exchange failed", zap.String("provider", p.Name()), zap.Error(err))
		c.JSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "oauth exchange failed"))
		return
	}
	res, err := h.auth.ValidateSSOUser(profile, p.Name())
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("%s?token=%s", h.frontendURL, res.AccessToken))
}
