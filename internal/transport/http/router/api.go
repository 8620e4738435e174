package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"roomdesk/internal/core/auth"
	"roomdesk/internal/transport/http/handler"
	mdw "roomdesk/internal/transport/http/middleware"
)

// Handlers bundles the mounted surfaces so main stays a pure wiring file.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Rooms    *handler.RoomHandler
	Bookings *handler.BookingHandler
	Settings *handler.SettingHandler
}

func NewAPIEngine(l *zap.Logger, jwter *auth.JWTer, frontendURL string, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	corsCfg := cors.DefaultConfig()
	if frontendURL != "" {
		corsCfg.AllowOrigins = []string{frontendURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// Public surface: auth flows plus the reservable-room catalogue. Auth
	// endpoints carry a tighter per-IP limit on top of the global one.
	authFlows := api.Group("")
	authFlows.Use(mdw.RateLimitPerIP(5, 10))
	h.Auth.Mount(authFlows)
	h.Rooms.MountPublic(api)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, ""))

	h.Users.Mount(authed)
	h.Rooms.Mount(authed)
	h.Bookings.Mount(authed)
	h.Settings.Mount(authed)

	return r
}
