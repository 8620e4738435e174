package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"roomdesk/internal/core/auth"
	"roomdesk/internal/core/cache"
	"roomdesk/internal/core/config"
	"roomdesk/internal/core/database"
	"roomdesk/internal/core/logger"
	"roomdesk/internal/core/server"
	"roomdesk/internal/domain"
	"roomdesk/internal/notify"
	"roomdesk/internal/repo"
	"roomdesk/internal/service"
	"roomdesk/internal/sso"
	"roomdesk/internal/transport/http/handler"
	"roomdesk/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Room{},
			&domain.Booking{},
			&domain.AccountSetting{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	redis := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Outbound channel providers.
	mail := notify.NewMailClient(cfg.Mail.BaseURL, cfg.Mail.APIKey, cfg.Mail.From)
	sms := notify.NewSMSClient(cfg.SMS.BaseURL, cfg.SMS.APIKey, cfg.SMS.From)
	push := notify.NewPushClient(cfg.Push.BaseURL, cfg.Push.APIKey)

	users := repo.NewUserRepo(db)
	rooms := repo.NewRoomRepo(db)
	bookings := repo.NewBookingRepo(db)
	settings := repo.NewSettingRepo(db)

	dispatcher := notify.NewDispatcher(settings, users, mail, sms, push, log)

	settingsSvc := service.NewSettingsService(settings)
	userSvc := service.NewUserService(users, settingsSvc)
	roomSvc := service.NewRoomService(rooms, redis)
	bookingSvc := service.NewBookingService(bookings, rooms, users, dispatcher, log)
	authSvc := service.NewAuthService(userSvc, users, jwter, mail, cfg.App.FrontendURL)

	providers := map[string]sso.Provider{
		"google":   sso.NewGoogle(oauthConfig(cfg.OAuth.Google)),
		"facebook": sso.NewFacebook(oauthConfig(cfg.OAuth.Facebook)),
		"apple":    sso.NewApple(oauthConfig(cfg.OAuth.Apple)),
	}

	r := router.NewAPIEngine(log, jwter, cfg.App.FrontendURL, router.Handlers{
		Auth:     handler.NewAuthHandler(authSvc, providers, cfg.App.FrontendURL, log),
		Users:    handler.NewUserHandler(userSvc),
		Rooms:    handler.NewRoomHandler(roomSvc),
		Bookings: handler.NewBookingHandler(bookingSvc),
		Settings: handler.NewSettingHandler(settingsSvc),
	})

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.Build(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func oauthConfig(p config.OAuthProvider) sso.Config {
	return sso.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  p.RedirectURL,
	}
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.New(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
