package main

import (
	"io"
	"log"
	"os"

	"github.com/foundit/foundit-api/internal/config"
	"github.com/foundit/foundit-api/internal/logging"
	"github.com/foundit/foundit-api/internal/repository/postgres"
	"github.com/foundit/foundit-api/internal/service"
	transporthttp "github.com/foundit/foundit-api/internal/transport/http"
	"github.com/foundit/foundit-api/internal/transport/mail"
	"github.com/foundit/foundit-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash mirror disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	resetRepo := postgres.NewPasswordResetRepo(db)
	itemRepo := postgres.NewItemRepo(db)

	jwtManager := util.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	mailer := mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.SMTPUseTLS)

	authService := service.NewAuthService(userRepo, resetRepo, mailer, jwtManager, cfg.GoogleAudience, cfg.PasswordResetTTL, cfg.FrontendBaseURL)
	itemService := service.NewItemService(itemRepo)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterItems(e, authService, itemService)
	transporthttp.RegisterSwagger(e)
	transporthttp.RegisterPages(e, cfg.FrontendBaseURL)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
