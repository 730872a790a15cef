// Package app wires configuration, storage, services and the HTTP server
// into a runnable quizforge instance.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/quizforge/quizforge/internal/http"
	"github.com/quizforge/quizforge/internal/mail"
	"github.com/quizforge/quizforge/internal/service"
	"github.com/quizforge/quizforge/internal/store"
	"github.com/quizforge/quizforge/internal/store/drivers/sqlite"
	"github.com/quizforge/quizforge/pkg/cryptox"
	"github.com/quizforge/quizforge/pkg/jwtx"
	"github.com/quizforge/quizforge/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the quizforge service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	notifier service.Notifier

	registrationService *service.RegistrationService
	tokenService        *service.TokenService
	userService         *service.UserService
	resetService        *service.PasswordResetService
	quizService         *service.QuizService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "quizforge",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("quizforge starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts the application down.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down quizforge...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("quizforge stopped")
	return nil
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initNotifier() error {
	mailCfg, err := mail.ConfigFromEnv()
	if err != nil {
		return err
	}

	mailer, err := mail.NewMailer(mailCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize mailer: %w", err)
	}
	app.notifier = mailer
	return nil
}

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		AccessCodec:  jwtx.NewHS256([]byte(app.cfg.AccessTokenSecret), app.cfg.Issuer),
		RefreshCodec: jwtx.NewHS256([]byte(app.cfg.RefreshTokenSecret), app.cfg.Issuer),
		Store:        app.db,
		Issuer:       app.cfg.Issuer,
		AccessTTL:    app.cfg.AccessTokenTTL,
		RefreshTTL:   app.cfg.RefreshTokenTTL,
	}

	app.registrationService = &service.RegistrationService{
		Store:    app.db,
		Notifier: app.notifier,
		Tokens:   app.tokenService,
		OTPTTL:   app.cfg.OTPTTL,
	}

	app.userService = &service.UserService{
		Store:  app.db,
		Tokens: app.tokenService,
	}

	app.resetService = &service.PasswordResetService{
		Store:       app.db,
		Notifier:    app.notifier,
		FrontendURL: app.cfg.FrontendURL,
		TokenTTL:    app.cfg.ResetTokenTTL,
	}

	app.quizService = &service.QuizService{Store: app.db}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	cookies := httpapi.CookieConfig{
		Secure:     app.cfg.CookieSecure,
		SameSite:   app.cfg.CookieSameSite,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
	}

	router := httpapi.NewRouter(
		app.tokenService.AccessCodec,
		BuildVersion,
		app.db,
		cookies,
		app.logger,
	)

	router.RegistrationService = app.registrationService
	router.TokenService = app.tokenService
	router.UserService = app.userService
	router.ResetService = app.resetService
	router.QuizService = app.quizService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
