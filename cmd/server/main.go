package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	roster "github.com/goliatone/go-roster"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"
)

// Config is the process environment.
type Config struct {
	Addr          string        `env:"ROSTER_ADDR" envDefault:":8080"`
	DSN           string        `env:"ROSTER_DSN" envDefault:"file:roster.db?cache=shared&mode=rwc"`
	SigningKey    string        `env:"ROSTER_SIGNING_KEY,required"`
	Issuer        string        `env:"ROSTER_ISSUER" envDefault:"go-roster"`
	AccessTTL     time.Duration `env:"ROSTER_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL    time.Duration `env:"ROSTER_REFRESH_TTL" envDefault:"168h"`
	WhitelistPath string        `env:"ROSTER_WHITELIST" envDefault:"allowed_emails.txt"`
	Debug         bool          `env:"ROSTER_DEBUG" envDefault:"false"`
}

// zapLogger adapts a sugared zap logger to the package's Logger surface.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l zapLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l zapLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l zapLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }

func main() {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := buildZap(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	logger := zapLogger{s: zl.Sugar()}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
	if err != nil {
		logger.Error("failed to open database", "dsn", cfg.DSN, "error", err)
		os.Exit(1)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := roster.RunMigrations(migrateCtx, db); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	repo := roster.NewRepositoryManager(db)
	repo.MustValidate()

	whitelist := roster.NewWhitelist(cfg.WhitelistPath).WithLogger(logger)

	tokens := roster.NewTokenService(
		[]byte(cfg.SigningKey),
		cfg.AccessTTL,
		cfg.RefreshTTL,
		cfg.Issuer,
		nil,
		repo.RevokedTokens(),
		logger,
	)

	auther := roster.NewAuthenticator(repo.Members(), tokens).WithLogger(logger)
	authz := roster.NewAuthorizer().WithLogger(logger)

	ctrl := roster.Controllers{
		Auth: roster.NewAuthController(
			roster.WithAuthRepo(repo),
			roster.WithAuthTokens(tokens),
			roster.WithAuthAuthenticator(auther),
			roster.WithAuthGate(whitelist),
			roster.WithAuthLogger(logger),
			roster.WithAuthDebug(cfg.Debug),
		),
		Teams:        roster.NewTeamController(repo, authz).WithLogger(logger),
		Members:      roster.NewMemberController(repo, authz).WithLogger(logger),
		Publications: roster.NewPublicationController(repo, authz).WithLogger(logger),
		SocialLinks:  roster.NewSocialLinkController(repo, authz).WithLogger(logger),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-roster",
		DisableStartupMessage: !cfg.Debug,
	})

	roster.RegisterRoutes(app, tokens, ctrl)

	go func() {
		logger.Info("server listening", "addr", cfg.Addr)
		if err := app.Listen(cfg.Addr); err != nil {
			logger.Error("server stopped", "error", err)
		}
	}()

	waitExitSignal()

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func buildZap(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func waitExitSignal() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
}
