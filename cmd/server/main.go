package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	_ "pharmadir/docs" // swagger docs

	"pharmadir/internal/auth"
	"pharmadir/internal/cache"
	"pharmadir/internal/config"
	"pharmadir/internal/db"
	"pharmadir/internal/handler"
	"pharmadir/internal/identity"
	"pharmadir/internal/mail"
	"pharmadir/internal/repository"
	"pharmadir/internal/router"
	"pharmadir/internal/service"
	"pharmadir/internal/storage"
)

// @title Pharmacy Directory API
// @version 1.0
// @description Pharmacy directory API with accounts, pharmacies, comments and favorites.
// @host localhost:3000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	log, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	var app *firebase.App
	if cfg.StoreDriver == config.StoreFirestore || cfg.FirebaseProjectID != "" {
		var err error
		app, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			return err
		}
	}

	store, err := openStore(ctx, cfg, app, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	provider, client, err := newIdentity(ctx, cfg, app, log)
	if err != nil {
		return err
	}

	mailer, err := newMailer(cfg, log)
	if err != nil {
		return err
	}

	var uploader storage.Uploader
	if cfg.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(ctx, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			return err
		}
		uploader = s3Uploader
	} else {
		log.Info("AWS_S3_BUCKET not set, image uploads disabled")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
	if cacheClient != nil {
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn("redis unavailable, serving without cache", zap.Error(err))
		}
		defer func() { _ = cacheClient.Close() }()
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	authService := service.NewAuthService(provider, client, store.Profiles, mailer, jwtService, log)
	pharmacyService := service.NewPharmacyService(store.Pharmacies, cacheClient, log)
	commentService := service.NewCommentService(authService, store.Pharmacies, store.Comments, log)
	favoriteService := service.NewFavoriteService(authService, store.Profiles, log)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, jwtService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Pharmacy: handler.NewPharmacyHandler(pharmacyService, uploader),
		Comment:  handler.NewCommentHandler(commentService),
		Favorite: handler.NewFavoriteHandler(favoriteService),
	}, log)

	addr := ":" + cfg.ServerPort
	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", addr),
			zap.String("store", cfg.StoreDriver),
			zap.String("swagger", swaggerURL(cfg)),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase init: %w", err)
	}
	return app, nil
}

func openStore(ctx context.Context, cfg *config.Config, app *firebase.App, log *zap.Logger) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreFirestore:
		client, err := app.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore init: %w", err)
		}
		return repository.NewFirestoreStore(client), nil
	case config.StoreMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN, log)
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(gormDB); err != nil {
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
		return repository.NewGormStore(gormDB), nil
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore().Store(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func newIdentity(ctx context.Context, cfg *config.Config, app *firebase.App, log *zap.Logger) (identity.Provider, identity.Client, error) {
	if app == nil {
		log.Warn("FIREBASE_PROJECT_ID not set, using in-process identity provider")
		p := identity.NewMemoryProvider(cfg.AuthActionURL)
		return p, p, nil
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("firebase auth init: %w", err)
	}
	toolkit, err := identity.NewToolkitClient(ctx, cfg.FirebaseAPIKey)
	if err != nil {
		return nil, nil, err
	}
	return identity.NewFirebaseProvider(authClient), toolkit, nil
}

func newMailer(cfg *config.Config, log *zap.Logger) (mail.Sender, error) {
	if cfg.SMTPHost == "" {
		log.Info("SMTP_HOST not set, emails are logged instead of sent")
		return mail.NewLogSender(log), nil
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
}

func swaggerURL(cfg *config.Config) string {
	host := cfg.SwaggerHost
	if host == "" {
		host = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "http://" + host
	}
	return host + "/swagger/index.html"
}
