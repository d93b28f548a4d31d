package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/config"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/server/handlers"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/server/router"
	authsvc "github.com/Aayush-Sood101/newspaper-management-backend/internal/service/auth"
	reportsvc "github.com/Aayush-Sood101/newspaper-management-backend/internal/service/report"
	"github.com/Aayush-Sood101/newspaper-management-backend/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.New(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := repo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	if err := seedAdminUser(context.Background(), repo, cfg.Admin, baseLogger); err != nil {
		baseLogger.Fatal("failed to seed admin user", zap.Error(err))
	}

	auth := authsvc.NewService(repo, cfg.Auth, baseLogger.Named("svc.auth"))
	reports := reportsvc.NewService(repo, repo, baseLogger.Named("svc.report"))

	authHandler := handlers.NewAuthHandler(auth, repo, baseLogger.Named("handlers.auth"))
	newspaperHandler := handlers.NewNewspaperHandler(repo, baseLogger.Named("handlers.newspapers"))
	recordHandler := handlers.NewRecordHandler(repo, repo, reports, baseLogger.Named("handlers.records"))

	engine := router.New(cfg.CORS, auth, authHandler, newspaperHandler, recordHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// seedAdminUser creates the first admin account from the configured
// bootstrap credentials when the users collection is empty.
func seedAdminUser(ctx context.Context, users mongodb.UserStore, admin config.AdminConfig, log *zap.Logger) error {
	if admin.Email == "" {
		return nil
	}

	count, err := users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := authsvc.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	user := models.User{Email: admin.Email, Password: hash, Role: models.RoleAdmin}
	if err := users.InsertUser(ctx, &user); err != nil {
		return err
	}

	log.Info("seeded initial admin user", zap.String("email", admin.Email))
	return nil
}
