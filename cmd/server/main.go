package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"project-tracker/internal/audit"
	"project-tracker/internal/config"
	"project-tracker/internal/database"
	"project-tracker/internal/database/memory"
	"project-tracker/internal/handlers"
	"project-tracker/internal/logger"
	"project-tracker/internal/security"
	"project-tracker/internal/server"
	"project-tracker/internal/services"
)

const appName = "project-tracker"

type stores struct {
	projects services.ProjectStore
	tasks    services.TaskStore
	users    services.UserStore
	roles    services.RoleStore
	audit    audit.Store
}

func openStores(cfg *config.Config) (stores, error) {
	log := logger.Log

	if cfg.Storage == config.StorageMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		db := memory.New()
		return stores{db.Projects(), db.Tasks(), db.Users(), db.Roles(), db.Audit()}, nil
	}

	db, err := database.Open(cfg.DBDSN, log)
	if err != nil {
		return stores{}, err
	}
	if err := database.Migrate(db); err != nil {
		return stores{}, fmt.Errorf("migrate: %w", err)
	}
	auditDB, err := database.OpenAudit(cfg.AuditDBDSN, log)
	if err != nil {
		return stores{}, err
	}

	return stores{
		projects: database.NewProjectStore(db),
		tasks:    database.NewTaskStore(db),
		users:    database.NewUserStore(db),
		roles:    database.NewRoleStore(db),
		audit:    database.NewAuditStore(auditDB),
	}, nil
}

func main() {
	cfg := config.Load()
	logger.Init(appName, cfg.LogLevel)
	log := logger.Log
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}

	hasher := security.NewBcryptHasher(0)
	if err := database.Seed(ctx, st.roles, st.users, hasher, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
		log.WithError(err).Fatal("failed to seed database")
	}

	recorder := audit.NewRecorder(st.audit, log.WithField("component", "audit"))
	tokens := security.NewJWTCodec(cfg.JWTSecret, cfg.JWTExpiration)
	authSvc, err := services.NewAuthService(st.users, st.roles, hasher, tokens, recorder)
	if err != nil {
		log.WithError(err).Fatal("failed to build auth service")
	}

	deps := handlers.Deps{
		Projects: services.NewProjectService(st.projects, recorder, cfg.ProjectCacheTTL),
		Tasks:    services.NewTaskService(st.tasks, st.projects, st.users, recorder),
		Users:    services.NewUserService(st.users, st.roles, hasher, recorder),
		Roles:    services.NewRoleService(st.roles, st.users, recorder),
		Auth:     authSvc,
		Audit:    recorder,
		Log:      log,
	}
	if cfg.GoogleEnabled() {
		deps.Google = security.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	r := server.NewRouter(cfg, handlers.New(deps), authSvc, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           server.WithCORS(cfg, r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
