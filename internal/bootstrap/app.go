package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/auth"
	"resume-optimizer/internal/resumes"
	"resume-optimizer/internal/services/health"
	sharedauth "resume-optimizer/internal/shared/auth"
	"resume-optimizer/internal/shared/config"
	"resume-optimizer/internal/shared/server"
	"resume-optimizer/internal/shared/storage/db"
	"resume-optimizer/internal/shared/storage/object"
	localstore "resume-optimizer/internal/shared/storage/object/local"
	s3store "resume-optimizer/internal/shared/storage/object/s3"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/users"
)

// App holds shared dependencies and the configured router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Tokens *sharedauth.Issuer

	UsersRepo    users.Repo
	ResumesRepo  resumes.Repo
	AnalysesRepo analyses.Repo

	UsersService    *users.Service
	AuthService     *auth.Service
	ResumesService  *resumes.Service
	AnalysesService *analyses.Service
	HealthService   *health.Service
}

// Build connects storage, wires services and handlers, and builds the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.StorageBackend) == "" {
		cfg.StorageBackend = object.BackendLocal
	}

	tokens, err := sharedauth.NewIssuer(cfg.JWTSecret, cfg.IsProduction(), cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Tokens: tokens,
	}
	buildServices(app)

	usersHandler := users.NewHandler(app.UsersService)
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Verifier:        tokens,
		ActiveUsers:     app.UsersService,
		AuthHandler:     auth.NewHandler(app.AuthService, usersHandler),
		UsersHandler:    usersHandler,
		ResumesHandler:  resumes.NewHandler(app.ResumesService),
		AnalysisHandler: analyses.NewHandler(app.AnalysesService),
		HealthHandler:   health.NewHandler(app.HealthService),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":             cfg.Env,
		"database":        sqlDB != nil,
		"storage_backend": store.Backend(),
	})
	return app, nil
}

// Close releases the database pool.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if !cfg.IsDevLike() {
			return nil, errors.New("DATABASE_URL is required")
		}
		telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			telemetry.Error("bootstrap.migrations_failed", map[string]any{"error": err.Error()})
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.StorageBackend {
	case object.BackendS3:
		store, err := s3store.New(ctx, s3store.Options{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccountID:       cfg.S3AccountID,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
			Prefix:          cfg.S3Prefix,
			PublicURL:       cfg.S3PublicURL,
			KMSKeyID:        cfg.SSEKMSKeyID,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.AnalysesRepo = analyses.NewMemoryRepo()
	}

	resumeSvc := resumes.NewService(app.ResumesRepo, app.Store)
	resumeSvc.MaxUploadBytes = app.Config.MaxUploadBytes()
	if len(app.Config.AllowedUploadTypes) > 0 {
		resumeSvc.AllowedTypes = app.Config.AllowedUploadTypes
	}
	if app.Config.DownloadURLTTL > 0 {
		resumeSvc.DownloadTTL = app.Config.DownloadURLTTL
	}
	resumeSvc.Analyses = app.AnalysesRepo

	userSvc := users.NewService(app.UsersRepo)
	userSvc.Cleaner = resumeSvc

	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.AuthService = auth.NewService(userSvc, app.Tokens)
	app.AnalysesService = analyses.NewService(app.AnalysesRepo, resumeSvc)
	app.HealthService = health.NewService(app.DB)
}
