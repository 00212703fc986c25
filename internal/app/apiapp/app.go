package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ivankudzin/askbox/backend/internal/config"
	s3infra "github.com/ivankudzin/askbox/backend/internal/infra/s3"
	pgrepo "github.com/ivankudzin/askbox/backend/internal/repo/postgres"
	redrepo "github.com/ivankudzin/askbox/backend/internal/repo/redis"
	adminsvc "github.com/ivankudzin/askbox/backend/internal/services/admins"
	authsvc "github.com/ivankudzin/askbox/backend/internal/services/auth"
	modsvc "github.com/ivankudzin/askbox/backend/internal/services/moderation"
	reportsvc "github.com/ivankudzin/askbox/backend/internal/services/reports"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	notificationRepo := redrepo.NewNotificationRepo(redisClient)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	fileStorage := s3infra.NewStorage(s3Client, cfg.S3.Bucket)

	userRepo := pgrepo.NewUserRepo(pool)
	punishmentRepo := pgrepo.NewPunishmentRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	questionRepo := pgrepo.NewQuestionRepo(pool)
	replyRepo := pgrepo.NewReplyRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	moderationService := modsvc.NewService(modsvc.Dependencies{
		Pool:            pool,
		UserStore:       userRepo,
		PunishmentStore: punishmentRepo,
		ReportStore:     reportRepo,
		QuestionStore:   questionRepo,
		ReplyStore:      replyRepo,
		Notifier:        notificationRepo,
		Signer:          fileStorage,
	}, modsvc.Config{
		SanctionTTL: cfg.Moderation.SanctionTTL,
	})
	reportService := reportsvc.NewService(reportsvc.Dependencies{
		Pool:          pool,
		UserStore:     userRepo,
		QuestionStore: questionRepo,
		ReplyStore:    replyRepo,
		ReportStore:   reportRepo,
	})
	adminService := adminsvc.NewService(userRepo, cfg.Admin.Key)

	RegisterRoutes(r, Dependencies{
		ModerationService: moderationService,
		ReportService:     reportService,
		AdminService:      adminService,
		JWTManager:        jwtManager,
		Logger:            log,
		Config:            cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
