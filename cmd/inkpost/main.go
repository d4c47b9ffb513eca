package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/inkpost/inkpost/internal/config"
	"github.com/inkpost/inkpost/internal/db"
	"github.com/inkpost/inkpost/internal/filestore"
	"github.com/inkpost/inkpost/internal/handler"
	"github.com/inkpost/inkpost/internal/job"
	"github.com/inkpost/inkpost/internal/middleware"
	"github.com/inkpost/inkpost/internal/repo"
	"github.com/inkpost/inkpost/internal/schedule"
	"github.com/inkpost/inkpost/internal/service"
	"github.com/inkpost/inkpost/internal/usercache"
)

const revocationCleanupSpec = "0 * * * *"

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "inkpost",
		Short: "inkpost blogging backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run inkpost server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			conn, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(conn); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, conn)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, conn *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	userRepo := repo.NewUserRepo(conn)
	blogRepo := repo.NewBlogRepo(conn)
	revocationRepo := repo.NewRevocationRepo(conn)

	jwtSecret := []byte(cfg.JWTSecret)
	jwtTTL := time.Hour * time.Duration(cfg.JWTTTLHours)
	authService := service.NewAuthService(userRepo, revocationRepo, jwtSecret, jwtTTL)
	blogService := service.NewBlogService(blogRepo, userRepo)

	store, err := filestore.New(cfg.FileStore)
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	var resolver middleware.UserResolver = userRepo
	if cfg.UserCache.Size > 0 {
		resolver = usercache.WrapLRU(userRepo, cfg.UserCache.Size, time.Duration(cfg.UserCache.TTLSeconds)*time.Second)
	}

	deps := handler.RouterDeps{
		Auth:           handler.NewAuthHandler(authService, handler.NewAvatarUploader(store)),
		Blogs:          handler.NewBlogHandler(blogService),
		Files:          handler.NewFileHandler(store),
		JWTSecret:      jwtSecret,
		Users:          resolver,
		Revocations:    revocationRepo,
		AuthRateWindow: time.Duration(cfg.AuthRateWindow) * time.Second,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.CORS(cfg.CORSAllowlist),
		gzip.Gzip(gzip.DefaultCompression),
	)
	handler.RegisterRoutes(engine.Group("/api"), deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewRevocationCleanupJob(revocationRepo), revocationCleanupSpec); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: engine}
	logutil.GetLogger(ctx).Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
