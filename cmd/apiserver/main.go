package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reobserve/reobserve/internal/apiserver/database"
	"github.com/reobserve/reobserve/internal/apiserver/handler"
	"github.com/reobserve/reobserve/internal/apiserver/middleware"
	"github.com/reobserve/reobserve/internal/auth/jwt"
	"github.com/reobserve/reobserve/internal/auth/permission"
	"github.com/reobserve/reobserve/internal/common/cnst"
	"github.com/reobserve/reobserve/internal/common/config"
	"github.com/reobserve/reobserve/internal/i18n"
	"github.com/reobserve/reobserve/pkg/logger"
	"github.com/reobserve/reobserve/pkg/metrics"
	"github.com/reobserve/reobserve/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "ReObserve API Server",
		Long:  `ReObserve API Server manages fiscal-note releases, accounting periods, and enterprise accounts`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", cnst.ApiServerYaml, "path to configuration file")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	if err := i18n.InitTranslator(cfg.I18n.Path); err != nil {
		zapLogger.Warn("failed to load translations, responses fall back to message ids",
			zap.String("path", cfg.I18n.Path),
			zap.Error(err))
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to initialize database",
			zap.String("type", cfg.Database.Type),
			zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := database.InitSuperAdmin(context.Background(), db, &cfg.SuperAdmin); err != nil {
		zapLogger.Fatal("failed to seed super admin", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{SecretKey: cfg.JWT.SecretKey, Duration: cfg.JWT.Duration})
	if err != nil {
		zapLogger.Fatal("failed to initialize token service", zap.Error(err))
	}

	router := buildRouter(cfg, db, jwtService, zapLogger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		zapLogger.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}
}

func buildRouter(cfg *config.APIServerConfig, db database.Database, jwtService *jwt.Service, zapLogger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(i18n.LanguageMiddleware())

	if cfg.Metrics.Enabled {
		m := metrics.New(cfg.Metrics)
		router.Use(m.GinMiddleware())
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get()})
	})

	h := handler.NewHandler(db, jwtService, zapLogger)
	auth := middleware.JWTAuthMiddleware(jwtService)
	requireCap := func(cap permission.Capability) gin.HandlerFunc {
		return middleware.RequireCapability(db, zapLogger, cap)
	}

	api := router.Group("/api")

	users := api.Group("/users")
	users.POST("/auth/login", h.UserLogin)
	users.POST("/auth/logout", h.Logout)
	users.POST("/auth/register", auth, middleware.RequireEnterprise(), h.RegisterUser)
	users.GET("", auth, middleware.RequireEnterprise(), h.ListUsers)
	users.PUT("/:id", auth, middleware.RequireEnterprise(), h.UpdateUser)
	users.GET("/me", auth, h.Me)

	enterprises := api.Group("/enterprises")
	enterprises.POST("", h.RegisterEnterprise)
	enterprises.POST("/auth/login", h.EnterpriseLogin)
	enterprises.POST("/auth/logout", h.Logout)

	groups := enterprises.Group("/groups", auth, middleware.RequireEnterprise())
	groups.GET("", h.ListGroups)
	groups.POST("", h.CreateGroup)
	groups.DELETE("/:id", h.DeleteGroup)

	releases := api.Group("/releases", auth)
	releases.GET("", requireCap(permission.CapViewRelease), h.ListReleases)
	releases.GET("/:id", requireCap(permission.CapViewRelease), h.GetRelease)
	releases.POST("", requireCap(permission.CapCreateRelease), h.CreateRelease)
	releases.PUT("/:id", requireCap(permission.CapEditRelease), h.UpdateRelease)
	releases.DELETE("/:id", requireCap(permission.CapDeleteRelease), h.DeleteRelease)

	periods := api.Group("/periods", auth)
	periods.GET("", requireCap(permission.CapViewPeriod), h.ListPeriods)
	periods.GET("/:id", requireCap(permission.CapViewPeriod), h.GetPeriod)
	periods.POST("", requireCap(permission.CapCreatePeriod), h.CreatePeriod)
	periods.PUT("/:id", requireCap(permission.CapEditPeriod), h.UpdatePeriod)
	periods.DELETE("/:id", requireCap(permission.CapDeletePeriod), h.DeletePeriod)

	return router
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
