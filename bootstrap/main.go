package bootstrap

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	pprof_gin "github.com/gin-contrib/pprof"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/fundarhq/fundar/backend/config"
	"github.com/fundarhq/fundar/backend/controllers"
	"github.com/fundarhq/fundar/backend/middleware"
	"github.com/fundarhq/fundar/backend/models"
	"github.com/fundarhq/fundar/backend/services"
	"github.com/fundarhq/fundar/backend/utils"
)

// based on https://www.digitalocean.com/community/tutorials/using-ldflags-to-set-version-information-for-go-applications
var Version = "dev"

const uploadDir = "./uploads"

func setupProfiler(r *gin.Engine) {
	pprof_gin.Register(r)

	if err := os.MkdirAll("/tmp/profiles", 0o755); err != nil {
		slog.Error("Failed to create profiles directory", "error", err)
		panic(err)
	}

	go periodicProfiling()
}

func periodicProfiling() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		// GC first so the heap profile reflects live objects
		runtime.GC()

		timestamp := time.Now().Format("2006-01-02-15-04-05")
		memProfilePath := filepath.Join("/tmp/profiles", fmt.Sprintf("memory-%s.pprof", timestamp))
		f, err := os.Create(memProfilePath)
		if err != nil {
			slog.Error("Failed to create memory profile", "error", err)
			continue
		}

		if err := pprof.WriteHeapProfile(f); err != nil {
			slog.Error("Failed to write memory profile", "error", err)
		}
		f.Close()

		cleanupOldProfiles("/tmp/profiles", 168)
	}
}

func cleanupOldProfiles(dir string, keep int) {
	files, err := filepath.Glob(filepath.Join(dir, "memory-*.pprof"))
	if err != nil {
		slog.Error("Failed to list profile files", "error", err)
		return
	}

	if len(files) <= keep {
		return
	}

	// filenames embed the timestamp, lexical order is chronological
	for i := 0; i < len(files)-keep; i++ {
		if err := os.Remove(files[i]); err != nil {
			slog.Error("Failed to remove old profile", "file", files[i], "error", err)
		}
	}
}

// Bootstrap wires the whole backend: config, logging, sentry, database,
// sessions, the auth services and every route group.
func Bootstrap() *gin.Engine {
	initLogging()
	cfg := config.AppConfig

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		EnableTracing:    true,
		TracesSampleRate: 0.1,
		Release:          "api@" + Version,
		DebugWriter:      utils.NewSentrySlogWriter(slog.Default().WithGroup("sentry")),
	}); err != nil {
		slog.Error("Sentry initialization failed", "error", err)
	}

	models.ConnectDatabase()

	r := gin.Default()

	r.Use(sloggin.New(slog.Default().WithGroup("http")))

	if _, exists := os.LookupEnv("FUNDAR_PPROF_DEBUG_ENABLED"); exists {
		setupProfiler(r)
	}

	store := gormsessions.NewStore(models.DB.GormDB, true, config.GetSessionSecret())
	r.Use(sessions.Sessions("fundar-session", store))

	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"build_date":  cfg.GetString("build_date"),
			"deployed_at": cfg.GetString("deployed_at"),
			"version":     Version,
		})
	})

	tokens := services.NewTokenService(config.GetTokenSecret(), config.GetTokenTTL())
	mailer := services.LogMailer{}
	authenticator := services.NewAuthenticator(models.DB, tokens, mailer)
	google := services.NewGoogleResolver(models.DB, tokens,
		config.GetGoogleClientID(),
		config.GetGoogleClientSecret(),
		config.GetGoogleRedirectURL(),
		config.GetFrontendURL())
	authController := controllers.AuthController{Auth: authenticator, Google: google}

	storer, err := services.NewDiskFileStorer(uploadDir, "/static/uploads")
	if err != nil {
		slog.Error("Failed to set up upload storage", "error", err)
		panic(err)
	}
	r.Static("/static/uploads", uploadDir)
	filesController := controllers.FilesController{Storer: storer}
	paymentsController := controllers.PaymentsController{
		Gateway: services.NewPaymentGateway(config.GetStripeKey(), config.GetFrontendURL()),
	}

	services.StartNotificationCron()

	auth := r.Group("/auth")
	auth.POST("/signin", authController.SignIn)
	auth.POST("/signup", authController.SignUp)
	auth.GET("/google", authController.GoogleLogin)
	auth.GET("/google/callback", authController.GoogleCallback)

	// catalog routes are public
	r.GET("/projects", controllers.ListProjects)
	r.GET("/projects/:id", controllers.GetProject)
	r.GET("/categories", controllers.ListCategories)
	r.GET("/categories/:id", controllers.GetCategory)

	authorized := r.Group("/")
	authorized.Use(middleware.BearerTokenAuth(tokens))

	admin := r.Group("/")
	admin.Use(middleware.BearerTokenAuth(tokens), middleware.RequireRole(models.AdminRole))

	admin.GET("/users", controllers.ListUsers)
	authorized.GET("/users/:id", controllers.GetUser)
	authorized.PUT("/users/:id", controllers.UpdateUser)
	admin.PUT("/users/:id/role", controllers.UpdateUserRole)
	admin.DELETE("/users/:id", controllers.DeleteUser)

	admin.POST("/projects", controllers.CreateProject)
	admin.PUT("/projects/:id", controllers.UpdateProject)
	admin.DELETE("/projects/:id", controllers.DeleteProject)

	admin.POST("/categories", controllers.CreateCategory)
	admin.PUT("/categories/:id", controllers.UpdateCategory)
	admin.DELETE("/categories/:id", controllers.DeleteCategory)

	authorized.POST("/donations", controllers.CreateDonation)
	admin.GET("/donations", controllers.ListDonations)
	authorized.GET("/donations/:id", controllers.GetDonation)
	authorized.PUT("/donations/:id", controllers.UpdateDonation)
	admin.DELETE("/donations/:id", controllers.DeleteDonation)

	authorized.POST("/payments/create-session", paymentsController.CreateSession)
	authorized.POST("/files/upload/:id", filesController.Upload)

	return r
}

func initLogging() {
	logLevel := os.Getenv("FUNDAR_LOG_LEVEL")
	var level slog.Leveler

	switch logLevel {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
