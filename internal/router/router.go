// Package router wires repositories, services and handlers into the gin
// engine.
package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yukikurage/expense-tracking-api/internal/config"
	"github.com/yukikurage/expense-tracking-api/internal/constants"
	apierrors "github.com/yukikurage/expense-tracking-api/internal/errors"
	"github.com/yukikurage/expense-tracking-api/internal/events"
	"github.com/yukikurage/expense-tracking-api/internal/handlers"
	"github.com/yukikurage/expense-tracking-api/internal/logging"
	"github.com/yukikurage/expense-tracking-api/internal/middleware"
	"github.com/yukikurage/expense-tracking-api/internal/repository"
	"github.com/yukikurage/expense-tracking-api/internal/services"
	"github.com/yukikurage/expense-tracking-api/internal/utils"
	"github.com/yukikurage/expense-tracking-api/internal/validation"
)

// Dependencies are the long lived collaborators of the HTTP layer.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *slog.Logger
	Publisher events.Publisher
	Sessions  sessions.Store
}

// NewSessionStore returns a Redis backed store when an address is
// configured and a signed cookie store otherwise.
func NewSessionStore(cfg config.SessionConfig, secure bool) (sessions.Store, error) {
	var store sessions.Store
	if cfg.RedisAddr != "" {
		s, err := redisStore.NewStore(
			10,                 // Redis pool size
			"tcp",              // network type
			cfg.RedisAddr,      // Redis address
			"",                 // username (empty for default user)
			cfg.RedisPassword,  // password
			[]byte(cfg.Secret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store = s
	} else {
		store = cookie.NewStore([]byte(cfg.Secret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// Setup builds the engine with every route registered.
func Setup(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	projectRepo := repository.NewProjectRepository(deps.DB)
	categoryRepo := repository.NewCategoryRepository(deps.DB)
	entryRepo := repository.NewEntryRepository(deps.DB)

	// Services
	validator := validation.New(deps.DB)
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)

	authorizer := services.NewAuthorizer(projectRepo, categoryRepo, entryRepo)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, validator, deps.Publisher, cfg.Auth.BcryptCost, cfg.App.BaseURL)
	projectService := services.NewProjectService(projectRepo, categoryRepo, userRepo, validator, deps.Publisher, cfg.Defaults)
	categoryService := services.NewCategoryService(categoryRepo, validator, cfg.Defaults)
	entryService := services.NewEntryService(entryRepo, categoryRepo, validator)
	statsService := services.NewStatsService(categoryRepo, entryRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, statsService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	entryHandler := handlers.NewEntryHandler(entryService, statsService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger(deps.Logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.Sessions))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := deps.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			apierrors.ServiceUnavailable(c, "Database unavailable")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Expense Tracking API is running",
		})
	})

	requireAuth := middleware.RequireAuth(authService)
	projectAccess := middleware.RequireProjectAccess(authorizer)
	categoryAccess := middleware.RequireCategoryAccess(authorizer)
	entryAccess := middleware.RequireEntryAccess(authorizer)

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/authenticate", authHandler.Authenticate)
		api.POST("/logout", authHandler.Logout)
		api.GET("/confirm/:id/:token", authHandler.Confirm)

		v1 := api.Group("/v1")

		// Registration is the only public v1 route
		v1.POST("/users", userHandler.Register)

		users := v1.Group("/users", requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		projects := v1.Group("/projects", requireAuth)
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/archived", projectHandler.ListArchivedProjects)

			project := projects.Group("/:id", projectAccess)
			project.GET("", projectHandler.GetProject)
			project.PUT("", projectHandler.UpdateProject)
			project.DELETE("", projectHandler.DeleteProject)
			project.PUT("/members/:userId", projectHandler.AddMember)
			project.DELETE("/members/:userId", projectHandler.RemoveMember)
			project.GET("/stats", projectHandler.GetStats)
			project.GET("/categories", categoryHandler.ListCategories)
			project.POST("/categories", categoryHandler.CreateCategory)
			project.GET("/entries", entryHandler.ListEntries)
			project.POST("/entries", entryHandler.CreateEntry)
		}

		categories := v1.Group("/categories/:id", requireAuth, categoryAccess)
		{
			categories.GET("", categoryHandler.GetCategory)
			categories.PUT("", categoryHandler.UpdateCategory)
			categories.DELETE("", categoryHandler.DeleteCategory)
		}

		entries := v1.Group("/entries/:id", requireAuth, entryAccess)
		{
			entries.GET("", entryHandler.GetEntry)
			entries.PUT("", entryHandler.UpdateEntry)
			entries.DELETE("", entryHandler.DeleteEntry)
		}
	}

	return r
}
