package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	"github.com/learning/securedapp/internal/api/handler"
	"github.com/learning/securedapp/internal/api/middleware"
	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Security  ports.SecurityService
	Auth      ports.AuthService
	Category  ports.CategoryService
	Health    *handler.HealthHandler
	Readiness *handler.ReadinessHandler
	JWTSecret string
	HTTPSPort string
	Logger    zerolog.Logger
}

// NewRouter builds the Echo instance with the full middleware chain and all
// routes registered. Middleware order is fixed: transport check first, then
// authentication, then authorization, then locale normalization, then the
// handler.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	// The transport check runs as pre-middleware so it fires before routing,
	// ahead of everything else.
	e.Pre(middleware.HTTPSRedirect(deps.HTTPSPort))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("securedapp"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Security)
	roleHandler := handler.NewRoleHandler(deps.Security)
	categoryHandler := handler.NewCategoryHandler(deps.Category)

	authn := middleware.Auth(deps.JWTSecret)
	locale := middleware.LocaleSwitch()

	// --- Public surface ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- User management ---
	users := e.Group("/users", authn, middleware.RequirePermission(domain.PermissionManageUsers), locale)
	users.GET("", userHandler.List)
	users.GET("/new", userHandler.NewForm)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.EditForm)
	users.POST("/:id", userHandler.Update)

	// --- Role catalog ---
	roles := e.Group("/roles", authn, middleware.RequirePermission(domain.PermissionManageRoles), locale)
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)

	// --- Categories ---
	categories := e.Group("/categories", authn, middleware.RequirePermission(domain.PermissionManageCategories), locale)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.GET("/:id", categoryHandler.Get)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)

	return e
}

// NewRedirectRouter builds the handler served on the insecure listener. It
// executes no application logic: every request is redirected to the secure
// port by the transport middleware.
func NewRedirectRouter(httpsPort string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.HTTPSRedirect(httpsPort))
	return e
}
