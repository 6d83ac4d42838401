// Package router mounts the HTTP API: middleware stack, public routes,
// and permission-gated admin routes.
package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/greenclub/backend/internal/infrastructure/auth"
	"github.com/greenclub/backend/internal/infrastructure/config"
	"github.com/greenclub/backend/internal/infrastructure/logger"
	"github.com/greenclub/backend/internal/interfaces/http/handler"
	"github.com/greenclub/backend/internal/interfaces/http/middleware"
)

// Handlers aggregates the handlers the router mounts
type Handlers struct {
	System  *handler.SystemHandler
	Auth    *handler.AuthHandler
	Member  *handler.MemberHandler
	Role    *handler.RoleHandler
	Post    *handler.PostHandler
	Page    *handler.PolicyPageHandler
	Event   *handler.EventHandler
	Booking *handler.BookingHandler
	Pool    *handler.PoolHandler
	Orphan  *handler.OrphanHandler
	Audit   *handler.AuditHandler
}

// Config carries everything the router needs to assemble the engine
type Config struct {
	Handlers       Handlers
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	HTTP           config.HTTPConfig
	TracingEnabled bool
	ServiceName    string
	Logger         *zap.Logger
}

// New builds a gin engine with the full middleware stack and all routes
// mounted. Public content endpoints live under /api/v1/public and need
// no token; everything else under /api/v1 is JWT-authenticated, with
// admin operations gated by resource permissions.
func New(cfg Config) *gin.Engine {
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			cfg.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Secure())
	if cfg.TracingEnabled {
		engine.Use(otelgin.Middleware(cfg.ServiceName))
	}

	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Liveness and readiness live outside API versioning
	engine.GET("/health", cfg.Handlers.System.Health)
	engine.GET("/ready", cfg.Handlers.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/v1/public",
		},
		Logger: cfg.Logger,
	}))

	mountPublicRoutes(api, cfg.Handlers)
	mountAuthRoutes(api, cfg)
	mountMembershipRoutes(api, cfg.Handlers)
	mountContentRoutes(api, cfg.Handlers)
	mountClubRoutes(api, cfg.Handlers)
	mountAdminRoutes(api, cfg.Handlers)

	return engine
}

// mountPublicRoutes serves published content to unauthenticated visitors
func mountPublicRoutes(api *gin.RouterGroup, h Handlers) {
	public := api.Group("/public")
	public.GET("/posts", h.Post.ListPublished)
	public.GET("/posts/:slug", h.Post.GetPublishedBySlug)
	public.GET("/pages", h.Page.ListPublished)
	public.GET("/pages/:slug", h.Page.GetPublishedBySlug)
	public.GET("/events/upcoming", h.Event.ListUpcoming)
}

// mountAuthRoutes wires login, token refresh and session management.
// Login gets its own tighter rate limiter to slow credential stuffing.
func mountAuthRoutes(api *gin.RouterGroup, cfg Config) {
	h := cfg.Handlers

	authGroup := api.Group("/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.POST("/login", middleware.RateLimit(authLimiter), h.Auth.Login)
	} else {
		authGroup.POST("/login", h.Auth.Login)
	}
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", h.Auth.Me)
	authGroup.PUT("/password", h.Auth.ChangePassword)
}

// mountMembershipRoutes wires member and role administration
func mountMembershipRoutes(api *gin.RouterGroup, h Handlers) {
	members := api.Group("/members")
	members.POST("", middleware.RequirePermission("members:create"), h.Member.Create)
	members.GET("", middleware.RequirePermission("members:read"), h.Member.List)
	members.GET("/:id", middleware.RequirePermission("members:read"), h.Member.GetByID)
	members.PUT("/:id", middleware.RequirePermission("members:update"), h.Member.Update)
	members.DELETE("/:id", middleware.RequirePermission("members:delete"), h.Member.Delete)
	members.POST("/:id/activate", middleware.RequirePermission("members:update"), h.Member.Activate)
	members.POST("/:id/deactivate", middleware.RequirePermission("members:update"), h.Member.Deactivate)
	members.POST("/:id/lock", middleware.RequirePermission("members:update"), h.Member.Lock)
	members.POST("/:id/unlock", middleware.RequirePermission("members:update"), h.Member.Unlock)
	members.PUT("/:id/roles", middleware.RequirePermission("roles:assign"), h.Member.AssignRoles)
	members.POST("/:id/reset-password", middleware.RequirePermission("members:update"), h.Member.ResetPassword)

	roles := api.Group("/roles")
	roles.Use(middleware.RequireResource("roles"))
	roles.POST("", h.Role.Create)
	roles.GET("", h.Role.List)
	roles.GET("/:id", h.Role.GetByID)
	roles.PUT("/:id", h.Role.Update)
	roles.PUT("/:id/permissions", h.Role.SetPermissions)
	roles.DELETE("/:id", h.Role.Delete)
}

// mountContentRoutes wires post and policy page authoring
func mountContentRoutes(api *gin.RouterGroup, h Handlers) {
	posts := api.Group("/posts")
	posts.POST("", middleware.RequirePermission("posts:create"), h.Post.Create)
	posts.GET("", middleware.RequirePermission("posts:read"), h.Post.List)
	posts.GET("/:id", middleware.RequirePermission("posts:read"), h.Post.GetByID)
	posts.PUT("/:id", middleware.RequirePermission("posts:update"), h.Post.Update)
	posts.DELETE("/:id", middleware.RequirePermission("posts:delete"), h.Post.Delete)
	posts.POST("/:id/publish", middleware.RequirePermission("posts:publish"), h.Post.Publish)
	posts.POST("/:id/archive", middleware.RequirePermission("posts:publish"), h.Post.Archive)
	posts.POST("/:id/unarchive", middleware.RequirePermission("posts:publish"), h.Post.Unarchive)
	posts.PUT("/:id/pinned", middleware.RequirePermission("posts:update"), h.Post.SetPinned)

	pages := api.Group("/pages")
	pages.POST("", middleware.RequirePermission("pages:create"), h.Page.Create)
	pages.GET("", middleware.RequirePermission("pages:read"), h.Page.List)
	pages.GET("/:id", middleware.RequirePermission("pages:read"), h.Page.GetByID)
	pages.PUT("/:id", middleware.RequirePermission("pages:update"), h.Page.Update)
	pages.DELETE("/:id", middleware.RequirePermission("pages:delete"), h.Page.Delete)
	pages.POST("/:id/publish", middleware.RequirePermission("pages:publish"), h.Page.Publish)
	pages.POST("/:id/unpublish", middleware.RequirePermission("pages:publish"), h.Page.Unpublish)
}

// mountClubRoutes wires events, rink bookings and registration pools.
// Booking creation and pool registration are member self-service, so
// they only need an authenticated session; administration of events and
// pools is permission-gated.
func mountClubRoutes(api *gin.RouterGroup, h Handlers) {
	events := api.Group("/events")
	events.POST("", middleware.RequirePermission("events:create"), h.Event.Create)
	events.GET("", h.Event.List)
	events.GET("/:id", h.Event.GetByID)
	events.PUT("/:id", middleware.RequirePermission("events:update"), h.Event.Update)
	events.DELETE("/:id", middleware.RequirePermission("events:delete"), h.Event.Delete)
	events.POST("/:id/cancel", middleware.RequirePermission("events:update"), h.Event.Cancel)
	events.POST("/:id/complete", middleware.RequirePermission("events:update"), h.Event.Complete)

	bookings := api.Group("/bookings")
	bookings.POST("", h.Booking.Create)
	bookings.GET("", middleware.RequirePermission("bookings:read"), h.Booking.List)
	bookings.GET("/day", h.Booking.ListForDate)
	bookings.GET("/:id", h.Booking.GetByID)
	bookings.PUT("/:id/schedule", h.Booking.Reschedule)
	bookings.POST("/:id/cancel", h.Booking.Cancel)

	pools := api.Group("/pools")
	pools.POST("", middleware.RequirePermission("pools:create"), h.Pool.Create)
	pools.GET("/open", h.Pool.ListOpen)
	pools.GET("/:id", h.Pool.GetByID)
	pools.PUT("/:id", middleware.RequirePermission("pools:update"), h.Pool.Update)
	pools.DELETE("/:id", middleware.RequirePermission("pools:delete"), h.Pool.Delete)
	pools.POST("/:id/close", middleware.RequirePermission("pools:update"), h.Pool.Close)
	pools.POST("/:id/reopen", middleware.RequirePermission("pools:update"), h.Pool.Reopen)
	pools.POST("/:id/register", h.Pool.Register)
	pools.POST("/:id/withdraw", h.Pool.Withdraw)
	pools.GET("/:id/registrations", middleware.RequirePermission("pools:read"), h.Pool.ListRegistrations)
}

// mountAdminRoutes wires the audit log, content recovery tooling and
// system information
func mountAdminRoutes(api *gin.RouterGroup, h Handlers) {
	auditGroup := api.Group("/audit")
	auditGroup.Use(middleware.RequirePermission("audit:read"))
	auditGroup.GET("", h.Audit.List)
	auditGroup.GET("/:id", h.Audit.GetByID)

	orphans := api.Group("/content/orphans")
	orphans.Use(middleware.RequirePermission("content:admin"))
	orphans.GET("", h.Orphan.Report)
	orphans.POST("/posts/:dirKey/recover", h.Orphan.RecoverPost)
	orphans.DELETE("/posts/:dirKey", h.Orphan.PurgePost)
	orphans.DELETE("/pages/:dirKey", h.Orphan.PurgePage)

	rewrite := api.Group("/content/rewrite")
	rewrite.Use(middleware.RequirePermission("content:admin"))
	rewrite.POST("/posts/:id", h.Orphan.RewritePostHTML)
	rewrite.POST("/pages/:id", h.Orphan.RewritePageHTML)

	api.GET("/system/info", h.System.Info)
}
