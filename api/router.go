package api

import (
	"weblarek/api/auth"
	"weblarek/api/customer"
	"weblarek/api/health"
	"weblarek/api/middleware"
	"weblarek/api/order"
	"weblarek/api/product"
	"weblarek/api/upload"
	"weblarek/config"
	customerdomain "weblarek/domain/customer"
	pkgauth "weblarek/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Controllers groups everything the router mounts.
type Controllers struct {
	Health   *health.Controller
	Auth     *auth.Controller
	Customer *customer.Controller
	Order    *order.Controller
	Product  *product.Controller
	Upload   *upload.Controller
}

// Router Route configuration
type Router struct {
	engine      *gin.Engine
	config      *config.Config
	controllers Controllers
	tokens      *pkgauth.TokenManager
	customers   customerdomain.Repository
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	controllers Controllers,
	tokens *pkgauth.TokenManager,
	customers customerdomain.Repository,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before
	// anything logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logging())
	engine.Use(middleware.CORS(&cfg.CORS))
	engine.Use(middleware.RateLimit(&cfg.Server.RateLimit))

	return &Router{
		engine:      engine,
		config:      cfg,
		controllers: controllers,
		tokens:      tokens,
		customers:   customers,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	public := r.engine.Group("")
	authed := r.engine.Group("", middleware.Authenticate(r.tokens, r.customers))
	admin := r.engine.Group("", middleware.Authenticate(r.tokens, r.customers), middleware.AdminOnly())

	r.controllers.Health.RegisterRoutes(public)
	r.controllers.Auth.RegisterRoutes(public, authed)
	r.controllers.Customer.RegisterRoutes(admin)
	r.controllers.Order.RegisterRoutes(authed, admin)
	r.controllers.Product.RegisterRoutes(public, admin)
	r.controllers.Upload.RegisterRoutes(admin)

	// Promoted uploads are served from the permanent image directory
	// under the same public prefix the upload response embeds.
	r.engine.Static("/"+r.config.Upload.PublicPrefix, r.config.Upload.Dir)

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
