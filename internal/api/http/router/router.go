package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/sweetshop-server/internal/api/http/handler"
	"github.com/dtroode/sweetshop-server/internal/api/http/middleware"
	"github.com/dtroode/sweetshop-server/internal/authz"
	"github.com/dtroode/sweetshop-server/internal/logger"
	"github.com/dtroode/sweetshop-server/internal/model"
)

// MetricsCollector observes requests and serves the collected metrics.
type MetricsCollector interface {
	middleware.RequestObserver
	Handler() http.Handler
}

// Router wires the sweet shop REST API.
type Router struct {
	authService      handler.AuthService
	inventoryService handler.InventoryService
	resolver         middleware.IdentityResolver
	pinger           model.Pinger
	metrics          MetricsCollector
	contextManager   model.ContextManager
	policy           authz.Policy
	maxImageBytes    int64
	logger           *logger.Logger
}

// Deps are the collaborators the router dispatches to.
type Deps struct {
	AuthService      handler.AuthService
	InventoryService handler.InventoryService
	Resolver         middleware.IdentityResolver
	Pinger           model.Pinger
	Metrics          MetricsCollector
	ContextManager   model.ContextManager
	Policy           authz.Policy
	MaxImageBytes    int64
	Logger           *logger.Logger
}

// New creates a new Router. A nil Policy falls back to authz.DefaultPolicy.
func New(d Deps) *Router {
	if d.Policy == nil {
		d.Policy = authz.DefaultPolicy()
	}
	return &Router{
		authService:      d.AuthService,
		inventoryService: d.InventoryService,
		resolver:         d.Resolver,
		pinger:           d.Pinger,
		metrics:          d.Metrics,
		contextManager:   d.ContextManager,
		policy:           d.Policy,
		maxImageBytes:    d.MaxImageBytes,
		logger:           d.Logger,
	}
}

// Register builds the gin engine with middleware and routes.
//
// Middleware order: recovery, request logging, metrics, identity, authorization.
// Authorization runs before every handler, so callers without access get 401
// or 403 whether or not the addressed sweet exists.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()

	handlers := []gin.HandlerFunc{
		gin.Recovery(),
		middleware.NewLogging(r.logger).Handle,
	}
	if r.metrics != nil {
		handlers = append(handlers, middleware.NewMetrics(r.metrics).Handle)
	}
	handlers = append(handlers,
		middleware.NewIdentity(r.resolver, r.contextManager, r.policy.PublicPaths(), r.logger).Handle,
		middleware.NewAuthorize(r.policy, r.contextManager, r.logger).Handle,
	)
	engine.Use(handlers...)

	r.registerOpsRoutes(engine)
	r.registerAuthRoutes(engine)
	r.registerSweetRoutes(engine)

	return engine
}

func (r *Router) registerOpsRoutes(engine *gin.Engine) {
	if r.pinger != nil {
		engine.GET("/health", handler.NewHealth(r.pinger, r.logger).Check)
	}
	if r.metrics != nil {
		engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}
}

func (r *Router) registerAuthRoutes(engine *gin.Engine) {
	h := handler.NewAuth(r.authService, r.logger)

	auth := engine.Group("/api/auth")
	{
		auth.POST("/signup", h.SignUp)
		auth.POST("/login", h.Login)
		auth.POST("/forgotPassword", h.ForgotPassword)
		auth.GET("/checkToken", h.CheckToken)
		auth.POST("/update", h.UpdateStatus)
	}
}

func (r *Router) registerSweetRoutes(engine *gin.Engine) {
	h := handler.NewSweet(r.inventoryService, r.maxImageBytes, r.logger)

	sweets := engine.Group("/api/sweets")
	{
		sweets.GET("", h.List)
		sweets.GET("/search", h.Search)
		sweets.POST("", h.Add)
		sweets.PUT("/:id", h.Update)
		sweets.DELETE("/:id", h.Delete)
		sweets.POST("/:id/purchase", h.Purchase)
		sweets.POST("/:id/restock", h.Restock)
		sweets.PUT("/:id/image", h.UploadImage)
		sweets.GET("/:id/image", h.DownloadImage)
	}
}
