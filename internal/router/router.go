package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/medclinic-admin/internal/middleware"
	"github.com/jwalitptl/medclinic-admin/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// AuthHandler registers the login route publicly and the session routes
// behind the authenticator it is handed.
type AuthHandler interface {
	RegisterRoutes(r *gin.RouterGroup, authn gin.HandlerFunc)
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	authH     AuthHandler
	public    []Handler
	protected []Handler
}

type RouterConfig struct {
	RateLimit   rate.Limit
	RateBurst   int
	CORSConfig  middleware.CORSConfig
	Timeout     time.Duration
	MaxBodySize int64
	Metrics     *metrics.Metrics
	// Public handlers are reachable without a token (health, metrics).
	Public []Handler
	// Protected handlers require a valid bearer token.
	Protected []Handler
}

func NewRouter(auth *middleware.AuthMiddleware, authH AuthHandler, config RouterConfig) *Router {
	engine := gin.New() // Use New() instead of Default() for more control

	r := &Router{
		engine:    engine,
		auth:      auth,
		authH:     authH,
		public:    config.Public,
		protected: config.Protected,
	}

	if config.Timeout <= 0 {
		config.Timeout = middleware.DefaultTimeoutConfig().Duration
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = middleware.DefaultSizeLimitConfig().MaxBodySize
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(config.Metrics),
	)
	if config.Metrics != nil {
		engine.Use(middleware.Metrics(config.Metrics))
	}
	engine.Use(
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
		middleware.SizeLimit(middleware.SizeLimitConfig{MaxBodySize: config.MaxBodySize}),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
	)

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	// Add version header
	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	for _, h := range r.public {
		h.RegisterRoutes(api)
	}

	authn := r.auth.Authenticate()
	r.authH.RegisterRoutes(api, authn)

	protected := api.Group("")
	protected.Use(authn)
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
