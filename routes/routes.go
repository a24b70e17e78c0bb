package routes

import (
	"net/http"
	"time"

	"github.com/garghot/food-client/api"
	"github.com/garghot/food-client/auth"
	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/config"
	orderControllers "github.com/garghot/food-client/controllers/order"
	"github.com/garghot/food-client/logger"
	"github.com/garghot/food-client/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps is everything the route groups hand to their controllers.
type Deps struct {
	Config     *config.Config
	Services   *api.Services
	Carts      *cart.Storage
	Reconciler *cart.Reconciler
	Auth       *auth.Service
	Hub        *orderControllers.Hub
	Log        *logger.Logger
}

// SetupRoutes is the single entry point that wires up the Auth, User, Admin
// and proxy route groups.
func SetupRoutes(r *gin.Engine, d Deps) error {
	// public auth routes
	SetupAuthRoutes(r, d)

	// session token protected
	SetupUserRoutes(r, d)

	// API key protected
	SetupAdminRoutes(r, d)

	// dev proxy to the upstream API
	return SetupProxyRoutes(r, d)
}

// NewEngine builds the gin engine with CORS, request logging and every route
// group.
func NewEngine(d Deps) (*gin.Engine, error) {
	if d.Log == nil {
		d.Log = logger.Discard()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))

	origins := d.Config.Server.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: !allowsAll(origins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		if err := d.Services.Commandes.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "api": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := SetupRoutes(r, d); err != nil {
		return nil, err
	}
	return r, nil
}

func allowsAll(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
