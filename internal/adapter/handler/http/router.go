package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/ayoubse/rentwheels_backend_ayoub/internal/config"
	"github.com/ayoubse/rentwheels_backend_ayoub/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	categoryHandler *CategoryHandler,
	reservationHandler *ReservationHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}
	authProtected := router.Group("/auth")
	authProtected.Use(AuthMiddleware(tokenService))
	{
		authProtected.GET("/:id", authHandler.GetUser)
		authProtected.PUT("/profile/:id", authHandler.UpdateProfile)
		authProtected.PUT("/password/:id", authHandler.ChangePassword)
	}
	authAdmin := router.Group("/auth")
	authAdmin.Use(AuthMiddleware(tokenService), RequireAdmin())
	{
		authAdmin.GET("", authHandler.ListUsers)
		authAdmin.PUT("/:id", authHandler.UpdateUser)
		authAdmin.DELETE("/:id", authHandler.DeleteUser)
	}

	// Vehicle routes: public reads, admin writes
	vehicles := router.Group("/vehicles")
	{
		vehicles.GET("", vehicleHandler.ListVehicles)
		vehicles.GET("/stats", vehicleHandler.GetVehicleStats)
		vehicles.GET("/:id", vehicleHandler.GetVehicle)
	}
	vehiclesAdmin := router.Group("/vehicles")
	vehiclesAdmin.Use(AuthMiddleware(tokenService), RequireAdmin())
	{
		vehiclesAdmin.POST("", vehicleHandler.CreateVehicle)
		vehiclesAdmin.PUT("/:id", vehicleHandler.UpdateVehicle)
		vehiclesAdmin.DELETE("/:id", vehicleHandler.DeleteVehicle)
	}

	// Category routes: public reads, admin writes
	categories := router.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.GET("/:id", categoryHandler.GetCategory)
	}
	categoriesAdmin := router.Group("/categories")
	categoriesAdmin.Use(AuthMiddleware(tokenService), RequireAdmin())
	{
		categoriesAdmin.POST("", categoryHandler.CreateCategory)
		categoriesAdmin.PUT("/:id", categoryHandler.UpdateCategory)
		categoriesAdmin.DELETE("/:id", categoryHandler.DeleteCategory)
	}

	// Reservation routes: per-handler ownership checks
	reservations := router.Group("/reservations")
	reservations.Use(AuthMiddleware(tokenService))
	{
		reservations.POST("", reservationHandler.CreateReservation)
		reservations.GET("", reservationHandler.ListReservations)
		reservations.GET("/:id", reservationHandler.GetReservation)
		reservations.PUT("/:id", reservationHandler.UpdateReservation)
		reservations.DELETE("/:id", reservationHandler.DeleteReservation)
	}

	return &Router{router: router}, nil
}

// Serve blocks until the server stops. A stop triggered by Shutdown is not
// an error.
func (r *Router) Serve(addr string) error {
	r.mu.Lock()
	r.server = &http.Server{
		Addr:    addr,
		Handler: r.router,
	}
	server := r.server
	r.mu.Unlock()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting new requests and drains in-flight handlers.
func (r *Router) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	server := r.server
	r.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
