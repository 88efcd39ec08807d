// Package router assembles the gin engine. The authorization policy lives
// here: reads and token issuance are public, every mutation sits behind the
// auth guard.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/controllers"
	"github.com/princinho/parcelly/middleware"
	"github.com/princinho/parcelly/payment"
	"github.com/princinho/parcelly/repository"
	"github.com/princinho/parcelly/storage"
	"github.com/princinho/parcelly/utils"
	"github.com/rs/zerolog"
)

type Deps struct {
	Repos          *repository.Repositories
	Payments       payment.IntentCreator
	Store          storage.ObjectStore
	TokenSecret    string
	AllowedOrigins []string
	MaxUploadBytes int64
	Logger         zerolog.Logger
}

func New(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = d.MaxUploadBytes

	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	parcels := controllers.NewParcelController(d.Repos.Parcels, d.Repos.Users, d.Store, utils.NewImageValidator(d.MaxUploadBytes))
	users := controllers.NewUserController(d.Repos.Users)
	reviews := controllers.NewReviewController(d.Repos.Reviews, d.Repos.Users)
	payments := controllers.NewPaymentController(d.Payments)
	tokens := controllers.NewTokenController(d.TokenSecret)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "server is running")
	})

	public := r.Group("/")
	{
		public.POST("/jwt", tokens.Issue())

		public.GET("/parcel", parcels.List())
		public.GET("/parcel/:email", parcels.ListByEmail())
		public.GET("/parcel/g/:id", parcels.Get())
		public.GET("/parcel/delivery/:email", parcels.ListForDeliveryMan())

		public.GET("/users", users.List())
		public.GET("/users/:email", users.GetByEmail())
		public.GET("/users/u/delivery", users.ListDeliveryMen())

		public.GET("/reviews", reviews.List())
		public.GET("/reviews/deliveryManId/:email", reviews.ListForDeliveryMan())
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(d.TokenSecret))
	{
		protected.POST("/parcel", parcels.Create())
		protected.DELETE("/parcel/:id", parcels.Delete())
		protected.PUT("/parcel/u/:id", parcels.AssignDeliveryMan())
		protected.PATCH("/parcel/:id", parcels.Update())
		protected.PATCH("/parcel/gone/:id", parcels.MarkGone())
		protected.PATCH("/parcel/cancel/:id", parcels.Cancel())
		protected.PATCH("/parcel/proof/:id", parcels.UploadProof())

		protected.POST("/users", users.Create())
		protected.PUT("/users", users.Upsert())
		protected.PATCH("/users/deliveryMan/:id", users.PromoteToDeliveryMan())
		protected.PATCH("/users/admin/:id", users.PromoteToAdmin())

		protected.POST("/reviews", reviews.Create())

		protected.POST("/create-payment-intent", payments.CreateIntent())
	}

	return r
}

// corsConfig allows every origin when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return true }
		return cfg
	}

	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	cfg.AllowOriginFunc = func(origin string) bool {
		return allowed[origin]
	}
	return cfg
}
