package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"parking-api/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(opts Options) *gin.Engine {
	r := gin.Default()
	handler := NewHandler(opts)

	limiter := mw.NewIPRateLimiter(rate.Limit(opts.Server.RateLimitPerSec), opts.Server.RateLimitBurst)
	r.Use(mw.RateLimiter(limiter))

	ttl := time.Duration(opts.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)
	r.Use(mw.InvalidateOnWrite(cacheStore))

	requireAuth := mw.RequireBearer(opts.Issuer)

	r.POST("/login", handler.Login)

	parkings := r.Group("/parking")
	{
		parkings.GET("", caching, handler.ListParkings)
		parkings.GET("/:id", caching, handler.GetParking)
		parkings.GET("/:id/detail", caching, handler.GetParkingDetail)

		parkings.POST("", requireAuth, handler.CreateParking)
		parkings.PUT("/:id", requireAuth, handler.UpdateParking)
		parkings.DELETE("/:id", requireAuth, handler.DeleteParking)
	}

	api := r.Group("/api")
	{
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
