package handler

import (
	"net/http"
	"time"

	"currency-exchange-gateway/internal/adapter/http/middleware"
	"currency-exchange-gateway/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	RateSvc     ports.RateService
	PurchaseSvc ports.PurchaseService
	Registry    *prometheus.Registry // nil = metrics endpoint disabled
	Logger      zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck())

	if deps.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	ratesHandler := NewRatesHandler(deps.RateSvc)
	rates := v1.Group("/rates")
	{
		rates.GET("", ratesHandler.GetRates)
		rates.GET("/pair", ratesHandler.GetPairRate)
		rates.GET("/convert", ratesHandler.Convert)
		rates.GET("/board", ratesHandler.GetBoard)
	}

	purchaseHandler := NewPurchaseHandler(deps.PurchaseSvc)
	purchases := v1.Group("/purchases")
	{
		purchases.POST("", purchaseHandler.CreatePurchase)
		purchases.GET("", purchaseHandler.ListPurchases)
		purchases.GET("/:id", purchaseHandler.GetPurchase)
	}

	v1.GET("/currencies", purchaseHandler.ListCurrencies)

	return r
}

// HealthCheck handles GET /health.
func HealthCheck() gin.HandlerFunc {
	started := time.Now()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	}
}
