package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the POS API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", rootHandler)
	router.GET("/health", healthHandler)
	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/health", healthHandler)
	api.POST("/products/search", searchProductHandler(deps.CatalogSvc))
	api.GET("/products", listProductsHandler(deps.CatalogSvc))
	api.POST("/purchase", purchaseHandler(deps.PurchaseSvc))
	api.GET("/transactions", listTransactionsHandler(deps.PurchaseSvc))
	api.GET("/transactions/:id", getTransactionHandler(deps.PurchaseSvc))

	return router
}
