package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Tiliavir/mvw-cashier-app/docs"
	"github.com/Tiliavir/mvw-cashier-app/internal/config"
	"github.com/Tiliavir/mvw-cashier-app/internal/kv"
	"github.com/Tiliavir/mvw-cashier-app/internal/register"
	"github.com/Tiliavir/mvw-cashier-app/internal/store"
)

var (
	logger  *zap.Logger
	session *register.Session
)

// @title Kassierer API
// @version 1.0
// @description Cash register for club festivals: events, item catalogs, sales and statistics.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open storage",
			zap.String("driver", cfg.Storage.Driver),
			zap.Error(err))
	}
	defer backend.Close()

	st := store.New(backend, cfg.Storage.Key, logger.Named("store"))
	session = register.NewSession(ctx, st, logger.Named("register"), register.Options{
		VerifyTotals: cfg.Register.VerifyTotals,
	})

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	setupRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	logger.Info("server starting",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("storage", cfg.Storage.Driver))
	if err := r.Run(cfg.Server.Addr()); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// setupRoutes registers every API route on r.
func setupRoutes(r gin.IRouter) {
	api := r.Group("/api")

	api.GET("/state", getState)
	api.DELETE("/state", resetState)

	api.GET("/events", getEvents)
	api.POST("/events", createEvent)
	api.POST("/events/import", importEvent)
	api.GET("/events/example", getExampleEvent)
	api.GET("/events/active", getActiveEvent)
	api.PUT("/events/active", setActiveEvent)
	api.GET("/events/:id", getEvent)
	api.DELETE("/events/:id", deleteEvent)
	api.GET("/events/:id/export", exportEvent)
	api.POST("/events/:id/close", closeEvent)
	api.GET("/events/:id/stats", getEventStats)

	api.POST("/events/:id/items", createItem)
	api.PUT("/events/:id/items/order", reorderItems)
	api.PUT("/events/:id/items/:itemId", updateItem)
	api.DELETE("/events/:id/items/:itemId", deleteItem)
	api.POST("/events/:id/items/:itemId/move", moveItem)

	api.GET("/register", getRegister)
	api.POST("/register/cart/:itemId", addToCart)
	api.DELETE("/register/cart/:itemId", decrementCart)
	api.DELETE("/register/cart", resetCart)
	api.POST("/register/quote", quotePayment)
	api.POST("/register/finalize", finalizeSale)
}

// openBackend opens the storage selected by STORAGE_DRIVER.
func openBackend(ctx context.Context, cfg *config.Config) (kv.Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("in-memory storage, data is lost on restart")
		return kv.NewMemory(), nil
	case config.DriverPostgres:
		return kv.OpenPostgres(ctx, kv.PostgresConfig{
			DSN:           cfg.Database.DSN(),
			MaxRetries:    cfg.Database.MaxRetries,
			RetryInterval: cfg.Database.RetryInterval,
		}, logger.Named("postgres"))
	case config.DriverSQLite:
		return kv.OpenSQLite(cfg.Storage.Path, logger.Named("sqlite"))
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
