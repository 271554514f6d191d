package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fadehouse/barbershop-api/internal/cache"
	"github.com/fadehouse/barbershop-api/internal/config"
	dbpkg "github.com/fadehouse/barbershop-api/internal/db"
	"github.com/fadehouse/barbershop-api/internal/logger"
	"github.com/fadehouse/barbershop-api/internal/middleware"
	"github.com/fadehouse/barbershop-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	rdb := cache.NewRedis(cfg)
	if rdb == nil {
		log.Info("redis not available, catalog cache disabled")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, rdb)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
