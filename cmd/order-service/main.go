package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomlab/micro-orders/internal/config"
	"github.com/ecomlab/micro-orders/internal/httpx"
	"github.com/ecomlab/micro-orders/internal/order"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.OrderDSN)
	if err != nil {
		log.Fatalf("order db: %v", err)
	}
	defer pool.Close()
	if err := order.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("order schema: %v", err)
	}

	repo := order.NewPGRepo(pool)
	ext := order.NewExt(cfg.AuthBaseURL, cfg.CatalogBaseURL, cfg.NotifyBaseURL, cfg.ClientTimeout)
	svc := order.NewService(repo, ext)

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger("order"), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.POST("/create-order", createOrderHandler(svc))
	r.GET("/orders", listOrdersHandler(repo))

	log.Printf("order-service listening on %s", cfg.OrderAddr)
	log.Fatal(r.Run(cfg.OrderAddr))
}
