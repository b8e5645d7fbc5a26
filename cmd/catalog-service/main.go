package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomlab/micro-orders/internal/auth"
	"github.com/ecomlab/micro-orders/internal/catalog"
	"github.com/ecomlab/micro-orders/internal/config"
	"github.com/ecomlab/micro-orders/internal/httpx"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.CatalogDSN)
	if err != nil {
		log.Fatalf("catalog db: %v", err)
	}
	defer pool.Close()
	if err := catalog.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("catalog schema: %v", err)
	}

	repo := catalog.NewPGRepo(pool)
	signer := auth.NewSigner(cfg.JWTSecret)

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger("catalog"), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.POST("/get-token", auth.GetTokenHandler(signer))
	// /products is the only gated route; the rest stay open on purpose.
	r.GET("/products", auth.TokenRequired(signer), listProductsHandler(repo))
	r.GET("/products/category/:category", listByCategoryHandler(repo))
	r.POST("/create-product", createProductHandler(repo))
	r.PUT("/update-product/:id", updatePriceHandler(repo))

	log.Printf("catalog-service listening on %s", cfg.CatalogAddr)
	log.Fatal(r.Run(cfg.CatalogAddr))
}
