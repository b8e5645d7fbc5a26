package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomlab/micro-orders/internal/auth"
	"github.com/ecomlab/micro-orders/internal/config"
	"github.com/ecomlab/micro-orders/internal/httpx"
	"github.com/ecomlab/micro-orders/internal/notify"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.NotifyDSN)
	if err != nil {
		log.Fatalf("notify db: %v", err)
	}
	defer pool.Close()
	if err := notify.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("notify schema: %v", err)
	}

	repo := notify.NewPGRepo(pool)
	signer := auth.NewSigner(cfg.JWTSecret)

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger("notify"), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.POST("/get-token", auth.GetTokenHandler(signer))
	// /notify is deliberately unauthenticated; the order workflow posts to
	// it without a token.
	r.POST("/notify", createNotificationHandler(repo))
	r.GET("/notifications", listNotificationsHandler(repo))

	log.Printf("notification-service listening on %s", cfg.NotifyAddr)
	log.Fatal(r.Run(cfg.NotifyAddr))
}
