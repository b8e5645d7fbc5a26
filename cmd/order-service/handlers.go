package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecomlab/micro-orders/internal/order"
)

func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch {
		case req.ProductID == nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		case req.Quantity == nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		case req.CustomerName == nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_name is required"})
			return
		}

		res, err := svc.CreateOrder(c.Request.Context(), *req.ProductID, *req.Quantity, *req.CustomerName)
		if err != nil {
			status, msg := orderErrorStatus(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		if res.NotifyErr != nil {
			// Best-effort by contract: the order is durable, the caller
			// still gets a success.
			rid, _ := c.Get("rid")
			log.Printf("[order] rid=%v notify failed for order %d: %v", rid, res.Order.ID, res.NotifyErr)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Order created successfully",
			"order": order.OrderView{
				ID:         res.Order.ID,
				Product:    res.ProductName,
				Quantity:   res.Order.Quantity,
				TotalPrice: res.Order.TotalPrice,
				Customer:   res.Order.CustomerName,
			},
		})
	}
}

// orderErrorStatus maps workflow failures to HTTP. The "Unable to
// authenticate" and "Product not found" strings are part of the API
// contract.
func orderErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, order.ErrAuthUnavailable):
		return http.StatusInternalServerError, "Unable to authenticate"
	case errors.Is(err, order.ErrCatalogUnavailable):
		return http.StatusBadGateway, "Catalog service unavailable"
	case errors.Is(err, order.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errors.Is(err, order.ErrInvalidProductPrice):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func listOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
