package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/ecomlab/micro-orders/internal/catalog"
)

func listProductsHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func listByCategoryHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.ListByCategory(c.Request.Context(), c.Param("category"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// normalizePrice validates a caller-supplied price string and returns its
// canonical decimal form. A nil price stays nil: products may legitimately
// have no price yet.
func normalizePrice(price *string) (*string, bool) {
	if price == nil {
		return nil, true
	}
	d, err := decimal.NewFromString(*price)
	if err != nil {
		return nil, false
	}
	s := d.String()
	return &s, true
}

func createProductHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req catalog.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Name == "" || req.Category == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and category are required"})
			return
		}
		price, ok := normalizePrice(req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a decimal string"})
			return
		}

		p := catalog.Product{Name: req.Name, Price: price, Category: req.Category}
		if err := repo.Create(c.Request.Context(), &p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"product": p,
		})
	}
}

func updatePriceHandler(repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		var req catalog.UpdatePriceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Price == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price is required"})
			return
		}
		price, ok := normalizePrice(req.Price)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a decimal string"})
			return
		}

		p, err := repo.UpdatePrice(c.Request.Context(), id, price)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": p,
		})
	}
}
