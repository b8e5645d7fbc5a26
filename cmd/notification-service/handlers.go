package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ecomlab/micro-orders/internal/notify"
)

func createNotificationHandler(repo notify.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notify.CreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		switch {
		case req.RelatedID == nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "related_id is required"})
			return
		case req.EventType == nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_type is required"})
			return
		case req.Message == nil:
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		n := notify.Notification{
			RelatedID: *req.RelatedID,
			EventType: *req.EventType,
			Message:   *req.Message,
		}
		if err := repo.Create(c.Request.Context(), &n); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// Capitalized key kept for compatibility with the existing API.
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Notification created successfully",
			"Notification": n,
		})
	}
}

func listNotificationsHandler(repo notify.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := repo.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}
