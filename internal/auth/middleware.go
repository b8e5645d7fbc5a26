package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenRequired gates a single route behind bearer validation. Gating is
// opt-in per endpoint; routes without it stay open on purpose.
func TokenRequired(s *Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		name, err := s.Validate(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errorMessage(err)})
			return
		}
		c.Set("service_name", name)
		c.Next()
	}
}

// The exact wire messages are part of the API contract.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "Token is missing"
	case errors.Is(err, ErrExpiredToken):
		return "Token has expired"
	default:
		return "Token is invalid"
	}
}

type tokenRequest struct {
	ServiceName string `json:"service_name"`
}

// GetTokenHandler serves POST /get-token. Issuance always succeeds; the
// request body is optional and so is service_name.
func GetTokenHandler(s *Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tokenRequest
		_ = c.ShouldBindJSON(&req) // absent/malformed body means anonymous caller

		token, expiresIn, err := s.Issue(req.ServiceName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "expires_in": expiresIn})
	}
}
