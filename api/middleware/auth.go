package middleware

import (
	"strings"

	"weblarek/api/response"
	"weblarek/domain/customer"
	"weblarek/domain/listing"
	"weblarek/pkg/auth"
	apperrors "weblarek/pkg/errors"

	"github.com/gin-gonic/gin"
)

const (
	// ViewerKey is the context key the authenticated viewer is stored under.
	ViewerKey = "viewer"
	// CustomerKey is the context key the loaded customer record is stored under.
	CustomerKey = "current_customer"
)

// Authenticate verifies the Bearer access token and loads the account
// behind it. The account is loaded fresh on every request so revoked or
// deleted accounts lose access as soon as their record is gone.
func Authenticate(tokens *auth.TokenManager, customers customer.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		cust, err := customers.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CustomerKey, cust)
		c.Set(ViewerKey, listing.Viewer{
			SubjectID: cust.ID.Hex(),
			Admin:     cust.IsAdmin(),
		})

		c.Next()
	}
}

// AdminOnly rejects viewers without the admin role. Must run after
// Authenticate.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ViewerFrom(c).Admin {
			response.HandleAppError(c, apperrors.Forbidden("access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ViewerFrom returns the authenticated viewer, zero when unauthenticated.
func ViewerFrom(c *gin.Context) listing.Viewer {
	if v, exists := c.Get(ViewerKey); exists {
		if viewer, ok := v.(listing.Viewer); ok {
			return viewer
		}
	}
	return listing.Viewer{}
}

// CustomerFrom returns the loaded account record, nil when unauthenticated.
func CustomerFrom(c *gin.Context) *customer.Customer {
	if v, exists := c.Get(CustomerKey); exists {
		if cust, ok := v.(*customer.Customer); ok {
			return cust
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context) {
	response.HandleAppError(c, apperrors.Unauthorized("authorization required"))
	c.Abort()
}
