package auth

import (
	"net/http"

	"weblarek/api/middleware"
	"weblarek/api/response"
	authapp "weblarek/application/auth"
	apperrors "weblarek/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Auth controller
type Controller struct {
	authService *authapp.Service
}

// NewController Create auth controller
func NewController(authService *authapp.Service) *Controller {
	return &Controller{authService: authService}
}

// RegisterRoutes Register auth routes. The authenticated group must
// already carry the Authenticate middleware.
func (c *Controller) RegisterRoutes(public, authed *gin.RouterGroup) {
	authGroup := public.Group("/auth")
	{
		authGroup.POST("/register", c.Register)
		authGroup.POST("/login", c.Login)
		authGroup.POST("/token", c.Refresh)
	}
	authed.GET("/auth/user", c.Profile)
}

// Register Create an account and sign it in
func (c *Controller) Register(ctx *gin.Context) {
	var req authapp.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, resp, "Account created successfully")
}

// Login Verify credentials and issue tokens
func (c *Controller) Login(ctx *gin.Context) {
	var req authapp.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "Signed in successfully")
}

// Refresh Exchange a refresh token for a fresh pair
func (c *Controller) Refresh(ctx *gin.Context) {
	var req authapp.RefreshRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	resp, err := c.authService.Refresh(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, resp, "Token refreshed successfully")
}

// Profile Return the authenticated account
func (c *Controller) Profile(ctx *gin.Context) {
	cust := middleware.CustomerFrom(ctx)
	if cust == nil {
		response.HandleAppError(ctx, apperrors.Unauthorized("authorization required"))
		return
	}
	response.HandleSuccess(ctx, cust, "Profile retrieved successfully")
}
