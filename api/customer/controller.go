package customer

import (
	"net/http"

	"weblarek/api/middleware"
	"weblarek/api/response"
	customerapp "weblarek/application/customer"

	"github.com/gin-gonic/gin"
)

// Controller Customer management controller (admin only)
type Controller struct {
	customerService *customerapp.Service
}

// NewController Create customer controller
func NewController(customerService *customerapp.Service) *Controller {
	return &Controller{customerService: customerService}
}

// RegisterRoutes Register customer routes on an admin-guarded group
func (c *Controller) RegisterRoutes(admin *gin.RouterGroup) {
	customerGroup := admin.Group("/customers")
	{
		customerGroup.GET("", c.List)
		customerGroup.GET("/:id", c.Get)
		customerGroup.PATCH("/:id", c.Update)
		customerGroup.DELETE("/:id", c.Delete)
	}
}

// List One page of customers
func (c *Controller) List(ctx *gin.Context) {
	items, pagination, err := c.customerService.List(
		ctx.Request.Context(), ctx.Request.URL.Query(), middleware.ViewerFrom(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, items, pagination, "Customers retrieved successfully")
}

// Get Single customer by id
func (c *Controller) Get(ctx *gin.Context) {
	cust, err := c.customerService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cust, "Customer retrieved successfully")
}

// Update Patch profile fields
func (c *Controller) Update(ctx *gin.Context) {
	var req customerapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	cust, err := c.customerService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, cust, "Customer updated successfully")
}

// Delete Remove an account
func (c *Controller) Delete(ctx *gin.Context) {
	if err := c.customerService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleNoContent(ctx)
}
