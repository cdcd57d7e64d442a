package order

import (
	"net/http"

	"weblarek/api/middleware"
	"weblarek/api/response"
	orderapp "weblarek/application/order"
	apperrors "weblarek/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.Service
}

// NewController Create order controller
func NewController(orderService *orderapp.Service) *Controller {
	return &Controller{orderService: orderService}
}

// RegisterRoutes Register order routes. Every route requires
// authentication; management routes additionally require admin.
func (c *Controller) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/order", c.Create)
	authed.GET("/order/me", c.ListMine)
	authed.GET("/order/me/:number", c.GetMine)

	admin.GET("/order/all", c.List)
	admin.GET("/order/:number", c.Get)
	admin.PATCH("/order/:number", c.Update)
	admin.DELETE("/order/:number", c.Delete)
}

// Create Place an order for the authenticated customer
func (c *Controller) Create(ctx *gin.Context) {
	var req orderapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	viewer := middleware.ViewerFrom(ctx)
	o, err := c.orderService.Create(ctx.Request.Context(), viewer.SubjectID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, o, "Order created successfully")
}

// List One page of all orders (admin)
func (c *Controller) List(ctx *gin.Context) {
	items, pagination, err := c.orderService.List(
		ctx.Request.Context(), ctx.Request.URL.Query(), middleware.ViewerFrom(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, items, pagination, "Orders retrieved successfully")
}

// ListMine One page of the authenticated customer's own orders. The
// viewer is forced to non-admin so admins see their own orders here too.
func (c *Controller) ListMine(ctx *gin.Context) {
	viewer := middleware.ViewerFrom(ctx)
	viewer.Admin = false

	items, pagination, err := c.orderService.List(
		ctx.Request.Context(), ctx.Request.URL.Query(), viewer)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, items, pagination, "Orders retrieved successfully")
}

// Get Any order by number (admin)
func (c *Controller) Get(ctx *gin.Context) {
	o, err := c.orderService.GetByNumber(ctx.Request.Context(), ctx.Param("number"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order retrieved successfully")
}

// GetMine Own order by number
func (c *Controller) GetMine(ctx *gin.Context) {
	viewer := middleware.ViewerFrom(ctx)
	if viewer.SubjectID == "" {
		response.HandleAppError(ctx, apperrors.Unauthorized("authorization required"))
		return
	}

	o, err := c.orderService.GetOwnByNumber(ctx.Request.Context(), ctx.Param("number"), viewer.SubjectID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order retrieved successfully")
}

// Update Patch status and phone (admin)
func (c *Controller) Update(ctx *gin.Context) {
	var req orderapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	o, err := c.orderService.Update(ctx.Request.Context(), ctx.Param("number"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order updated successfully")
}

// Delete Remove an order (admin)
func (c *Controller) Delete(ctx *gin.Context) {
	o, err := c.orderService.Delete(ctx.Request.Context(), ctx.Param("number"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, o, "Order deleted successfully")
}
