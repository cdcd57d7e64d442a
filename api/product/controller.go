package product

import (
	"net/http"

	"weblarek/api/middleware"
	"weblarek/api/response"
	productapp "weblarek/application/product"

	"github.com/gin-gonic/gin"
)

// Controller Product catalog controller
type Controller struct {
	productService *productapp.Service
}

// NewController Create product controller
func NewController(productService *productapp.Service) *Controller {
	return &Controller{productService: productService}
}

// RegisterRoutes Register catalog routes: browsing is public, catalog
// management is admin-only.
func (c *Controller) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("/product", c.List)
	public.GET("/product/:id", c.Get)

	admin.POST("/product", c.Create)
	admin.PATCH("/product/:id", c.Update)
	admin.DELETE("/product/:id", c.Delete)
}

// List One page of products
func (c *Controller) List(ctx *gin.Context) {
	items, pagination, err := c.productService.List(
		ctx.Request.Context(), ctx.Request.URL.Query(), middleware.ViewerFrom(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, items, pagination, "Products retrieved successfully")
}

// Get Single product by id
func (c *Controller) Get(ctx *gin.Context) {
	p, err := c.productService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "Product retrieved successfully")
}

// Create Add a catalog entry (admin)
func (c *Controller) Create(ctx *gin.Context) {
	var req productapp.CreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.productService.Create(ctx.Request.Context(), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, p, "Product created successfully")
}

// Update Patch a catalog entry (admin)
func (c *Controller) Update(ctx *gin.Context) {
	var req productapp.UpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "Invalid request parameters", http.StatusBadRequest)
		return
	}

	p, err := c.productService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "Product updated successfully")
}

// Delete Remove a catalog entry (admin)
func (c *Controller) Delete(ctx *gin.Context) {
	p, err := c.productService.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, p, "Product deleted successfully")
}
