package upload

import (
	"weblarek/api/response"
	uploadapp "weblarek/application/upload"
	apperrors "weblarek/pkg/errors"

	"github.com/gin-gonic/gin"
)

// fileField is the multipart form field the image arrives in.
const fileField = "file"

// Controller Upload controller
type Controller struct {
	uploadService *uploadapp.Service
}

// NewController Create upload controller
func NewController(uploadService *uploadapp.Service) *Controller {
	return &Controller{uploadService: uploadService}
}

// RegisterRoutes Register the upload route on an admin-guarded group
func (c *Controller) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/upload", c.Upload)
}

// Upload Accept one image, run it through the lifecycle and return its
// public path. The client's filename plays no part in the result.
func (c *Controller) Upload(ctx *gin.Context) {
	header, err := ctx.FormFile(fileField)
	if err != nil {
		response.HandleAppError(ctx, apperrors.BadRequest("file is required"))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.HandleAppError(ctx, apperrors.Storage(err, "failed to read upload"))
		return
	}
	defer file.Close()

	ticket, err := c.uploadService.Accept(
		ctx.Request.Context(), file, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	fileName, err := c.uploadService.Commit(ctx.Request.Context(), ticket)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, gin.H{"fileName": fileName}, "File uploaded successfully")
}
