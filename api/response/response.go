/*
Package response is the single place HTTP responses are shaped. Error
codes map to status codes here and nowhere else; internal and storage
failures respond with a generic message while the full detail goes to
the log under the request id.
*/
package response

import (
	"net/http"

	"weblarek/domain/listing"
	"weblarek/pkg/errors"
	"weblarek/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestIDKey context key for request id propagation
const RequestIDKey = "request_id"

// Response is the uniform envelope.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, not detail
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// PaginatedResponse is the envelope for list endpoints.
type PaginatedResponse struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data"`
	Pagination listing.Pagination `json:"pagination"`
	Message    string             `json:"message"`
	Code       int                `json:"code"`
	RequestID  string             `json:"request_id,omitempty"`
}

// GetRequestID returns the request id set by the middleware.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

// HandleError handles framework-level errors such as body binding
// failures, with an explicit status.
func HandleError(c *gin.Context, err error, message string, code int) {
	requestID := GetRequestID(c)

	logger.Warn(message,
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", code),
		zap.Error(err))

	c.JSON(code, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      code,
		RequestID: requestID,
	})
}

// HandleAppError maps an application error onto the wire. The wrapped
// cause is logged, never serialized; 500-class codes additionally mask
// the message itself.
func HandleAppError(c *gin.Context, err error) {
	requestID := GetRequestID(c)

	appErr := errors.AsAppError(err)
	httpStatus := appErr.HTTPStatusCode()

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}
	if httpStatus >= http.StatusInternalServerError {
		logger.Error(appErr.Message, fields...)
	} else {
		logger.Warn(appErr.Message, fields...)
	}

	userMessage := appErr.Message
	if httpStatus >= http.StatusInternalServerError {
		userMessage = "internal server error"
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   userMessage,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

// HandleSuccess responds 200 with data.
func HandleSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: GetRequestID(c),
	})
}

// HandleCreated responds 201 with data.
func HandleCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: GetRequestID(c),
	})
}

// HandleNoContent responds 204.
func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandlePaginated responds 200 with one page of items.
func HandlePaginated(c *gin.Context, data interface{}, pagination listing.Pagination, message string) {
	c.JSON(http.StatusOK, &PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Message:    message,
		Code:       http.StatusOK,
		RequestID:  GetRequestID(c),
	})
}
