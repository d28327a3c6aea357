package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      T      `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ListResponse is the envelope for collection endpoints.
// Total and Page are only set by paginated listings.
type ListResponse[T any] struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Total   *int `json:"total,omitempty"`
	Page    *int `json:"page,omitempty"`
	Data    []T  `json:"data"`
}

type ErrorResponse struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	RequestID  string   `json:"request_id,omitempty"`
}

// Success writes {success:true, message, data}.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: ctx.GetString("request_id"),
	})
}

// List writes {success:true, count, data} where count is len(data).
func List[T any](ctx *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	ctx.JSON(http.StatusOK, ListResponse[T]{Success: true, Count: len(data), Data: data})
}

// Page writes a paginated listing.
func Page[T any](ctx *gin.Context, data []T, total, page int) {
	if data == nil {
		data = []T{}
	}
	ctx.JSON(http.StatusOK, ListResponse[T]{Success: true, Count: len(data), Total: &total, Page: &page, Data: data})
}

// Count writes {count}.
func Count(ctx *gin.Context, n int64) {
	ctx.JSON(http.StatusOK, gin.H{"count": n})
}

// Error renders err in the error envelope and aborts the chain.
// Errors without an *apperror.AppError become an opaque 500; the cause is
// recorded on the gin context for the error logger.
func Error(ctx *gin.Context, err error) {
	ae := apperror.From(err)
	if ae.Kind == apperror.KindInternal {
		_ = ctx.Error(err)
	}
	ctx.AbortWithStatusJSON(ae.StatusCode, ErrorResponse{
		Success:    false,
		StatusCode: ae.StatusCode,
		Message:    ae.Message,
		Errors:     ae.Errors,
		RequestID:  ctx.GetString("request_id"),
	})
}
