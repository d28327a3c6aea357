package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
	"github.com/oksasatya/go-ddd-blog/pkg/helpers"
	"github.com/oksasatya/go-ddd-blog/pkg/response"
	"github.com/oksasatya/go-ddd-blog/pkg/validation"
)

const msgInvalidPayload = "Erreur de validation des données"

// bind decodes JSON, form or multipart bodies depending on the content type
// and renders a validation failure when it returns false.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBind(req); err != nil {
		response.Error(c, apperror.Validation(msgInvalidPayload, validation.ToList(err)...))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, apperror.Validation(msgInvalidPayload, validation.ToList(err)...))
		return false
	}
	return true
}

// optionalImage reads an image from a multipart field. It returns nil when
// the request is not multipart or carries no file under field.
func optionalImage(c *gin.Context, field string, maxSize int64) (*helpers.ImageUpload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.Validation(msgInvalidPayload, field+": "+err.Error())
	}
	img, err := helpers.ReadImage(fh, maxSize)
	if err != nil {
		return nil, apperror.Validation(msgInvalidPayload, field+": "+err.Error())
	}
	return img, nil
}
