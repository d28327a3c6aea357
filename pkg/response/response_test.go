package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blog/pkg/apperror"
)

func newCtx() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set("request_id", "rid-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestErrorEnvelope(t *testing.T) {
	c, w := newCtx()
	Error(c, apperror.Validation("Erreur de validation", "content: requis"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, c.IsAborted())
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(400), body["statusCode"])
	assert.Equal(t, "Erreur de validation", body["message"])
	assert.Equal(t, []any{"content: requis"}, body["errors"])
	assert.Equal(t, "rid-1", body["request_id"])
}

func TestErrorHidesInternalDetails(t *testing.T) {
	c, w := newCtx()
	Error(c, errors.New("duplicate key value violates unique constraint"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "duplicate key")
	assert.Equal(t, apperror.MsgInternalError, decode(t, w)["message"])
	require.Len(t, c.Errors, 1)
}

func TestListAlwaysEmitsArray(t *testing.T) {
	c, w := newCtx()
	List[string](c, nil)

	body := decode(t, w)
	assert.Equal(t, float64(0), body["count"])
	assert.Equal(t, []any{}, body["data"])
	assert.NotContains(t, body, "total")
}

func TestPage(t *testing.T) {
	c, w := newCtx()
	Page(c, []int{1, 2}, 12, 2)

	body := decode(t, w)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(12), body["total"])
	assert.Equal(t, float64(2), body["page"])
}
