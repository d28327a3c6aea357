package helpers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCookieSetAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewTokenCookie("", true, time.Hour)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	m.Set(c, "abc")
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenCookieName, cookies[0].Name)
	assert.Equal(t, "abc", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	m.Clear(c)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestNilTokenCookieIsNoop(t *testing.T) {
	var m *TokenCookie
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	m.Set(c, "abc")
	m.Clear(c)
	assert.Empty(t, w.Header().Get("Set-Cookie"))
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	dev := newLogger(&buf, "blog", "development", "")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := newLogger(&buf, "blog", "production", "warn")
	assert.Equal(t, logrus.WarnLevel, prod.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)

	bad := newLogger(&buf, "blog", "production", "loud")
	assert.Equal(t, logrus.InfoLevel, bad.GetLevel())
}
