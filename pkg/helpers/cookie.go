package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the cookie carrying the session JWT for browser clients.
const TokenCookieName = "token"

// TokenCookie writes the session token as an HttpOnly cookie next to the JSON body.
type TokenCookie struct {
	Domain string
	Secure bool
	TTL    time.Duration
}

func NewTokenCookie(domain string, secure bool, ttl time.Duration) *TokenCookie {
	return &TokenCookie{Domain: domain, Secure: secure, TTL: ttl}
}

func (m *TokenCookie) Set(c *gin.Context, token string) {
	if m == nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, token, int(m.TTL.Seconds()), "/", m.Domain, m.Secure, true)
}

func (m *TokenCookie) Clear(c *gin.Context) {
	if m == nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(TokenCookieName, "", -1, "/", m.Domain, m.Secure, true)
}
