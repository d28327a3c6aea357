package templates

import (
	"time"

	"github.com/oksasatya/go-ddd-blog/config"
)

type Option func(*EmailData)

func WithResetURL(url string) Option { return func(d *EmailData) { d.ResetURL = url } }

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02/01/2006 15:04 UTC")
	}
}

func newBase(cfg *config.Config, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:    name,
		Email:   email,
		AppName: cfg.EmailFromName,
		SiteURL: cfg.FrontendURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string) map[string]any {
	return ToMap(newBase(cfg, name, email))
}

func NewPasswordResetData(cfg *config.Config, name, email, resetURL string, expires time.Time) map[string]any {
	return ToMap(newBase(cfg, name, email, WithResetURL(resetURL), WithExpiresAt(expires)))
}
