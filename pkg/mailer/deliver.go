package mailer

import (
	"context"
	"errors"

	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

// ErrPermanent marks jobs that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email failure")

// Deliver renders job (when it names a template) and hands it to s.
// Validation and rendering failures wrap ErrPermanent.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return errors.Join(ErrPermanent, err)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		job.EnsureRecipient()
		sub, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return errors.Join(ErrPermanent, err)
		}
		subject, text, html = sub, t, h
	}
	return s.Send(ctx, job.To, subject, text, html)
}
