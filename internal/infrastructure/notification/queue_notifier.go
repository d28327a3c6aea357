package notification

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/config"
	"github.com/oksasatya/go-ddd-blog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
	mailtpl "github.com/oksasatya/go-ddd-blog/pkg/mailer/templates"
)

const publishTimeout = 5 * time.Second

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueNotifier turns account events into email jobs for cmd/email_worker.
type QueueNotifier struct {
	cfg       *config.Config
	publisher Publisher
	logger    *logrus.Logger
}

func NewQueueNotifier(cfg *config.Config, publisher Publisher, logger *logrus.Logger) *QueueNotifier {
	return &QueueNotifier{cfg: cfg, publisher: publisher, logger: logger}
}

func (n *QueueNotifier) Welcome(ctx context.Context, u *entity.User) error {
	return n.enqueue(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.cfg, displayName(u), u.Email),
	})
}

func (n *QueueNotifier) PasswordReset(ctx context.Context, u *entity.User, resetURL string, expires time.Time) error {
	return n.enqueue(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.PasswordReset,
		Data:     mailtpl.NewPasswordResetData(n.cfg, displayName(u), u.Email, resetURL, expires),
	})
}

func (n *QueueNotifier) enqueue(ctx context.Context, job mailer.EmailJob) error {
	if !n.cfg.MailSendEnabled || n.publisher == nil {
		n.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Debug("mail sending disabled, job dropped")
		return nil
	}
	c, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := n.publisher.PublishJSON(c, job); err != nil {
		return err
	}
	n.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email job queued")
	return nil
}

func displayName(u *entity.User) string {
	if name := strings.TrimSpace(u.Firstname + " " + u.Lastname); name != "" {
		return name
	}
	return u.Username
}
