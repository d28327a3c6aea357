package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blog/internal/metrics"
	"github.com/oksasatya/go-ddd-blog/pkg/mailer"
)

const sendTimeout = 15 * time.Second

// EmailWorker delivers queued email jobs.
type EmailWorker struct {
	Sender mailer.Sender
	Logger *logrus.Logger
}

func NewEmailWorker(sender mailer.Sender, logger *logrus.Logger) *EmailWorker {
	return &EmailWorker{Sender: sender, Logger: logger}
}

// Run handles deliveries until msgs is closed or ctx is done.
func (w *EmailWorker) Run(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			w.Handle(ctx, msg)
		}
	}
}

// Handle acks delivered jobs, drops undeliverable ones and requeues transient failures.
func (w *EmailWorker) Handle(ctx context.Context, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		w.Logger.WithError(err).Error("bad email job payload")
		metrics.ObserveEmailJob("unknown", "dropped")
		_ = msg.Nack(false, false)
		return
	}
	log := w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template})

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	err := mailer.Deliver(c, w.Sender, job)
	cancel()

	switch {
	case err == nil:
		metrics.ObserveEmailJob(job.Template, "sent")
		log.Info("email sent")
		_ = msg.Ack(false)
	case errors.Is(err, mailer.ErrPermanent):
		metrics.ObserveEmailJob(job.Template, "dropped")
		log.WithError(err).Error("email job dropped")
		_ = msg.Nack(false, false)
	default:
		metrics.ObserveEmailJob(job.Template, "retry")
		log.WithError(err).Warn("email send failed, requeueing")
		_ = msg.Nack(false, true)
	}
}
