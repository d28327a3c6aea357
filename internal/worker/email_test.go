package worker

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-blog/internal/metrics"
)

type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

func (a *ackRecorder) Reject(_ uint64, requeue bool) error {
	a.nacked, a.requeue = true, requeue
	return nil
}

type senderFunc func(ctx context.Context, to, subject, text, html string) error

func (f senderFunc) Send(ctx context.Context, to, subject, text, html string) error {
	return f(ctx, to, subject, text, html)
}

func delivery(body string) (amqp.Delivery, *ackRecorder) {
	rec := &ackRecorder{}
	return amqp.Delivery{Acknowledger: rec, DeliveryTag: 1, Body: []byte(body)}, rec
}

func newWorker(send senderFunc) *EmailWorker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewEmailWorker(send, l)
}

func TestHandleSendsTemplateAndAcks(t *testing.T) {
	var subject string
	w := newWorker(func(_ context.Context, to, s, text, html string) error {
		subject = s
		assert.Equal(t, "neo@matrix.io", to)
		assert.NotEmpty(t, html)
		return nil
	})
	before := testutil.ToFloat64(metrics.EmailJobsTotal.WithLabelValues("welcome", "sent"))

	msg, rec := delivery(`{"to":"neo@matrix.io","template":"welcome","data":{"Name":"Neo","AppName":"Blog App"}}`)
	w.Handle(context.Background(), msg)

	assert.True(t, rec.acked)
	assert.False(t, rec.nacked)
	assert.NotEmpty(t, subject)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailJobsTotal.WithLabelValues("welcome", "sent")))
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	w := newWorker(func(context.Context, string, string, string, string) error {
		t.Fatal("sender must not be called")
		return nil
	})
	msg, rec := delivery(`not json`)
	w.Handle(context.Background(), msg)

	assert.True(t, rec.nacked)
	assert.False(t, rec.requeue)
}

func TestHandleDropsUnknownTemplate(t *testing.T) {
	w := newWorker(func(context.Context, string, string, string, string) error { return nil })
	msg, rec := delivery(`{"to":"a@b.c","template":"nope"}`)
	w.Handle(context.Background(), msg)

	assert.True(t, rec.nacked)
	assert.False(t, rec.requeue)
}

func TestHandleRequeuesSendFailure(t *testing.T) {
	w := newWorker(func(context.Context, string, string, string, string) error { return errors.New("mailgun 503") })
	msg, rec := delivery(`{"to":"a@b.c","subject":"Bonjour","text":"salut"}`)
	w.Handle(context.Background(), msg)

	assert.True(t, rec.nacked)
	assert.True(t, rec.requeue)
}

func TestRunStopsWhenChannelCloses(t *testing.T) {
	w := newWorker(func(context.Context, string, string, string, string) error { return nil })
	msgs := make(chan amqp.Delivery, 1)
	msg, rec := delivery(`{"to":"a@b.c","subject":"s","text":"t"}`)
	msgs <- msg
	close(msgs)

	w.Run(context.Background(), msgs)
	assert.True(t, rec.acked)
}
