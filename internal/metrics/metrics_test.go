package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

type fakeStats struct{ total, idle, acquired int32 }

func (f fakeStats) TotalConns() int32    { return f.total }
func (f fakeStats) IdleConns() int32     { return f.idle }
func (f fakeStats) AcquiredConns() int32 { return f.acquired }

type fakeProvider struct{ stats fakeStats }

func (p fakeProvider) Stat() PoolStats { return p.stats }

func TestDomainCounters(t *testing.T) {
	draft := testutil.ToFloat64(ArticlesCreatedTotal.WithLabelValues("draft"))
	ObserveArticleCreated(false)
	assert.Equal(t, draft+1, testutil.ToFloat64(ArticlesCreatedTotal.WithLabelValues("draft")))

	reply := testutil.ToFloat64(CommentsCreatedTotal.WithLabelValues("reply"))
	ObserveCommentCreated(true)
	assert.Equal(t, reply+1, testutil.ToFloat64(CommentsCreatedTotal.WithLabelValues("reply")))

	expired := testutil.ToFloat64(AuthFailuresTotal.WithLabelValues("token_expired"))
	ObserveAuthFailure("token_expired")
	assert.Equal(t, expired+1, testutil.ToFloat64(AuthFailuresTotal.WithLabelValues("token_expired")))

	sent := testutil.ToFloat64(EmailJobsTotal.WithLabelValues("welcome", "queued"))
	ObserveEmailJob("welcome", "queued")
	assert.Equal(t, sent+1, testutil.ToFloat64(EmailJobsTotal.WithLabelValues("welcome", "queued")))
}

func TestPoolStatsCollector(t *testing.T) {
	c := NewPoolStatsCollectorWithProvider(fakeProvider{fakeStats{total: 10, idle: 7, acquired: 3}})
	c.Start(time.Hour)
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("in_use")) == 3
	}, time.Second, 10*time.Millisecond)
	c.Stop()

	assert.Equal(t, float64(10), testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("total")))
	assert.Equal(t, float64(7), testutil.ToFloat64(DBConnectionPoolSize.WithLabelValues("idle")))
}
