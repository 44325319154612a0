package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordDecision(t *testing.T) {
	counter := AuthzDecisionsTotal.WithLabelValues("project", "destroy", OutcomeDenied)
	before := testutil.ToFloat64(counter)

	RecordDecision("project", "destroy", OutcomeDenied)
	RecordDecision("project", "destroy", OutcomeDenied)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestRecordRequest(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "/api/tasks", "200")
	before := testutil.ToFloat64(counter)

	RecordRequest("GET", "/api/tasks", 200, 15*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestRecordRequestUnmatchedRoute(t *testing.T) {
	counter := HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")
	before := testutil.ToFloat64(counter)

	RecordRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
