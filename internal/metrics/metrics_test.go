package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(MediaPolicyRejections.WithLabelValues("mismatch"))
	MediaPolicyRejections.WithLabelValues("mismatch").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(MediaPolicyRejections.WithLabelValues("mismatch")))

	sos := testutil.ToFloat64(SOSTriggered)
	SOSTriggered.Inc()
	assert.Equal(t, sos+1, testutil.ToFloat64(SOSTriggered))
}
