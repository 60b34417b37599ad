package severity

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) time.Time {
	return now.Add(-d)
}

func TestAggregate_NoUpdates(t *testing.T) {
	assert.Equal(t, 5.0, Aggregate(5, nil, now))
	assert.Equal(t, 1.0, Aggregate(0, nil, now))
	assert.Equal(t, 10.0, Aggregate(42, []Sample{}, now))
	assert.Equal(t, 5.0, Aggregate(math.NaN(), nil, now))
}

func TestAggregate_SingleRecentUpdate(t *testing.T) {
	got := Aggregate(8, []Sample{{Severity: 2, CreatedAt: ago(30 * time.Minute)}}, now)
	assert.InDelta(t, 3.71, got, 0.01)
}

func TestAggregate_BaseNeverFullyOverridden(t *testing.T) {
	got := Aggregate(1, []Sample{{Severity: 10, CreatedAt: now}}, now)
	assert.InDelta(t, 7.43, got, 0.01)
	assert.Equal(t, 7.43, Round(got))
}

func TestAggregate_MixedAges(t *testing.T) {
	updates := []Sample{
		{Severity: 9, CreatedAt: ago(2 * time.Hour)},
		{Severity: 9, CreatedAt: ago(30 * time.Hour)},
	}
	// (5*0.4 + 9*0.7 + 9*0.1) / (0.4 + 0.7 + 0.1)
	want := (5*0.4 + 9*0.7 + 9*0.1) / 1.2
	assert.InDelta(t, want, Aggregate(5, updates, now), 1e-9)
}

func TestAggregate_OrderDoesNotMatter(t *testing.T) {
	a := []Sample{
		{Severity: 3, CreatedAt: ago(10 * time.Minute)},
		{Severity: 7, CreatedAt: ago(8 * time.Hour)},
		{Severity: 6, CreatedAt: ago(3 * time.Hour)},
	}
	b := []Sample{a[2], a[0], a[1]}
	assert.InDelta(t, Aggregate(4, a, now), Aggregate(4, b, now), 1e-9)
}

func TestAggregate_FutureTimestampIsMostRecent(t *testing.T) {
	future := Aggregate(2, []Sample{{Severity: 9, CreatedAt: now.Add(time.Hour)}}, now)
	fresh := Aggregate(2, []Sample{{Severity: 9, CreatedAt: now}}, now)
	assert.Equal(t, fresh, future)
}

func TestAggregate_ClampsExtremes(t *testing.T) {
	updates := []Sample{
		{Severity: 999, CreatedAt: now},
		{Severity: 999, CreatedAt: ago(48 * time.Hour)},
	}
	assert.Equal(t, 10.0, Aggregate(0, updates, now))
	assert.Equal(t, 1.0, Aggregate(-50, []Sample{{Severity: -3, CreatedAt: now}}, now))
}

func TestAggregate_UnparseableUpdateSeverityDefaults(t *testing.T) {
	got := Aggregate(5, []Sample{{Severity: math.NaN(), CreatedAt: now}}, now)
	assert.Equal(t, 5.0, got)
}

func TestAggregate_Deterministic(t *testing.T) {
	updates := []Sample{{Severity: 6, CreatedAt: ago(5 * time.Hour)}}
	assert.Equal(t, Aggregate(3, updates, now), Aggregate(3, updates, now))
}

func TestDecayWeight_Boundaries(t *testing.T) {
	cases := []struct {
		age  time.Duration
		want float64
	}{
		{0, 1.0},
		{59 * time.Minute, 1.0},
		{time.Hour, 0.7},
		{6*time.Hour - time.Second, 0.7},
		{6 * time.Hour, 0.4},
		{24*time.Hour - time.Second, 0.4},
		{24 * time.Hour, 0.1},
		{90 * 24 * time.Hour, 0.1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DecayWeight(tc.age), "age %s", tc.age)
	}
}

func TestParseBase(t *testing.T) {
	assert.Equal(t, 7.0, ParseBase("7"))
	assert.Equal(t, 6.5, ParseBase(" 6.5 "))
	assert.Equal(t, 3.0, ParseBase(3))
	assert.Equal(t, 8.0, ParseBase(json.Number("8")))
	assert.Equal(t, 5.0, ParseBase(nil))
	assert.Equal(t, 5.0, ParseBase("high"))
	assert.Equal(t, 5.0, ParseBase(json.Number("x")))
	assert.Equal(t, 5.0, ParseBase(math.Inf(1)))
	assert.Equal(t, 5.0, ParseBase(true))
}
