package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_map/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNearbyQuery_RadiusOnly(t *testing.T) {
	query, args := nearbyQuery(models.NearbyFilter{
		Latitude:     55.75,
		Longitude:    37.61,
		RadiusMeters: 1000,
		Page:         2,
		PageSize:     20,
	})

	assert.Equal(t, []any{37.61, 55.75, 1000, 20, 20}, args)
	assert.Contains(t, query, "ST_MakePoint($1, $2)")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")
	assert.NotContains(t, query, "ANY(hashtags)")
	assert.NotContains(t, query, "severity >=")
}

func TestNearbyQuery_AllFilters(t *testing.T) {
	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args := nearbyQuery(models.NearbyFilter{
		Latitude:     1,
		Longitude:    2,
		RadiusMeters: 500,
		MinSeverity:  7,
		Hashtag:      "flood",
		Since:        since,
		Page:         1,
		PageSize:     10,
	})

	assert.Equal(t, []any{2.0, 1.0, 500, "flood", since, 10, 0}, args)
	assert.Contains(t, query, "$4 = ANY(hashtags)")
	assert.Contains(t, query, "created_at >= $5")
	assert.Contains(t, query, "LIMIT $6 OFFSET $7")
	assert.Equal(t, 2, strings.Count(query, " AND "))
}

func TestIncidentCacheKey(t *testing.T) {
	id := uuid.MustParse("3f1c9d7e-0000-4000-8000-000000000001")
	assert.Equal(t, "incident:3f1c9d7e-0000-4000-8000-000000000001", incidentCacheKey(id))
}
