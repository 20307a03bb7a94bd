package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Kaikei-e/Alt-sub017/internal/models"
)

func TestBuildTrendQuery(t *testing.T) {
	tests := []struct {
		granularity models.Granularity
		trunc       string
		absent      string
	}{
		{granularity: models.GranularityHourly, trunc: "date_trunc('hour'", absent: "date_trunc('day'"},
		{granularity: models.GranularityDaily, trunc: "date_trunc('day'", absent: "date_trunc('hour'"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			query := buildTrendQuery(tt.granularity)

			assert.Equal(t, 2, strings.Count(query, tt.trunc))
			assert.NotContains(t, query, tt.absent)
			assert.Contains(t, query, "FULL OUTER JOIN")
			assert.Contains(t, query, "ORDER BY bucket ASC")
			assert.NotContains(t, query, "$2")
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	assert.NoError(t, err)

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	assert.Equal(t, up, down)
	assert.NotZero(t, up)
}
