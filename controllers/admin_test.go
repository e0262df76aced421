package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := map[string]time.Time{
		"24h": now.Add(-24 * time.Hour),
		"7d":  now.AddDate(0, 0, -7),
		"30d": now.AddDate(0, 0, -30),
		"90d": now.AddDate(0, 0, -90),
		"1y":  now.AddDate(-1, 0, 0),
	}
	for period, want := range cases {
		got, err := periodCutoff(period, now)
		require.NoError(t, err, period)
		assert.Equal(t, want, got, period)
	}

	for _, bad := range []string{"", "2d", "1h", "all"} {
		_, err := periodCutoff(bad, now)
		assert.ErrorIs(t, err, errUnknownPeriod, "period %q", bad)
	}
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		skip, limit := parsePagination(httptest.NewRequest("GET", "/api/products", nil))
		assert.Zero(t, skip)
		assert.EqualValues(t, defaultPageSize, limit)
	})

	t.Run("explicit page and limit", func(t *testing.T) {
		skip, limit := parsePagination(httptest.NewRequest("GET", "/api/products?page=3&limit=10", nil))
		assert.EqualValues(t, 20, skip)
		assert.EqualValues(t, 10, limit)
	})

	t.Run("limit is clamped", func(t *testing.T) {
		_, limit := parsePagination(httptest.NewRequest("GET", "/api/products?limit=5000", nil))
		assert.EqualValues(t, maxPageSize, limit)
	})

	t.Run("garbage falls back", func(t *testing.T) {
		skip, limit := parsePagination(httptest.NewRequest("GET", "/api/products?page=x&limit=-1", nil))
		assert.Zero(t, skip)
		assert.EqualValues(t, defaultPageSize, limit)
	})
}
