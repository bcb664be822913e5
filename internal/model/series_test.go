package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries_FillsCatalogInfo(t *testing.T) {
	s := NewSeries(SeriesSolar, 8)
	assert.Equal(t, SeriesSolar, s.Type)
	assert.Equal(t, "Solar Output", s.Name)
	assert.Equal(t, "W", s.Unit)
	assert.Empty(t, s.Points)
	assert.Equal(t, 8, cap(s.Points))
}

func TestSeries_TimeRange(t *testing.T) {
	s := NewSeries(SeriesCharge, 2)
	_, ok := s.TimeRange()
	assert.False(t, ok, "empty series has no range")

	t0 := time.Date(SimYear, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Points = append(s.Points,
		Point{Timestamp: t0, Value: 1},
		Point{Timestamp: t0.Add(time.Hour), Value: 2},
	)

	tr, ok := s.TimeRange()
	require.True(t, ok)
	assert.Equal(t, t0, tr.Start)
	assert.Equal(t, t0.Add(time.Hour), tr.End)
}

func TestSeriesCatalog_CoversAllTypes(t *testing.T) {
	for _, st := range []SeriesType{SeriesCharge, SeriesSolar, SeriesDaylight} {
		info, ok := SeriesCatalog[st]
		require.True(t, ok, "missing catalog entry for %s", st)
		assert.NotEmpty(t, info.Name)
		assert.NotEmpty(t, info.Unit)
	}
}
