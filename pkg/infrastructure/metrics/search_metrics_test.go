package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/botplan/pkg/application/dto"
)

func TestSearchMetricsCollector_RecordSearch(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewSearchMetricsCollector()
	require.NoError(t, c.Register(reg))

	c.RecordSearch(dto.SearchResult{
		BlueprintID:    1,
		Yield:          9,
		StatesExplored: 1000,
		StatesPruned:   map[string]int{"LockIn": 10, "SpendCap": 5},
		Duration:       20 * time.Millisecond,
	})
	c.RecordSearch(dto.SearchResult{
		BlueprintID:    2,
		Yield:          4,
		StatesExplored: 50,
		StatesPruned:   map[string]int{"LockIn": 1},
		Truncated:      true,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.searchesTotal.WithLabelValues("complete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.searchesTotal.WithLabelValues("truncated")))
	assert.Equal(t, 1050.0, testutil.ToFloat64(c.statesExplored))
	assert.Equal(t, 11.0, testutil.ToFloat64(c.statesPruned.WithLabelValues("LockIn")))
	assert.Equal(t, 9.0, testutil.ToFloat64(c.bestYield.WithLabelValues("1")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.bestYield.WithLabelValues("2")))

	count, err := testutil.GatherAndCount(reg, "botplan_search_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSearchMetricsCollector_RegisterTwiceFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, NewSearchMetricsCollector().Register(reg))

	err := NewSearchMetricsCollector().Register(reg)
	assert.ErrorContains(t, err, "failed to register search metric")
}

func TestWriteFile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewSearchMetricsCollector()
	require.NoError(t, c.Register(reg))
	c.RecordSearch(dto.SearchResult{BlueprintID: 3, Yield: 12})

	path := filepath.Join(t.TempDir(), "botplan.prom")
	require.NoError(t, WriteFile(path, reg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `botplan_search_best_yield{blueprint="3"} 12`)
	assert.Contains(t, string(content), `botplan_search_searches_total{status="complete"} 1`)
}
