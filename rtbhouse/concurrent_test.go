package rtbhouse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatsForAdvertisers(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /v5/advertisers/{hash}/rtb-stats
		parts := strings.Split(r.URL.Path, "/")
		if len(parts) != 5 {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}
		advHash := parts[3]
		fmt.Fprintf(w, `{"data": [{"day": "2026-08-01", "clicksCount": %d}]}`, len(advHash))
	}))

	params := StatsParams{
		DayFrom: NewDate(2026, 8, 1),
		DayTo:   NewDate(2026, 8, 28),
		GroupBy: []GroupBy{GroupByDay},
		Metrics: []Metric{MetricClicksCount},
	}

	hashes := []string{"a", "bb", "ccc"}
	results, err := client.GetStatsForAdvertisers(context.Background(), hashes, params)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Input order is preserved and results are not interleaved.
	for i, hash := range hashes {
		assert.Equal(t, hash, results[i].AdvertiserHash)
		require.Len(t, results[i].Stats, 1)
		assert.Equal(t, NumberOf(float64(len(hash))), results[i].Stats[0].ClicksCount)
	}
}

func TestGetStatsForAdvertisersEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	results, err := client.GetStatsForAdvertisers(context.Background(), nil, StatsParams{})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestGetStatsForAdvertisersPropagatesFirstError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "bad") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "advertiser not found"}`))
			return
		}
		w.Write([]byte(`{"data": []}`))
	}))

	params := StatsParams{
		DayFrom: NewDate(2026, 8, 1),
		DayTo:   NewDate(2026, 8, 28),
		GroupBy: []GroupBy{GroupByDay},
		Metrics: []Metric{MetricClicksCount},
	}

	_, err := client.GetStatsForAdvertisers(context.Background(), []string{"good", "bad"}, params)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}
