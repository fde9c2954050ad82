package rtbhouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// conversionPages serves a fixed sequence of cursor pages and counts calls.
type conversionPages struct {
	pageSizes []int
	calls     atomic.Int32
}

func (s *conversionPages) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/advertisers/adv1/conversions", r.URL.Path)

		page := 0
		if cursor := r.URL.Query().Get("nextCursor"); cursor != "" {
			fmt.Sscanf(cursor, "cursor-%d", &page)
		}
		if page >= len(s.pageSizes) {
			t.Errorf("fetched past the last page: %d", page)
			http.Error(w, "no such page", http.StatusBadRequest)
			return
		}
		s.calls.Add(1)

		offset := 0
		for _, size := range s.pageSizes[:page] {
			offset += size
		}

		var rows []string
		for i := 0; i < s.pageSizes[page]; i++ {
			rows = append(rows, fmt.Sprintf(`{
				"conversionIdentifier": "conv-%06d",
				"conversionHash": "h",
				"conversionClass": null,
				"conversionValue": 1,
				"commissionValue": 0.1,
				"cookieHash": null,
				"conversionTime": "2026-08-15T12:00:00Z",
				"lastClickTime": null,
				"lastImpressionTime": null
			}`, offset+i))
		}

		next := "null"
		if page < len(s.pageSizes)-1 {
			next = fmt.Sprintf(`"cursor-%d"`, page+1)
		}
		fmt.Fprintf(w, `{"data": {"rows": [%s], "nextCursor": %s}}`, strings.Join(rows, ","), next)
	}
}

func conversionParams() ConversionsParams {
	return ConversionsParams{
		DayFrom: NewDate(2026, 8, 1),
		DayTo:   NewDate(2026, 8, 30),
	}
}

func TestConversionsDrainsAllPagesInOrder(t *testing.T) {
	server := &conversionPages{pageSizes: []int{1000, 1000, 400}}
	client, _ := newTestClient(t, server.handler(t))

	it, err := client.GetRTBConversions(context.Background(), "adv1", conversionParams())
	require.NoError(t, err)
	defer it.Close()

	count := 0
	for it.Next(context.Background()) {
		assert.Equal(t, fmt.Sprintf("conv-%06d", count), it.Record().ConversionIdentifier)
		count++
	}
	require.NoError(t, it.Err())
	assert.Equal(t, 2400, count)
	assert.Equal(t, int32(3), server.calls.Load(), "one request per page, no more")
}

func TestConversionsAbandonedEarlyMakesNoExtraCalls(t *testing.T) {
	server := &conversionPages{pageSizes: []int{1000, 1000, 400}}
	client, _ := newTestClient(t, server.handler(t))

	it, err := client.GetRTBConversions(context.Background(), "adv1", conversionParams())
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.True(t, it.Next(context.Background()))
	}
	it.Close()

	assert.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
	assert.Equal(t, int32(1), server.calls.Load(), "only the first page was fetched")
}

func TestConversionsLazyUntilFirstNext(t *testing.T) {
	server := &conversionPages{pageSizes: []int{5}}
	client, _ := newTestClient(t, server.handler(t))

	it, err := client.GetRTBConversions(context.Background(), "adv1", conversionParams())
	require.NoError(t, err)
	defer it.Close()

	assert.Equal(t, int32(0), server.calls.Load(), "no request before the first Next")
	require.True(t, it.Next(context.Background()))
	assert.Equal(t, int32(1), server.calls.Load())
}

func TestConversionsDefaultQuery(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "01-08-2026", q.Get("dayFrom"))
		assert.Equal(t, "30-08-2026", q.Get("dayTo"))
		assert.Equal(t, "ATTRIBUTED", q.Get("countConvention"))
		assert.Equal(t, "10000", q.Get("limit"))
		assert.False(t, q.Has("nextCursor"))
		w.Write([]byte(`{"data": {"rows": [], "nextCursor": null}}`))
	}))

	it, err := client.GetRTBConversions(context.Background(), "adv1", conversionParams())
	require.NoError(t, err)
	defer it.Close()

	assert.False(t, it.Next(context.Background()))
	require.NoError(t, it.Err())
}

func TestConversionsCollect(t *testing.T) {
	server := &conversionPages{pageSizes: []int{3, 2}}
	client, _ := newTestClient(t, server.handler(t))

	it, err := client.GetRTBConversions(context.Background(), "adv1", conversionParams())
	require.NoError(t, err)

	conversions, err := it.Collect(context.Background())
	require.NoError(t, err)
	assert.Len(t, conversions, 5)
}

func TestConversionsInvalidConvention(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	params := conversionParams()
	params.CountConvention = "SOMETIMES"
	_, err := client.GetRTBConversions(context.Background(), "adv1", params)
	require.Error(t, err)

	var paramErr *ParameterError
	require.True(t, errors.As(err, &paramErr))
	assert.Equal(t, int32(0), calls.Load())
}

func TestConversionsPropagatesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "backend exploded"})
	}))

	it, err := client.GetRTBConversions(context.Background(), "adv1", conversionParams())
	require.NoError(t, err)

	assert.False(t, it.Next(context.Background()))
	var apiErr *APIError
	require.True(t, errors.As(it.Err(), &apiErr))
	assert.Equal(t, KindServerError, apiErr.Kind)
	assert.Equal(t, "backend exploded", apiErr.Message)
}
