//go:build unit

package collector_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/infra/collector"
)

func testCriteria() listing.Criteria {
	return listing.Criteria{MinPrice: 500, MaxPrice: 1500, MinRooms: 1, MaxRooms: 4}
}

func newCollector(t *testing.T, baseURL string) *collector.HTTPCollector {
	t.Helper()
	c, err := collector.NewHTTPCollector(collector.HTTPCollectorOptions{
		Name:      "seloger",
		BaseURL:   baseURL,
		UserAgent: "rental-hunter-test/1.0",
	})
	require.NoError(t, err)
	return c
}

func TestHTTPCollector_PaginatesUntilEmptyPage(t *testing.T) {
	pages := map[int][]map[string]string{
		1: {
			{"id": "a-1", "title": "T2 proche métro", "price": "850 €", "url": "https://src.example/a-1"},
			{"id": "a-2", "title": "Studio centre", "price": "640 €", "url": "https://src.example/a-2"},
		},
		2: {
			{"id": "a-3", "title": "T3 avec balcon", "price": "1200 €", "url": "https://src.example/a-3"},
		},
	}

	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/search", r.URL.Path)
		require.Equal(t, "rental-hunter-test/1.0", r.Header.Get("User-Agent"))
		queries = append(queries, r.URL.RawQuery)

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"listings": pages[page]})
	}))
	defer srv.Close()

	raws, err := newCollector(t, srv.URL).Collect(context.Background(), "Lyon", testCriteria())
	require.NoError(t, err)
	require.Len(t, raws, 3)
	assert.Equal(t, "seloger", raws[0].SourceSite)
	assert.Equal(t, "a-1", raws[0].SourceID)
	assert.Equal(t, "Lyon", raws[0].City)

	// Two data pages plus the empty page that stops the scan.
	require.Len(t, queries, 3)
	assert.Contains(t, queries[0], "city=Lyon")
	assert.Contains(t, queries[0], "min_price=500")
	assert.Contains(t, queries[0], "max_price=1500")
}

func TestHTTPCollector_AcceptsBareArrayPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			_, _ = w.Write([]byte("[]"))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"b-1","title":"T2","price":"900 €","city":"Nantes"}]`))
	}))
	defer srv.Close()

	raws, err := newCollector(t, srv.URL).Collect(context.Background(), "Nantes", testCriteria())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Nantes", raws[0].City)
	// Hit without a URL: one is synthesized from the source id.
	assert.Equal(t, srv.URL+"/listings/b-1", raws[0].URL)
}

func TestHTTPCollector_SkipsUnidentifiableHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			_, _ = w.Write([]byte("[]"))
			return
		}
		_, _ = w.Write([]byte(`[{"title":"sans identifiant"},{"id":"c-1","title":"ok","price":"700 €"}]`))
	}))
	defer srv.Close()

	raws, err := newCollector(t, srv.URL).Collect(context.Background(), "Lille", testCriteria())
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "c-1", raws[0].SourceID)
}

func TestHTTPCollector_UpstreamErrorFailsScan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newCollector(t, srv.URL).Collect(context.Background(), "Paris", testCriteria())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewHTTPCollector_RequiresBaseURL(t *testing.T) {
	_, err := collector.NewHTTPCollector(collector.HTTPCollectorOptions{Name: "seloger"})
	assert.Error(t, err)
}
