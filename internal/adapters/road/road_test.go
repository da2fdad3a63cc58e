package road

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"route-resilience-service/internal/domain"
)

func TestNormalizeTypeFoldsLinkRoads(t *testing.T) {
	require.Equal(t, "motorway", normalizeType("motorway_link"))
	require.Equal(t, "primary", normalizeType("Primary"))
	require.Equal(t, "unknown", normalizeType("footway"))
	require.Equal(t, "unknown", normalizeType(""))
}

func TestQualityTable(t *testing.T) {
	require.InDelta(t, 90, qualityFor("motorway"), 1e-9)
	require.InDelta(t, 85, qualityFor("trunk_link"), 1e-9)
	require.InDelta(t, 50, qualityFor("cycleway"), 1e-9)
}

func TestOverpassClassifiesNearestWay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Contains(t, r.Form.Get("data"), `["highway"]`)

		fmt.Fprint(w, `{
			"elements": [{"tags": {"highway": "secondary", "width": "8.2"}}]
		}`)
	}))
	defer srv.Close()

	p := NewOverpassProvider().WithBaseURL(srv.URL)
	sample, err := p.Sample(context.Background(), domain.Coordinates{Lat: 28.61, Lon: 77.21}, 3000)
	require.NoError(t, err)

	require.Equal(t, "secondary", sample.RoadType)
	require.InDelta(t, 70, sample.BaseQuality, 1e-9)
	// Mapped width tag beats the class heuristic.
	require.InDelta(t, 8.2, sample.WidthMeters, 1e-9)
}

func TestOverpassNoWaysFallsBackToDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"elements": []}`)
	}))
	defer srv.Close()

	p := NewOverpassProvider().WithBaseURL(srv.URL)
	sample, err := p.Sample(context.Background(), domain.Coordinates{}, 1000)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultRoadSample(), sample)
}

type mapRoadStore struct {
	entries map[string]domain.RoadSample
	puts    int
}

func (m *mapRoadStore) Get(ctx context.Context, key string) (domain.RoadSample, bool, error) {
	s, ok := m.entries[key]
	return s, ok, nil
}

func (m *mapRoadStore) Put(ctx context.Context, key string, sample domain.RoadSample) error {
	m.puts++
	m.entries[key] = sample
	return nil
}

func TestCachedRoadProviderReusesGridCell(t *testing.T) {
	inner := NewStaticProvider("tertiary")
	store := &mapRoadStore{entries: map[string]domain.RoadSample{}}
	p := NewCachedProvider(inner, store, nil)

	first, err := p.Sample(context.Background(), domain.Coordinates{Lat: 28.611, Lon: 77.212}, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, store.puts)

	second, err := p.Sample(context.Background(), domain.Coordinates{Lat: 28.6112, Lon: 77.2121}, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, store.puts)
	require.Equal(t, first, second)
	require.Equal(t, "tertiary", second.RoadType)
}
