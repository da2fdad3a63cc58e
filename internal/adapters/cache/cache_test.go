package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"route-resilience-service/internal/domain"
)

func TestGridKeyBucketsNearbyPoints(t *testing.T) {
	a := GridKey("weather", 28.6142, 77.2121)
	b := GridKey("weather", 28.6118, 77.2093)
	c := GridKey("weather", 28.71, 77.21)

	require.Equal(t, "weather:28.61:77.21", a)
	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestSQLiteCachesRoundTrip(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, InitSQLiteSchema(ctx, db))

	weather := NewSQLiteWeatherCache(db)
	_, hit, err := weather.Get(ctx, "weather:28.61:77.21")
	require.NoError(t, err)
	require.False(t, hit)

	in := domain.WeatherSample{RainfallMM: 12, Windspeed: 9, VisibilityM: 8000, Temperature: 30}.WithRisks()
	require.NoError(t, weather.Put(ctx, "weather:28.61:77.21", in))

	out, hit, err := weather.Get(ctx, "weather:28.61:77.21")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, in, out)

	road := NewSQLiteRoadCache(db)
	rin := domain.RoadSample{RoadType: "primary", BaseQuality: 80, WidthMeters: 9}
	require.NoError(t, road.Put(ctx, "road:28.61:77.21", rin))

	rout, hit, err := road.Get(ctx, "road:28.61:77.21")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, rin, rout)
}

func TestSQLitePutOverwrites(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, InitSQLiteSchema(ctx, db))

	c := NewSQLiteRoadCache(db)
	require.NoError(t, c.Put(ctx, "road:1", domain.RoadSample{RoadType: "service", BaseQuality: 40}))
	require.NoError(t, c.Put(ctx, "road:1", domain.RoadSample{RoadType: "trunk", BaseQuality: 85}))

	out, hit, err := c.Get(ctx, "road:1")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, "trunk", out.RoadType)
}

func TestRedisWeatherCacheRoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx := context.Background()
	c := NewRedisWeatherCache(rdb, 10*time.Minute)

	_, hit, err := c.Get(ctx, "weather:28.61:77.21")
	require.NoError(t, err)
	require.False(t, hit)

	in := domain.WeatherSample{RainfallMM: 4, VisibilityM: 9500, Temperature: 22}.WithRisks()
	require.NoError(t, c.Put(ctx, "weather:28.61:77.21", in))

	out, hit, err := c.Get(ctx, "weather:28.61:77.21")
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, in, out)

	// Samples age out after the TTL.
	mr.FastForward(11 * time.Minute)
	_, hit, err = c.Get(ctx, "weather:28.61:77.21")
	require.NoError(t, err)
	require.False(t, hit)
}
