package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"route-resilience-service/internal/adapters/cache"
	"route-resilience-service/internal/adapters/road"
	"route-resilience-service/internal/adapters/routing"
	"route-resilience-service/internal/adapters/summarizer"
	"route-resilience-service/internal/adapters/weather"
	"route-resilience-service/internal/api"
	"route-resilience-service/internal/config"
	"route-resilience-service/internal/ports"
	"route-resilience-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Google, ORS, Open-Meteo, Overpass, Gemini,
// SQLite/Redis caches) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	pipeline, cleanup, err := buildPipeline()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	router := api.NewRouter(pipeline)

	// Timeouts are tuned for cold-cache analysis (several external API calls
	// per route).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func buildPipeline() (*services.Pipeline, func(), error) {
	googleKey := config.Get("GOOGLE_MAPS_API_KEY", "")
	orsKey := config.Get("ORS_API_KEY", "")
	geminiKey := config.Get("GEMINI_API_KEY", "")

	var primary ports.RouteProvider = routing.NewGoogleProvider(googleKey)
	if config.Get("MOCK_ROUTES", "") == "true" {
		log.Println("MOCK_ROUTES=true: serving fabricated routes")
		primary = routing.NewMockProvider()
	} else if googleKey == "" && orsKey == "" {
		log.Println("warning: no route provider configured (set GOOGLE_MAPS_API_KEY or ORS_API_KEY)")
	}

	cacheDB, err := cache.OpenSQLite(config.Get("CACHE_DB_PATH", "data/samples.db"))
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { cacheDB.Close() }

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cache.InitSQLiteSchema(ctx, cacheDB); err != nil {
		cleanup()
		return nil, nil, err
	}

	// Weather samples expire, so Redis (when configured) takes priority over
	// the local SQLite cache.
	var weatherStore ports.WeatherSampleCache = cache.NewSQLiteWeatherCache(cacheDB)
	if addr := config.Get("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		weatherStore = cache.NewRedisWeatherCache(rdb, cache.DefaultWeatherTTL)
		prev := cleanup
		cleanup = func() { rdb.Close(); prev() }
	}

	weatherProvider := weather.NewCachedProvider(weather.NewOpenMeteoProvider(), weatherStore, nil)

	var roadProvider ports.RoadQualityProvider
	if config.Get("OVERPASS_ENABLED", "true") == "true" {
		roadProvider = road.NewCachedProvider(road.NewOverpassProvider(), cache.NewSQLiteRoadCache(cacheDB), nil)
	} else {
		roadProvider = road.NewStaticProvider(config.Get("STATIC_ROAD_TYPE", "unknown"))
	}

	pipeline := services.NewPipeline(services.PipelineConfig{
		Source:              services.NewRouteSource(primary, routing.NewORSProvider(orsKey), nil),
		Scorer:              services.NewSafetyScorer(roadProvider, weatherProvider, nil),
		Carbon:              services.NewCarbonAnalyzer(config.Get("VEHICLE_TYPE", "diesel_truck")),
		Summarizer:          summarizer.NewGeminiSummarizer(geminiKey),
		MaxSegmentLenMeters: config.GetFloat("SEGMENT_MAX_METERS", 5000),
		MinSegmentLenMeters: config.GetFloat("SEGMENT_MIN_METERS", 500),
		Workers:             config.GetInt("ANALYSIS_WORKERS", 4),
	})

	return pipeline, cleanup, nil
}
