package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"route-resilience-service/internal/adapters/cache"
	"route-resilience-service/internal/adapters/road"
	"route-resilience-service/internal/adapters/routing"
	"route-resilience-service/internal/adapters/summarizer"
	"route-resilience-service/internal/adapters/weather"
	"route-resilience-service/internal/config"
	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/services"
)

// One-shot analysis from the command line: score the routes between two
// points and print the result as JSON.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var (
		originFlag  = flag.String("origin", "", "origin as lat,lon (required)")
		destFlag    = flag.String("dest", "", "destination as lat,lon (required)")
		vehicleFlag = flag.String("vehicle", config.Get("VEHICLE_TYPE", "diesel_truck"), "vehicle type for carbon estimates")
		altFlag     = flag.Int("alternatives", 3, "maximum alternative routes")
		prioFlag    = flag.String("priorities", "", "path to a JSON file of dimension weights")
		timeoutFlag = flag.Duration("timeout", 2*time.Minute, "overall analysis timeout")
	)
	flag.Parse()

	origin, err := parseLatLon(*originFlag)
	if err != nil {
		log.Fatalf("invalid -origin: %v", err)
	}
	destination, err := parseLatLon(*destFlag)
	if err != nil {
		log.Fatalf("invalid -dest: %v", err)
	}

	priorities, err := loadPriorities(*prioFlag)
	if err != nil {
		log.Fatalf("invalid -priorities: %v", err)
	}

	cacheDB, err := cache.OpenSQLite(config.Get("CACHE_DB_PATH", "data/samples.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer cacheDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	if err := cache.InitSQLiteSchema(ctx, cacheDB); err != nil {
		log.Fatal(err)
	}

	weatherProvider := weather.NewCachedProvider(
		weather.NewOpenMeteoProvider(), cache.NewSQLiteWeatherCache(cacheDB), nil)
	roadProvider := road.NewCachedProvider(
		road.NewOverpassProvider(), cache.NewSQLiteRoadCache(cacheDB), nil)

	pipeline := services.NewPipeline(services.PipelineConfig{
		Source: services.NewRouteSource(
			routing.NewGoogleProvider(config.Get("GOOGLE_MAPS_API_KEY", "")),
			routing.NewORSProvider(config.Get("ORS_API_KEY", "")),
			nil,
		),
		Scorer:              services.NewSafetyScorer(roadProvider, weatherProvider, nil),
		Carbon:              services.NewCarbonAnalyzer(*vehicleFlag),
		Summarizer:          summarizer.NewGeminiSummarizer(config.Get("GEMINI_API_KEY", "")),
		MaxSegmentLenMeters: config.GetFloat("SEGMENT_MAX_METERS", 5000),
		MinSegmentLenMeters: config.GetFloat("SEGMENT_MIN_METERS", 500),
		Workers:             config.GetInt("ANALYSIS_WORKERS", 4),
	})

	result, err := pipeline.Analyze(ctx, services.AnalyzeRequest{
		Origin:          origin,
		Destination:     destination,
		Priorities:      priorities,
		MaxAlternatives: *altFlag,
	})
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal(err)
	}
}

// loadPriorities reads dimension weights from a JSON file, e.g.
// {"time": 0.4, "distance": 0.2, "carbon_emission": 0.2, "road_quality": 0.2}.
func loadPriorities(path string) (domain.Priorities, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var weights map[string]float64
	if err := json.Unmarshal(raw, &weights); err != nil {
		return nil, err
	}

	valid := map[domain.Dimension]bool{}
	for _, d := range domain.WeightedDimensions {
		valid[d] = true
	}

	out := domain.Priorities{}
	for name, weight := range weights {
		d := domain.Dimension(name)
		if !valid[d] {
			return nil, fmt.Errorf("unknown dimension %q", name)
		}
		if weight < 0 {
			return nil, fmt.Errorf("dimension %q has negative weight", name)
		}
		out[d] = weight
	}
	return out, nil
}

func parseLatLon(s string) (domain.Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("expected lat,lon, got %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("longitude: %w", err)
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Coordinates{}, fmt.Errorf("out of range: %q", s)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
