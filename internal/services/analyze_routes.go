package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"route-resilience-service/internal/domain"
	"route-resilience-service/internal/metrics"
	"route-resilience-service/internal/platform/obs"
	"route-resilience-service/internal/ports"
)

// ErrNoRoutes is the terminal condition for an analysis request: both route
// providers came up empty.
var ErrNoRoutes = errors.New("no routes found")

// pathSampleStride thins route geometry for the summarizer context so the
// prompt stays small while keeping geographic shape.
const pathSampleStride = 50

// AnalyzeRequest carries one analysis invocation's parameters.
type AnalyzeRequest struct {
	Origin          domain.Coordinates
	Destination     domain.Coordinates
	OriginName      string
	DestinationName string
	Priorities      domain.Priorities
	MaxAlternatives int
}

// PipelineConfig wires the pipeline's collaborators and tuning knobs.
type PipelineConfig struct {
	Source     *RouteSource
	Scorer     *SafetyScorer
	Carbon     CarbonAnalyzer
	Summarizer ports.SummarizerService

	MaxSegmentLenMeters float64
	MinSegmentLenMeters float64
	Workers             int
	Logger              *log.Logger
}

// Pipeline runs the full scoring flow: route acquisition, segmentation,
// safety scoring and component analysis per route, priority-weighted
// aggregation, and summary annotation.
type Pipeline struct {
	source     *RouteSource
	scorer     *SafetyScorer
	carbon     CarbonAnalyzer
	summarizer ports.SummarizerService
	aggregator *ResilienceAggregator
	validator  *SummaryValidator

	maxSegmentLen float64
	minSegmentLen float64
	workers       int
	logger        *log.Logger
}

func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	maxLen := cfg.MaxSegmentLenMeters
	if maxLen <= 0 {
		maxLen = 5000
	}
	minLen := cfg.MinSegmentLenMeters
	if minLen < 0 {
		minLen = 0
	}

	return &Pipeline{
		source:        cfg.Source,
		scorer:        cfg.Scorer,
		carbon:        cfg.Carbon,
		summarizer:    cfg.Summarizer,
		aggregator:    NewResilienceAggregator(logger),
		validator:     NewSummaryValidator(logger),
		maxSegmentLen: maxLen,
		minSegmentLen: minLen,
		workers:       workers,
		logger:        logger,
	}
}

// Analyze scores all candidate routes between origin and destination.
// Returns ErrNoRoutes when both route providers fail; every other failure
// degrades to documented defaults. The output route count always matches
// the acquired route count.
func (p *Pipeline) Analyze(ctx context.Context, req AnalyzeRequest) (_ *domain.AnalysisResult, err error) {
	defer obs.Time(ctx, "pipeline.Analyze")(&err)

	metrics.AnalysesTotal.Inc()
	start := time.Now()
	defer func() {
		metrics.AnalysisDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	}()

	maxAlternatives := req.MaxAlternatives
	if maxAlternatives <= 0 {
		maxAlternatives = 3
	}

	routes := p.source.GetRoutes(ctx, req.Origin, req.Destination, maxAlternatives)
	if len(routes) == 0 {
		metrics.NoRoutesTotal.Inc()
		return nil, ErrNoRoutes
	}

	p.logger.Printf("pipeline: analyzing routes=%d origin=%q destination=%q",
		len(routes), req.OriginName, req.DestinationName)

	// Per-route enrichment has no cross-route dependency; fan out with one
	// writer per slot.
	analyses := make([]domain.RouteAnalysis, len(routes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, route := range routes {
		i, route := i, route
		g.Go(func() error {
			analyses[i] = p.analyzeRoute(gctx, route)
			return nil
		})
	}
	// Workers only report panics converted to defaults; Wait cannot fail.
	_ = g.Wait()

	names := make([]string, len(analyses))
	roadQualityScores := make([]float64, len(analyses))
	for i, a := range analyses {
		names[i] = a.Route.Name
		roadQualityScores[i] = a.Safety.Road.RoadQualityScore
	}

	timeScores := TimeScores(routes)
	distanceScores := DistanceScores(routes)
	carbonScores, carbonRaw := p.carbon.Scores(routes)

	results := p.aggregator.Calculate(names, timeScores, distanceScores, carbonScores, roadQualityScores, req.Priorities)
	for i := range analyses {
		results[i].ComponentScores[domain.DimensionRoadSafety] = analyses[i].Safety.RoadSafetyScore
		analyses[i].Resilience = results[i]
		analyses[i].CarbonKg = carbonRaw[i]
	}

	best, reason := FormatResults(results)

	records, ranked := p.annotate(ctx, req, analyses, results)
	for i := range analyses {
		rec, ok := records[analyses[i].Route.Name]
		if !ok {
			rec = domain.PendingSummaryRecord(analyses[i].Route.Name)
		}
		analyses[i].Summary = rec
	}

	return &domain.AnalysisResult{
		Routes:             analyses,
		BestRouteName:      best,
		ReasonForSelection: reason,
		RankedRoutes:       ranked,
	}, nil
}

// analyzeRoute enriches a single route. Failures here must never abort
// sibling routes, so panics degrade to a neutral record.
func (p *Pipeline) analyzeRoute(ctx context.Context, route domain.Route) (out domain.RouteAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Printf("pipeline: route=%q analysis panicked: %v", route.Name, r)
			out = domain.RouteAnalysis{
				Route:         route,
				Safety:        domain.DefaultSafetyReport(),
				TrafficStatus: domain.TrafficModerate,
			}
		}
	}()

	segments := Segment(route, p.maxSegmentLen, p.minSegmentLen)
	safety := p.scorer.Calculate(ctx, route.Name, segments, p.maxSegmentLen, p.minSegmentLen)

	return domain.RouteAnalysis{
		Route:           route,
		SegmentCount:    len(segments),
		Safety:          safety,
		TrafficStatus:   EstimateTrafficStatus(route, safety.Weather),
		RestStopsNearby: HasRestStopsNearby(route),
	}
}

// annotate calls the summarizer (when configured) and validates its output.
// Summaries are a non-fatal supplement: any failure leaves the numeric
// ranking intact and records fall back to pending defaults.
func (p *Pipeline) annotate(
	ctx context.Context,
	req AnalyzeRequest,
	analyses []domain.RouteAnalysis,
	results []domain.ResilienceResult,
) (map[string]domain.SummaryRecord, []string) {
	if p.summarizer == nil || !p.summarizer.Available() {
		return p.validator.Validate("", results)
	}

	contexts := make([]ports.SummaryRouteContext, 0, len(analyses))
	for i, a := range analyses {
		contexts = append(contexts, ports.SummaryRouteContext{
			ID:            a.Route.Name,
			TotalDistance: a.Route.DistanceText,
			TotalTime:     a.Route.DurationText,
			Scores: ports.SummaryRow{
				OverallResilience: results[i].Overall,
				WeatherRisk:       a.Safety.Weather.AvgRisk,
				RoadSafety:        a.Safety.RoadSafetyScore,
				CarbonEfficiency:  results[i].ComponentScores[domain.DimensionCarbonEmission],
			},
			PathSample:      samplePath(a.Route.Geometry),
			TrafficStatus:   a.TrafficStatus,
			RestStopsNearby: a.RestStopsNearby,
		})
	}

	overall := ports.SummaryOverallContext{
		Origin:      locationLabel(req.OriginName, req.Origin),
		Destination: locationLabel(req.DestinationName, req.Destination),
	}

	raw, err := p.summarizer.Generate(ctx, contexts, overall)
	if err != nil {
		p.logger.Printf("pipeline: summarizer failed err=%v", err)
		return p.validator.Validate("", results)
	}

	return p.validator.Validate(raw, results)
}

func samplePath(geometry []domain.Coordinates) [][]float64 {
	out := make([][]float64, 0, len(geometry)/pathSampleStride+1)
	for i := 0; i < len(geometry); i += pathSampleStride {
		out = append(out, []float64{geometry[i].Lat, geometry[i].Lon})
	}
	return out
}

func locationLabel(name string, c domain.Coordinates) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}
