package services

import (
	"fmt"
	"log"

	"route-resilience-service/internal/domain"
)

// ResilienceAggregator combines component scores into one weighted
// resilience score per route.
type ResilienceAggregator struct {
	logger *log.Logger
}

func NewResilienceAggregator(logger *log.Logger) *ResilienceAggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &ResilienceAggregator{logger: logger}
}

// Calculate produces one ResilienceResult per route, preserving input order.
// All score slices must be parallel to routeNames. Nil priorities means
// equal 0.25 weights; supplied weights need not sum to 1 and the overall
// score is deliberately left un-normalized so callers can compare across
// weighting schemes.
func (a *ResilienceAggregator) Calculate(
	routeNames []string,
	timeScores, distanceScores, carbonScores, roadQualityScores []float64,
	priorities domain.Priorities,
) []domain.ResilienceResult {
	if priorities == nil {
		priorities = domain.DefaultPriorities()
	}

	results := make([]domain.ResilienceResult, 0, len(routeNames))
	for i, name := range routeNames {
		components := map[domain.Dimension]float64{
			domain.DimensionTime:           at(timeScores, i),
			domain.DimensionDistance:       at(distanceScores, i),
			domain.DimensionCarbonEmission: at(carbonScores, i),
			domain.DimensionRoadQuality:    at(roadQualityScores, i),
		}

		overall := 0.0
		contributions := make(map[domain.Dimension]float64, len(domain.WeightedDimensions))
		for _, d := range domain.WeightedDimensions {
			c := priorities[d] * components[d]
			contributions[d] = c
			overall += c
		}

		results = append(results, domain.ResilienceResult{
			RouteName:             name,
			Overall:               overall,
			ComponentScores:       components,
			WeightedContributions: contributions,
		})

		a.logger.Printf("resilience: route=%q overall=%.4f", name, overall)
	}

	return results
}

// FormatResults derives the best route (maximal overall score, first
// occurrence wins ties) and a one-line selection reason naming the dimension
// that contributed most to the winner's score.
func FormatResults(results []domain.ResilienceResult) (bestRouteName, reason string) {
	if len(results) == 0 {
		return "", ""
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Overall > best.Overall {
			best = r
		}
	}

	var topDim domain.Dimension
	topContribution := -1.0
	for _, d := range domain.WeightedDimensions {
		if c := best.WeightedContributions[d]; c > topContribution {
			topContribution = c
			topDim = d
		}
	}

	reason = fmt.Sprintf(
		"%s has the highest weighted resilience score (%.2f), driven mainly by its %s score",
		best.RouteName, best.Overall, topDim,
	)
	return best.RouteName, reason
}

func at(scores []float64, i int) float64 {
	if i < len(scores) {
		return scores[i]
	}
	return 0
}
