package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"github.com/Veraticus/billscout/internal/model"
	"golang.org/x/sync/errgroup"
)

// ScoreCandidate annotates one candidate with its distance from the
// reference point and its three scores. The input is not modified.
func ScoreCandidate(c model.PlaceCandidate, refLat, refLon float64) model.ScoredPlace {
	place := model.ScoredPlace{
		PlaceCandidate: c,
		DistanceKm:     DistanceKm(refLat, refLon, c.Location.Lat, c.Location.Lon),
		PriceScore:     PriceScore(c.PriceLevel),
		QualityScore:   QualityScore(c.Rating, c.ReviewCount),
		ServiceScore:   ServiceScore(c.Rating, c.OpenNow, c.Reviews),
	}
	place.Reviews = slices.Clone(c.Reviews)
	return place
}

// ScoreCandidates scores every candidate, preserving input order.
func ScoreCandidates(candidates []model.PlaceCandidate, refLat, refLon float64) []model.ScoredPlace {
	out := make([]model.ScoredPlace, len(candidates))
	for i, c := range candidates {
		out[i] = ScoreCandidate(c, refLat, refLon)
	}
	return out
}

// Config holds scorer settings.
type Config struct {
	// Workers bounds concurrent scoring goroutines.
	Workers int
	// ParallelThreshold is the batch size below which scoring stays sequential.
	ParallelThreshold int
}

// Option is a functional option for configuring the Scorer.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: 64,
	}
}

// WithWorkers sets the worker limit. Values below one are ignored.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithParallelThreshold sets the minimum batch size for parallel scoring.
func WithParallelThreshold(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.ParallelThreshold = n
		}
	}
}

// Scorer scores candidate batches, fanning out large batches.
// Each candidate is scored independently, so results match ScoreCandidates.
type Scorer struct {
	cfg Config
}

// NewScorer creates a scorer with the given options.
func NewScorer(opts ...Option) *Scorer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Scorer{cfg: cfg}
}

// Score scores all candidates in input order. It only fails when ctx is
// cancelled before every candidate has been scored.
func (s *Scorer) Score(ctx context.Context, candidates []model.PlaceCandidate, refLat, refLon float64) ([]model.ScoredPlace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(candidates) < s.cfg.ParallelThreshold || s.cfg.Workers <= 1 {
		return ScoreCandidates(candidates, refLat, refLon), nil
	}

	slog.Debug("Scoring candidates in parallel",
		"candidates", len(candidates),
		"workers", s.cfg.Workers)

	out := make([]model.ScoredPlace, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = ScoreCandidate(candidates[i], refLat, refLon)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring interrupted: %w", err)
	}
	return out, nil
}
