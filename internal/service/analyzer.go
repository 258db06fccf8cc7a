// Package service orchestrates one analysis run: fetch today's fixtures,
// assemble engine inputs from odds and predictions, run the pipeline, and
// publish the resulting snapshot.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/betting-optimizer/internal/apifootball"
	"github.com/yourusername/betting-optimizer/internal/engine"
	"github.com/yourusername/betting-optimizer/internal/metrics"
	"github.com/yourusername/betting-optimizer/internal/models"
)

// Provider abstracts the odds and predictions source
type Provider interface {
	Status(ctx context.Context) (*apifootball.AccountStatus, error)
	FixturesByDate(ctx context.Context, date time.Time) ([]apifootball.Fixture, error)
	OddsByFixture(ctx context.Context, fixtureID int64) ([]apifootball.BookmakerEntry, error)
	PredictionsByFixture(ctx context.Context, fixtureID int64) (*apifootball.PredictionEntry, error)
	BookmakerID() int
	BookmakerName() string
}

// Snapshot is the published result of one analysis run
type Snapshot struct {
	ID            uuid.UUID            `json:"id"`
	Date          string               `json:"date"`
	GeneratedAt   time.Time            `json:"generated_at"`
	TotalFixtures int                  `json:"total_fixtures"`
	Singles       []models.ScoredSingle `json:"singles"`
	Accumulators  []models.Accumulator  `json:"accumulators"`
}

// Analyzer runs the full fetch-score-assemble flow and keeps the latest
// snapshot for the API to serve
type Analyzer struct {
	provider Provider
	pipeline *engine.Pipeline
	cache    *gocache.Cache
	logger   *logrus.Logger
	now      func() time.Time

	mu      sync.RWMutex
	current *Snapshot

	cacheHits    int64
	cacheLookups int64
}

// NewAnalyzer creates an analyzer with a response cache of the given TTL
func NewAnalyzer(provider Provider, pipeline *engine.Pipeline, cacheTTL time.Duration, logger *logrus.Logger) *Analyzer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Analyzer{
		provider: provider,
		pipeline: pipeline,
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
		logger:   logger,
		now:      time.Now,
	}
}

// Current returns the latest published snapshot, or nil before the first run
func (a *Analyzer) Current() *Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// Status proxies the provider's account and quota information
func (a *Analyzer) Status(ctx context.Context) (*apifootball.AccountStatus, error) {
	return a.provider.Status(ctx)
}

// Analyze runs one full analysis for today's fixtures and publishes the
// snapshot. Fixtures without usable odds or predictions are skipped, not
// failed; an unreachable provider or an engine contract violation fails
// the run.
func (a *Analyzer) Analyze(ctx context.Context) (*Snapshot, error) {
	start := a.now()
	today := start.UTC()

	fixtures, err := a.provider.FixturesByDate(ctx, today)
	if err != nil {
		metrics.RecordAnalysisError()
		return nil, fmt.Errorf("fetching fixtures: %w", err)
	}

	upcoming := make([]apifootball.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.IsUpcoming(start) {
			upcoming = append(upcoming, f)
		}
	}

	a.logger.WithFields(logrus.Fields{
		"date":     today.Format("2006-01-02"),
		"fixtures": len(fixtures),
		"upcoming": len(upcoming),
	}).Info("Starting analysis run")

	inputs := make([]models.MatchInput, 0, len(upcoming))
	for _, f := range upcoming {
		input, ok := a.assembleInput(ctx, f)
		if !ok {
			metrics.RecordFixtureSkipped()
			continue
		}
		metrics.RecordFixtureProcessed()
		inputs = append(inputs, input)
	}

	singles, accumulators, err := a.pipeline.ScoreAndBuild(inputs)
	if err != nil {
		metrics.RecordAnalysisError()
		return nil, fmt.Errorf("running pipeline: %w", err)
	}

	snapshot := &Snapshot{
		ID:            uuid.New(),
		Date:          today.Format("2006-01-02"),
		GeneratedAt:   a.now(),
		TotalFixtures: len(upcoming),
		Singles:       singles,
		Accumulators:  accumulators,
	}

	a.mu.Lock()
	a.current = snapshot
	a.mu.Unlock()

	metrics.RecordAnalysisRun(a.now().Sub(start).Seconds(), len(singles), len(accumulators))
	if lookups := atomic.LoadInt64(&a.cacheLookups); lookups > 0 {
		metrics.UpdateCacheHitRatio(float64(atomic.LoadInt64(&a.cacheHits)) / float64(lookups))
	}

	a.logger.WithFields(logrus.Fields{
		"snapshot_id":  snapshot.ID,
		"singles":      len(singles),
		"accumulators": len(accumulators),
		"duration":     a.now().Sub(start).String(),
	}).Info("Analysis run complete")

	return snapshot, nil
}

// Refresh reruns the analysis, logging instead of returning the error.
// Used by the scheduler where there is no caller to report to.
func (a *Analyzer) Refresh(ctx context.Context) {
	if _, err := a.Analyze(ctx); err != nil {
		a.logger.WithError(err).Error("Scheduled analysis run failed")
	}
}

// assembleInput turns one fixture into an engine input. It reports false
// when the fixture lacks target bookmaker odds or a prediction.
func (a *Analyzer) assembleInput(ctx context.Context, f apifootball.Fixture) (models.MatchInput, bool) {
	log := a.logger.WithFields(logrus.Fields{
		"fixture_id": f.Fixture.ID,
		"match":      f.Teams.Home.Name + " vs " + f.Teams.Away.Name,
	})

	entries, err := a.oddsFor(ctx, f.Fixture.ID)
	if err != nil {
		log.WithError(err).Warn("Skipping fixture, odds unavailable")
		return models.MatchInput{}, false
	}

	best, found := apifootball.BookmakerOdds(entries, a.provider.BookmakerID(), a.provider.BookmakerName())
	if !found {
		log.Debug("Skipping fixture, target bookmaker not listed")
		return models.MatchInput{}, false
	}

	pred, err := a.predictionsFor(ctx, f.Fixture.ID)
	if err != nil {
		log.WithError(err).Warn("Skipping fixture, predictions unavailable")
		return models.MatchInput{}, false
	}
	if pred == nil {
		log.Debug("Skipping fixture, no prediction published")
		return models.MatchInput{}, false
	}

	outcome, probability := bestSelection(pred.Predictions.Percent)
	odds := best.ForOutcome(outcome)
	if odds < models.MinOdds {
		log.WithField("outcome", outcome).Debug("Skipping fixture, no usable price for best outcome")
		return models.MatchInput{}, false
	}

	marketHome, marketDraw, marketAway := apifootball.MarketOdds(entries)
	var market []float64
	switch outcome {
	case models.OutcomeHome:
		market = marketHome
	case models.OutcomeDraw:
		market = marketDraw
	case models.OutcomeAway:
		market = marketAway
	}
	if len(market) == 0 {
		log.WithField("outcome", outcome).Debug("Skipping fixture, no market prices for best outcome")
		return models.MatchInput{}, false
	}

	return models.MatchInput{
		FixtureID:   f.Fixture.ID,
		HomeTeam:    f.Teams.Home.Name,
		AwayTeam:    f.Teams.Away.Name,
		League:      f.League.Name,
		KickoffTime: f.Fixture.Date,
		Outcome:     outcome,
		Selection:   selectionLabel(outcome, f),
		Probability: probability,
		Best: models.BestOdds{
			Odds:      odds,
			Bookmaker: a.provider.BookmakerName(),
		},
		BookmakerOdds: market,
		Advice:        pred.Predictions.Advice,
	}, true
}

// oddsFor fetches a fixture's odds through the response cache
func (a *Analyzer) oddsFor(ctx context.Context, fixtureID int64) ([]apifootball.BookmakerEntry, error) {
	key := fmt.Sprintf("odds:%d", fixtureID)
	atomic.AddInt64(&a.cacheLookups, 1)
	if cached, ok := a.cache.Get(key); ok {
		atomic.AddInt64(&a.cacheHits, 1)
		return cached.([]apifootball.BookmakerEntry), nil
	}

	entries, err := a.provider.OddsByFixture(ctx, fixtureID)
	if err != nil {
		return nil, err
	}
	a.cache.Set(key, entries, gocache.DefaultExpiration)
	return entries, nil
}

// predictionsFor fetches a fixture's prediction through the response cache.
// Missing predictions are cached too so a fixture is only asked about once
// per TTL.
func (a *Analyzer) predictionsFor(ctx context.Context, fixtureID int64) (*apifootball.PredictionEntry, error) {
	key := fmt.Sprintf("pred:%d", fixtureID)
	atomic.AddInt64(&a.cacheLookups, 1)
	if cached, ok := a.cache.Get(key); ok {
		atomic.AddInt64(&a.cacheHits, 1)
		return cached.(*apifootball.PredictionEntry), nil
	}

	pred, err := a.provider.PredictionsByFixture(ctx, fixtureID)
	if err != nil {
		return nil, err
	}
	a.cache.Set(key, pred, gocache.DefaultExpiration)
	return pred, nil
}

// bestSelection picks the outcome with the highest AI probability.
// Ties resolve in home, draw, away order.
func bestSelection(p apifootball.PercentTriple) (string, float64) {
	home := apifootball.ParsePercent(p.Home)
	draw := apifootball.ParsePercent(p.Draw)
	away := apifootball.ParsePercent(p.Away)

	outcome, best := models.OutcomeHome, home
	if draw > best {
		outcome, best = models.OutcomeDraw, draw
	}
	if away > best {
		outcome, best = models.OutcomeAway, away
	}
	return outcome, best
}

// selectionLabel renders the outcome as the original display string
func selectionLabel(outcome string, f apifootball.Fixture) string {
	switch outcome {
	case models.OutcomeHome:
		return f.Teams.Home.Name
	case models.OutcomeAway:
		return f.Teams.Away.Name
	default:
		return "Draw"
	}
}
