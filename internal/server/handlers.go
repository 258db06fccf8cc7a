package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yourusername/betting-optimizer/internal/engine"
	"github.com/yourusername/betting-optimizer/internal/models"
	"github.com/yourusername/betting-optimizer/internal/service"
)

// predictionsResponse is the /api/predictions payload
type predictionsResponse struct {
	Success       bool                  `json:"success"`
	Date          string                `json:"date"`
	Count         int                   `json:"count"`
	TotalFixtures int                   `json:"total_fixtures"`
	Predictions   []models.ScoredSingle `json:"predictions"`
}

// accumulatorView decorates an accumulator with staking figures
type accumulatorView struct {
	models.Accumulator
	Stake           float64 `json:"stake"`
	PotentialReturn float64 `json:"potential_return"`
	PotentialProfit float64 `json:"potential_profit"`
}

// accumulatorsResponse is the /api/accumulators payload
type accumulatorsResponse struct {
	Success      bool              `json:"success"`
	Date         string            `json:"date"`
	Count        int               `json:"count"`
	Accumulators []accumulatorView `json:"accumulators"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleStatus proxies the provider account status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if !s.cfg.APIKeyConfigured {
		s.writeError(w, http.StatusBadRequest, "no API key configured")
		return
	}

	status, err := s.analyzer.Status(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Provider status check failed")
		s.writeError(w, http.StatusServiceUnavailable, "provider unreachable")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"status":  status,
	})
}

// handlePredictions serves the latest scored singles
func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	// No qualifying picks is a success, not an error
	s.writeJSON(w, http.StatusOK, predictionsResponse{
		Success:       true,
		Date:          snapshot.Date,
		Count:         len(snapshot.Singles),
		TotalFixtures: snapshot.TotalFixtures,
		Predictions:   snapshot.Singles,
	})
}

// handleAccumulators serves the latest accumulators with staking figures.
// Query params: stake (decimal, default from config), max_legs (2 or 3).
func (s *Server) handleAccumulators(w http.ResponseWriter, r *http.Request) {
	stake := s.cfg.DefaultStake
	if raw := r.URL.Query().Get("stake"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "stake must be a positive number")
			return
		}
		stake = parsed
	}

	maxLegs := engine.MaxLegs
	if raw := r.URL.Query().Get("max_legs"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < engine.MinLegs || parsed > engine.MaxLegs {
			s.writeError(w, http.StatusBadRequest, "max_legs must be 2 or 3")
			return
		}
		maxLegs = parsed
	}

	snapshot, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	// A narrower max_legs regenerates combinations from the snapshot's
	// singles; filtering the already top-N-capped list would drop pairs
	// ranked below trebles in the global ordering
	accumulators := snapshot.Accumulators
	if maxLegs < engine.MaxLegs {
		accumulators = engine.BuildAccumulators(snapshot.Singles, engine.BuilderOptions{
			MaxEligibleSingles: s.cfg.MaxEligibleSingles,
			MaxAccumulators:    s.cfg.MaxAccumulators,
			MaxLegs:            maxLegs,
		})
	}

	views := make([]accumulatorView, 0, len(accumulators))
	for _, acc := range accumulators {
		ret, profit := stakeFigures(stake, acc.CombinedOdds)
		views = append(views, accumulatorView{
			Accumulator:     acc,
			Stake:           stake,
			PotentialReturn: ret,
			PotentialProfit: profit,
		})
	}

	s.writeJSON(w, http.StatusOK, accumulatorsResponse{
		Success:      true,
		Date:         snapshot.Date,
		Count:        len(views),
		Accumulators: views,
	})
}

// handleHealth is the liveness endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"service":   "betting-optimizer",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleReady reports ready once a snapshot has been published
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.analyzer.Current() == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"reason": "no analysis snapshot yet",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// snapshot returns the current snapshot, running the analysis on demand
// when none has been published yet
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (*service.Snapshot, bool) {
	if snap := s.analyzer.Current(); snap != nil {
		return snap, true
	}

	snap, err := s.analyzer.Analyze(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("On-demand analysis failed")
		s.writeError(w, http.StatusServiceUnavailable, "analysis unavailable")
		return nil, false
	}
	return snap, true
}

// stakeFigures computes the 2 dp return and profit for a stake
func stakeFigures(stake, combinedOdds float64) (potentialReturn, potentialProfit float64) {
	stakeDec := decimal.NewFromFloat(stake)
	ret := stakeDec.Mul(decimal.NewFromFloat(combinedOdds)).Round(2)
	profit := ret.Sub(stakeDec).Round(2)
	potentialReturn, _ = ret.Float64()
	potentialProfit, _ = profit.Float64()
	return potentialReturn, potentialProfit
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, errorResponse{Success: false, Error: message})
}
