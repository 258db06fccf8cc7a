package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/betting-optimizer/internal/apifootball"
	"github.com/yourusername/betting-optimizer/internal/models"
	"github.com/yourusername/betting-optimizer/internal/service"
)

type fakeAnalyzer struct {
	snapshot      *service.Snapshot
	analyzeResult *service.Snapshot
	analyzeErr    error
	status        *apifootball.AccountStatus
	statusErr     error
	analyzed      int
}

func (f *fakeAnalyzer) Current() *service.Snapshot { return f.snapshot }

func (f *fakeAnalyzer) Analyze(ctx context.Context) (*service.Snapshot, error) {
	f.analyzed++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.analyzeResult, nil
}

func (f *fakeAnalyzer) Status(ctx context.Context) (*apifootball.AccountStatus, error) {
	return f.status, f.statusErr
}

func sampleSnapshot() *service.Snapshot {
	single := models.ScoredSingle{
		FixtureID:  101,
		HomeTeam:   "Arsenal",
		AwayTeam:   "Fulham",
		Outcome:    "home",
		Selection:  "Arsenal",
		Odds:       1.80,
		Confidence: 88,
	}
	other := single
	other.FixtureID = 102
	other.HomeTeam = "Leeds"
	other.AwayTeam = "Brentford"
	other.Selection = "Leeds"
	other.Odds = 1.50
	third := single
	third.FixtureID = 103
	third.HomeTeam = "Spurs"
	third.AwayTeam = "Everton"
	third.Selection = "Spurs"
	third.Odds = 1.60

	return &service.Snapshot{
		ID:            uuid.New(),
		Date:          "2026-08-23",
		GeneratedAt:   time.Now(),
		TotalFixtures: 5,
		Singles:       []models.ScoredSingle{single, other, third},
		Accumulators: []models.Accumulator{
			{
				Legs:            []models.ScoredSingle{single, other},
				CombinedOdds:    2.70,
				AvgConfidence:   88,
				RealisticWinPct: 77.44,
				Risk:            models.RiskLow,
			},
			{
				Legs:            []models.ScoredSingle{single, other, third},
				CombinedOdds:    4.32,
				AvgConfidence:   88,
				RealisticWinPct: 68.15,
				Risk:            models.RiskMedium,
			},
		},
	}
}

func newTestServer(analyzer AnalyzerAPI, apiKeyConfigured bool) *Server {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewServer(Config{
		Port:             8080,
		DefaultStake:     10.0,
		APIKeyConfigured: apiKeyConfigured,
	}, analyzer, logger)
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPredictionsEndpoint(t *testing.T) {
	analyzer := &fakeAnalyzer{snapshot: sampleSnapshot()}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/predictions")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp predictionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "2026-08-23", resp.Date)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 5, resp.TotalFixtures)
	assert.Equal(t, "Arsenal", resp.Predictions[0].Selection)
	assert.Zero(t, analyzer.analyzed, "published snapshot is served without a new run")
}

func TestPredictionsEmptySetIsSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{snapshot: &service.Snapshot{Date: "2026-08-23"}}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/predictions")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp predictionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Zero(t, resp.Count)
}

func TestPredictionsRunsOnDemand(t *testing.T) {
	analyzer := &fakeAnalyzer{analyzeResult: sampleSnapshot()}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/predictions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, analyzer.analyzed)

	var resp predictionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
}

func TestPredictionsAnalysisFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{analyzeErr: errors.New("provider down")}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/predictions")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestAccumulatorsStakeFigures(t *testing.T) {
	analyzer := &fakeAnalyzer{snapshot: sampleSnapshot()}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/accumulators?stake=25")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp accumulatorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)

	double := resp.Accumulators[0]
	assert.InDelta(t, 25.0, double.Stake, 1e-9)
	assert.InDelta(t, 67.5, double.PotentialReturn, 1e-9)
	assert.InDelta(t, 42.5, double.PotentialProfit, 1e-9)
}

func TestAccumulatorsDefaultStake(t *testing.T) {
	analyzer := &fakeAnalyzer{snapshot: sampleSnapshot()}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/accumulators")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp accumulatorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 10.0, resp.Accumulators[0].Stake, 1e-9)
	assert.InDelta(t, 27.0, resp.Accumulators[0].PotentialReturn, 1e-9)
}

func TestAccumulatorsMaxLegsRegeneratesCombinations(t *testing.T) {
	// The published snapshot carries only a treble, as if every pair was
	// ranked below the global top-N cap. Narrowing max_legs must not
	// filter that list down to nothing; the pairs are rebuilt from the
	// snapshot's singles.
	snapshot := sampleSnapshot()
	snapshot.Accumulators = snapshot.Accumulators[1:]
	require.Len(t, snapshot.Accumulators, 1)
	require.Equal(t, 3, snapshot.Accumulators[0].LegCount())

	analyzer := &fakeAnalyzer{snapshot: snapshot}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/accumulators?max_legs=2")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp accumulatorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Three eligible singles yield three pairs
	require.Equal(t, 3, resp.Count)
	for _, acc := range resp.Accumulators {
		assert.Len(t, acc.Legs, 2)
	}
}

func TestAccumulatorsDefaultLegsServeSnapshot(t *testing.T) {
	analyzer := &fakeAnalyzer{snapshot: sampleSnapshot()}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/accumulators?max_legs=3")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp accumulatorsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count, "without narrowing, the published list is served as is")
}

func TestAccumulatorsBadParams(t *testing.T) {
	analyzer := &fakeAnalyzer{snapshot: sampleSnapshot()}
	srv := newTestServer(analyzer, true)

	for _, path := range []string{
		"/api/accumulators?stake=-5",
		"/api/accumulators?stake=abc",
		"/api/accumulators?max_legs=1",
		"/api/accumulators?max_legs=4",
		"/api/accumulators?max_legs=two",
	} {
		rec := doRequest(t, srv, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestStatusEndpoint(t *testing.T) {
	analyzer := &fakeAnalyzer{status: &apifootball.AccountStatus{
		Subscription: apifootball.Subscription{Plan: "Pro", Active: true},
		Requests:     apifootball.RequestQuota{Current: 42, LimitDay: 7500},
	}}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Pro"`)
}

func TestStatusWithoutAPIKey(t *testing.T) {
	srv := newTestServer(&fakeAnalyzer{}, false)
	rec := doRequest(t, srv, "/api/status")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusProviderDown(t *testing.T) {
	analyzer := &fakeAnalyzer{statusErr: errors.New("timeout")}
	srv := newTestServer(analyzer, true)

	rec := doRequest(t, srv, "/api/status")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndReady(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	srv := newTestServer(analyzer, true)

	assert.Equal(t, http.StatusOK, doRequest(t, srv, "/health").Code)
	assert.Equal(t, http.StatusOK, doRequest(t, srv, "/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(t, srv, "/ready").Code)

	analyzer.snapshot = sampleSnapshot()
	assert.Equal(t, http.StatusOK, doRequest(t, srv, "/ready").Code)
}
