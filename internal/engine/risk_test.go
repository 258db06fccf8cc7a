package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/betting-optimizer/internal/models"
)

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name          string
		avgConfidence float64
		legs          int
		combinedOdds  float64
		expected      models.RiskTier
	}{
		{
			name:          "Low risk double",
			avgConfidence: 86,
			legs:          2,
			combinedOdds:  3.5,
			expected:      models.RiskLow,
		},
		{
			name:          "Low boundary values",
			avgConfidence: 85,
			legs:          2,
			combinedOdds:  4.0,
			expected:      models.RiskLow,
		},
		{
			name:          "Confident double with longer odds falls to medium",
			avgConfidence: 86,
			legs:          2,
			combinedOdds:  4.5,
			expected:      models.RiskMedium,
		},
		{
			name:          "Medium double",
			avgConfidence: 81,
			legs:          2,
			combinedOdds:  5.5,
			expected:      models.RiskMedium,
		},
		{
			name:          "Medium treble",
			avgConfidence: 76,
			legs:          3,
			combinedOdds:  9.0,
			expected:      models.RiskMedium,
		},
		{
			name:          "Treble odds over the medium cap",
			avgConfidence: 82,
			legs:          3,
			combinedOdds:  10.5,
			expected:      models.RiskHighFiltered,
		},
		{
			name:          "Double below medium confidence",
			avgConfidence: 79,
			legs:          2,
			combinedOdds:  3.0,
			expected:      models.RiskHighFiltered,
		},
		{
			name:          "Treble below eligibility confidence",
			avgConfidence: 74,
			legs:          3,
			combinedOdds:  5.0,
			expected:      models.RiskHighFiltered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := ClassifyRisk(tt.avgConfidence, tt.legs, tt.combinedOdds)
			assert.Equal(t, tt.expected, tier)
		})
	}
}

// Worked example from the product documentation: 3 legs at confidences
// 82/85/78 with odds 1.65/1.50/1.75.
func TestClassifyRiskDocumentedTreble(t *testing.T) {
	combinedOdds := 1.65 * 1.50 * 1.75
	avgConfidence := (82.0 + 85.0 + 78.0) / 3.0

	assert.InDelta(t, 4.33, combinedOdds, 0.01)
	assert.InDelta(t, 81.7, avgConfidence, 0.05)

	tier := ClassifyRisk(avgConfidence, 3, combinedOdds)
	assert.Equal(t, models.RiskMedium, tier)
}
