// Package types provides type definitions for score results and share card
// requests exchanged with the FitRate backend.
package types

import "github.com/fitrate/fitrate/internal/modes"

// ScoreResult is a single outfit rating as delivered by the backend.
// Percentile and the three sub-metrics arrive pre-computed and are treated
// as opaque values; nil means the backend omitted them.
type ScoreResult struct {
	Overall int        `json:"overall" validate:"gte=0,lte=100"`
	Verdict string     `json:"verdict" validate:"required"`
	Tagline string     `json:"tagline"`
	Mode    modes.Mode `json:"mode" validate:"required"`

	// Mode-specific extras.
	CelebrityJudge   string `json:"celebrityJudge,omitempty"`
	VibeAssessment   string `json:"vibeAssessment,omitempty"`
	ChaosLevel       *int   `json:"chaosLevel,omitempty"`
	AbsurdComparison string `json:"absurdComparison,omitempty"`

	Percentile *int `json:"percentile,omitempty" validate:"omitempty,gte=0,lte=100"`

	// Sub-metric scores rendered as proportional bars.
	ColorEnergy *int `json:"colorEnergy,omitempty" validate:"omitempty,gte=0,lte=100"`
	RiskTaken   *int `json:"riskTaken,omitempty" validate:"omitempty,gte=0,lte=100"`
	Intent      *int `json:"intent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// Metrics returns the Style/Risk/Intent bar values, deriving them as fixed
// fractions of the overall score when the backend omitted explicit values.
func (s *ScoreResult) Metrics() (style, risk, intent int) {
	style = s.Overall
	risk = s.Overall * 85 / 100
	intent = s.Overall * 92 / 100
	if s.ColorEnergy != nil {
		style = *s.ColorEnergy
	}
	if s.RiskTaken != nil {
		risk = *s.RiskTaken
	}
	if s.Intent != nil {
		intent = *s.Intent
	}
	return style, risk, intent
}

// PercentileOrDefault returns the backend percentile, or a score-derived
// stand-in when the backend omitted one.
func (s *ScoreResult) PercentileOrDefault() int {
	if s.Percentile != nil {
		return *s.Percentile
	}
	if s.Overall >= 50 {
		return s.Overall
	}
	return 100 - s.Overall
}
