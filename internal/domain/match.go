package domain

// MatchLabel is the qualitative band a score falls into
type MatchLabel string

const (
	LabelExcellent MatchLabel = "Excellent Match"
	LabelGood      MatchLabel = "Good Match"
	LabelFair      MatchLabel = "Fair Match"
	LabelPoor      MatchLabel = "Poor Match"
)

// LabelFor maps a 0-100 score to its label
func LabelFor(score int) MatchLabel {
	switch {
	case score >= 80:
		return LabelExcellent
	case score >= 70:
		return LabelGood
	case score >= 60:
		return LabelFair
	default:
		return LabelPoor
	}
}

// FactorScore is the audit record for one factor of a match
type FactorScore struct {
	Factor       Factor  `json:"factor"`
	Score        int     `json:"neighborhoodScore"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// Breakdown lists one FactorScore per factor, in factor order
type Breakdown []FactorScore

// MatchResult is the score of one neighborhood against one profile
type MatchResult struct {
	Neighborhood *Neighborhood `json:"neighborhood"`
	Score        int           `json:"score"`
	Label        MatchLabel    `json:"label"`
	MatchReasons []string      `json:"matchReasons"`
	Concerns     []string      `json:"concerns"`
	Breakdown    Breakdown     `json:"breakdown"`

	// Bonus components, kept for auditing
	DemographicBonus int `json:"demographicBonus"`
	LifestyleBonus   int `json:"lifestyleBonus"`
}
