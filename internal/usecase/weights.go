package usecase

import "github.com/neighborfit/backend/internal/domain"

// Weights holds the computed importance of each factor, indexed by domain.Factor
type Weights [domain.FactorCount]float64

// Of returns the weight of f
func (w Weights) Of(f domain.Factor) float64 {
	return w[f]
}

// Demographic weight multipliers
const (
	familySchoolsBoost   = 1.5
	familySafetyBoost    = 1.3
	familyCommunityBoost = 1.2
	familyNightlifeCut   = 0.7

	youngNightlifeBoost    = 1.3
	youngCultureBoost      = 1.2
	youngCostOfLivingBoost = 1.4

	seniorSafetyBoost      = 1.3
	seniorCommunityBoost   = 1.2
	seniorWalkabilityBoost = 1.2
	seniorNightlifeCut     = 0.6
)

// ComputeWeights derives per-factor weights from the raw ratings and the
// user's demographics. Adjustments compound multiplicatively and are applied
// in a fixed order: family, then 18-25, then 55+.
//
// Weights are deliberately left unclamped, so a boosted factor can outweigh a
// 10/10 rating on an unmodified one.
func ComputeWeights(profile *domain.UserProfile) Weights {
	var w Weights
	for _, f := range domain.Factors() {
		w[f] = float64(profile.Preferences.Rating(f))
	}

	if profile.Demographics.HasFamily() {
		w[domain.FactorSchools] *= familySchoolsBoost
		w[domain.FactorSafety] *= familySafetyBoost
		w[domain.FactorCommunity] *= familyCommunityBoost
		w[domain.FactorNightlife] *= familyNightlifeCut
	}

	if profile.Demographics.Age == domain.Age18To25 {
		w[domain.FactorNightlife] *= youngNightlifeBoost
		w[domain.FactorCulture] *= youngCultureBoost
		w[domain.FactorCostOfLiving] *= youngCostOfLivingBoost
	}

	if profile.Demographics.Age == domain.Age55AndOver {
		w[domain.FactorSafety] *= seniorSafetyBoost
		w[domain.FactorCommunity] *= seniorCommunityBoost
		w[domain.FactorWalkability] *= seniorWalkabilityBoost
		w[domain.FactorNightlife] *= seniorNightlifeCut
	}

	return w
}
