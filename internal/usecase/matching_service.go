package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/neighborfit/backend/internal/domain"
)

// Bonus caps, also added to the maximum possible score
const (
	maxDemographicBonus = 10
	maxLifestyleBonus   = 15
)

// Explanation limits
const (
	maxMatchReasons = 4
	maxConcerns     = 3
	maxChallenges   = 2
)

// Explanation thresholds
const (
	reasonMinScore   = 8
	reasonMinWeight  = 7.0
	concernMaxScore  = 5
	concernMinWeight = 8.0

	familyFriendlyReason  = 8
	familyFriendlyConcern = 5
)

// priorityThresholds lists the priorities that carry a lifestyle bonus and the
// metric each one has to clear. Other priorities score nothing.
var priorityThresholds = map[domain.Priority]struct {
	factor domain.Factor
	min    int
}{
	domain.PriorityLowCrimeRate:       {domain.FactorSafety, 8},
	domain.PriorityGoodSchools:        {domain.FactorSchools, 7},
	domain.PriorityWalkableStreets:    {domain.FactorWalkability, 8},
	domain.PriorityParksAndRecreation: {domain.FactorOutdoors, 7},
	domain.PriorityDiningOptions:      {domain.FactorDining, 7},
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Workers            int
	EnableDebugLogging bool
}

// MatchingService scores neighborhoods against a user profile
type MatchingService struct {
	workers            int
	enableDebugLogging bool
	logger             *zap.Logger
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig, logger *zap.Logger) *MatchingService {
	workers := config.Workers
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MatchingService{
		workers:            workers,
		enableDebugLogging: config.EnableDebugLogging,
		logger:             logger,
	}
}

// RankCatalog scores every neighborhood and returns the results ordered by
// score, highest first. Neighborhoods with equal scores keep their catalog
// order. Results reference the catalog entries, they are not copied.
func (s *MatchingService) RankCatalog(profile *domain.UserProfile, catalog []domain.Neighborhood) []domain.MatchResult {
	results := make([]domain.MatchResult, len(catalog))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i := range catalog {
		i := i
		g.Go(func() error {
			results[i] = s.ScoreMatch(profile, &catalog[i])
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if s.enableDebugLogging && len(results) > 0 {
		s.logger.Debug("ranked catalog",
			zap.Int("neighborhoods", len(results)),
			zap.String("top", results[0].Neighborhood.ID),
			zap.Int("topScore", results[0].Score))
	}

	return results
}

// ScoreMatch computes the match between one profile and one neighborhood.
// It never fails: missing metrics count as neutral and unknown labels simply
// earn no bonus.
func (s *MatchingService) ScoreMatch(profile *domain.UserProfile, n *domain.Neighborhood) domain.MatchResult {
	weights := ComputeWeights(profile)

	breakdown := make(domain.Breakdown, 0, domain.FactorCount)
	var totalScore, maxPossibleScore float64

	for _, f := range domain.Factors() {
		metric := n.Metrics.Get(f)
		weight := weights.Of(f)
		contribution := float64(metric) / 10 * weight

		breakdown = append(breakdown, domain.FactorScore{
			Factor:       f,
			Score:        metric,
			Weight:       weight,
			Contribution: contribution,
		})

		totalScore += contribution
		maxPossibleScore += weight
	}

	demographic := demographicBonus(profile, n)
	totalScore += float64(demographic)
	maxPossibleScore += maxDemographicBonus

	lifestyle := lifestyleBonus(profile, n)
	totalScore += float64(lifestyle)
	maxPossibleScore += maxLifestyleBonus

	score := int(math.Round(totalScore / maxPossibleScore * 100))

	if s.enableDebugLogging {
		s.logger.Debug("scored neighborhood",
			zap.String("neighborhood", n.ID),
			zap.Float64("total", totalScore),
			zap.Float64("max", maxPossibleScore),
			zap.Int("demographicBonus", demographic),
			zap.Int("lifestyleBonus", lifestyle),
			zap.Int("score", score))
	}

	return domain.MatchResult{
		Neighborhood:     n,
		Score:            score,
		Label:            domain.LabelFor(score),
		MatchReasons:     matchReasons(profile, n, breakdown),
		Concerns:         concerns(profile, n, breakdown),
		Breakdown:        breakdown,
		DemographicBonus: demographic,
		LifestyleBonus:   lifestyle,
	}
}

// demographicBonus rewards neighborhoods whose population resembles the user.
// Capped at maxDemographicBonus.
func demographicBonus(profile *domain.UserProfile, n *domain.Neighborhood) int {
	bonus := 0
	medianAge := n.Demographics.MedianAge

	switch profile.Demographics.Age {
	case domain.Age18To25:
		if medianAge < 35 {
			bonus += 2
		}
	case domain.Age26To35:
		if medianAge >= 30 && medianAge <= 40 {
			bonus += 3
		}
	case domain.Age36To45:
		if medianAge >= 35 && medianAge <= 45 {
			bonus += 3
		}
	case domain.Age55AndOver:
		if medianAge >= 45 {
			bonus += 2
		}
	}

	if lower, upper, ok := profile.Demographics.Income.Range(); ok {
		income := n.Demographics.MedianIncome
		if income >= lower*0.8 && income <= upper*1.5 {
			bonus += 3
		}
	}

	if profile.Demographics.HasFamily() {
		bonus += n.Demographics.FamilyFriendly
	}

	return min(bonus, maxDemographicBonus)
}

// lifestyleBonus rewards transport, social and priority alignment.
// Capped at maxLifestyleBonus.
func lifestyleBonus(profile *domain.UserProfile, n *domain.Neighborhood) int {
	bonus := 0
	lifestyle := profile.Lifestyle

	switch lifestyle.TransportMode {
	case domain.TransportWalkingBiking:
		if n.Metrics.Get(domain.FactorWalkability) >= 8 {
			bonus += 3
		}
	case domain.TransportPublicTransit:
		if hasTransitOption(n.TransportOptions) {
			bonus += 3
		}
	case domain.TransportCar:
		if containsExact(n.TransportOptions, "Car") {
			bonus += 2
		}
	}

	switch lifestyle.SocialPreference {
	case domain.SocialVerySocial:
		if n.Metrics.Get(domain.FactorNightlife) >= 7 {
			bonus += 2
		}
	case domain.SocialCommunityFocused:
		if n.Metrics.Get(domain.FactorCommunity) >= 8 {
			bonus += 3
		}
	case domain.SocialQuietPrivate:
		if n.Metrics.Get(domain.FactorNightlife) <= 6 {
			bonus += 2
		}
	}

	priorities := lifestyle.Priorities
	if len(priorities) > domain.MaxPriorities {
		priorities = priorities[:domain.MaxPriorities]
	}
	for _, p := range priorities {
		threshold, ok := priorityThresholds[p]
		if !ok {
			continue
		}
		if n.Metrics.Get(threshold.factor) >= threshold.min {
			bonus++
		}
	}

	return min(bonus, maxLifestyleBonus)
}

func hasTransitOption(options []string) bool {
	for _, o := range options {
		if strings.Contains(o, "Rail") || strings.Contains(o, "Bus") {
			return true
		}
	}
	return false
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// matchReasons collects positive explanations in rule order and keeps the first four
func matchReasons(profile *domain.UserProfile, n *domain.Neighborhood, breakdown domain.Breakdown) []string {
	reasons := make([]string, 0, maxMatchReasons)

	for _, fs := range breakdown {
		if fs.Score >= reasonMinScore && fs.Weight >= reasonMinWeight {
			reasons = append(reasons, fmt.Sprintf("Excellent %s score (%d/10) matches your high priority", fs.Factor.Label(), fs.Score))
		}
	}

	if profile.Lifestyle.TransportMode == domain.TransportWalkingBiking && n.Metrics.Get(domain.FactorWalkability) >= 8 {
		reasons = append(reasons, "High walkability perfect for your preferred transportation")
	}

	if profile.Demographics.HasFamily() && n.Demographics.FamilyFriendly >= familyFriendlyReason {
		reasons = append(reasons, "Family-friendly environment ideal for your household")
	}

	if len(n.Highlights) > 0 {
		reasons = append(reasons, "Notable features: "+n.Highlights[0])
	}

	if len(reasons) > maxMatchReasons {
		reasons = reasons[:maxMatchReasons]
	}
	return reasons
}

// concerns collects shortfalls in rule order and keeps the first three
func concerns(profile *domain.UserProfile, n *domain.Neighborhood, breakdown domain.Breakdown) []string {
	out := make([]string, 0, maxConcerns)

	for _, fs := range breakdown {
		if fs.Score <= concernMaxScore && fs.Weight >= concernMinWeight {
			out = append(out, fmt.Sprintf("Lower %s score (%d/10) despite high importance to you", fs.Factor.Label(), fs.Score))
		}
	}

	challenges := n.Challenges
	if len(challenges) > maxChallenges {
		challenges = challenges[:maxChallenges]
	}
	out = append(out, challenges...)

	if profile.Demographics.HasFamily() && n.Demographics.FamilyFriendly <= familyFriendlyConcern {
		out = append(out, "Limited family-friendly amenities")
	}

	if len(out) > maxConcerns {
		out = out[:maxConcerns]
	}
	return out
}
