package usecase

import (
	"math"
	"testing"

	"github.com/neighborfit/backend/internal/domain"
)

func uniformProfile(rating int) *domain.UserProfile {
	return &domain.UserProfile{
		Demographics: domain.Demographics{
			Age:          domain.Age26To35,
			Income:       domain.Income75kTo100k,
			FamilyStatus: "single",
			WorkLocation: domain.WorkHybrid,
		},
		Preferences: domain.Preferences{
			Commute:      rating,
			Walkability:  rating,
			Nightlife:    rating,
			CostOfLiving: rating,
			Safety:       rating,
			Schools:      rating,
			Dining:       rating,
			Outdoors:     rating,
			Culture:      rating,
			Community:    rating,
		},
		Lifestyle: domain.Lifestyle{
			TransportMode:    domain.TransportMixed,
			SocialPreference: domain.SocialModerate,
			HousingType:      domain.HousingAnyType,
		},
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeWeights(t *testing.T) {
	tests := []struct {
		name         string
		age          domain.AgeBracket
		familyStatus string
		want         map[domain.Factor]float64
	}{
		{
			name:         "no adjustments",
			age:          domain.Age26To35,
			familyStatus: "single",
			want:         map[domain.Factor]float64{},
		},
		{
			name:         "family boosts schools safety community and cuts nightlife",
			age:          domain.Age36To45,
			familyStatus: "young-family",
			want: map[domain.Factor]float64{
				domain.FactorSchools:   7.5,
				domain.FactorSafety:    6.5,
				domain.FactorCommunity: 6,
				domain.FactorNightlife: 3.5,
			},
		},
		{
			name:         "18-25 boosts nightlife culture and cost of living",
			age:          domain.Age18To25,
			familyStatus: "single",
			want: map[domain.Factor]float64{
				domain.FactorNightlife:    6.5,
				domain.FactorCulture:      6,
				domain.FactorCostOfLiving: 7,
			},
		},
		{
			name:         "55+ adjustments",
			age:          domain.Age55AndOver,
			familyStatus: "empty-nesters",
			want: map[domain.Factor]float64{
				domain.FactorSafety:      6.5,
				domain.FactorCommunity:   6,
				domain.FactorWalkability: 6,
				domain.FactorNightlife:   3,
			},
		},
		{
			name:         "family and 18-25 compound on nightlife",
			age:          domain.Age18To25,
			familyStatus: "young-family",
			want: map[domain.Factor]float64{
				domain.FactorSchools:      7.5,
				domain.FactorSafety:       6.5,
				domain.FactorCommunity:    6,
				domain.FactorNightlife:    5 * 0.7 * 1.3,
				domain.FactorCulture:      6,
				domain.FactorCostOfLiving: 7,
			},
		},
		{
			name:         "family and 55+ compound on safety",
			age:          domain.Age55AndOver,
			familyStatus: "established-family",
			want: map[domain.Factor]float64{
				domain.FactorSchools:     7.5,
				domain.FactorSafety:      5 * 1.3 * 1.3,
				domain.FactorCommunity:   5 * 1.2 * 1.2,
				domain.FactorWalkability: 6,
				domain.FactorNightlife:   5 * 0.7 * 0.6,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := uniformProfile(5)
			profile.Demographics.Age = tt.age
			profile.Demographics.FamilyStatus = tt.familyStatus

			w := ComputeWeights(profile)
			for _, f := range domain.Factors() {
				want, ok := tt.want[f]
				if !ok {
					want = 5
				}
				if !approxEqual(w.Of(f), want) {
					t.Errorf("weight[%s] = %v, want %v", f, w.Of(f), want)
				}
			}
		})
	}
}

func TestComputeWeights_NotClamped(t *testing.T) {
	profile := uniformProfile(10)
	profile.Demographics.FamilyStatus = "young-family"

	w := ComputeWeights(profile)
	if w.Of(domain.FactorSchools) != 15 {
		t.Errorf("schools weight = %v, want 15", w.Of(domain.FactorSchools))
	}
}

func TestComputeWeights_ZeroRating(t *testing.T) {
	profile := uniformProfile(5)
	profile.Preferences.Dining = 0

	w := ComputeWeights(profile)
	if w.Of(domain.FactorDining) != 0 {
		t.Errorf("dining weight = %v, want 0", w.Of(domain.FactorDining))
	}
}
