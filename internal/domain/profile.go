package domain

import (
	"math"
	"strings"
)

// AgeBracket is the questionnaire age band
type AgeBracket string

const (
	Age18To25    AgeBracket = "18-25"
	Age26To35    AgeBracket = "26-35"
	Age36To45    AgeBracket = "36-45"
	Age46To55    AgeBracket = "46-55"
	Age55AndOver AgeBracket = "55+"
)

// IncomeBracket is the questionnaire household income band
type IncomeBracket string

const (
	IncomeUnder50k    IncomeBracket = "<50k"
	Income50kTo75k    IncomeBracket = "50k-75k"
	Income75kTo100k   IncomeBracket = "75k-100k"
	Income100kTo150k  IncomeBracket = "100k-150k"
	Income150kAndOver IncomeBracket = "150k+"
)

var incomeRanges = map[IncomeBracket][2]float64{
	IncomeUnder50k:    {0, 50000},
	Income50kTo75k:    {50000, 75000},
	Income75kTo100k:   {75000, 100000},
	Income100kTo150k:  {100000, 150000},
	Income150kAndOver: {150000, math.Inf(1)},
}

// Range returns the numeric bounds of the bracket. ok is false for labels
// outside the fixed mapping.
func (b IncomeBracket) Range() (lower, upper float64, ok bool) {
	r, ok := incomeRanges[b]
	if !ok {
		return 0, 0, false
	}
	return r[0], r[1], true
}

// WorkLocation is where the user usually works
type WorkLocation string

const (
	WorkDowntown WorkLocation = "downtown"
	WorkSuburban WorkLocation = "suburban"
	WorkRemote   WorkLocation = "remote"
	WorkHybrid   WorkLocation = "hybrid"
	WorkMultiple WorkLocation = "multiple"
)

// TransportMode is the user's preferred way of getting around
type TransportMode string

const (
	TransportCar           TransportMode = "Car"
	TransportPublicTransit TransportMode = "Public Transit"
	TransportWalkingBiking TransportMode = "Walking/Biking"
	TransportMixed         TransportMode = "Mixed"
)

// SocialPreference describes how social the user wants their surroundings
type SocialPreference string

const (
	SocialQuietPrivate     SocialPreference = "Quiet & Private"
	SocialModerate         SocialPreference = "Moderately Social"
	SocialVerySocial       SocialPreference = "Very Social"
	SocialCommunityFocused SocialPreference = "Community Focused"
)

// HousingType is the kind of home the user is looking for
type HousingType string

const (
	HousingApartmentCondo   HousingType = "Apartment/Condo"
	HousingTownhouse        HousingType = "Townhouse"
	HousingSingleFamilyHome HousingType = "Single Family Home"
	HousingAnyType          HousingType = "Any Type"
)

// Demographics are the user's demographic answers
type Demographics struct {
	Age          AgeBracket    `json:"age"`
	Income       IncomeBracket `json:"income"`
	FamilyStatus string        `json:"familyStatus"`
	WorkLocation WorkLocation  `json:"workLocation"`
}

// HasFamily reports whether the family status mentions a family
func (d Demographics) HasFamily() bool {
	return strings.Contains(d.FamilyStatus, "family")
}

// Preferences are the user's 1-10 importance ratings per factor
type Preferences struct {
	Commute      int `json:"commutePriority"`
	Walkability  int `json:"walkabilityPriority"`
	Nightlife    int `json:"nightlifePriority"`
	CostOfLiving int `json:"costOfLivingPriority"`
	Safety       int `json:"safetyPriority"`
	Schools      int `json:"schoolsPriority"`
	Dining       int `json:"diningPriority"`
	Outdoors     int `json:"outdoorsPriority"`
	Culture      int `json:"culturePriority"`
	Community    int `json:"communityPriority"`
}

// Rating returns the raw rating for a factor
func (p Preferences) Rating(f Factor) int {
	switch f {
	case FactorCommute:
		return p.Commute
	case FactorWalkability:
		return p.Walkability
	case FactorNightlife:
		return p.Nightlife
	case FactorCostOfLiving:
		return p.CostOfLiving
	case FactorSafety:
		return p.Safety
	case FactorSchools:
		return p.Schools
	case FactorDining:
		return p.Dining
	case FactorOutdoors:
		return p.Outdoors
	case FactorCulture:
		return p.Culture
	case FactorCommunity:
		return p.Community
	}
	return 0
}

// Lifestyle holds the user's lifestyle answers
type Lifestyle struct {
	TransportMode    TransportMode    `json:"transportMode"`
	SocialPreference SocialPreference `json:"socialPreference"`
	HousingType      HousingType      `json:"housingType"`
	Priorities       []Priority       `json:"priorities"`
}


// UserProfile is a completed questionnaire
type UserProfile struct {
	Demographics Demographics `json:"demographics"`
	Preferences  Preferences  `json:"preferences"`
	Lifestyle    Lifestyle    `json:"lifestyle"`
}
