package domain

import "fmt"

// Priority is one of the fixed lifestyle priorities a user can select
type Priority int

const (
	PriorityLowCrimeRate Priority = iota
	PriorityGoodSchools
	PriorityShortCommute
	PriorityWalkableStreets
	PriorityParksAndRecreation
	PriorityDiningOptions
	PriorityShoppingAccess
	PriorityCulturalActivities
	PriorityNightlife
	PriorityFamilyFriendly
	PriorityPetFriendly
	PriorityAffordableHousing

	// PriorityCount is the size of the priority vocabulary
	PriorityCount = int(PriorityAffordableHousing) + 1
)

// MaxPriorities is the most priorities a profile may carry
const MaxPriorities = 5

var priorityLabels = [PriorityCount]string{
	PriorityLowCrimeRate:       "Low Crime Rate",
	PriorityGoodSchools:        "Good Schools",
	PriorityShortCommute:       "Short Commute",
	PriorityWalkableStreets:    "Walkable Streets",
	PriorityParksAndRecreation: "Parks & Recreation",
	PriorityDiningOptions:      "Dining Options",
	PriorityShoppingAccess:     "Shopping Access",
	PriorityCulturalActivities: "Cultural Activities",
	PriorityNightlife:          "Nightlife",
	PriorityFamilyFriendly:     "Family Friendly",
	PriorityPetFriendly:        "Pet Friendly",
	PriorityAffordableHousing:  "Affordable Housing",
}


// Valid reports whether p belongs to the vocabulary
func (p Priority) Valid() bool {
	return p >= 0 && int(p) < PriorityCount
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("priority(%d)", int(p))
	}
	return priorityLabels[p]
}

// MarshalText implements encoding.TextMarshaler
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown priority %d", int(p))
	}
	return []byte(priorityLabels[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Priority) UnmarshalText(text []byte) error {
	parsed, ok := ParsePriority(string(text))
	if !ok {
		return fmt.Errorf("unknown priority %q", string(text))
	}
	*p = parsed
	return nil
}

// ParsePriority resolves a questionnaire label to a Priority
func ParsePriority(label string) (Priority, bool) {
	for i, l := range priorityLabels {
		if l == label {
			return Priority(i), true
		}
	}
	return 0, false
}
