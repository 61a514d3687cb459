package domain

import "fmt"

// Factor is one of the ten lifestyle dimensions a neighborhood is scored on
type Factor int

// Factors in declaration order. Explanations and breakdowns follow this order.
const (
	FactorCommute Factor = iota
	FactorWalkability
	FactorNightlife
	FactorCostOfLiving
	FactorSafety
	FactorSchools
	FactorDining
	FactorOutdoors
	FactorCulture
	FactorCommunity

	// FactorCount is the number of scoring factors
	FactorCount = int(FactorCommunity) + 1
)

var factorKeys = [FactorCount]string{
	FactorCommute:      "commute",
	FactorWalkability:  "walkability",
	FactorNightlife:    "nightlife",
	FactorCostOfLiving: "costOfLiving",
	FactorSafety:       "safety",
	FactorSchools:      "schools",
	FactorDining:       "dining",
	FactorOutdoors:     "outdoors",
	FactorCulture:      "culture",
	FactorCommunity:    "community",
}

var factorLabels = [FactorCount]string{
	FactorCommute:      "commute",
	FactorWalkability:  "walkability",
	FactorNightlife:    "nightlife",
	FactorCostOfLiving: "cost of living",
	FactorSafety:       "safety",
	FactorSchools:      "schools",
	FactorDining:       "dining",
	FactorOutdoors:     "outdoors",
	FactorCulture:      "culture",
	FactorCommunity:    "community",
}

// Factors returns all factors in declaration order
func Factors() []Factor {
	out := make([]Factor, FactorCount)
	for i := range out {
		out[i] = Factor(i)
	}
	return out
}

// Valid reports whether f is one of the declared factors
func (f Factor) Valid() bool {
	return f >= 0 && int(f) < FactorCount
}

// Key returns the wire name used in catalog documents and API payloads
func (f Factor) Key() string {
	if !f.Valid() {
		return fmt.Sprintf("factor(%d)", int(f))
	}
	return factorKeys[f]
}

// Label returns the lower-case human name used in explanations
func (f Factor) Label() string {
	if !f.Valid() {
		return f.Key()
	}
	return factorLabels[f]
}

func (f Factor) String() string {
	return f.Key()
}

// MarshalText implements encoding.TextMarshaler
func (f Factor) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("unknown factor %d", int(f))
	}
	return []byte(factorKeys[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Factor) UnmarshalText(text []byte) error {
	parsed, ok := ParseFactor(string(text))
	if !ok {
		return fmt.Errorf("unknown factor %q", string(text))
	}
	*f = parsed
	return nil
}

// ParseFactor resolves a wire key to a Factor
func ParseFactor(key string) (Factor, bool) {
	for i, k := range factorKeys {
		if k == key {
			return Factor(i), true
		}
	}
	return 0, false
}
