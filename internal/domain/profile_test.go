package domain

import (
	"math"
	"testing"
)

func TestIncomeBracket_Range(t *testing.T) {
	tests := []struct {
		bracket IncomeBracket
		lower   float64
		upper   float64
		ok      bool
	}{
		{IncomeUnder50k, 0, 50000, true},
		{Income50kTo75k, 50000, 75000, true},
		{Income75kTo100k, 75000, 100000, true},
		{Income100kTo150k, 100000, 150000, true},
		{Income150kAndOver, 150000, math.Inf(1), true},
		{"₹500k-₹750k", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.bracket), func(t *testing.T) {
			lower, upper, ok := tt.bracket.Range()
			if ok != tt.ok || lower != tt.lower || upper != tt.upper {
				t.Errorf("Range() = (%v, %v, %v), want (%v, %v, %v)", lower, upper, ok, tt.lower, tt.upper, tt.ok)
			}
		})
	}
}

func TestDemographics_HasFamily(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"young-family", true},
		{"established-family", true},
		{"single", false},
		{"couple", false},
		{"empty-nesters", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := (Demographics{FamilyStatus: tt.status}).HasFamily(); got != tt.want {
				t.Errorf("HasFamily() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreferences_Rating(t *testing.T) {
	p := Preferences{
		Commute: 1, Walkability: 2, Nightlife: 3, CostOfLiving: 4, Safety: 5,
		Schools: 6, Dining: 7, Outdoors: 8, Culture: 9, Community: 10,
	}
	for i, f := range Factors() {
		if got := p.Rating(f); got != i+1 {
			t.Errorf("Rating(%s) = %d, want %d", f, got, i+1)
		}
	}
	if got := p.Rating(Factor(99)); got != 0 {
		t.Errorf("Rating(invalid) = %d, want 0", got)
	}
}
