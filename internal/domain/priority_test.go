package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriority_RoundTrip(t *testing.T) {
	for i := 0; i < PriorityCount; i++ {
		p := Priority(i)
		parsed, ok := ParsePriority(p.String())
		assert.True(t, ok, p.String())
		assert.Equal(t, p, parsed)
	}
}

func TestPriority_JSON(t *testing.T) {
	t.Run("decodes questionnaire labels", func(t *testing.T) {
		var got []Priority
		require.NoError(t, json.Unmarshal([]byte(`["Parks & Recreation","Low Crime Rate"]`), &got))
		assert.Equal(t, []Priority{PriorityParksAndRecreation, PriorityLowCrimeRate}, got)
	})

	t.Run("rejects unknown labels", func(t *testing.T) {
		var got []Priority
		assert.Error(t, json.Unmarshal([]byte(`["Beach Access"]`), &got))
	})

	t.Run("encodes labels", func(t *testing.T) {
		b, err := json.Marshal([]Priority{PriorityGoodSchools})
		require.NoError(t, err)
		assert.JSONEq(t, `["Good Schools"]`, string(b))
	})

	t.Run("invalid value", func(t *testing.T) {
		assert.False(t, Priority(99).Valid())
		assert.Equal(t, "priority(99)", Priority(99).String())
	})
}
