package safety_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/ssma/internal/safety"
)

func TestFrequencyRate(t *testing.T) {
	t.Run("undefined inputs", func(t *testing.T) {
		assert.Nil(t, safety.FrequencyRate(5, 0))
		assert.Nil(t, safety.FrequencyRate(5, -10))
		assert.Nil(t, safety.FrequencyRate(-1, 1000))
	})

	t.Run("zero accidents is a computed zero", func(t *testing.T) {
		r := safety.FrequencyRate(0, 1000)
		require.NotNil(t, r)
		assert.Equal(t, 0.0, *r)
	})

	t.Run("arithmetic", func(t *testing.T) {
		r := safety.FrequencyRate(2, 500000)
		require.NotNil(t, r)
		assert.Equal(t, 4.0, *r)
	})

	t.Run("unrounded", func(t *testing.T) {
		r := safety.FrequencyRate(1, 3_000_000)
		require.NotNil(t, r)
		assert.Equal(t, 1.0*1_000_000/3_000_000, *r)
	})
}

func TestSeverityRate(t *testing.T) {
	r := safety.SeverityRate(30, 500000)
	require.NotNil(t, r)
	assert.Equal(t, 60.0, *r)

	assert.Nil(t, safety.SeverityRate(30, 0))
	assert.Nil(t, safety.SeverityRate(-3, 500000))
}
