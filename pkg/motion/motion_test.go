package motion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlsorensen/blemotion/pkg/frames/accel"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		sample accel.Sample
		want   Label
	}{
		{"all zero", accel.Sample{X: 0, Y: 0, Z: 0}, Stationary},
		{"spread above threshold", accel.Sample{X: 10, Y: -10, Z: 0}, Moving},
		{"small dispersion", accel.Sample{X: 5, Y: 5, Z: 6}, Stationary},
		{"exactly at threshold", accel.Sample{X: 5, Y: 5, Z: -10}, Stationary},
		{"extremes", accel.Sample{X: 32767, Y: -32768, Z: 0}, Moving},
		{"large but equal", accel.Sample{X: 1000, Y: 1000, Z: 1000}, Stationary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sample))
		})
	}
}

func TestVariance(t *testing.T) {
	v, ok := Variance([]float64{10, -10, 0})
	require.True(t, ok)
	assert.InDelta(t, 200.0/3.0, v, 1e-9)

	v, ok = Variance([]float64{5, 5, 6})
	require.True(t, ok)
	assert.InDelta(t, 2.0/9.0, v, 1e-9)

	v, ok = Variance([]float64{5, 5, -10})
	require.True(t, ok)
	assert.Equal(t, 50.0, v)
}

func TestClassifyValuesError(t *testing.T) {
	assert.Equal(t, Error, ClassifyValues(nil))
	assert.Equal(t, Error, ClassifyValues([]float64{}))
	assert.Equal(t, Error, ClassifyValues([]float64{1, math.NaN(), 2}))
	assert.Equal(t, Error, ClassifyValues([]float64{math.Inf(1), 0, 0}))
}

func TestLabelString(t *testing.T) {
	assert.Equal(t, "Stationary", Stationary.String())
	assert.Equal(t, "Moving", Moving.String())
	assert.Equal(t, "Error", Error.String())
	assert.Equal(t, "Unknown Label (9)", Label(9).String())
}
