package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

func TestActivation_StringParseRoundTrip(t *testing.T) {
	for _, act := range []Activation{Cosine, Sine, Relu, Sigmoid, Tanh} {
		parsed, err := ParseActivation(act.String())
		require.NoError(t, err)
		assert.Equal(t, act, parsed)
	}
}

func TestParseActivation_Unknown(t *testing.T) {
	_, err := ParseActivation("step")
	require.Error(t, err)

	var cfgErr *errors.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestActivation_Apply(t *testing.T) {
	tests := []struct {
		name string
		act  Activation
		x    float64
		want float64
	}{
		{name: "cos at zero", act: Cosine, x: 0, want: 1},
		{name: "cos at pi", act: Cosine, x: math.Pi, want: -1},
		{name: "sin at zero", act: Sine, x: 0, want: 0},
		{name: "relu clips negative", act: Relu, x: -2, want: 0},
		{name: "relu passes positive", act: Relu, x: 3, want: 3},
		{name: "sigmoid at zero", act: Sigmoid, x: 0, want: 0.5},
		{name: "tanh at zero", act: Tanh, x: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.act.apply(tt.x), 1e-15)
		})
	}
}
