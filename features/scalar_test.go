package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/samplers"
)

func newTestFourierFeature(t *testing.T, nFeatures, inputDim int, seed uint64, opts ...Option) *ScalarFeature {
	t.Helper()
	s, err := samplers.NewFourierSampler(inputDim, 1.0, seed)
	require.NoError(t, err)
	f, err := NewScalarFourierFeature(nFeatures, s, opts...)
	require.NoError(t, err)
	return f
}

func TestScalarFourierFeature_MatchesFormula(t *testing.T) {
	f := newTestFourierFeature(t, 4, 2, 1)

	inputs := mat.NewDense(2, 3, []float64{
		0.5, -1.0, 2.0,
		1.5, 0.0, -0.5,
	})
	phi, err := f.BuildFeatures(inputs)
	require.NoError(t, err)

	rows, cols := phi.Dims()
	require.Equal(t, 3, rows)
	require.Equal(t, 4, cols)

	// Φ[j,k] = √2·cos(w_k·x_j + b_k) を定義どおりに再計算して突き合わせる
	for j := 0; j < rows; j++ {
		for k := 0; k < cols; k++ {
			arg := f.sample.Biases.AtVec(k)
			for l := 0; l < 2; l++ {
				arg += f.sample.Weights.At(k, l) * inputs.At(l, j)
			}
			want := math.Sqrt2 * math.Cos(arg)
			assert.InDelta(t, want, phi.At(j, k), 1e-12)
		}
	}
}

func TestScalarFeature_Deterministic(t *testing.T) {
	// 同じシードのサンプラーからは同じ特徴量行列が得られる
	a := newTestFourierFeature(t, 8, 3, 99)
	b := newTestFourierFeature(t, 8, 3, 99)

	inputs := mat.NewDense(3, 5, []float64{
		1, 2, 3, 4, 5,
		0, 1, 0, 1, 0,
		-1, -2, -3, -4, -5,
	})
	pa, err := a.BuildFeatures(inputs)
	require.NoError(t, err)
	pb, err := b.BuildFeatures(inputs)
	require.NoError(t, err)

	assert.True(t, mat.Equal(pa, pb))
}

func TestScalarFeature_SubsetMatchesColumns(t *testing.T) {
	f := newTestFourierFeature(t, 6, 2, 7)

	inputs := mat.NewDense(2, 4, []float64{
		0.1, 0.2, 0.3, 0.4,
		-0.1, -0.2, -0.3, -0.4,
	})
	full, err := f.BuildFeatures(inputs)
	require.NoError(t, err)

	idx := []int{4, 0, 2}
	sub, err := f.BuildFeatureSubset(inputs, idx)
	require.NoError(t, err)

	rows, cols := sub.Dims()
	require.Equal(t, 4, rows)
	require.Equal(t, 3, cols)
	for j := 0; j < rows; j++ {
		for k, i := range idx {
			assert.InDelta(t, full.At(j, i), sub.At(j, k), 1e-15)
		}
	}
}

func TestScalarFeature_SubsetValidation(t *testing.T) {
	f := newTestFourierFeature(t, 3, 1, 1)
	inputs := mat.NewDense(1, 2, []float64{0, 1})

	tests := []struct {
		name string
		idx  []int
	}{
		{name: "empty index set", idx: nil},
		{name: "negative index", idx: []int{-1}},
		{name: "index past feature count", idx: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.BuildFeatureSubset(inputs, tt.idx)
			require.Error(t, err)

			var valErr *errors.ValueError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestScalarFeature_DimensionMismatch(t *testing.T) {
	f := newTestFourierFeature(t, 3, 2, 1)

	// 入力次元が1しかない
	inputs := mat.NewDense(1, 4, []float64{1, 2, 3, 4})
	_, err := f.BuildFeatures(inputs)
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 2, dimErr.Expected)
	assert.Equal(t, 1, dimErr.Got)
}

func TestScalarFeature_ScaleOption(t *testing.T) {
	base := newTestFourierFeature(t, 4, 1, 13)
	scaled := newTestFourierFeature(t, 4, 1, 13, WithScale(2.5))

	inputs := mat.NewDense(1, 3, []float64{0.3, 0.6, 0.9})
	pb, err := base.BuildFeatures(inputs)
	require.NoError(t, err)
	ps, err := scaled.BuildFeatures(inputs)
	require.NoError(t, err)

	var want mat.Dense
	want.Scale(2.5, pb)
	assert.True(t, mat.EqualApprox(&want, ps, 1e-12))
}

func TestScalarNeuronFeature_DefaultRelu(t *testing.T) {
	s, err := samplers.NewNeuronSampler(2, 1.0, 1.0, 5)
	require.NoError(t, err)
	f, err := NewScalarNeuronFeature(10, s)
	require.NoError(t, err)
	assert.Equal(t, Relu, f.Activation())

	inputs := mat.NewDense(2, 6, []float64{
		1, -1, 2, -2, 0.5, -0.5,
		-1, 1, -2, 2, -0.5, 0.5,
	})
	phi, err := f.BuildFeatures(inputs)
	require.NoError(t, err)

	rows, cols := phi.Dims()
	for j := 0; j < rows; j++ {
		for k := 0; k < cols; k++ {
			assert.GreaterOrEqual(t, phi.At(j, k), 0.0)
		}
	}
}

func TestScalarNeuronFeature_ActivationOverride(t *testing.T) {
	s, err := samplers.NewNeuronSampler(1, 1.0, 0.5, 17)
	require.NoError(t, err)
	f, err := NewScalarNeuronFeature(5, s, WithActivation(Tanh))
	require.NoError(t, err)
	assert.Equal(t, Tanh, f.Activation())

	inputs := mat.NewDense(1, 4, []float64{-3, -1, 1, 3})
	phi, err := f.BuildFeatures(inputs)
	require.NoError(t, err)

	rows, cols := phi.Dims()
	for j := 0; j < rows; j++ {
		for k := 0; k < cols; k++ {
			v := phi.At(j, k)
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestScalarFeature_ParallelPathMatchesFormula(t *testing.T) {
	// 並列化閾値を超える行数でも逐次計算と同じ値になる
	f := newTestFourierFeature(t, 2, 1, 3)

	n := parallelThreshold + 100
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = float64(i) / float64(n)
	}
	inputs := mat.NewDense(1, n, raw)

	phi, err := f.BuildFeatures(inputs)
	require.NoError(t, err)

	for _, j := range []int{0, 1, n / 2, n - 1} {
		for k := 0; k < 2; k++ {
			arg := f.sample.Weights.At(k, 0)*inputs.At(0, j) + f.sample.Biases.AtVec(k)
			want := math.Sqrt2 * math.Cos(arg)
			assert.InDelta(t, want, phi.At(j, k), 1e-12)
		}
	}
}

func TestScalarFeature_ConstructionValidation(t *testing.T) {
	s, err := samplers.NewFourierSampler(2, 1.0, 1)
	require.NoError(t, err)

	tests := []struct {
		name      string
		nFeatures int
		sampler   samplers.Sampler
		opts      []Option
	}{
		{name: "nil sampler", nFeatures: 4, sampler: nil},
		{name: "zero feature count", nFeatures: 0, sampler: s},
		{name: "negative feature count", nFeatures: -2, sampler: s},
		{name: "zero scale", nFeatures: 4, sampler: s, opts: []Option{WithScale(0)}},
		{name: "negative scale", nFeatures: 4, sampler: s, opts: []Option{WithScale(-1)}},
		{name: "NaN scale", nFeatures: 4, sampler: s, opts: []Option{WithScale(math.NaN())}},
		{name: "invalid activation", nFeatures: 4, sampler: s, opts: []Option{WithActivation(Activation(42))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScalarFourierFeature(tt.nFeatures, tt.sampler, tt.opts...)
			require.Error(t, err)

			var valErr *errors.ValueError
			assert.True(t, errors.As(err, &valErr))
		})
	}
}

func TestScalarFeature_Accessors(t *testing.T) {
	f := newTestFourierFeature(t, 12, 3, 1)

	assert.Equal(t, 12, f.FeatureCount())
	assert.Equal(t, 3, f.InputDim())
	assert.Equal(t, Cosine, f.Activation())
	assert.InDelta(t, math.Sqrt2, f.Scale(), 1e-15)
}
