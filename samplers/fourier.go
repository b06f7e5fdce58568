package samplers

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// FourierSampler はランダムフーリエ特徴量のパラメータを引くサンプラー
//
// 重みは w ~ N(0, Σ)、バイアスは b ~ U(0, 2π) です。長さスケール ℓ の
// 等方ガウスカーネルに対応させる場合は Σ = ℓ⁻²·I を使います
// （NewFourierSampler）。相関のある共分散は NewFourierSamplerCov で
// 直接指定できます。
type FourierSampler struct {
	dim     int
	weights *distmv.Normal
	biases  distuv.Uniform
}

// NewFourierSampler は等方共分散 Σ = ℓ⁻²·I のFourierSamplerを作成する
//
// inputDim ≤ 0、lengthscale ≤ 0、非有限のlengthscaleはValueErrorに
// なります。同じシードからは常に同じ重み列が得られます。
func NewFourierSampler(inputDim int, lengthscale float64, seed uint64) (*FourierSampler, error) {
	const op = "samplers.NewFourierSampler"
	if inputDim <= 0 {
		return nil, errors.NewValueError(op, "input dimension must be positive")
	}
	if math.IsNaN(lengthscale) || math.IsInf(lengthscale, 0) || lengthscale <= 0 {
		return nil, errors.NewValueError(op, "lengthscale must be positive and finite")
	}

	sigma := mat.NewSymDense(inputDim, nil)
	prec := 1 / (lengthscale * lengthscale)
	for i := 0; i < inputDim; i++ {
		sigma.SetSym(i, i, prec)
	}
	return newFourierSampler(op, sigma, seed)
}

// NewFourierSamplerCov は完全な共分散行列 Σ を指定してFourierSamplerを
// 作成する
//
// Σ は正定値でなければなりません。正定値でない場合はNumericalErrorに
// なります。
func NewFourierSamplerCov(sigma mat.Symmetric, seed uint64) (*FourierSampler, error) {
	const op = "samplers.NewFourierSamplerCov"
	if sigma == nil {
		return nil, errors.NewValueError(op, "covariance must not be nil")
	}
	if sigma.SymmetricDim() == 0 {
		return nil, errors.NewValueError(op, "covariance must be non-empty")
	}
	stored := mat.NewSymDense(sigma.SymmetricDim(), nil)
	stored.CopySym(sigma)
	return newFourierSampler(op, stored, seed)
}

func newFourierSampler(op string, sigma *mat.SymDense, seed uint64) (*FourierSampler, error) {
	dim := sigma.SymmetricDim()
	src := rand.NewPCG(seed, seed)

	normal, ok := distmv.NewNormal(make([]float64, dim), sigma, src)
	if !ok {
		return nil, errors.NewNumericalError(op,
			"weight covariance is not positive definite", errors.ErrSingularMatrix)
	}
	return &FourierSampler{
		dim:     dim,
		weights: normal,
		biases:  distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src},
	}, nil
}

// Sample は n 本分の (w, b) を引く
func (s *FourierSampler) Sample(n int) (*FeatureSample, error) {
	if err := checkSampleCount("samplers.FourierSampler.Sample", n); err != nil {
		return nil, err
	}
	weights := mat.NewDense(n, s.dim, nil)
	biases := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		s.weights.Rand(weights.RawRowView(i))
		biases.SetVec(i, s.biases.Rand())
	}
	return &FeatureSample{Weights: weights, Biases: biases}, nil
}

// InputDim は重みベクトルの次元を返す
func (s *FourierSampler) InputDim() int {
	return s.dim
}
