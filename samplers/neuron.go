package samplers

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// NeuronSampler はランダムニューロン特徴量のパラメータを引くサンプラー
//
// 重みは成分ごとに w_ij ~ N(0, σw²)、バイアスは b_i ~ N(0, σb²) です。
// ReLUなどの活性化と組み合わせて1層ランダムネットワークの特徴量を
// 構成します。
type NeuronSampler struct {
	dim     int
	weights distuv.Normal
	biases  distuv.Normal
}

// NewNeuronSampler はNeuronSamplerを作成する
//
// weightStd と biasStd は標準偏差です。inputDim ≤ 0、weightStd ≤ 0、
// biasStd < 0、非有限のスケールはValueErrorになります。biasStd == 0 は
// バイアスなしの特徴量として許容されます。
func NewNeuronSampler(inputDim int, weightStd, biasStd float64, seed uint64) (*NeuronSampler, error) {
	const op = "samplers.NewNeuronSampler"
	if inputDim <= 0 {
		return nil, errors.NewValueError(op, "input dimension must be positive")
	}
	if math.IsNaN(weightStd) || math.IsInf(weightStd, 0) || weightStd <= 0 {
		return nil, errors.NewValueError(op, "weight standard deviation must be positive and finite")
	}
	if math.IsNaN(biasStd) || math.IsInf(biasStd, 0) || biasStd < 0 {
		return nil, errors.NewValueError(op, "bias standard deviation must be non-negative and finite")
	}

	src := rand.NewPCG(seed, seed)
	return &NeuronSampler{
		dim:     inputDim,
		weights: distuv.Normal{Mu: 0, Sigma: weightStd, Src: src},
		biases:  distuv.Normal{Mu: 0, Sigma: biasStd, Src: src},
	}, nil
}

// Sample は n 本分の (w, b) を引く
func (s *NeuronSampler) Sample(n int) (*FeatureSample, error) {
	if err := checkSampleCount("samplers.NeuronSampler.Sample", n); err != nil {
		return nil, err
	}
	weights := mat.NewDense(n, s.dim, nil)
	biases := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		row := weights.RawRowView(i)
		for j := range row {
			row[j] = s.weights.Rand()
		}
		if s.biases.Sigma > 0 {
			biases.SetVec(i, s.biases.Rand())
		}
	}
	return &FeatureSample{Weights: weights, Biases: biases}, nil
}

// InputDim は重みベクトルの次元を返す
func (s *NeuronSampler) InputDim() int {
	return s.dim
}
