package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/core/parallel"
	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/samplers"
)

// parallelThreshold を超える行数の活性化ループは並列実行される
const parallelThreshold = 1000

// Option はScalarFeatureの構築オプション
type Option func(*scalarConfig)

type scalarConfig struct {
	scale  float64
	act    Activation
	actSet bool
}

// WithScale は係数スケール σc を設定する（既定は 1）
// フーリエ特徴量では σc に √2 が掛け合わされて保持されます
func WithScale(scale float64) Option {
	return func(c *scalarConfig) { c.scale = scale }
}

// WithActivation は活性化関数を既定から変更する
func WithActivation(act Activation) Option {
	return func(c *scalarConfig) {
		c.act = act
		c.actSet = true
	}
}

// ScalarFeature はスカラー出力のランダム特徴量写像
//
// サンプラーから引いた n_features 本の (w, b) を保持し、
// Φ[j,k] = scale·act(w_k·x_j + b_k) を評価します。保持する標本は
// 構築時に固定され、以後の評価は決定的です。
type ScalarFeature struct {
	sample *samplers.FeatureSample
	act    Activation
	scale  float64 // 活性化後に掛ける係数（フーリエは √2 折り込み済み）
}

// NewScalarFourierFeature はランダムフーリエ特徴量を作成する
//
// 既定の活性化はCosineで、保持されるスケールは √2·σc です。これにより
// FourierSamplerと組み合わせたとき ΦΦᵀ/n_features がRBFカーネルの
// モンテカルロ近似になります。
func NewScalarFourierFeature(nFeatures int, s samplers.Sampler, opts ...Option) (*ScalarFeature, error) {
	return newScalarFeature("features.NewScalarFourierFeature", nFeatures, s, Cosine, math.Sqrt2, opts)
}

// NewScalarNeuronFeature はランダムニューロン特徴量を作成する
// 既定の活性化はReluです
func NewScalarNeuronFeature(nFeatures int, s samplers.Sampler, opts ...Option) (*ScalarFeature, error) {
	return newScalarFeature("features.NewScalarNeuronFeature", nFeatures, s, Relu, 1, opts)
}

func newScalarFeature(op string, nFeatures int, s samplers.Sampler, defaultAct Activation, scaleFactor float64, opts []Option) (*ScalarFeature, error) {
	if s == nil {
		return nil, errors.NewValueError(op, "sampler must not be nil")
	}
	if nFeatures <= 0 {
		return nil, errors.NewValueError(op, "feature count must be positive")
	}

	cfg := scalarConfig{scale: 1, act: defaultAct}
	for _, opt := range opts {
		opt(&cfg)
	}
	if math.IsNaN(cfg.scale) || math.IsInf(cfg.scale, 0) || cfg.scale <= 0 {
		return nil, errors.NewValueError(op, "scale must be positive and finite")
	}
	if !cfg.act.valid() {
		return nil, errors.NewValueError(op, "unknown activation")
	}

	sample, err := s.Sample(nFeatures)
	if err != nil {
		return nil, err
	}
	return &ScalarFeature{
		sample: sample,
		act:    cfg.act,
		scale:  scaleFactor * cfg.scale,
	}, nil
}

// BuildFeatures は入力バッチ（d × n_batch、列がサンプル）から
// 特徴量行列 Φ（n_batch × n_features）を構築する
func (f *ScalarFeature) BuildFeatures(inputs mat.Matrix) (*mat.Dense, error) {
	const op = "features.ScalarFeature.BuildFeatures"
	if err := f.checkInputs(op, inputs); err != nil {
		return nil, err
	}

	var proj mat.Dense
	proj.Mul(inputs.T(), f.sample.Weights.T())
	f.activate(&proj, f.sample.Biases)
	return &proj, nil
}

// BuildFeatureSubset は特徴量インデックス idx に対応する列だけを構築する
// （n_batch × len(idx)）
//
// 特徴量軸のバッチ処理で全列を実体化せずに済ませるために使います。
// idx が空、または範囲外のインデックスはValueErrorになります。
func (f *ScalarFeature) BuildFeatureSubset(inputs mat.Matrix, idx []int) (*mat.Dense, error) {
	const op = "features.ScalarFeature.BuildFeatureSubset"
	if err := f.checkInputs(op, inputs); err != nil {
		return nil, err
	}
	if len(idx) == 0 {
		return nil, errors.NewValueError(op, "feature index set must not be empty")
	}
	n := f.FeatureCount()
	for _, i := range idx {
		if i < 0 || i >= n {
			return nil, errors.NewValueError(op,
				fmt.Sprintf("feature index %d out of range [0, %d)", i, n))
		}
	}

	d := f.InputDim()
	weights := mat.NewDense(len(idx), d, nil)
	biases := mat.NewVecDense(len(idx), nil)
	for k, i := range idx {
		copy(weights.RawRowView(k), f.sample.Weights.RawRowView(i))
		biases.SetVec(k, f.sample.Biases.AtVec(i))
	}

	var proj mat.Dense
	proj.Mul(inputs.T(), weights.T())
	f.activate(&proj, biases)
	return &proj, nil
}

// activate はバイアス加算と活性化を要素ごとに適用する
// 行数が閾値を超える場合は行方向に並列化される
func (f *ScalarFeature) activate(proj *mat.Dense, biases *mat.VecDense) {
	rows, _ := proj.Dims()
	b := biases.RawVector().Data
	parallel.ParallelizeWithThreshold(rows, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			row := proj.RawRowView(i)
			floats.Add(row, b)
			for j := range row {
				row[j] = f.act.apply(row[j])
			}
			floats.Scale(f.scale, row)
		}
	})
}

func (f *ScalarFeature) checkInputs(op string, inputs mat.Matrix) error {
	if inputs == nil {
		return errors.NewValueError(op, "inputs must not be nil")
	}
	d, n := inputs.Dims()
	if d == 0 || n == 0 {
		return errors.Wrap(errors.ErrEmptyData, op)
	}
	if d != f.InputDim() {
		return errors.NewDimensionError(op, f.InputDim(), d, 1)
	}
	return nil
}

// FeatureCount は特徴量の本数 n_features を返す
func (f *ScalarFeature) FeatureCount() int {
	return f.sample.Len()
}

// InputDim は入力の次元 d を返す
func (f *ScalarFeature) InputDim() int {
	return f.sample.Dim()
}

// Activation は活性化関数を返す
func (f *ScalarFeature) Activation() Activation {
	return f.act
}

// Scale は保持しているスケール（フーリエは √2·σc）を返す
func (f *ScalarFeature) Scale() float64 {
	return f.scale
}
