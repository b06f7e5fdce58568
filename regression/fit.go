package regression

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/data"
	"github.com/tsj5/randomfeatures/linalg"
	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/pkg/log"
)

// Fit は学習結果
//
// featureFactors は正規方程式行列 ΦᵀΦ/n_features + λI の分解
// （λ == 0 のときは正則化なしの ΦᵀΦ/n_features の擬似逆分解）、
// coeffs は係数ベクトル β です。構築後は不変で、同じ
// RandomFeatureMethodの予測呼び出しで再利用します。
type Fit struct {
	featureFactors linalg.Decomposition
	coeffs         *mat.VecDense
}

// FeatureFactors は正規方程式行列の分解を返す
func (f *Fit) FeatureFactors() linalg.Decomposition {
	return f.featureFactors
}

// Coeffs は係数ベクトルを返す
// 返り値を変更してはいけません
func (f *Fit) Coeffs() *mat.VecDense {
	return f.coeffs
}

// FitOption はFitの実行オプション
type FitOption func(*fitConfig) error

type fitConfig struct {
	method linalg.Method
}

// WithDecomposition は正規方程式の分解方法を指定する（既定はSVD）
// 正則化係数が0のメソッドではこの指定は無視され、擬似逆行列が使われます
func WithDecomposition(method linalg.Method) FitOption {
	return func(c *fitConfig) error {
		c.method = method
		return nil
	}
}

// Fit は正規方程式を閉形式で解いて学習する
//
// ΦᵀΦ と ΦᵀY を学習バッチごとに加算し、ΦᵀΦ を特徴量本数で正規化した
// うえで λI を加えて分解し、係数を解きます。出力は1次元でなければ
// なりません。
func (m *RandomFeatureMethod) Fit(pairs *data.PairedContainer, opts ...FitOption) (fit *Fit, err error) {
	const op = "RandomFeatureMethod.Fit"
	defer errors.Recover(&err, op)

	if pairs == nil {
		return nil, errors.NewValueError(op, "training data must not be nil")
	}

	cfg := fitConfig{method: linalg.MethodSVD}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if p := pairs.Outputs().Dim(); p != 1 {
		return nil, errors.NewDimensionError(op, 1, p, 1)
	}
	if d := pairs.Inputs().Dim(); d != m.featureModel.InputDim() {
		return nil, errors.NewDimensionError(op, m.featureModel.InputDim(), d, 1)
	}

	inputs, outputs := pairs.Data()
	nSamples := pairs.Len()
	nFeatures := m.featureModel.FeatureCount()

	if err := errors.CheckFiniteMatrix(op, outputs, 1, nSamples); err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("regression.fit")
	logger.Debug("starting normal equation accumulation",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeatureCountKey, nFeatures,
		log.TrainBatchKey, m.batchSizes.Train,
		log.RegularizationKey, m.regularization,
		log.DecompositionKey, cfg.method.String(),
	)

	inputBatches, err := linalg.BatchCols(inputs, m.batchSizes.Train)
	if err != nil {
		return nil, err
	}
	outputBatches, err := linalg.BatchCols(outputs, m.batchSizes.Train)
	if err != nil {
		return nil, err
	}

	phiTPhi := mat.NewDense(nFeatures, nFeatures, nil)
	phiTY := mat.NewVecDense(nFeatures, nil)
	for k, xb := range inputBatches {
		phi, err := m.buildFeatures(op, xb)
		if err != nil {
			return nil, err
		}

		// ΦᵀΦ += Φᵀ·Φ、ΦᵀY += Φᵀ·y
		var gram mat.Dense
		gram.Mul(phi.T(), phi)
		phiTPhi.Add(phiTPhi, &gram)

		var moment mat.Dense
		moment.Mul(phi.T(), outputBatches[k].T())
		for i := 0; i < nFeatures; i++ {
			phiTY.SetVec(i, phiTY.AtVec(i)+moment.At(i, 0))
		}
	}

	// 特徴量本数で正規化する（カーネルのモンテカルロ平均に対応）
	phiTPhi.Scale(1/float64(nFeatures), phiTPhi)

	method := cfg.method
	if m.regularization == 0 {
		// 正則化なしでは階数落ちが起きうるため擬似逆行列に固定する
		method = linalg.MethodPInv
		logger.Debug("zero regularization, forcing pseudo-inverse decomposition",
			log.OperationKey, log.OperationFit,
			log.DecompositionKey, method.String(),
		)
	} else {
		for i := 0; i < nFeatures; i++ {
			phiTPhi.Set(i, i, phiTPhi.At(i, i)+m.regularization)
		}
	}

	factors, err := linalg.Decompose(phiTPhi, method)
	if err != nil {
		return nil, err
	}
	solved, err := factors.Solve(phiTY)
	if err != nil {
		return nil, err
	}
	coeffs := mat.NewVecDense(nFeatures, nil)
	coeffs.CopyVec(solved.ColView(0))

	logger.Debug("fit complete",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeatureCountKey, nFeatures,
	)
	return &Fit{featureFactors: factors, coeffs: coeffs}, nil
}

// buildFeatures は特徴量写像を評価し、返り値の形状を検証する
// 形状の不一致は特徴量モデル実装の誤りなので即座にValueErrorとして返す
func (m *RandomFeatureMethod) buildFeatures(op string, inputs mat.Matrix) (*mat.Dense, error) {
	phi, err := m.featureModel.BuildFeatures(inputs)
	if err != nil {
		return nil, err
	}
	_, nb := inputs.Dims()
	if r, c := phi.Dims(); r != nb || c != m.featureModel.FeatureCount() {
		return nil, errors.NewValueError(op, fmt.Sprintf(
			"feature model returned a %d×%d matrix for a %d-sample batch (want %d×%d)",
			r, c, nb, nb, m.featureModel.FeatureCount()))
	}
	return phi, nil
}

// buildFeatureSubset はbuildFeaturesの特徴量部分列版
func (m *RandomFeatureMethod) buildFeatureSubset(op string, inputs mat.Matrix, idx []int) (*mat.Dense, error) {
	phi, err := m.featureModel.BuildFeatureSubset(inputs, idx)
	if err != nil {
		return nil, err
	}
	_, nb := inputs.Dims()
	if r, c := phi.Dims(); r != nb || c != len(idx) {
		return nil, errors.NewValueError(op, fmt.Sprintf(
			"feature model returned a %d×%d matrix for a %d-sample, %d-feature batch",
			r, c, nb, len(idx)))
	}
	return phi, nil
}
