package regression

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/data"
	"github.com/tsj5/randomfeatures/linalg"
	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/pkg/log"
)

// PredictiveMean は事後平均 Φ*·β/n_features を計算する（1 × n_test）
//
// テストサンプル軸と特徴量軸の両方がバッチ分割され、部分和の加算で
// 同じ結果が得られます。
func (m *RandomFeatureMethod) PredictiveMean(fit *Fit, newInputs *data.Container) (mean *mat.Dense, err error) {
	const op = "RandomFeatureMethod.PredictiveMean"
	defer errors.Recover(&err, op)

	if err := m.checkFit(op, fit); err != nil {
		return nil, err
	}
	if err := m.checkInputs(op, newInputs); err != nil {
		return nil, err
	}

	log.GetLoggerWithName("regression.predict").Debug("computing predictive mean",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, newInputs.Len(),
		log.FeatureCountKey, m.featureModel.FeatureCount(),
		log.TestBatchKey, m.batchSizes.Test,
		log.FeatureBatchKey, m.batchSizes.Feature,
	)
	return m.meanWithCoeffs(op, fit.coeffs, newInputs)
}

// PredictiveMeanCoeffs は任意の係数ベクトルで平均を計算する
//
// ハイパーパラメータ探索などで学習済み係数以外の係数を試すための
// 入り口です。係数の長さはn_featuresと一致していなければなりません。
func (m *RandomFeatureMethod) PredictiveMeanCoeffs(coeffs *mat.VecDense, newInputs *data.Container) (mean *mat.Dense, err error) {
	const op = "RandomFeatureMethod.PredictiveMeanCoeffs"
	defer errors.Recover(&err, op)

	if coeffs == nil {
		return nil, errors.NewValueError(op, "coefficients must not be nil")
	}
	if n := m.featureModel.FeatureCount(); coeffs.Len() != n {
		return nil, errors.NewDimensionError(op, n, coeffs.Len(), 1)
	}
	if err := m.checkInputs(op, newInputs); err != nil {
		return nil, err
	}
	return m.meanWithCoeffs(op, coeffs, newInputs)
}

// meanWithCoeffs は Φ*·coeffs/n_features をテスト軸・特徴量軸の
// 二重バッチで計算する
func (m *RandomFeatureMethod) meanWithCoeffs(op string, coeffs *mat.VecDense, newInputs *data.Container) (*mat.Dense, error) {
	nFeatures := m.featureModel.FeatureCount()

	testBatches, err := linalg.BatchCols(newInputs.Data(), m.batchSizes.Test)
	if err != nil {
		return nil, err
	}
	idxBatches, err := linalg.BatchIndices(nFeatures, m.batchSizes.Feature)
	if err != nil {
		return nil, err
	}
	coefBatches, err := linalg.BatchVec(coeffs, m.batchSizes.Feature)
	if err != nil {
		return nil, err
	}

	mean := mat.NewDense(1, newInputs.Len(), nil)
	offset := 0
	for _, xb := range testBatches {
		_, nb := xb.Dims()
		for k, idx := range idxBatches {
			phi, err := m.buildFeatureSubset(op, xb, idx)
			if err != nil {
				return nil, err
			}
			var part mat.VecDense
			part.MulVec(phi, coefBatches[k])
			for j := 0; j < nb; j++ {
				mean.Set(0, offset+j, mean.At(0, offset+j)+part.AtVec(j))
			}
		}
		offset += nb
	}
	mean.Scale(1/float64(nFeatures), mean)
	return mean, nil
}

// PredictiveCov は各テスト点の周辺事後分散（1 × n_test）と、分散計算に
// 使った係数行列 C（n_features × n_test）を返す
//
// C は (ΦᵀΦ/n_features + λI)·C = (ΦᵀΦ/n_features)·Φ*ᵀ の解で、
// 分散は cov_j = Σ_k Φ*ᵀ[k,j]·(Φ*ᵀ[k,j] − C[k,j])/n_features です。
// 正則化前の行列は分解の原本から λI を引き戻して復元します。
func (m *RandomFeatureMethod) PredictiveCov(fit *Fit, newInputs *data.Container) (cov, covCoeffs *mat.Dense, err error) {
	const op = "RandomFeatureMethod.PredictiveCov"
	defer errors.Recover(&err, op)

	if err := m.checkFit(op, fit); err != nil {
		return nil, nil, err
	}
	if err := m.checkInputs(op, newInputs); err != nil {
		return nil, nil, err
	}

	nFeatures := m.featureModel.FeatureCount()
	log.GetLoggerWithName("regression.predict").Debug("computing predictive covariance",
		log.OperationKey, log.OperationPredict,
		log.SamplesKey, newInputs.Len(),
		log.FeatureCountKey, nFeatures,
		log.TestBatchKey, m.batchSizes.Test,
	)

	unreg := mat.DenseCopyOf(fit.featureFactors.Materialize())
	if m.regularization != 0 {
		for i := 0; i < nFeatures; i++ {
			unreg.Set(i, i, unreg.At(i, i)-m.regularization)
		}
	}

	testBatches, err := linalg.BatchCols(newInputs.Data(), m.batchSizes.Test)
	if err != nil {
		return nil, nil, err
	}

	cov = mat.NewDense(1, newInputs.Len(), nil)
	covCoeffs = mat.NewDense(nFeatures, newInputs.Len(), nil)
	offset := 0
	for _, xb := range testBatches {
		phi, err := m.buildFeatures(op, xb)
		if err != nil {
			return nil, nil, err
		}
		nb, _ := phi.Dims()

		var rhs mat.Dense
		rhs.Mul(unreg, phi.T())
		solved, err := fit.featureFactors.Solve(&rhs)
		if err != nil {
			return nil, nil, err
		}

		for j := 0; j < nb; j++ {
			var sum float64
			for k := 0; k < nFeatures; k++ {
				pkj := phi.At(j, k)
				ckj := solved.At(k, j)
				covCoeffs.Set(k, offset+j, ckj)
				sum += pkj * (pkj - ckj)
			}
			cov.Set(0, offset+j, sum/float64(nFeatures))
		}
		offset += nb
	}
	return cov, covCoeffs, nil
}

// Predict は事後平均と周辺事後分散を返す
func (m *RandomFeatureMethod) Predict(fit *Fit, newInputs *data.Container) (mean, cov *mat.Dense, err error) {
	mean, err = m.PredictiveMean(fit, newInputs)
	if err != nil {
		return nil, nil, err
	}
	cov, _, err = m.PredictiveCov(fit, newInputs)
	if err != nil {
		return nil, nil, err
	}
	return mean, cov, nil
}

// PredictPriorMean は係数をすべて1に固定した事前平均を計算する
// 学習結果を使わないため、Fitなしで呼び出せます
func (m *RandomFeatureMethod) PredictPriorMean(newInputs *data.Container) (mean *mat.Dense, err error) {
	const op = "RandomFeatureMethod.PredictPriorMean"
	defer errors.Recover(&err, op)

	if err := m.checkInputs(op, newInputs); err != nil {
		return nil, err
	}

	n := m.featureModel.FeatureCount()
	log.GetLoggerWithName("regression.predict").Debug("computing prior mean",
		log.OperationKey, log.OperationPredictPrior,
		log.SamplesKey, newInputs.Len(),
		log.FeatureCountKey, n,
	)
	ones := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		ones.SetVec(i, 1)
	}
	return m.meanWithCoeffs(op, ones, newInputs)
}

// PredictPriorCov は事前分散を計算する（1 × n_test）
// 事後分散の係数行列 C をすべて1に置き換えた
// cov_j = Σ_k Φ*ᵀ[k,j]·(Φ*ᵀ[k,j] − 1)/n_features です
func (m *RandomFeatureMethod) PredictPriorCov(newInputs *data.Container) (cov *mat.Dense, err error) {
	const op = "RandomFeatureMethod.PredictPriorCov"
	defer errors.Recover(&err, op)

	if err := m.checkInputs(op, newInputs); err != nil {
		return nil, err
	}

	nFeatures := m.featureModel.FeatureCount()
	testBatches, err := linalg.BatchCols(newInputs.Data(), m.batchSizes.Test)
	if err != nil {
		return nil, err
	}

	cov = mat.NewDense(1, newInputs.Len(), nil)
	offset := 0
	for _, xb := range testBatches {
		phi, err := m.buildFeatures(op, xb)
		if err != nil {
			return nil, err
		}
		nb, _ := phi.Dims()
		for j := 0; j < nb; j++ {
			var sum float64
			row := phi.RawRowView(j)
			for _, p := range row {
				sum += p * (p - 1)
			}
			cov.Set(0, offset+j, sum/float64(nFeatures))
		}
		offset += nb
	}
	return cov, nil
}

// PredictPrior は事前平均と事前分散を返す
func (m *RandomFeatureMethod) PredictPrior(newInputs *data.Container) (mean, cov *mat.Dense, err error) {
	mean, err = m.PredictPriorMean(newInputs)
	if err != nil {
		return nil, nil, err
	}
	cov, err = m.PredictPriorCov(newInputs)
	if err != nil {
		return nil, nil, err
	}
	return mean, cov, nil
}

// PosteriorCov はテスト点間の完全な事後共分散行列を返す
// 周辺分散で足りる用途にはPredictiveCovを使ってください
//
// TODO: ブロック分割した Φ*·C の組み立てが必要で未実装
func (m *RandomFeatureMethod) PosteriorCov(fit *Fit, newInputs *data.Container) (*mat.Dense, error) {
	return nil, errors.Wrap(errors.ErrNotImplemented, "RandomFeatureMethod.PosteriorCov")
}

// checkFit はfitがこのメソッドの学習結果として妥当か検証する
func (m *RandomFeatureMethod) checkFit(op string, fit *Fit) error {
	if fit == nil || fit.featureFactors == nil || fit.coeffs == nil {
		return errors.NewValueError(op, "fit must be a result of RandomFeatureMethod.Fit")
	}
	if n := m.featureModel.FeatureCount(); fit.coeffs.Len() != n {
		return errors.NewDimensionError(op, n, fit.coeffs.Len(), 1)
	}
	return nil
}

// checkInputs は予測入力の次元を検証する
func (m *RandomFeatureMethod) checkInputs(op string, newInputs *data.Container) error {
	if newInputs == nil {
		return errors.NewValueError(op, "inputs must not be nil")
	}
	if d := newInputs.Dim(); d != m.featureModel.InputDim() {
		return errors.NewDimensionError(op, m.featureModel.InputDim(), d, 1)
	}
	return nil
}
