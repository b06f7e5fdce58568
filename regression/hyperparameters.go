package regression

import (
	"github.com/tsj5/randomfeatures/data"
	"github.com/tsj5/randomfeatures/pkg/errors"
)

// 勾配ベースのハイパーパラメータ最適化のためのフック群
// インタフェースだけ予約してあり、呼び出しは常にErrNotImplementedを返す
// 探索が必要な場合は外部の最適化器（examples/hyperparameter_search参照）
// と PredictiveMeanCoeffs を組み合わせる

// OptimizableHyperparameters は最適化対象のハイパーパラメータベクトルを返す
func (m *RandomFeatureMethod) OptimizableHyperparameters() ([]float64, error) {
	return nil, errors.Wrap(errors.ErrNotImplemented, "RandomFeatureMethod.OptimizableHyperparameters")
}

// SetOptimizedHyperparameters は最適化済みの値を反映する
func (m *RandomFeatureMethod) SetOptimizedHyperparameters(values []float64) error {
	return errors.Wrap(errors.ErrNotImplemented, "RandomFeatureMethod.SetOptimizedHyperparameters")
}

// EvaluateHyperparameterCost は検証データに対する目的関数値を計算する
func (m *RandomFeatureMethod) EvaluateHyperparameterCost(train, validation *data.PairedContainer) (float64, error) {
	return 0, errors.Wrap(errors.ErrNotImplemented, "RandomFeatureMethod.EvaluateHyperparameterCost")
}
