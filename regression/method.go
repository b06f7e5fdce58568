// Package regression はランダム特徴量回帰の学習と予測を提供します。
//
// 学習は正規方程式 (ΦᵀΦ/n_features + λI)·β = ΦᵀY の閉形式解で、
// 予測は事後平均と各テスト点の周辺分散を返します。学習サンプル・
// テストサンプル・特徴量の3軸それぞれを固定サイズのバッチに分割して
// 処理できるため、全体を一度にメモリへ載せる必要はありません。
//
// RandomFeatureMethod が設定済みエンジン、Fit が学習結果です。
// scikit-learn風の行サンプルAPIが必要な場合は RandomFeatureRegressor
// を使ってください。
package regression

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/pkg/log"
)

// DefaultRegularization は正則化係数の既定値
// マシンイプシロンを10^12倍した小さな正の値で、悪条件の抑制だけを
// 目的とした底上げです
const DefaultRegularization = 1e12 * 2.220446049250313e-16

// FeatureModel は特徴量写像 Φ の構築器
//
// BuildFeatures は入力バッチ（d × n_batch、列がサンプル）から
// n_batch × n_features の特徴量行列を返します。BuildFeatureSubset は
// 特徴量軸のバッチ処理のために指定列だけを構築します。
type FeatureModel interface {
	BuildFeatures(inputs mat.Matrix) (*mat.Dense, error)
	BuildFeatureSubset(inputs mat.Matrix, idx []int) (*mat.Dense, error)
	FeatureCount() int
	InputDim() int
}

// BatchAxis はバッチ分割の対象となる軸
type BatchAxis int

const (
	// BatchTrain は学習サンプル軸
	BatchTrain BatchAxis = iota
	// BatchTest はテストサンプル軸
	BatchTest
	// BatchFeature は特徴量軸
	BatchFeature
)

// String はBatchAxisの文字列表現を返す
func (a BatchAxis) String() string {
	switch a {
	case BatchTrain:
		return "train"
	case BatchTest:
		return "test"
	case BatchFeature:
		return "feature"
	}
	return "unknown"
}

// BatchSizes は3軸それぞれのバッチサイズ
// 0 は「分割しない（単一バッチ）」を意味します
type BatchSizes struct {
	Train   int
	Test    int
	Feature int
}

func (b BatchSizes) validate(op string) error {
	if b.Train < 0 || b.Test < 0 || b.Feature < 0 {
		return errors.NewConfigurationError(op, "batch_sizes",
			"batch sizes must be non-negative")
	}
	return nil
}

// BatchSizesFromMap は "train"/"test"/"feature" をキーとするマップから
// BatchSizesを作成する
//
// 3つのキーがすべて揃っていない場合はConfigurationErrorになり、
// そのMissingフィールドに不足キーが列挙されます。余分なキーは
// 無視されます。
func BatchSizesFromMap(sizes map[string]int) (BatchSizes, error) {
	const op = "regression.BatchSizesFromMap"

	var missing []string
	for _, key := range []string{"train", "test", "feature"} {
		if _, ok := sizes[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return BatchSizes{}, errors.NewConfigurationError(op, "batch_sizes",
			"required batch size keys are missing", missing...)
	}

	bs := BatchSizes{
		Train:   sizes["train"],
		Test:    sizes["test"],
		Feature: sizes["feature"],
	}
	if err := bs.validate(op); err != nil {
		return BatchSizes{}, err
	}
	return bs, nil
}

// MethodOption はRandomFeatureMethodの構築オプション
type MethodOption func(*methodConfig) error

type methodConfig struct {
	batchSizes     BatchSizes
	regularization float64
}

// WithBatchSizes は3軸のバッチサイズを設定する（既定はすべて0 = 単一バッチ）
func WithBatchSizes(sizes BatchSizes) MethodOption {
	return func(c *methodConfig) error {
		if err := sizes.validate("regression.WithBatchSizes"); err != nil {
			return err
		}
		c.batchSizes = sizes
		return nil
	}
}

// WithBatchSizeMap は文字列キーのマップからバッチサイズを設定する
// キーの過不足の扱いはBatchSizesFromMapに従います
func WithBatchSizeMap(sizes map[string]int) MethodOption {
	return func(c *methodConfig) error {
		bs, err := BatchSizesFromMap(sizes)
		if err != nil {
			return err
		}
		c.batchSizes = bs
		return nil
	}
}

// WithRegularization は正則化係数 λ を設定する
//
// 負値は構築時に既定値へ置換され（Infoログと警告）、0 は擬似逆行列
// 専用として受理されます（Warnログと警告）。
func WithRegularization(lambda float64) MethodOption {
	return func(c *methodConfig) error {
		c.regularization = lambda
		return nil
	}
}

// RandomFeatureMethod はランダム特徴量回帰の設定済みエンジン
//
// 構築後は不変で、複数のFit呼び出しにまたがって安全に共有できます。
// 正則化係数は構築時に確定し、以後のFitはその値を使います。
type RandomFeatureMethod struct {
	featureModel   FeatureModel
	batchSizes     BatchSizes
	regularization float64
}

// NewRandomFeatureMethod はRandomFeatureMethodを作成する
//
// 正則化の扱い:
//   - 負値: 既定値 DefaultRegularization に置換し、Infoログと
//     RegularizationWarningを発行する
//   - 0: そのまま受理するが、Fitは分解方法の指定を無視して擬似逆行列を
//     使う。Warnログと RegularizationWarning を発行する
//   - 非有限値: ValueError
func NewRandomFeatureMethod(fm FeatureModel, opts ...MethodOption) (*RandomFeatureMethod, error) {
	const op = "regression.NewRandomFeatureMethod"
	if fm == nil {
		return nil, errors.NewValueError(op, "feature model must not be nil")
	}

	cfg := methodConfig{regularization: DefaultRegularization}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if math.IsNaN(cfg.regularization) || math.IsInf(cfg.regularization, 0) {
		return nil, errors.NewValueError(op, "regularization must be finite")
	}

	logger := log.GetLoggerWithName("regression.method")
	switch {
	case cfg.regularization < 0:
		logger.Info("negative regularization replaced with default",
			log.RegularizationKey, cfg.regularization,
			"hyperparams.regularization_effective", DefaultRegularization)
		errors.Warn(errors.NewRegularizationWarning(cfg.regularization, DefaultRegularization,
			"regularization must be non-negative"))
		cfg.regularization = DefaultRegularization
	case cfg.regularization == 0:
		logger.Warn("zero regularization accepted, solve is restricted to the pseudo-inverse",
			log.RegularizationKey, 0.0)
		errors.Warn(errors.NewRegularizationWarning(0, 0,
			"zero regularization restricts the solve to the pseudo-inverse"))
	}

	return &RandomFeatureMethod{
		featureModel:   fm,
		batchSizes:     cfg.batchSizes,
		regularization: cfg.regularization,
	}, nil
}

// FeatureModel は特徴量写像を返す
func (m *RandomFeatureMethod) FeatureModel() FeatureModel {
	return m.featureModel
}

// Regularization は実効正則化係数を返す
// 構築時に負値を渡した場合は置換後の値になります
func (m *RandomFeatureMethod) Regularization() float64 {
	return m.regularization
}

// BatchSizes は3軸のバッチサイズを返す
func (m *RandomFeatureMethod) BatchSizes() BatchSizes {
	return m.batchSizes
}

// BatchSize は指定軸のバッチサイズを返す
// 未知の軸は0（単一バッチ）を返します
func (m *RandomFeatureMethod) BatchSize(axis BatchAxis) int {
	switch axis {
	case BatchTrain:
		return m.batchSizes.Train
	case BatchTest:
		return m.batchSizes.Test
	case BatchFeature:
		return m.batchSizes.Feature
	}
	return 0
}
