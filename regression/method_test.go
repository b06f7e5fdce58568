package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/pkg/log"
)

func TestNewRandomFeatureMethod_Defaults(t *testing.T) {
	method, err := NewRandomFeatureMethod(toyModel())
	require.NoError(t, err)

	assert.Equal(t, DefaultRegularization, method.Regularization())
	assert.Equal(t, BatchSizes{}, method.BatchSizes())
	assert.Equal(t, 0, method.BatchSize(BatchTrain))
	assert.Equal(t, 0, method.BatchSize(BatchTest))
	assert.Equal(t, 0, method.BatchSize(BatchFeature))
	assert.NotNil(t, method.FeatureModel())
}

func TestNewRandomFeatureMethod_NilFeatureModel(t *testing.T) {
	_, err := NewRandomFeatureMethod(nil)
	require.Error(t, err)

	var valErr *errors.ValueError
	assert.True(t, errors.As(err, &valErr))
}

func TestNewRandomFeatureMethod_NegativeRegularization(t *testing.T) {
	warnings := captureWarnings(t)
	logger, _ := log.NewTestLogger(log.LevelDebug)
	log.SetLogger(logger)
	t.Cleanup(func() { log.SetLogger(nil) })

	// 負の正則化は既定値に置き換えられる
	method, err := NewRandomFeatureMethod(toyModel(), WithRegularization(-3.5))
	require.NoError(t, err)
	assert.Equal(t, DefaultRegularization, method.Regularization())

	require.Len(t, *warnings, 1)
	var regWarn *errors.RegularizationWarning
	require.True(t, errors.As((*warnings)[0], &regWarn))
	assert.Equal(t, -3.5, regWarn.Requested)
	assert.Equal(t, DefaultRegularization, regWarn.Effective)

	// Infoレベルのログが出る
	assert.True(t, logger.ContainsMessage("negative regularization replaced with default"))
}

func TestNewRandomFeatureMethod_ZeroRegularization(t *testing.T) {
	warnings := captureWarnings(t)
	logger, _ := log.NewTestLogger(log.LevelDebug)
	log.SetLogger(logger)
	t.Cleanup(func() { log.SetLogger(nil) })

	// ゼロはそのまま受理される（擬似逆行列専用）
	method, err := NewRandomFeatureMethod(toyModel(), WithRegularization(0))
	require.NoError(t, err)
	assert.Zero(t, method.Regularization())

	require.Len(t, *warnings, 1)
	var regWarn *errors.RegularizationWarning
	require.True(t, errors.As((*warnings)[0], &regWarn))
	assert.Zero(t, regWarn.Requested)
	assert.Zero(t, regWarn.Effective)

	assert.True(t, logger.ContainsMessage("zero regularization accepted"))
}

func TestNewRandomFeatureMethod_PositiveRegularizationNoWarning(t *testing.T) {
	warnings := captureWarnings(t)

	method, err := NewRandomFeatureMethod(toyModel(), WithRegularization(0.5))
	require.NoError(t, err)
	assert.Equal(t, 0.5, method.Regularization())
	assert.Empty(t, *warnings)
}

func TestNewRandomFeatureMethod_NonFiniteRegularization(t *testing.T) {
	for _, lambda := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := NewRandomFeatureMethod(toyModel(), WithRegularization(lambda))
		require.Error(t, err)

		var valErr *errors.ValueError
		assert.True(t, errors.As(err, &valErr))
	}
}

func TestWithBatchSizes(t *testing.T) {
	sizes := BatchSizes{Train: 10, Test: 20, Feature: 30}
	method, err := NewRandomFeatureMethod(toyModel(), WithBatchSizes(sizes))
	require.NoError(t, err)

	assert.Equal(t, sizes, method.BatchSizes())
	assert.Equal(t, 10, method.BatchSize(BatchTrain))
	assert.Equal(t, 20, method.BatchSize(BatchTest))
	assert.Equal(t, 30, method.BatchSize(BatchFeature))
}

func TestWithBatchSizes_Negative(t *testing.T) {
	_, err := NewRandomFeatureMethod(toyModel(), WithBatchSizes(BatchSizes{Train: -1}))
	require.Error(t, err)

	var cfgErr *errors.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestWithBatchSizeMap(t *testing.T) {
	method, err := NewRandomFeatureMethod(toyModel(), WithBatchSizeMap(map[string]int{
		"train":   5,
		"test":    6,
		"feature": 7,
	}))
	require.NoError(t, err)
	assert.Equal(t, BatchSizes{Train: 5, Test: 6, Feature: 7}, method.BatchSizes())
}

func TestWithBatchSizeMap_MissingKeys(t *testing.T) {
	tests := []struct {
		name        string
		sizes       map[string]int
		wantMissing []string
	}{
		{
			name:        "all keys missing",
			sizes:       map[string]int{},
			wantMissing: []string{"train", "test", "feature"},
		},
		{
			name:        "two keys missing",
			sizes:       map[string]int{"train": 10},
			wantMissing: []string{"test", "feature"},
		},
		{
			name:        "one key missing",
			sizes:       map[string]int{"train": 1, "test": 2},
			wantMissing: []string{"feature"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRandomFeatureMethod(toyModel(), WithBatchSizeMap(tt.sizes))
			require.Error(t, err)

			var cfgErr *errors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantMissing, cfgErr.Missing)
		})
	}
}

func TestBatchSizesFromMap_IgnoresExtraKeys(t *testing.T) {
	bs, err := BatchSizesFromMap(map[string]int{
		"train":   1,
		"test":    2,
		"feature": 3,
		"other":   99,
	})
	require.NoError(t, err)
	assert.Equal(t, BatchSizes{Train: 1, Test: 2, Feature: 3}, bs)
}

func TestBatchAxis_String(t *testing.T) {
	assert.Equal(t, "train", BatchTrain.String())
	assert.Equal(t, "test", BatchTest.String())
	assert.Equal(t, "feature", BatchFeature.String())
	assert.Equal(t, "unknown", BatchAxis(99).String())
}

func TestBatchSize_UnknownAxis(t *testing.T) {
	method, err := NewRandomFeatureMethod(toyModel(), WithBatchSizes(BatchSizes{Train: 3}))
	require.NoError(t, err)
	assert.Equal(t, 0, method.BatchSize(BatchAxis(99)))
}

func TestHyperparameterHooks_NotImplemented(t *testing.T) {
	method, err := NewRandomFeatureMethod(toyModel())
	require.NoError(t, err)

	_, err = method.OptimizableHyperparameters()
	assert.True(t, errors.Is(err, errors.ErrNotImplemented))

	err = method.SetOptimizedHyperparameters([]float64{1, 2})
	assert.True(t, errors.Is(err, errors.ErrNotImplemented))

	_, err = method.EvaluateHyperparameterCost(nil, nil)
	assert.True(t, errors.Is(err, errors.ErrNotImplemented))
}
