package regression

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/data"
	"github.com/tsj5/randomfeatures/pkg/errors"
)

// indexFeatureModel は1次元入力の値を整数インデックスとして解釈し、
// 保持している特徴量行列の対応行を返すテスト用のFeatureModel
//
// 特徴量が既知の値に固定されるため、正規方程式とその解を手計算で
// 検証できます。
type indexFeatureModel struct {
	phi *mat.Dense // 全サンプルの特徴量（n_samples × n_features）
}

func (f *indexFeatureModel) BuildFeatures(inputs mat.Matrix) (*mat.Dense, error) {
	d, nb := inputs.Dims()
	if d != 1 {
		return nil, errors.NewDimensionError("indexFeatureModel.BuildFeatures", 1, d, 1)
	}
	_, m := f.phi.Dims()
	out := mat.NewDense(nb, m, nil)
	for j := 0; j < nb; j++ {
		out.SetRow(j, f.phi.RawRowView(int(inputs.At(0, j))))
	}
	return out, nil
}

func (f *indexFeatureModel) BuildFeatureSubset(inputs mat.Matrix, idx []int) (*mat.Dense, error) {
	full, err := f.BuildFeatures(inputs)
	if err != nil {
		return nil, err
	}
	nb, _ := full.Dims()
	out := mat.NewDense(nb, len(idx), nil)
	for j := 0; j < nb; j++ {
		for k, i := range idx {
			out.Set(j, k, full.At(j, i))
		}
	}
	return out, nil
}

func (f *indexFeatureModel) FeatureCount() int {
	_, m := f.phi.Dims()
	return m
}

func (f *indexFeatureModel) InputDim() int { return 1 }

// toyModel は手計算による検証で使う固定特徴量
//
//	Φ = [[1,0],[0,1],[1,1]], y = [1,2,3]
//
// λ = 1 のとき ΦᵀΦ/2 + I = [[2,0.5],[0.5,2]]、ΦᵀY = [4,5] なので
// β = [22/15, 32/15] になります。
func toyModel() *indexFeatureModel {
	return &indexFeatureModel{phi: mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})}
}

// indexInputs は 0..n-1 のインデックス入力を列サンプル形式で作る
func indexInputs(t *testing.T, n int) *data.Container {
	t.Helper()
	raw := make([]float64, n)
	for i := range raw {
		raw[i] = float64(i)
	}
	c, err := data.NewContainer(mat.NewDense(1, n, raw))
	require.NoError(t, err)
	return c
}

// toyPairs はtoyModelに対応する学習ペアを作る
func toyPairs(t *testing.T) *data.PairedContainer {
	t.Helper()
	inputs := mat.NewDense(1, 3, []float64{0, 1, 2})
	outputs := mat.NewDense(1, 3, []float64{1, 2, 3})
	pairs, err := data.NewPairedContainer(inputs, outputs)
	require.NoError(t, err)
	return pairs
}

// captureWarnings はテスト中に発行された警告を収集する
func captureWarnings(t *testing.T) *[]error {
	t.Helper()
	var warnings []error
	errors.SetWarningHandler(func(w error) {
		warnings = append(warnings, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })
	return &warnings
}
