// Package metrics は回帰モデルの評価指標を提供します。
//
// ベクトル版（MSE, RMSE, MAE, R2Score）が基本形で、行列版
// （MSEMatrix など）は n×1 の列形式と 1×n の行形式の両方を受け付けて
// ベクトル版に委譲します。予測エンジンは行形式、推定器は列形式を
// 返すため、どちらもそのまま渡せます。
package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// checkPair は同じ長さの非空ベクトルのペアであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// vecData はベクトルの要素を連続スライスとして返す。
// バッキング配列が連続ならそれをそのまま共有する。
func vecData(v *mat.VecDense) []float64 {
	if raw := v.RawVector(); raw.Inc == 1 {
		return raw.Data
	}
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// asVec は n×1 または 1×n の行列をベクトルとして取り出す
func asVec(op string, m mat.Matrix) (*mat.VecDense, error) {
	if m == nil {
		return nil, errors.NewValueError(op, "matrix must not be nil")
	}
	r, c := m.Dims()
	switch {
	case r == 0 || c == 0:
		return nil, errors.NewValueError(op, "empty matrix")
	case c == 1:
		return mat.NewVecDense(r, mat.Col(nil, 0, m)), nil
	case r == 1:
		return mat.NewVecDense(c, mat.Row(nil, 0, m)), nil
	}
	return nil, errors.NewValueError(op, "matrix must be a single row or a single column")
}

// MSE は平均二乗誤差を計算する
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MSE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// 残差の二乗和を n で割る
	diff := make([]float64, n)
	floats.SubTo(diff, vecData(yTrue), vecData(yPred))
	return floats.Dot(diff, diff) / float64(n), nil
}

// RMSE は平均二乗誤差の平方根を計算する
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE は平均絶対誤差を計算する
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("MAE", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	// MAE = (1/n) * Σ|yTrue - yPred| = ‖diff‖₁ / n
	diff := make([]float64, n)
	floats.SubTo(diff, vecData(yTrue), vecData(yPred))
	return floats.Norm(diff, 1) / float64(n), nil
}

// R2Score は決定係数 R² を計算する
// yTrueに分散がない場合は誤差として報告します
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("R2Score", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	t := vecData(yTrue)
	p := vecData(yPred)
	yMean := floats.Sum(t) / float64(n)

	// 残差変動（RSS）
	resid := make([]float64, n)
	floats.SubTo(resid, t, p)
	rss := floats.Dot(resid, resid)

	// 全変動（TSS）
	centered := make([]float64, n)
	copy(centered, t)
	floats.AddConst(-yMean, centered)
	tss := floats.Dot(centered, centered)
	if tss == 0 {
		return 0, errors.Newf("R2Score: total sum of squares is zero (no variance in yTrue)")
	}

	// 残差平方和と全平方和の比から求める
	return 1 - rss/tss, nil
}

// MSEMatrix は行列形式（n×1 または 1×n）の入力に対してMSEを計算する
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	const op = "MSEMatrix"
	t, err := asVec(op, yTrue)
	if err != nil {
		return 0, err
	}
	p, err := asVec(op, yPred)
	if err != nil {
		return 0, err
	}
	return MSE(t, p)
}

// RMSEMatrix は行列形式の入力に対してRMSEを計算する
func RMSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	mse, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// R2ScoreMatrix は行列形式の入力に対して決定係数を計算する
func R2ScoreMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	const op = "R2ScoreMatrix"
	t, err := asVec(op, yTrue)
	if err != nil {
		return 0, err
	}
	p, err := asVec(op, yPred)
	if err != nil {
		return 0, err
	}
	return R2Score(t, p)
}
