package model

import "gonum.org/v1/gonum/mat"

// Fitter は訓練データから学習できるモデルが実装する
type Fitter interface {
	// Fit は X, y からモデルを学習する
	Fit(X, y mat.Matrix) error
}

// Predictor は学習済みモデルによる予測を提供する
type Predictor interface {
	// Predict は X に対する予測値を返す
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// CoefficientModel は解かれた係数を公開するモデルのインターフェース
type CoefficientModel interface {
	// Coeffs は学習された特徴量係数を返す
	Coeffs() []float64
	// Score は予測の決定係数 R² を返す
	Score(X, y mat.Matrix) (float64, error)
}
