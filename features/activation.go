// Package features はランダム特徴量写像 Φ の構築を提供します。
//
// ScalarFeature はサンプラーが引いた (w, b) を保持し、入力バッチに対して
// Φ[j,k] = σc·act(w_k·x_j + b_k) を評価します。フーリエ特徴量
// （cos活性化 + √2スケール折り込み）とニューロン特徴量（ReLUなど）の
// 2系統のコンストラクタがあります。
package features

import (
	"math"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// Activation はスカラー特徴量の活性化関数
type Activation int

const (
	// Cosine はフーリエ特徴量の既定
	Cosine Activation = iota
	Sine
	// Relu はニューロン特徴量の既定
	Relu
	Sigmoid
	Tanh
)

// String はActivationの文字列表現を返す
func (a Activation) String() string {
	switch a {
	case Cosine:
		return "cos"
	case Sine:
		return "sin"
	case Relu:
		return "relu"
	case Sigmoid:
		return "sigmoid"
	case Tanh:
		return "tanh"
	}
	return "unknown"
}

// ParseActivation は文字列からActivationを解析する
// 未知の名前はConfigurationErrorになります
func ParseActivation(s string) (Activation, error) {
	switch s {
	case "cos":
		return Cosine, nil
	case "sin":
		return Sine, nil
	case "relu":
		return Relu, nil
	case "sigmoid":
		return Sigmoid, nil
	case "tanh":
		return Tanh, nil
	}
	return 0, errors.NewConfigurationError("features.ParseActivation", "activation",
		"unknown activation name: "+s)
}

func (a Activation) valid() bool {
	return a >= Cosine && a <= Tanh
}

// apply は活性化関数を1要素に適用する
func (a Activation) apply(x float64) float64 {
	switch a {
	case Cosine:
		return math.Cos(x)
	case Sine:
		return math.Sin(x)
	case Relu:
		if x > 0 {
			return x
		}
		return 0
	case Sigmoid:
		return 1 / (1 + math.Exp(-x))
	case Tanh:
		return math.Tanh(x)
	}
	return math.NaN()
}
