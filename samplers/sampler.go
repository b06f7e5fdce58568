// Package samplers はランダム特徴量の重みとバイアスの分布サンプラーを提供します。
//
// 特徴量写像 φ(x) = σc·act(w·x + b) の (w, b) を分布から引くのが役割で、
// FourierSampler はRBFカーネル対応のガウス重み + 一様バイアス、
// NeuronSampler はランダムネットワーク用のガウス重み + ガウスバイアスを
// 生成します。乱数源はシード付きPCGなので、同じシードからは常に同じ
// 重み列が得られます。
package samplers

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// FeatureSample は1回のサンプリングで得られた重みとバイアスの束
//
// Weights は n × d（特徴量 × 入力次元）、Biases は長さ n です。
// 各フィールドはサンプラーが新規に確保した行列であり、呼び出し側が
// 所有します。
type FeatureSample struct {
	Weights *mat.Dense
	Biases  *mat.VecDense
}

// Len は特徴量の本数を返す
func (s *FeatureSample) Len() int {
	n, _ := s.Weights.Dims()
	return n
}

// Dim は入力の次元を返す
func (s *FeatureSample) Dim() int {
	_, d := s.Weights.Dims()
	return d
}

// Sampler は特徴量パラメータの分布サンプラー
//
// Sample(n) は n 本の特徴量の (w, b) をまとめて引きます。呼び出すたびに
// 乱数列が進むため、同じサンプラーの連続呼び出しは異なる標本を返します。
type Sampler interface {
	// Sample は n 本分の重みとバイアスを引く
	// n ≤ 0 はValueErrorになります
	Sample(n int) (*FeatureSample, error)

	// InputDim は重みベクトルの次元 d を返す
	InputDim() int
}

// checkSampleCount はSampleの引数を検証する
func checkSampleCount(op string, n int) error {
	if n <= 0 {
		return errors.NewValueError(op, "sample count must be positive")
	}
	return nil
}
