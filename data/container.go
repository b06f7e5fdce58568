// Package data はサンプルを列として保持するデータコンテナを提供します。
//
// 回帰エンジン内部では入力データを d × n（次元 × サンプル数）の列サンプル
// 形式で扱います。行をサンプルとする行列（n × d）からの変換には
// NewContainerFromRows を使用してください。
package data

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// Container は列をサンプルとする d × n 行列の不変ラッパー
//
// 構築時に入力行列をコピーして保持するため、元の行列を後から変更しても
// Containerの内容は影響を受けません。Data() が返す行列を呼び出し側で
// 変更してはいけません。
type Container struct {
	data *mat.Dense // d × n（列がサンプル）
	dim  int        // 入力の次元 d
	n    int        // サンプル数 n
}

// NewContainer は列をサンプルとする行列からContainerを作成する
func NewContainer(m mat.Matrix) (*Container, error) {
	if m == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.NewContainer")
	}
	d, n := m.Dims()
	if d == 0 || n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.NewContainer")
	}
	return &Container{
		data: mat.DenseCopyOf(m),
		dim:  d,
		n:    n,
	}, nil
}

// NewContainerFromRows は行をサンプルとする行列（n × d）を転置して
// Containerを作成する
func NewContainerFromRows(m mat.Matrix) (*Container, error) {
	if m == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.NewContainerFromRows")
	}
	return NewContainer(m.T())
}

// Data は保持している d × n 行列を返す
// 返り値を変更してはいけません
func (c *Container) Data() *mat.Dense {
	return c.data
}

// Dim は入力の次元 d を返す
func (c *Container) Dim() int {
	return c.dim
}

// Len はサンプル数 n を返す
func (c *Container) Len() int {
	return c.n
}

// PairedContainer は入力と出力のペアを保持するコンテナ
// 入力と出力のサンプル数は一致していなければなりません
type PairedContainer struct {
	inputs  *Container
	outputs *Container
}

// NewPairedContainer は列をサンプルとする入力・出力行列のペアから
// PairedContainerを作成する
// サンプル数の不一致はDimensionErrorになります
func NewPairedContainer(inputs, outputs mat.Matrix) (*PairedContainer, error) {
	in, err := NewContainer(inputs)
	if err != nil {
		return nil, err
	}
	out, err := NewContainer(outputs)
	if err != nil {
		return nil, err
	}
	if in.Len() != out.Len() {
		return nil, errors.NewDimensionError("data.NewPairedContainer", in.Len(), out.Len(), 0)
	}
	return &PairedContainer{inputs: in, outputs: out}, nil
}

// NewPairedContainerFromRows は行をサンプルとする行列のペア（X: n × d,
// Y: n × p）を転置してPairedContainerを作成する
func NewPairedContainerFromRows(X, Y mat.Matrix) (*PairedContainer, error) {
	if X == nil || Y == nil {
		return nil, errors.Wrap(errors.ErrEmptyData, "data.NewPairedContainerFromRows")
	}
	return NewPairedContainer(X.T(), Y.T())
}

// Inputs は入力側のContainerを返す
func (p *PairedContainer) Inputs() *Container {
	return p.inputs
}

// Outputs は出力側のContainerを返す
func (p *PairedContainer) Outputs() *Container {
	return p.outputs
}

// Data は入力と出力の行列を返す
// 返り値を変更してはいけません
func (p *PairedContainer) Data() (inputs, outputs *mat.Dense) {
	return p.inputs.Data(), p.outputs.Data()
}

// Len はサンプル数を返す
func (p *PairedContainer) Len() int {
	return p.inputs.Len()
}
