package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

func TestNewContainer(t *testing.T) {
	// 2次元 × 3サンプル
	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})

	c, err := NewContainer(m)
	require.NoError(t, err)

	assert.Equal(t, 2, c.Dim())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1.0, c.Data().At(0, 0))
	assert.Equal(t, 6.0, c.Data().At(1, 2))
}

func TestNewContainer_CopiesInput(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{1, 2})

	c, err := NewContainer(m)
	require.NoError(t, err)

	// 構築後に元の行列を変更してもコンテナは影響を受けない
	m.Set(0, 0, 99)
	assert.Equal(t, 1.0, c.Data().At(0, 0))
}

func TestNewContainer_NilMatrix(t *testing.T) {
	_, err := NewContainer(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestNewContainerFromRows(t *testing.T) {
	// 3サンプル × 2次元（行サンプル形式）
	rows := mat.NewDense(3, 2, []float64{
		1, 4,
		2, 5,
		3, 6,
	})

	c, err := NewContainerFromRows(rows)
	require.NoError(t, err)

	// 転置されて 2 × 3 になる
	assert.Equal(t, 2, c.Dim())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1.0, c.Data().At(0, 0))
	assert.Equal(t, 4.0, c.Data().At(1, 0))
	assert.Equal(t, 3.0, c.Data().At(0, 2))
}

func TestNewPairedContainer(t *testing.T) {
	inputs := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	outputs := mat.NewDense(1, 3, []float64{7, 8, 9})

	p, err := NewPairedContainer(inputs, outputs)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.Inputs().Dim())
	assert.Equal(t, 1, p.Outputs().Dim())

	in, out := p.Data()
	assert.Equal(t, 2.0, in.At(0, 1))
	assert.Equal(t, 8.0, out.At(0, 1))
}

func TestNewPairedContainer_SampleMismatch(t *testing.T) {
	inputs := mat.NewDense(2, 3, nil)
	outputs := mat.NewDense(1, 4, nil)

	_, err := NewPairedContainer(inputs, outputs)
	require.Error(t, err)

	var dimErr *errors.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestNewPairedContainerFromRows(t *testing.T) {
	// X: 3サンプル × 2次元, Y: 3サンプル × 1出力
	X := mat.NewDense(3, 2, []float64{
		1, 4,
		2, 5,
		3, 6,
	})
	Y := mat.NewDense(3, 1, []float64{7, 8, 9})

	p, err := NewPairedContainerFromRows(X, Y)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.Inputs().Dim())
	assert.Equal(t, 1, p.Outputs().Dim())
	assert.Equal(t, 7.0, p.Outputs().Data().At(0, 0))
	assert.Equal(t, 9.0, p.Outputs().Data().At(0, 2))
}
