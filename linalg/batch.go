package linalg

import (
	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// バッチ分割の規約:
//   - size == 0 または size ≥ 全体数の場合は全体を1つのバッチとして返す
//   - 最後のバッチは短くなることがある
//   - 返されるバッチは元データのビューでありコピーではない

// BatchCols は行列を列方向にsizeずつのビューに分割する
// 負のsizeはValueErrorになります
func BatchCols(m mat.Matrix, size int) ([]mat.Matrix, error) {
	if m == nil {
		return nil, errors.NewValueError("linalg.BatchCols", "matrix must not be nil")
	}
	r, c := m.Dims()
	if r <= 0 || c <= 0 {
		return nil, errors.NewValueError("linalg.BatchCols", "matrix must be non-empty")
	}
	if size < 0 {
		return nil, errors.NewValueError("linalg.BatchCols", "batch size must be non-negative")
	}

	d := asDense(m)
	if size == 0 || size >= c {
		return []mat.Matrix{d.Slice(0, r, 0, c)}, nil
	}

	batches := make([]mat.Matrix, 0, (c+size-1)/size)
	for start := 0; start < c; start += size {
		end := start + size
		if end > c {
			end = c
		}
		batches = append(batches, d.Slice(0, r, start, end))
	}
	return batches, nil
}

// BatchRows は行列を行方向にsizeずつのビューに分割する
// 負のsizeはValueErrorになります
func BatchRows(m mat.Matrix, size int) ([]mat.Matrix, error) {
	if m == nil {
		return nil, errors.NewValueError("linalg.BatchRows", "matrix must not be nil")
	}
	r, c := m.Dims()
	if r <= 0 || c <= 0 {
		return nil, errors.NewValueError("linalg.BatchRows", "matrix must be non-empty")
	}
	if size < 0 {
		return nil, errors.NewValueError("linalg.BatchRows", "batch size must be non-negative")
	}

	d := asDense(m)
	if size == 0 || size >= r {
		return []mat.Matrix{d.Slice(0, r, 0, c)}, nil
	}

	batches := make([]mat.Matrix, 0, (r+size-1)/size)
	for start := 0; start < r; start += size {
		end := start + size
		if end > r {
			end = r
		}
		batches = append(batches, d.Slice(start, end, 0, c))
	}
	return batches, nil
}

// BatchVec はベクトルをsizeずつのビューに分割する
// 負のsizeはValueErrorになります
func BatchVec(v *mat.VecDense, size int) ([]*mat.VecDense, error) {
	if v == nil {
		return nil, errors.NewValueError("linalg.BatchVec", "vector must not be nil")
	}
	n := v.Len()
	if n <= 0 {
		return nil, errors.NewValueError("linalg.BatchVec", "vector must be non-empty")
	}
	if size < 0 {
		return nil, errors.NewValueError("linalg.BatchVec", "batch size must be non-negative")
	}

	if size == 0 || size >= n {
		return []*mat.VecDense{v.SliceVec(0, n).(*mat.VecDense)}, nil
	}

	batches := make([]*mat.VecDense, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		batches = append(batches, v.SliceVec(start, end).(*mat.VecDense))
	}
	return batches, nil
}

// BatchIndices は [0, n) のインデックス列をsizeずつに分割する
// 特徴量軸のように行列化されていない軸のバッチ処理に使う
func BatchIndices(n, size int) ([][]int, error) {
	if n <= 0 {
		return nil, errors.NewValueError("linalg.BatchIndices", "extent must be positive")
	}
	if size < 0 {
		return nil, errors.NewValueError("linalg.BatchIndices", "batch size must be non-negative")
	}

	all := make([]int, n)
	for i := range all {
		all[i] = i
	}

	if size == 0 || size >= n {
		return [][]int{all}, nil
	}

	batches := make([][]int, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		batches = append(batches, all[start:end])
	}
	return batches, nil
}

// asDense はビュー分割のために*mat.Denseを取り出す
// Dense以外の行列は一度だけ実体化する
func asDense(m mat.Matrix) *mat.Dense {
	if d, ok := m.(*mat.Dense); ok {
		return d
	}
	return mat.DenseCopyOf(m)
}
