// Package linalg は正規方程式の求解に使う行列分解とバッチ分割を提供します。
//
// 分解器は正方行列を受け取り、因子を保持したまま複数の右辺に対して
// Solveを繰り返し適用できます。Materialize は分解前の行列そのものを
// 返すため、呼び出し側は正則化項の除去などの補正を自分で行えます。
package linalg

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/pkg/errors"
)

// Method は連立一次方程式の求解に使う行列分解の種類
type Method int

const (
	// MethodSVD は特異値分解（デフォルト）
	MethodSVD Method = iota
	// MethodQR はQR分解
	MethodQR
	// MethodCholesky はコレスキー分解（正定値行列限定）
	MethodCholesky
	// MethodPInv は特異値の切り捨て付き擬似逆行列
	// ランク落ちした行列（正則化なしの場合など）でも解を返せる
	MethodPInv
)

// String はMethodの文字列表現を返す
func (m Method) String() string {
	switch m {
	case MethodSVD:
		return "svd"
	case MethodQR:
		return "qr"
	case MethodCholesky:
		return "cholesky"
	case MethodPInv:
		return "pinv"
	default:
		return "unknown"
	}
}

// ParseMethod は文字列からMethodを解析する
// 未知の名前はConfigurationErrorになります
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "svd":
		return MethodSVD, nil
	case "qr":
		return MethodQR, nil
	case "cholesky":
		return MethodCholesky, nil
	case "pinv":
		return MethodPInv, nil
	default:
		return MethodSVD, errors.NewConfigurationError("linalg.ParseMethod", "method",
			"unknown decomposition method "+s+" (want svd, qr, cholesky, or pinv)")
	}
}

// Decomposition は因子化済みの正方行列を表す
//
// Solve は因子を再利用して A·X = rhs を解きます。
// Materialize は分解前の行列を返します（再構成ではなく保持している原本）。
// 返り値の行列を変更してはいけません。
type Decomposition interface {
	// Solve は A·X = rhs の解Xを返す
	Solve(rhs mat.Matrix) (*mat.Dense, error)

	// Materialize は分解前の行列を返す
	Materialize() *mat.Dense

	// Method は分解の種類を返す
	Method() Method

	// Dim は行列の次元を返す
	Dim() int
}

// Decompose は正方行列を指定された方法で因子化する
//
// 入力行列はコピーして保持されるため、呼び出し後に元の行列を変更しても
// 分解結果には影響しません。非正方行列はValueError、非有限要素は
// NumericalError、因子化の失敗はNumericalErrorになります。
func Decompose(a mat.Matrix, method Method) (Decomposition, error) {
	if a == nil {
		return nil, errors.NewValueError("linalg.Decompose", "matrix must not be nil")
	}
	r, c := a.Dims()
	if r != c {
		return nil, errors.NewValueError("linalg.Decompose", "matrix must be square")
	}
	if err := errors.CheckFiniteMatrix("linalg.Decompose", a, r, c); err != nil {
		return nil, err
	}

	stored := mat.DenseCopyOf(a)
	switch method {
	case MethodSVD, MethodPInv:
		return newSVDDecomposition(stored, method)
	case MethodQR:
		return newQRDecomposition(stored), nil
	case MethodCholesky:
		return newCholeskyDecomposition(stored)
	default:
		return nil, errors.NewConfigurationError("linalg.Decompose", "method",
			"unknown decomposition method "+method.String())
	}
}

// ===========================================================================
//
//	SVD / 擬似逆行列
//
// ===========================================================================

// svdDecomposition はSVD因子を保持する
// MethodPInvの場合は、σ ≤ rcond·σmax の特異値を解から除外する
type svdDecomposition struct {
	u      *mat.Dense
	v      *mat.Dense
	values []float64
	stored *mat.Dense
	dim    int
	method Method
}

func newSVDDecomposition(stored *mat.Dense, method Method) (*svdDecomposition, error) {
	var svd mat.SVD
	if ok := svd.Factorize(stored, mat.SVDThin); !ok {
		return nil, errors.NewNumericalError("linalg.Decompose", "SVD factorization did not converge", nil)
	}

	u := &mat.Dense{}
	svd.UTo(u)
	v := &mat.Dense{}
	svd.VTo(v)

	n, _ := stored.Dims()
	return &svdDecomposition{
		u:      u,
		v:      v,
		values: svd.Values(nil),
		stored: stored,
		dim:    n,
		method: method,
	}, nil
}

// Solve は X = V·Σ⁻¹·Uᵀ·rhs を計算する
// ゼロの特異値は常に除外され、MethodPInvではさらに
// σ ≤ rcond·σmax（rcond = マシンイプシロン × 次元）が切り捨てられる
func (d *svdDecomposition) Solve(rhs mat.Matrix) (*mat.Dense, error) {
	if err := checkRHS("linalg.SVD.Solve", rhs, d.dim); err != nil {
		return nil, err
	}

	// 切り捨て閾値（特異値は降順で格納されている）
	tol := 0.0
	if d.method == MethodPInv && len(d.values) > 0 {
		eps := math.Nextafter(1, 2) - 1
		tol = eps * float64(d.dim) * d.values[0]
	}

	inv := make([]float64, len(d.values))
	for i, s := range d.values {
		if s > tol {
			inv[i] = 1 / s
		}
	}
	diag := mat.NewDiagDense(len(inv), inv)

	var x mat.Dense
	x.Product(d.v, diag, d.u.T(), rhs)
	return &x, nil
}

func (d *svdDecomposition) Materialize() *mat.Dense { return d.stored }
func (d *svdDecomposition) Method() Method          { return d.method }
func (d *svdDecomposition) Dim() int                { return d.dim }

// ===========================================================================
//
//	QR分解
//
// ===========================================================================

type qrDecomposition struct {
	qr     *mat.QR
	stored *mat.Dense
	dim    int
}

func newQRDecomposition(stored *mat.Dense) *qrDecomposition {
	qr := &mat.QR{}
	qr.Factorize(stored)
	n, _ := stored.Dims()
	return &qrDecomposition{qr: qr, stored: stored, dim: n}
}

// Solve はQR因子で A·X = rhs を解く
// 条件数超過は警告として報告し、解はそのまま返す
func (d *qrDecomposition) Solve(rhs mat.Matrix) (*mat.Dense, error) {
	if err := checkRHS("linalg.QR.Solve", rhs, d.dim); err != nil {
		return nil, err
	}

	var x mat.Dense
	if err := d.qr.SolveTo(&x, false, rhs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			errors.Warn(errors.NewIllConditionedWarning("linalg.QR.Solve", float64(cond)))
			return &x, nil
		}
		return nil, errors.NewNumericalError("linalg.QR.Solve", "solve failed", err)
	}
	return &x, nil
}

func (d *qrDecomposition) Materialize() *mat.Dense { return d.stored }
func (d *qrDecomposition) Method() Method          { return MethodQR }
func (d *qrDecomposition) Dim() int                { return d.dim }

// ===========================================================================
//
//	コレスキー分解
//
// ===========================================================================

type choleskyDecomposition struct {
	chol   *mat.Cholesky
	stored *mat.Dense
	dim    int
}

func newCholeskyDecomposition(stored *mat.Dense) (*choleskyDecomposition, error) {
	n, _ := stored.Dims()

	// 浮動小数点誤差で生じる非対称成分を平均化して対称行列を構築する
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(stored.At(i, j)+stored.At(j, i)))
		}
	}

	chol := &mat.Cholesky{}
	if ok := chol.Factorize(sym); !ok {
		return nil, errors.NewNumericalError("linalg.Decompose",
			"matrix is not positive definite", errors.ErrSingularMatrix)
	}
	return &choleskyDecomposition{chol: chol, stored: stored, dim: n}, nil
}

// Solve はコレスキー因子で A·X = rhs を解く
// 条件数超過は警告として報告し、解はそのまま返す
func (d *choleskyDecomposition) Solve(rhs mat.Matrix) (*mat.Dense, error) {
	if err := checkRHS("linalg.Cholesky.Solve", rhs, d.dim); err != nil {
		return nil, err
	}

	var x mat.Dense
	if err := d.chol.SolveTo(&x, rhs); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			errors.Warn(errors.NewIllConditionedWarning("linalg.Cholesky.Solve", float64(cond)))
			return &x, nil
		}
		return nil, errors.NewNumericalError("linalg.Cholesky.Solve", "solve failed", err)
	}
	return &x, nil
}

func (d *choleskyDecomposition) Materialize() *mat.Dense { return d.stored }
func (d *choleskyDecomposition) Method() Method          { return MethodCholesky }
func (d *choleskyDecomposition) Dim() int                { return d.dim }

// checkRHS は右辺の行数が分解次元と一致することを確認する
func checkRHS(op string, rhs mat.Matrix, dim int) error {
	if rhs == nil {
		return errors.NewValueError(op, "rhs must not be nil")
	}
	r, _ := rhs.Dims()
	if r != dim {
		return errors.NewDimensionError(op, dim, r, 0)
	}
	return nil
}
