// Package errors はライブラリ全体のエラーハンドリングと警告システムを提供します。
// ランダム特徴量回帰の設定エラー・数値エラーを構造化された形で表現します。
package errors

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	警告ハンドラ
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// 既定では標準ロガーに1行出すだけ
		log.Printf("randomfeatures-Warning: %v\n", w)
	}
	// zerolog経由の警告出力。循環importになるため pkg/log 側から
	// SetZerologWarnFuncで注入される
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、RegularizationWarningなどの警告の処理方法を制御できます。
//
// 例:
//
//	var warnings []error
//	errors.SetWarningHandler(func(w error) {
//	    warnings = append(warnings, w)
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc は警告のzerolog出力関数を差し込みます。
// 通常は pkg/log.UseZerologWarnings から呼ばれます。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を通知します。制御フローには影響しません。
// zerolog出力が注入されていればそちらへ、なければハンドラへ渡します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	警告型
//
// ===========================================================================

// RegularizationWarning は正則化パラメータλが調整・警告対象となった場合の警告です。
// 負のλはデフォルト値に置き換えられ、λ == 0 は擬似逆行列ソルバ限定で受理されます。
type RegularizationWarning struct {
	Requested float64
	Effective float64
	Reason    string
}

func (w *RegularizationWarning) Error() string {
	if w.Requested != w.Effective {
		return fmt.Sprintf("regularization %g replaced with %g: %s", w.Requested, w.Effective, w.Reason)
	}
	return fmt.Sprintf("regularization %g accepted: %s", w.Requested, w.Reason)
}

// MarshalZerologObject は警告の内容をzerologのフィールドとして書き出します。
func (w *RegularizationWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("requested", w.Requested).
		Float64("effective", w.Effective).
		Str("reason", w.Reason).
		Str("type", "RegularizationWarning")
}

// NewRegularizationWarning はRegularizationWarningを組み立てます。
func NewRegularizationWarning(requested, effective float64, reason string) *RegularizationWarning {
	return &RegularizationWarning{Requested: requested, Effective: effective, Reason: reason}
}

// IllConditionedWarning は連立一次方程式の求解は成功したものの、
// 行列の条件数が許容値を超えていた場合の警告です。解の精度が低い可能性があります。
type IllConditionedWarning struct {
	Op        string
	Condition float64
}

func (w *IllConditionedWarning) Error() string {
	return fmt.Sprintf("%s: matrix is ill-conditioned (cond=%.4e), solution may be inaccurate", w.Op, w.Condition)
}

func (w *IllConditionedWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Float64("condition", w.Condition).
		Str("type", "IllConditionedWarning")
}

// NewIllConditionedWarning はIllConditionedWarningを組み立てます。
func NewIllConditionedWarning(op string, condition float64) *IllConditionedWarning {
	return &IllConditionedWarning{Op: op, Condition: condition}
}

// ===========================================================================
//
//	構造化エラー型
//
// ===========================================================================

// ConfigurationError は構築時の設定が不完全または不正な場合のエラーです。
// 例えば、バッチサイズ設定に必須キーが欠けている場合など。
type ConfigurationError struct {
	Op      string
	Param   string
	Reason  string
	Missing []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("randomfeatures: %s: invalid %s: %s (missing: %s)",
			e.Op, e.Param, e.Reason, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("randomfeatures: %s: invalid %s: %s", e.Op, e.Param, e.Reason)
}

func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("param", e.Param).
		Str("reason", e.Reason).
		Strs("missing", e.Missing).
		Str("type", "ConfigurationError")
}

// NewConfigurationError はスタックトレース付きのConfigurationErrorを返します。
// missing には不足している設定キーを列挙します（省略可）。
func NewConfigurationError(op, param, reason string, missing ...string) error {
	return errors.WithStack(&ConfigurationError{Op: op, Param: param, Reason: reason, Missing: missing})
}

// NumericalError は行列分解や求解の失敗（特異行列・悪条件行列など）のエラーです。
// 再試行やフォールバックは行わず、呼び出し元にそのまま伝播します。
type NumericalError struct {
	Op   string
	Kind string
	Err  error
}

func (e *NumericalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("randomfeatures: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("randomfeatures: %s: %s", e.Op, e.Kind)
}

func (e *NumericalError) Unwrap() error {
	return e.Err
}

func (e *NumericalError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("kind", e.Kind).
		Str("type", "NumericalError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewNumericalError はスタックトレース付きのNumericalErrorを返します。
// err にはErrSingularMatrixなどの原因を渡せます（nil可）。
func NewNumericalError(op, kind string, err error) error {
	return errors.WithStack(&NumericalError{Op: op, Kind: kind, Err: err})
}

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("randomfeatures: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError はスタックトレース付きのNotFittedErrorを返します。
func NewNotFittedError(modelName, method string) error {
	return errors.WithStack(&NotFittedError{ModelName: modelName, Method: method})
}

// DimensionError は行列・ベクトルの形状が期待と一致しない場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows/samples, 1 for columns/features
}

func dimensionAxisName(axis int) string {
	if axis == 0 {
		return "samples"
	}
	return "features"
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("randomfeatures: %s: dimension mismatch on axis %d (%s). Expected %d, got %d",
		e.Op, e.Axis, dimensionAxisName(e.Axis), e.Expected, e.Got)
}

func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", dimensionAxisName(e.Axis)).
		Str("type", "DimensionError")
}

// NewDimensionError はスタックトレース付きのDimensionErrorを返します。
// axis は 0 がサンプル軸、1 が特徴量軸です。
func NewDimensionError(op string, expected, got, axis int) error {
	return errors.WithStack(&DimensionError{Op: op, Expected: expected, Got: got, Axis: axis})
}

// ValueError は引数そのものの値が受理できない場合のエラーです。
// 例えば、特徴量数に0以下を渡した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("randomfeatures: %s: %s", e.Op, e.Message)
}

// NewValueError はスタックトレース付きのValueErrorを返します。
func NewValueError(op, message string) error {
	return errors.WithStack(&ValueError{Op: op, Message: message})
}

// ===========================================================================
//
//	cockroachdb/errors の再エクスポート
//
// ===========================================================================

// Is は errors.Is の再エクスポートです。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As は errors.As の再エクスポートです。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap はメッセージを前置してエラーをラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf はフォーマット済みメッセージを前置してエラーをラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New はスタックトレース付きの新しいエラーを返します。
func New(message string) error {
	return errors.New(message)
}

// Newf はスタックトレース付きのフォーマット済みエラーを返します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack は既存のエラーに現在のスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	センチネルエラー
//
// ===========================================================================

var (
	// ErrNotImplemented は宣言だけされている未実装操作のエラーです。
	ErrNotImplemented = New("not implemented")

	// ErrEmptyData は空の行列・コンテナが渡されたことを表します。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は分解・求解が特異性で失敗したことを表します。
	ErrSingularMatrix = New("singular matrix")
)
