package model

// EstimatorState は推定器の学習状態
type EstimatorState int

const (
	// NotFitted は Fit 前の状態
	NotFitted EstimatorState = iota
	// Fitted は Fit 完了後の状態
	Fitted
)

// String は状態のラベルを返す
func (s EstimatorState) String() string {
	switch s {
	case NotFitted:
		return "not fitted"
	case Fitted:
		return "fitted"
	default:
		return "unknown"
	}
}

// BaseEstimator は学習状態の管理を提供する埋め込み用の基底
//
// 推定器はこれを埋め込み、Fit の成功時に SetFitted を呼び、
// 予測側では IsFitted で学習済みかを確認します。
type BaseEstimator struct {
	state EstimatorState
}

// State は現在の学習状態を返す
func (e *BaseEstimator) State() EstimatorState {
	return e.state
}

// IsFitted は学習済みなら true を返す
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted は学習済み状態へ遷移させる
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset は未学習状態へ戻す
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
