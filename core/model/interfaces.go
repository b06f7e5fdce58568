// Package model defines the estimator interfaces implemented across the
// library. This file complements the core interfaces in estimator.go.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the minimal surface shared by all models.
// It is satisfied by embedding BaseEstimator.
type Estimator interface {
	// IsFitted reports whether the model has been fitted.
	IsFitted() bool

	// Reset returns the model to its unfitted state.
	Reset()
}

// Scorer is implemented by models that can evaluate their own fit quality.
type Scorer interface {
	// Score returns the R² of the prediction against y.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// Regressor bundles the full surface of a supervised regression model.
type Regressor interface {
	Estimator
	Fitter
	Predictor
	Scorer
}

// UncertaintyPredictor is the interface for probabilistic regressors that
// report pointwise predictive uncertainty alongside the mean.
type UncertaintyPredictor interface {
	// PredictWithStd returns the predictive mean and the pointwise
	// standard deviation for each input.
	PredictWithStd(X mat.Matrix) (mean, std mat.Matrix, err error)
}

// ParameterGetter is implemented by models that expose their hyperparameters.
type ParameterGetter interface {
	// GetParams returns the current hyperparameter values.
	GetParams() map[string]interface{}
}

// ParameterSetter is implemented by models whose hyperparameters can be
// changed after construction.
type ParameterSetter interface {
	// SetParams overwrites hyperparameters from a key/value map.
	SetParams(params map[string]interface{}) error
}
