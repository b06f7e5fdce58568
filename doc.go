// Package randomfeatures implements regression with random feature maps:
// inputs are lifted into a randomized feature space and a ridge-regularized
// linear model is solved there in closed form via the normal equations.
//
// The library separates the batched, stateless regression engine from a
// scikit-learn style estimator built on top of it, so both one-shot fits and
// memory-bounded pipelines over large feature counts are covered.
//
// # Quick Start
//
// The estimator wrapper fits a 1-D function with random Fourier features:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "gonum.org/v1/gonum/mat"
//
//	    "github.com/tsj5/randomfeatures/regression"
//	)
//
//	func main() {
//	    X := mat.NewDense(4, 1, []float64{0, 1, 2, 3})
//	    y := mat.NewDense(4, 1, []float64{1, 3, 5, 7})
//
//	    reg := regression.NewRandomFeatureRegressor().
//	        WithFeatureCount(256).
//	        WithLengthscale(1.5).
//	        WithSeed(42)
//	    if err := reg.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    mean, std, err := reg.PredictWithStd(mat.NewDense(2, 1, []float64{4, 5}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mean, std)
//	}
//
// The engine underneath is available directly when batch sizes, custom
// feature models or posterior variance coefficients are needed:
//
//	method, _ := regression.NewRandomFeatureMethod(feature,
//	    regression.WithBatchSizes(regression.BatchSizes{Train: 4096}),
//	    regression.WithRegularization(1e-3),
//	)
//	fit, _ := method.Fit(pairs)
//	mean, cov, _ := method.Predict(fit, testInputs)
//
// # Package layout
//
//   - regression: the normal-equation engine and the estimator wrapper
//   - features: scalar Fourier and neuron feature maps with activations
//   - samplers: random feature-parameter samplers over gonum distributions
//   - linalg: SVD/QR/Cholesky/pseudo-inverse decompositions and batch views
//   - data: column-sample data containers
//   - metrics: regression metrics (MSE, RMSE, MAE, R²)
//   - pkg/errors, pkg/log: typed errors/warnings and structured logging
//
// # Reproducibility
//
// All randomness flows through explicit seeds; equal seeds, data and
// configuration produce identical models. Batch sizes never change results,
// only peak memory.
package randomfeatures
