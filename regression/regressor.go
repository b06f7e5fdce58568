package regression

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/tsj5/randomfeatures/core/model"
	"github.com/tsj5/randomfeatures/data"
	"github.com/tsj5/randomfeatures/features"
	"github.com/tsj5/randomfeatures/linalg"
	"github.com/tsj5/randomfeatures/metrics"
	"github.com/tsj5/randomfeatures/pkg/errors"
	"github.com/tsj5/randomfeatures/pkg/log"
	"github.com/tsj5/randomfeatures/samplers"
)

// RandomFeatureRegressor is a scikit-learn style estimator wrapping the
// random feature regression engine.
//
// It assembles the full pipeline on Fit: a Fourier sampler seeded from
// Seed, a cosine feature map with FeatureCount features, and the
// normal-equation solve with the configured regularization. Inputs follow
// the estimator convention of row-major samples (n_samples × n_dims),
// unlike the column-major containers of RandomFeatureMethod.
//
// Example:
//
//	reg := regression.NewRandomFeatureRegressor().
//	    WithFeatureCount(256).
//	    WithLengthscale(0.5).
//	    WithSeed(42)
//	if err := reg.Fit(X, y); err != nil {
//	    return err
//	}
//	mean, std, err := reg.PredictWithStd(Xtest)
type RandomFeatureRegressor struct {
	model.BaseEstimator

	// FeatureCount is the number of random features.
	FeatureCount int
	// Lengthscale is the isotropic lengthscale of the Fourier sampler.
	Lengthscale float64
	// CoefficientScale is the σc factor applied to every feature.
	CoefficientScale float64
	// Regularization is the λ passed to the engine. Negative values are
	// replaced with DefaultRegularization, zero forces the pseudo-inverse.
	Regularization float64
	// Decomposition selects the factorization of the normal equations.
	Decomposition linalg.Method
	// Batches carries the train/test/feature batch sizes (0 = single batch).
	Batches BatchSizes
	// Seed drives the feature sampler. Fits with equal seeds, data and
	// configuration produce identical models.
	Seed uint64

	method   *RandomFeatureMethod
	fit      *Fit
	inputDim int
}

// NewRandomFeatureRegressor creates a regressor with 128 Fourier features,
// unit lengthscale and the default regularization.
func NewRandomFeatureRegressor() *RandomFeatureRegressor {
	return &RandomFeatureRegressor{
		FeatureCount:     128,
		Lengthscale:      1.0,
		CoefficientScale: 1.0,
		Regularization:   DefaultRegularization,
		Decomposition:    linalg.MethodSVD,
		Seed:             1,
	}
}

// WithFeatureCount sets the number of random features.
func (r *RandomFeatureRegressor) WithFeatureCount(n int) *RandomFeatureRegressor {
	r.FeatureCount = n
	return r
}

// WithLengthscale sets the kernel lengthscale of the Fourier sampler.
func (r *RandomFeatureRegressor) WithLengthscale(l float64) *RandomFeatureRegressor {
	r.Lengthscale = l
	return r
}

// WithCoefficientScale sets the σc scaling of the feature map.
func (r *RandomFeatureRegressor) WithCoefficientScale(c float64) *RandomFeatureRegressor {
	r.CoefficientScale = c
	return r
}

// WithRegularization sets the λ of the normal-equation solve.
func (r *RandomFeatureRegressor) WithRegularization(lambda float64) *RandomFeatureRegressor {
	r.Regularization = lambda
	return r
}

// WithDecomposition sets the factorization used for the solve.
func (r *RandomFeatureRegressor) WithDecomposition(method linalg.Method) *RandomFeatureRegressor {
	r.Decomposition = method
	return r
}

// WithBatches sets the train/test/feature batch sizes.
func (r *RandomFeatureRegressor) WithBatches(sizes BatchSizes) *RandomFeatureRegressor {
	r.Batches = sizes
	return r
}

// WithSeed sets the sampler seed.
func (r *RandomFeatureRegressor) WithSeed(seed uint64) *RandomFeatureRegressor {
	r.Seed = seed
	return r
}

// Fit learns the regression coefficients from row-major samples.
//
// X is n_samples × n_dims and y is n_samples × 1. The sampler is rebuilt
// from Seed on every call, so repeated fits are reproducible.
func (r *RandomFeatureRegressor) Fit(X, y mat.Matrix) (err error) {
	const op = "RandomFeatureRegressor.Fit"
	defer errors.Recover(&err, op)

	if X == nil || y == nil {
		return errors.NewValueError(op, "training data must not be nil")
	}
	xr, xc := X.Dims()
	yr, yc := y.Dims()
	if xr != yr {
		return errors.NewDimensionError(op, xr, yr, 0)
	}
	if yc != 1 {
		return errors.NewDimensionError(op, 1, yc, 1)
	}

	logger := log.GetLoggerWithName("regression.regressor")
	logger.Debug("starting fit",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, xr,
		log.InputDimKey, xc,
		log.FeatureCountKey, r.FeatureCount,
		log.RandomSeedKey, r.Seed,
	)

	method, err := r.buildMethod(xc)
	if err != nil {
		return err
	}
	pairs, err := data.NewPairedContainerFromRows(X, y)
	if err != nil {
		return err
	}
	fit, err := method.Fit(pairs, WithDecomposition(r.Decomposition))
	if err != nil {
		return err
	}

	r.method = method
	r.fit = fit
	r.inputDim = xc
	r.SetFitted()

	logger.Info("fit complete",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, xr,
		log.FeatureCountKey, r.FeatureCount,
		log.RegularizationKey, method.Regularization(),
	)
	return nil
}

// buildMethod assembles the sampler, feature map and engine for the given
// input dimension.
func (r *RandomFeatureRegressor) buildMethod(inputDim int) (*RandomFeatureMethod, error) {
	sampler, err := samplers.NewFourierSampler(inputDim, r.Lengthscale, r.Seed)
	if err != nil {
		return nil, err
	}
	feature, err := features.NewScalarFourierFeature(r.FeatureCount, sampler,
		features.WithScale(r.CoefficientScale))
	if err != nil {
		return nil, err
	}
	return NewRandomFeatureMethod(feature,
		WithBatchSizes(r.Batches),
		WithRegularization(r.Regularization),
	)
}

// Predict returns the posterior mean for row-major samples as an
// n_samples × 1 matrix.
func (r *RandomFeatureRegressor) Predict(X mat.Matrix) (_ mat.Matrix, err error) {
	defer errors.Recover(&err, "RandomFeatureRegressor.Predict")

	inputs, err := r.toContainer("Predict", X)
	if err != nil {
		return nil, err
	}
	mean, err := r.method.PredictiveMean(r.fit, inputs)
	if err != nil {
		return nil, err
	}
	return rowToColumn(mean), nil
}

// PredictWithStd returns the posterior mean and the pointwise standard
// deviation, both n_samples × 1. Tiny negative variances from floating
// point cancellation are clamped to zero before the square root.
func (r *RandomFeatureRegressor) PredictWithStd(X mat.Matrix) (mean, std mat.Matrix, err error) {
	defer errors.Recover(&err, "RandomFeatureRegressor.PredictWithStd")

	inputs, err := r.toContainer("PredictWithStd", X)
	if err != nil {
		return nil, nil, err
	}
	rowMean, rowCov, err := r.method.Predict(r.fit, inputs)
	if err != nil {
		return nil, nil, err
	}

	_, n := rowCov.Dims()
	stdCol := mat.NewDense(n, 1, nil)
	for j := 0; j < n; j++ {
		v := rowCov.At(0, j)
		if v < 0 {
			v = 0
		}
		stdCol.Set(j, 0, math.Sqrt(v))
	}
	return rowToColumn(rowMean), stdCol, nil
}

// Score returns the coefficient of determination R² of the prediction.
func (r *RandomFeatureRegressor) Score(X, y mat.Matrix) (score float64, err error) {
	defer errors.Recover(&err, "RandomFeatureRegressor.Score")

	pred, err := r.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.R2ScoreMatrix(y, pred)
}

// Coeffs returns a copy of the fitted coefficient vector, or nil before Fit.
func (r *RandomFeatureRegressor) Coeffs() []float64 {
	if r.fit == nil {
		return nil
	}
	out := make([]float64, r.fit.coeffs.Len())
	for i := range out {
		out[i] = r.fit.coeffs.AtVec(i)
	}
	return out
}

// Method returns the underlying engine, or nil before Fit.
func (r *RandomFeatureRegressor) Method() *RandomFeatureMethod {
	return r.method
}

// FitResult returns the underlying fit state, or nil before Fit.
func (r *RandomFeatureRegressor) FitResult() *Fit {
	return r.fit
}

// Reset clears the fitted state so the regressor can be fitted again.
func (r *RandomFeatureRegressor) Reset() {
	r.BaseEstimator.Reset()
	r.method = nil
	r.fit = nil
	r.inputDim = 0
}

// toContainer validates row-major prediction inputs and converts them to
// the engine's column-major container.
func (r *RandomFeatureRegressor) toContainer(method string, X mat.Matrix) (*data.Container, error) {
	op := "RandomFeatureRegressor." + method
	if !r.IsFitted() {
		return nil, errors.NewNotFittedError("RandomFeatureRegressor", method)
	}
	if X == nil {
		return nil, errors.NewValueError(op, "inputs must not be nil")
	}
	if _, xc := X.Dims(); xc != r.inputDim {
		return nil, errors.NewDimensionError(op, r.inputDim, xc, 1)
	}
	return data.NewContainerFromRows(X)
}

// rowToColumn converts the engine's 1 × n row into an n × 1 column.
func rowToColumn(row *mat.Dense) *mat.Dense {
	_, n := row.Dims()
	out := mat.NewDense(n, 1, nil)
	for j := 0; j < n; j++ {
		out.Set(j, 0, row.At(0, j))
	}
	return out
}
