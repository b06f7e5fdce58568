// Attribute keys shared by every logging call site in the library.
//
// Keys follow a dotted hierarchy ("data.samples", "batch.train",
// "linalg.decomposition") so records can be filtered by concern. Call sites
// must use these constants rather than string literals; tests assert against
// the same names.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model type, for example
	// "RandomFeatureRegressor".
	ModelNameKey = "model.name"

	// EstimatorIDKey carries a caller-assigned instance identifier when
	// several models of the same type run side by side.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed. Standard
	// values: "fit", "predict", "predict_prior", "sample", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or component emitting the
	// record, for example "regression.fit" or "samplers".
	ComponentKey = "ml.component"

	// PhaseKey distinguishes "training", "inference" and "sampling"
	// phases in mixed workloads.
	PhaseKey = "ml.phase"
)

// Data shape.
const (
	// SamplesKey is the number of samples being processed.
	SamplesKey = "data.samples"

	// InputDimKey is the dimensionality of each input point.
	InputDimKey = "data.input_dim"

	// TargetsKey is the number of target variables; scalar-output
	// regression uses 1.
	TargetsKey = "data.targets"

	// BatchSizeKey is a generic batch size. 0 means the whole axis is
	// processed as one batch.
	BatchSizeKey = "data.batch_size"

	// TrainBatchKey, TestBatchKey and FeatureBatchKey are the per-axis
	// batch sizes of the regression engine.
	TrainBatchKey   = "batch.train"
	TestBatchKey    = "batch.test"
	FeatureBatchKey = "batch.feature"
)

// Random feature configuration.
const (
	// FeatureCountKey is the number of random features in the map.
	FeatureCountKey = "features.count"

	// FeatureTypeKey is the feature family, "fourier" or "neuron".
	FeatureTypeKey = "features.type"

	// ActivationKey names the scalar activation: "cos", "sin", "relu",
	// "sigmoid" or "tanh".
	ActivationKey = "features.activation"
)

// Linear algebra context.
const (
	// DecompositionKey names the factorization used for a solve:
	// "svd", "qr", "cholesky" or "pinv".
	DecompositionKey = "linalg.decomposition"

	// ConditionNumberKey is the estimated condition number of the system
	// matrix when the factorization reports one.
	ConditionNumberKey = "linalg.condition"

	// MatrixDimKey is the dimension of the square system matrix.
	MatrixDimKey = "linalg.dim"
)

// Performance and evaluation.
const (
	DurationMsKey      = "perf.duration_ms"
	DurationSecondsKey = "perf.duration_seconds"
	MemoryUsageKey     = "perf.memory_bytes"

	// MSEKey and R2ScoreKey record evaluation results.
	MSEKey     = "metrics.mse"
	LossKey    = "metrics.loss"
	R2ScoreKey = "metrics.r2_score"

	// IterationKey tracks progress through batch accumulation loops.
	IterationKey = "training.iteration"
)

// Error and warning context.
const (
	// ErrorCodeKey carries a structured code such as "SINGULAR_MATRIX".
	ErrorCodeKey = "error.code"

	// ErrorTypeKey carries the Go type name of the error.
	ErrorTypeKey = "error.type"

	// StacktraceKey carries formatted stack trace text.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey carries a remediation hint alongside an error record.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and reproducibility.
const (
	// HyperParamsKey carries the full hyperparameter set as one object.
	HyperParamsKey = "model.hyperparams"

	// RegularizationKey is the ridge strength λ added to the normal
	// equations before solving.
	RegularizationKey = "hyperparams.regularization"

	// CoefficientScaleKey is the scalar σc applied to every feature.
	CoefficientScaleKey = "hyperparams.coefficient_scale"

	// RandomSeedKey records the sampler seed of a fit.
	RandomSeedKey = "config.random_seed"

	// ConfigVersionKey tracks configuration versions across runs.
	ConfigVersionKey = "config.version"
)

// Standard values for OperationKey.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationPredictPrior = "predict_prior"
	OperationSample       = "sample"
	OperationScore        = "score"
)

// Standard values for PhaseKey.
const (
	PhaseTraining  = "training"
	PhaseInference = "inference"
	PhaseSampling  = "sampling"
)

// Standard values for ErrorCodeKey.
const (
	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorBadConfiguration  = "BAD_CONFIGURATION"
	ErrorSingularMatrix    = "SINGULAR_MATRIX"
	ErrorNotImplemented    = "NOT_IMPLEMENTED"
)
