package common

// Environment variable keys
const (
	EnvConfigFile          = "CONFIG_FILE"
	EnvPort                = "PORT"
	EnvBindAddr            = "BIND_ADDR"
	EnvReadTimeout         = "READ_TIMEOUT"
	EnvWriteTimeout        = "WRITE_TIMEOUT"
	EnvIdleTimeout         = "IDLE_TIMEOUT"
	EnvShutdownTimeout     = "SHUTDOWN_TIMEOUT"
	EnvModelPath           = "MODEL_PATH"
	EnvPredictionCacheSize = "PREDICTION_CACHE_SIZE"
	EnvLogLevel            = "LOG_LEVEL"
	EnvLogFormat           = "LOG_FORMAT"
	EnvLogFile             = "LOG_FILE"
	EnvMetricsEnabled      = "METRICS_ENABLED"
	EnvDataPath            = "DATA_PATH"
)

// Configuration defaults
const (
	DefaultPort            = 5000
	DefaultBindAddr        = "0.0.0.0"
	DefaultModelPath       = "models/house_price_model.json"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultDataPath        = "data"
	DefaultReadTimeoutSec  = 10
	DefaultWriteTimeoutSec = 10
	DefaultIdleTimeoutSec  = 120
	DefaultShutdownSec     = 10
)

// Feature order shared by the trainer and the model store
const (
	FeatureSurface = "surface"
	FeaturePieces  = "pieces"
)

// Error messages returned by the prediction API
const (
	ErrMsgModelNotLoaded   = "model not loaded"
	ErrMsgNoData           = "no data provided"
	ErrMsgFieldsRequired   = "surface and pieces are required"
	ErrMsgMethodNotAllowed = "method not allowed"
	ErrMsgNotFound         = "not found"
)
