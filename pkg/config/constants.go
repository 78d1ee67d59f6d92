package config

// EnvPrefix is empty because every field carries its full SALON_* name in
// its envconfig tag.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names, shared with tests and ops docs.
const (
	EnvAppEnv      = "SALON_APP_ENV"
	EnvAppPort     = "SALON_APP_PORT"
	EnvLogLevel    = "SALON_LOG_LEVEL"
	EnvLogFormat   = "SALON_LOG_FORMAT"
	EnvDBPath      = "SALON_DB_PATH"
	EnvPhotosRoot  = "SALON_PHOTOS_ROOT"
	EnvAutoMigrate = "SALON_AUTO_MIGRATE"
)
