package config

const (
	EnvPrefix = "PASTAPREGO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv           = "PASTAPREGO_APP_ENV"
	EnvPort             = "PASTAPREGO_APP_PORT"
	EnvStorageDriver    = "PASTAPREGO_STORAGE_DRIVER"
	EnvStorageDir       = "PASTAPREGO_STORAGE_DIR"
	EnvCartRecord       = "PASTAPREGO_CART_RECORD"
	EnvDBDSN            = "PASTAPREGO_DB_DSN"
	EnvRedisURL         = "PASTAPREGO_REDIS_URL"
	EnvRedisAddr        = "PASTAPREGO_REDIS_ADDR"
	EnvDeliveryFeeCents = "PASTAPREGO_DELIVERY_FEE_CENTS"
	EnvTransitionDelay  = "PASTAPREGO_TRANSITION_DELAY"
	EnvMaxOpenCarts     = "PASTAPREGO_MAX_OPEN_CARTS"
)
