package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvSessionHashKey  = "SESSION_HASH_KEY"
	EnvSessionBlockKey = "SESSION_BLOCK_KEY"

	EnvStorageEndpoint = "STORAGE_ENDPOINT"
	EnvStorageRegion   = "STORAGE_REGION"
	EnvStorageBucket   = "STORAGE_BUCKET"
	EnvStorageKey      = "STORAGE_ACCESS_KEY"
	EnvStorageSecret   = "STORAGE_SECRET_KEY"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
