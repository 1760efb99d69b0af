package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "venuedesk"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 2 * 1024 * 1024 // 2MB, gallery payloads are URL lists, not files

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultStoreReadTimeout  = 5 * time.Second
	DefaultStoreWriteTimeout = 5 * time.Second

	DefaultTokenTTL = 24 * time.Hour

	DefaultSlotLockTTL = 10 * time.Second

	// empty disables Redis and the catalog cache with it
	DefaultRedisAddr       = ""
	DefaultCatalogCacheTTL = 5 * time.Minute

	DefaultKafkaTopic = "venuedesk.bookings"
)
