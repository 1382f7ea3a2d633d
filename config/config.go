package config

import "os"

var Current AppConfig

type AppConfig struct {
	// Port web server port
	Port string

	// AppEnv represent the environment in which the server runs
	AppEnv string

	// DataStore used as the file record store implementation
	DataStore string
	// DatabaseURL is the database URL (or file path for sqlite)
	DatabaseURL string

	// StorageProvider used as the blob storage implementation
	StorageProvider string
	// LocalStorageURL base URL for files when using local storage provider
	LocalStorageURL string

	// StorageAccountID public (non-secret) storage account identifier
	StorageAccountID string
	// StorageKeyPublic public API key sent along upload calls
	StorageKeyPublic string
	// StorageKeyPrivate secret key used to sign upload grants, never sent to clients
	StorageKeyPrivate string

	// AutomationWebhookURL receives the completion notification payload
	AutomationWebhookURL string

	// RedisURL URL for Redis
	RedisURL string
	// RedisHost if RedisURL is not used, host for Redis
	RedisHost string
	// RedisPassword if RedisURL is not used, password for Redis
	RedisPassword string

	// AWSRegion region for AWS
	AWSRegion string
	// AWSS3Bucket S3 bucket
	AWSS3Bucket string
	// AWSCDNURL CDN URL
	AWSCDNURL string

	// RetentionDays how many days receipt blobs are kept, "0" or empty disables the sweep
	RetentionDays string

	// LogFilename if set, logs are also written to this file
	LogFilename string
	// LogConsoleLevel minimum level for console logging
	LogConsoleLevel string
}

func LoadConfig() AppConfig {
	return AppConfig{
		Port:                 os.Getenv("PORT"),
		AppEnv:               os.Getenv("APP_ENV"),
		DataStore:            os.Getenv("DATA_STORE"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		StorageProvider:      os.Getenv("STORAGE_PROVIDER"),
		LocalStorageURL:      os.Getenv("LOCAL_STORAGE_URL"),
		StorageAccountID:     os.Getenv("STORAGE_ACCOUNT_ID"),
		StorageKeyPublic:     os.Getenv("STORAGE_KEY_PUBLIC"),
		StorageKeyPrivate:    os.Getenv("STORAGE_KEY_PRIVATE"),
		AutomationWebhookURL: os.Getenv("AUTOMATION_WEBHOOK_URL"),
		RedisURL:             os.Getenv("REDIS_URL"),
		RedisHost:            os.Getenv("REDIS_HOST"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		AWSRegion:            os.Getenv("AWS_REGION"),
		AWSS3Bucket:          os.Getenv("AWS_S3_BUCKET"),
		AWSCDNURL:            os.Getenv("AWS_CDN_URL"),
		RetentionDays:        os.Getenv("RETENTION_DAYS"),
		LogFilename:          os.Getenv("LOG_FILENAME"),
		LogConsoleLevel:      os.Getenv("LOG_CONSOLE_LEVEL"),
	}
}

// HasStorageCredentials reports if the three secret values required by the
// storage-facing entry points are present.
func (c AppConfig) HasStorageCredentials() bool {
	return c.StorageAccountID != "" && c.StorageKeyPublic != "" && c.StorageKeyPrivate != ""
}
