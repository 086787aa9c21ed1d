package constvars

// Validation messages for request DTOs, map it with respective tag field
var CustomValidationErrorMessages = map[string]string{
	"required":         "is required",
	"required_without": "is required when %s is empty",
	"min":              "must be at least %s",
	"max":              "must be at most %s",
	"oneof":            "must be one of %s",
}

var TagsWithParams = map[string]bool{
	"required_without": true,
	"min":              true,
	"max":              true,
	"oneof":            true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientInvalidAPIKeyOrToken          = "invalid api key or token"
	ErrClientBundleMalformed               = "bundle document is malformed"
	ErrClientBundleInvalid                 = "bundle failed validation"
	ErrClientBundleNotFound                = "bundle not found"
	ErrClientBundleArchiveNotFound         = "bundle archive not found"
	ErrClientRequestBodyTooLarge           = "request body is too large"
	ErrClientIngestQuotaExceeded           = "ingest quota exceeded, try again later"
	ErrClientBundleIngestInProgress        = "bundle is being ingested by another request"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCannotReadRequestBody  = "cannot read request body"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevCannotUnmarshalJSON    = "cannot unmarshal JSON"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerProcess          = "server failed to process the request"

	// Auth messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenMissing          = "api key or bearer token missing"
	ErrDevAuthTokenInvalidOrExpired = "bearer token invalid or expired"
	ErrDevAuthInvalidAPIKey         = "invalid api key"
	ErrDevIngestQuotaExceeded       = "subject %s exceeded ingest quota, retry after %d seconds"

	// Bundle messages
	ErrDevBundleStructure      = "bundle document failed structural parsing"
	ErrDevBundleValidation     = "bundle failed %d validation rule(s)"
	ErrDevBundleNotFound       = "bundle %s not found"
	ErrDevBundleArchiveMissing = "bundle %s has no archive object"
	ErrDevBundleArchiveDigest  = "archive digest mismatch for bundle %s"
	ErrDevBundleLocked         = "bundle %s is locked by a concurrent ingest"

	// Crypto messages
	ErrDevEncryptPayload = "failed to encrypt payload"
	ErrDevDecryptPayload = "failed to decrypt payload"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents on database"
	ErrDevDBFailedToAggregate        = "failed to aggregate documents on database"
	ErrDevDBFailedToInsertData       = "failed to insert data into database"
	ErrDevDBFailedToFindData         = "failed to find data on database"
	ErrDevDBFailedToDeleteData       = "failed to delete data on database"
	ErrDevDBFailedToIterateDataset   = "failed to iterate dataset on database"

	// Redis messages
	ErrDevRedisGetData    = "failed to get data from redis"
	ErrDevRedisSetData    = "failed to set data into redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object on bucket %s"
	ErrDevMinioFailedToGetObject    = "failed to get object from bucket %s"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"
	ErrDevRabbitMQDeclareQueue   = "failed to declare queue %s"
	ErrDevRabbitMQOpenChannel    = "failed to open rabbitmq channel"
)
