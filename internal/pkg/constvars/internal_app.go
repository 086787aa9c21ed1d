package constvars

import "time"

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_AUTH_SUBJECT_KEY         ContextKey = "auth_subject"
)

const (
	REQUEST_ID_PREFIX = "EHR_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	AppDefaultPage         = 1
	AppDefaultPageSize     = 20
	AppMaxPageSize         = 100
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	BundleStoreMongo    = "mongo"
	BundleStorePostgres = "postgres"
)

const (
	MongoCollectionBundles = "bundles"
)

const (
	RedisBundleKeyFormat      = "bundle:%s"
	RedisIngestQuotaKeyFormat = "INGEST_QUOTA:%s:%d"
	RedisBundleLockKeyFormat  = "BUNDLE_LOCK:%s"
	BundleLockExpiration      = 30 * time.Second
)

const (
	ArchiveObjectNameFormat = "bundles/%s/%s.bin"
	ArchiveDigestPrefix     = "0x"
)

const (
	AuthSubjectAPIKey = "api-key"
)

const (
	URLParamBundleID = "bundleID"
)
