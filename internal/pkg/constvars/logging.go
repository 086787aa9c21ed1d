package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseLengthKey = "response_length"
	LoggingDurationKey       = "duration"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingAuthSubjectKey    = "auth_subject"
	LoggingRoutePatternKey   = "route_pattern"
	LoggingIsClientRequestID = "is_client_request_id"
	LoggingPanicKey          = "panic"

	LoggingBundleIDKey         = "bundle_id"
	LoggingBundleTypeKey       = "bundle_type"
	LoggingEntryIndexKey       = "entry_index"
	LoggingEntryCountKey       = "entry_count"
	LoggingResourceTypeKey     = "resource_type"
	LoggingDiagnosticCodeKey   = "diagnostic_code"
	LoggingViolationCountKey   = "violation_count"
	LoggingSkippedCountKey     = "skipped_count"
	LoggingArchiveObjectKey    = "archive_object"
	LoggingPayloadDigestKey    = "payload_digest"
	LoggingQueueNameKey        = "queue_name"
	LoggingPatientIDKey        = "patient_id"
	LoggingPractitionerIDKey   = "practitioner_id"
	LoggingRepositoryDriverKey = "repository_driver"

	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
)
