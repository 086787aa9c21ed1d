package constvars

const (
	ResponseUnknown = "unknown"

	BundleIngestSuccessMessage   = "bundle ingested successfully"
	BundleValidateSuccessMessage = "bundle validated successfully"
	BundleGetSuccessMessage      = "get bundle successfully"
	BundleListSuccessMessage     = "list bundles successfully"
	BundleDeleteSuccessMessage   = "bundle deleted successfully"
	BundleSearchSuccessMessage   = "search bundles successfully"
	BundleStatsSuccessMessage    = "get bundle statistics successfully"
	BundleRestoreSuccessMessage  = "bundle archive restored successfully"
	HealthCheckSuccessMessage    = "service is healthy"
)
