package constvars

const (
	EventBundleIngested = "bundle.ingested"
	EventBundleDeleted  = "bundle.deleted"
)
