package config

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Bundle   AppBundle
	Archive  AppArchive
	Cache    AppCache
	Quota    AppQuota
	RabbitMQ AppRabbitMQ
	Minio    AppMinio
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	EndpointPrefix             string
	APIKey                     string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	MaxTimeRequestsPerSeconds  int
	RequestBodyLimitInMegabyte int
	RequestTimeoutInSeconds    int
	CorsAllowedOrigins         []string
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppBundle struct {
	// Store selects the bundle repository driver, "mongo" or "postgres".
	Store string
}

type AppArchive struct {
	Enabled       bool
	EncryptionKey string
}

type AppCache struct {
	BundleTTLInMinutes int
}

type AppQuota struct {
	// IngestPerWindow caps writes per authenticated subject. Zero disables it.
	IngestPerWindow int
	WindowInSeconds int
}

type AppRabbitMQ struct {
	Enabled          bool
	BundleEventQueue string
}

type AppMinio struct {
	BucketName string
}
