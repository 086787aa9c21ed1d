package middlewares

import (
	"ehr-bundle-service/internal/app/config"
	"ehr-bundle-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig

	// QuotaLimiter is optional. IngestQuota admits everything when it is nil.
	QuotaLimiter contracts.QuotaLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
	}
}
