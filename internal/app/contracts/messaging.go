package contracts

import (
	"context"
	"ehr-bundle-service/internal/app/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.BundleEvent) error
}
