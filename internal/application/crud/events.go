package crud

import (
	"context"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Publish sends event to topic. Failures are logged and never returned: the
// record is already stored when events go out.
func Publish(ctx context.Context, publisher shared.EventPublisher, log *zap.Logger, topic string, event any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, event); err != nil {
		if log == nil {
			log = logger.L(ctx)
		}
		log.Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
