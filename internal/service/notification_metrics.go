package service

import (
	"context"

	"github.com/helixflow/helixflow-api/internal/models"
	"github.com/helixflow/helixflow-api/internal/repository"
)

// MeteredNotificationRepository counts every notification that reaches the
// store, regardless of which service emitted it.
type MeteredNotificationRepository struct {
	*repository.NotificationRepository
	metrics *MetricsService
}

// NewMeteredNotificationRepository wraps the repository with instrumentation.
func NewMeteredNotificationRepository(repo *repository.NotificationRepository, metrics *MetricsService) *MeteredNotificationRepository {
	return &MeteredNotificationRepository{NotificationRepository: repo, metrics: metrics}
}

// Add stores the notification and bumps the emitted counter on success.
func (r *MeteredNotificationRepository) Add(ctx context.Context, n models.Notification) (models.Notification, error) {
	out, err := r.NotificationRepository.Add(ctx, n)
	if err == nil && r.metrics != nil {
		r.metrics.RecordNotification()
	}
	return out, err
}
