package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/croakcroak22/webhook/internal/models"
	"github.com/croakcroak22/webhook/internal/webhook"
)

type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

var _ webhook.LogRepoInterface = (*LogRepository)(nil)

// Create appends one log entry. Entries are never updated afterwards.
func (r *LogRepository) Create(ctx context.Context, entry *models.WebhookLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create log entry: %w", err)
	}
	return nil
}

// ListByWebhook returns one webhook's log entries newest first, with the
// total count for pagination.
func (r *LogRepository) ListByWebhook(ctx context.Context, webhookID string, limit, offset int) ([]models.WebhookLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.WebhookLog{}).
		Where("webhook_id = ?", webhookID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count log entries: %w", err)
	}

	var entries []models.WebhookLog
	if err := r.db.WithContext(ctx).
		Where("webhook_id = ?", webhookID).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("list log entries: %w", err)
	}
	return entries, total, nil
}

// ListAll returns log entries across all webhooks newest first, joined
// with each owner's name and target URL.
func (r *LogRepository) ListAll(ctx context.Context, limit, offset int) ([]models.WebhookLogDetail, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.WebhookLog{}).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count log entries: %w", err)
	}

	var details []models.WebhookLogDetail
	if err := r.db.WithContext(ctx).
		Table("webhook_logs").
		Select("webhook_logs.*, webhooks.name AS webhook_name, webhooks.target_url AS webhook_url").
		Joins("LEFT JOIN webhooks ON webhooks.id = webhook_logs.webhook_id").
		Order("webhook_logs.timestamp DESC").
		Limit(limit).
		Offset(offset).
		Scan(&details).Error; err != nil {
		return nil, 0, fmt.Errorf("list all log entries: %w", err)
	}
	return details, total, nil
}

// LastAttemptAt returns the timestamp of the newest log entry for a
// webhook, or nil when it has none.
func (r *LogRepository) LastAttemptAt(ctx context.Context, webhookID string) (*time.Time, error) {
	var entry models.WebhookLog
	err := r.db.WithContext(ctx).
		Where("webhook_id = ?", webhookID).
		Order("timestamp DESC").
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("last attempt: %w", err)
	}
	ts := entry.Timestamp
	return &ts, nil
}
