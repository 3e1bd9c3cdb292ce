package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/models"
	"github.com/croakcroak22/webhook/internal/webhook"
)

type WebhookRepository struct {
	db *gorm.DB
}

func NewWebhookRepository(db *gorm.DB) *WebhookRepository {
	return &WebhookRepository{db: db}
}

var _ webhook.WebhookRepoInterface = (*WebhookRepository)(nil)

// Create inserts a new webhook record. Returns an error if the database
// operation fails.
func (r *WebhookRepository) Create(ctx context.Context, wh *models.Webhook) error {
	if err := r.db.WithContext(ctx).Create(wh).Error; err != nil {
		return fmt.Errorf("create webhook: %w", err)
	}
	return nil
}

// Get retrieves a single webhook by its ID, soft-deleted ones included.
func (r *WebhookRepository) Get(ctx context.Context, id string) (*models.Webhook, error) {
	var wh models.Webhook
	if err := r.db.WithContext(ctx).First(&wh, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("webhook not found: %w", err)
		}
		return nil, fmt.Errorf("get webhook: %w", err)
	}
	return &wh, nil
}

// List retrieves webhooks filtered by the soft-delete flag and optionally
// by status, newest first.
func (r *WebhookRepository) List(ctx context.Context, deleted bool, status string) ([]models.Webhook, error) {
	q := r.db.WithContext(ctx).Where("is_deleted = ?", deleted)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var webhooks []models.Webhook
	if err := q.Order("created_at DESC").Find(&webhooks).Error; err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	return webhooks, nil
}

// Update applies a partial field set to one webhook.
func (r *WebhookRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.db.WithContext(ctx).Model(&models.Webhook{}).
		Where("id = ?", id).
		Updates(fields).Error; err != nil {
		return fmt.Errorf("update webhook: %w", err)
	}
	return nil
}

// ListDue returns the non-deleted pending webhooks that still have retry
// budget, or that have never been attempted, in creation order. The
// scheduler applies the trigger-time condition on top of this set.
func (r *WebhookRepository) ListDue(ctx context.Context) ([]models.Webhook, error) {
	var webhooks []models.Webhook
	if err := r.db.WithContext(ctx).
		Where("is_deleted = ? AND status = ?", false, string(config.StatusPending)).
		Where("retry_count < max_retries OR retry_count = 0").
		Order("created_at ASC").
		Find(&webhooks).Error; err != nil {
		return nil, fmt.Errorf("list due webhooks: %w", err)
	}
	return webhooks, nil
}

// Claim transitions a webhook from pending to executing with a guarded
// update, so only one caller can win a given attempt. On a win it returns
// the refreshed row, so the caller decides on current counters rather than
// whatever snapshot it selected earlier. Returns nil when the webhook was
// not pending (or was soft-deleted meanwhile).
func (r *WebhookRepository) Claim(ctx context.Context, id string) (*models.Webhook, error) {
	tx := r.db.WithContext(ctx).Model(&models.Webhook{}).
		Where("id = ? AND status = ? AND is_deleted = ?", id, string(config.StatusPending), false).
		Update("status", string(config.StatusExecuting))
	if tx.Error != nil {
		return nil, fmt.Errorf("claim webhook: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, id)
}

// SoftDelete hides a webhook from listings and due-selection. Status and
// every other field stay untouched so a later restore is exact.
func (r *WebhookRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	if err := r.db.WithContext(ctx).Model(&models.Webhook{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": at,
		}).Error; err != nil {
		return fmt.Errorf("soft delete webhook: %w", err)
	}
	return nil
}

// SoftDeleteAll soft-deletes every active webhook and reports how many
// were affected.
func (r *WebhookRepository) SoftDeleteAll(ctx context.Context, at time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Webhook{}).
		Where("is_deleted = ?", false).
		Updates(map[string]any{
			"is_deleted": true,
			"deleted_at": at,
		})
	if tx.Error != nil {
		return 0, fmt.Errorf("soft delete all webhooks: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

// Restore clears the soft-delete flag and timestamp, nothing else.
func (r *WebhookRepository) Restore(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Model(&models.Webhook{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]any{
			"is_deleted": false,
			"deleted_at": nil,
		}).Error; err != nil {
		return fmt.Errorf("restore webhook: %w", err)
	}
	return nil
}

// Purge permanently removes a webhook and its log entries in one
// transaction. Unrecoverable.
func (r *WebhookRepository) Purge(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("webhook_id = ?", id).Delete(&models.WebhookLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Webhook{}).Error
	})
	if err != nil {
		return fmt.Errorf("purge webhook: %w", err)
	}
	return nil
}

// PurgeDeleted permanently removes every soft-deleted webhook with its
// logs and reports how many webhooks were removed.
func (r *WebhookRepository) PurgeDeleted(ctx context.Context) (int64, error) {
	var purged int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []string
		if err := tx.Model(&models.Webhook{}).
			Where("is_deleted = ?", true).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("webhook_id IN ?", ids).Delete(&models.WebhookLog{}).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&models.Webhook{})
		if res.Error != nil {
			return res.Error
		}
		purged = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("purge deleted webhooks: %w", err)
	}
	return purged, nil
}
