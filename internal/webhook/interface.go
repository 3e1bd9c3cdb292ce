package webhook

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/croakcroak22/webhook/internal/dto"
	"github.com/croakcroak22/webhook/internal/models"
)

// ErrNotPending reports that an execution attempt found the webhook's
// persisted status to be something other than pending, so the attempt was
// aborted cleanly: no state change, no log entry.
var ErrNotPending = errors.New("webhook is not pending")

// WebhookRepoInterface defines the contract for webhook storage operations.
type WebhookRepoInterface interface {
	Create(ctx context.Context, wh *models.Webhook) error
	Get(ctx context.Context, id string) (*models.Webhook, error)
	// List returns webhooks filtered by the soft-delete flag and, when
	// status is non-empty, by status. Newest first.
	List(ctx context.Context, deleted bool, status string) ([]models.Webhook, error)
	// Update applies a partial field set to one webhook.
	Update(ctx context.Context, id string, fields map[string]any) error
	// ListDue returns the non-deleted pending webhooks that still have
	// retry budget (or have never been attempted), in creation order.
	// Trigger-time filtering happens in the scheduler.
	ListDue(ctx context.Context) ([]models.Webhook, error)
	// Claim transitions a webhook from pending to executing and returns
	// the refreshed row. It returns nil when the webhook was not pending,
	// which is how concurrent executions of the same webhook are fenced
	// off.
	Claim(ctx context.Context, id string) (*models.Webhook, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
	SoftDeleteAll(ctx context.Context, at time.Time) (int64, error)
	Restore(ctx context.Context, id string) error
	// Purge permanently removes the webhook and all of its log entries.
	Purge(ctx context.Context, id string) error
	// PurgeDeleted permanently removes every soft-deleted webhook with
	// its logs and reports how many webhooks were removed.
	PurgeDeleted(ctx context.Context) (int64, error)
}

// LogRepoInterface defines the contract for execution log storage.
// Entries are append-only.
type LogRepoInterface interface {
	Create(ctx context.Context, entry *models.WebhookLog) error
	ListByWebhook(ctx context.Context, webhookID string, limit, offset int) ([]models.WebhookLog, int64, error)
	ListAll(ctx context.Context, limit, offset int) ([]models.WebhookLogDetail, int64, error)
	// LastAttemptAt returns the timestamp of the newest log entry for a
	// webhook, or nil when it has none.
	LastAttemptAt(ctx context.Context, webhookID string) (*time.Time, error)
}

// ExecutorInterface is what the service needs to run a webhook on demand.
// Implemented by scheduler.Executor.
type ExecutorInterface interface {
	Execute(ctx context.Context, wh *models.Webhook, isManual bool) (*dto.ExecutionResultDTO, error)
}

// WebhookServiceInterface defines the contract for webhook business logic.
type WebhookServiceInterface interface {
	Create(ctx context.Context, in *dto.WebhookCreateDTO) (*dto.WebhookResponseDTO, error)
	Get(ctx context.Context, id string) (*dto.WebhookResponseDTO, error)
	List(ctx context.Context, status string) ([]dto.WebhookResponseDTO, error)
	ListTrash(ctx context.Context) ([]dto.WebhookResponseDTO, error)
	Update(ctx context.Context, id string, in *dto.WebhookUpdateDTO) (*dto.WebhookResponseDTO, error)
	ExecuteNow(ctx context.Context, id string) (*dto.ExecutionResultDTO, error)
	Cancel(ctx context.Context, id string) error
	SoftDelete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Purge(ctx context.Context, id string) error
	SoftDeleteAll(ctx context.Context, confirm string) (*dto.BulkResultDTO, error)
	EmptyTrash(ctx context.Context, confirm string) (*dto.PurgeResultDTO, error)
	Logs(ctx context.Context, webhookID string, limit, offset int) (*dto.LogPageDTO, error)
	AllLogs(ctx context.Context, limit, offset int) (*dto.LogPageDTO, error)
}

// WebhookHandlerInterface defines the contract for HTTP request handlers.
type WebhookHandlerInterface interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	ListTrash(c *gin.Context)
	Update(c *gin.Context)
	Execute(c *gin.Context)
	Cancel(c *gin.Context)
	Delete(c *gin.Context)
	Restore(c *gin.Context)
	Purge(c *gin.Context)
	DeleteAll(c *gin.Context)
	EmptyTrash(c *gin.Context)
	Logs(c *gin.Context)
	AllLogs(c *gin.Context)
}
