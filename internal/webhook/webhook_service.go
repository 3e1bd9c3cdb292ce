package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/croakcroak22/webhook/common"
	"github.com/croakcroak22/webhook/internal/config"
	"github.com/croakcroak22/webhook/internal/dto"
	"github.com/croakcroak22/webhook/internal/models"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

type WebhookService struct {
	repo     WebhookRepoInterface
	logs     LogRepoInterface
	executor ExecutorInterface
	logger   *zap.Logger
}

func NewWebhookService(repo WebhookRepoInterface, logs LogRepoInterface, executor ExecutorInterface, logger *zap.Logger) *WebhookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookService{repo: repo, logs: logs, executor: executor, logger: logger}
}

var _ WebhookServiceInterface = (*WebhookService)(nil)

// Create validates a webhook specification, applies defaults, persists it
// and writes a creation audit entry. Returns the stored webhook including
// its resolved next run time.
func (s *WebhookService) Create(ctx context.Context, in *dto.WebhookCreateDTO) (*dto.WebhookResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request canceled or timed out")
	}

	if err := validateTargetURL(in.TargetURL); err != nil {
		return nil, err
	}
	if err := validateSchedule(in.ScheduleKind, in.ScheduledAt, in.IntervalMinutes); err != nil {
		return nil, err
	}

	maxRetries := config.DefaultMaxRetries
	if in.MaxRetries != nil {
		maxRetries = *in.MaxRetries
	}

	leads, err := leadsJSON(in.Leads)
	if err != nil {
		return nil, common.Errf(http.StatusBadRequest, "invalid leads payload")
	}

	wh := models.Webhook{
		ID:              uuid.NewString(),
		Name:            in.Name,
		TargetURL:       in.TargetURL,
		Message:         in.Message,
		Leads:           leads,
		Tags:            tagsJSON(in.Tags),
		ScheduleKind:    in.ScheduleKind,
		ScheduledAt:     in.ScheduledAt,
		IntervalMinutes: in.IntervalMinutes,
		Status:          string(config.StatusPending),
		MaxRetries:      maxRetries,
	}

	if err := s.repo.Create(ctx, &wh); err != nil {
		return nil, mapStorageErr(err, "failed to create webhook")
	}

	s.audit(ctx, wh.ID, "webhook created")

	return s.toResponse(ctx, &wh), nil
}

// Get retrieves one webhook by ID, soft-deleted ones included (the trash
// view needs them).
func (s *WebhookService) Get(ctx context.Context, id string) (*dto.WebhookResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	wh, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "failed to get webhook")
	}
	return s.toResponse(ctx, wh), nil
}

// List returns the non-deleted webhooks, optionally filtered by status.
func (s *WebhookService) List(ctx context.Context, status string) ([]dto.WebhookResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	webhooks, err := s.repo.List(ctx, false, status)
	if err != nil {
		return nil, mapStorageErr(err, "failed to list webhooks")
	}
	return s.toResponses(ctx, webhooks), nil
}

// ListTrash returns the soft-deleted webhooks.
func (s *WebhookService) ListTrash(ctx context.Context) ([]dto.WebhookResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	webhooks, err := s.repo.List(ctx, true, "")
	if err != nil {
		return nil, mapStorageErr(err, "failed to list trash")
	}
	return s.toResponses(ctx, webhooks), nil
}

// Update replaces the mutable fields of a non-deleted webhook. MaxRetries,
// status and counters are untouched.
func (s *WebhookService) Update(ctx context.Context, id string, in *dto.WebhookUpdateDTO) (*dto.WebhookResponseDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	if err := validateTargetURL(in.TargetURL); err != nil {
		return nil, err
	}
	if err := validateSchedule(in.ScheduleKind, in.ScheduledAt, in.IntervalMinutes); err != nil {
		return nil, err
	}

	wh, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "failed to get webhook")
	}
	if wh.IsDeleted {
		return nil, common.Errf(http.StatusConflict, "webhook is in trash")
	}

	leads, err := leadsJSON(in.Leads)
	if err != nil {
		return nil, common.Errf(http.StatusBadRequest, "invalid leads payload")
	}

	fields := map[string]any{
		"name":             in.Name,
		"target_url":       in.TargetURL,
		"message":          in.Message,
		"leads":            leads,
		"tags":             tagsJSON(in.Tags),
		"schedule_kind":    in.ScheduleKind,
		"scheduled_at":     in.ScheduledAt,
		"interval_minutes": in.IntervalMinutes,
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, mapStorageErr(err, "failed to update webhook")
	}

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "failed to get webhook")
	}
	return s.toResponse(ctx, updated), nil
}

// ExecuteNow runs one webhook synchronously, outside the scheduling
// cadence, and returns the delivery result to the caller.
func (s *WebhookService) ExecuteNow(ctx context.Context, id string) (*dto.ExecutionResultDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	wh, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapStorageErr(err, "failed to get webhook")
	}
	if wh.IsDeleted {
		return nil, common.Errf(http.StatusConflict, "webhook is in trash")
	}

	result, err := s.executor.Execute(ctx, wh, true)
	if err != nil {
		if errors.Is(err, ErrNotPending) {
			return nil, common.Errf(http.StatusConflict, "webhook is not pending")
		}
		s.logger.Error("manual execution failed", zap.String("webhook_id", id), zap.Error(err))
		return nil, common.Errf(http.StatusInternalServerError, "failed to execute webhook")
	}
	return result, nil
}

// Cancel administratively terminates a pending webhook.
func (s *WebhookService) Cancel(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	wh, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapStorageErr(err, "failed to get webhook")
	}
	if wh.Status != string(config.StatusPending) {
		return common.Errf(http.StatusConflict, "only pending webhooks can be cancelled")
	}

	if err := s.repo.Update(ctx, id, map[string]any{"status": string(config.StatusCancelled)}); err != nil {
		return mapStorageErr(err, "failed to cancel webhook")
	}

	s.audit(ctx, id, "webhook cancelled")
	return nil
}

// SoftDelete moves a webhook to the trash. Its status and log history
// are kept.
func (s *WebhookService) SoftDelete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	wh, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapStorageErr(err, "failed to get webhook")
	}
	if wh.IsDeleted {
		return common.Errf(http.StatusConflict, "webhook is already in trash")
	}

	if err := s.repo.SoftDelete(ctx, id, time.Now()); err != nil {
		return mapStorageErr(err, "failed to delete webhook")
	}

	s.audit(ctx, id, "webhook moved to trash")
	return nil
}

// Restore takes a webhook out of the trash, reversing exactly what
// SoftDelete did.
func (s *WebhookService) Restore(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	wh, err := s.repo.Get(ctx, id)
	if err != nil {
		return mapStorageErr(err, "failed to get webhook")
	}
	if !wh.IsDeleted {
		return common.Errf(http.StatusConflict, "webhook is not in trash")
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		return mapStorageErr(err, "failed to restore webhook")
	}

	s.audit(ctx, id, "webhook restored from trash")
	return nil
}

// Purge permanently removes a webhook and all of its log entries.
func (s *WebhookService) Purge(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		return mapStorageErr(err, "failed to get webhook")
	}

	if err := s.repo.Purge(ctx, id); err != nil {
		return mapStorageErr(err, "failed to purge webhook")
	}
	return nil
}

// SoftDeleteAll moves every active webhook to the trash. The caller must
// supply the exact confirmation token.
func (s *WebhookService) SoftDeleteAll(ctx context.Context, confirm string) (*dto.BulkResultDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	if confirm != config.ConfirmDeleteAll {
		return nil, common.NewAPIError(
			http.StatusBadRequest,
			"confirmation token mismatch",
			map[string]any{"expected": config.ConfirmDeleteAll},
		)
	}

	count, err := s.repo.SoftDeleteAll(ctx, time.Now())
	if err != nil {
		return nil, mapStorageErr(err, "failed to delete webhooks")
	}

	s.logger.Info("bulk soft delete", zap.Int64("deleted", count))
	return &dto.BulkResultDTO{DeletedCount: count}, nil
}

// EmptyTrash permanently removes every soft-deleted webhook with its
// logs. The caller must supply the exact confirmation token, distinct
// from the bulk-delete one.
func (s *WebhookService) EmptyTrash(ctx context.Context, confirm string) (*dto.PurgeResultDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	if confirm != config.ConfirmEmptyTrash {
		return nil, common.NewAPIError(
			http.StatusBadRequest,
			"confirmation token mismatch",
			map[string]any{"expected": config.ConfirmEmptyTrash},
		)
	}

	count, err := s.repo.PurgeDeleted(ctx)
	if err != nil {
		return nil, mapStorageErr(err, "failed to empty trash")
	}

	s.logger.Info("trash emptied", zap.Int64("purged", count))
	return &dto.PurgeResultDTO{PurgedCount: count}, nil
}

// Logs returns one webhook's execution history newest first.
func (s *WebhookService) Logs(ctx context.Context, webhookID string, limit, offset int) (*dto.LogPageDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	if _, err := s.repo.Get(ctx, webhookID); err != nil {
		return nil, mapStorageErr(err, "failed to get webhook")
	}

	limit, offset = clampPage(limit, offset)
	entries, total, err := s.logs.ListByWebhook(ctx, webhookID, limit, offset)
	if err != nil {
		return nil, mapStorageErr(err, "failed to list logs")
	}

	page := dto.LogPageDTO{
		Data:       make([]dto.LogResponseDTO, len(entries)),
		Pagination: dto.PaginationDTO{Total: total, Limit: limit, Offset: offset},
	}
	for i, entry := range entries {
		page.Data[i] = toLogDTO(&entry, "", "")
	}
	return &page, nil
}

// AllLogs returns the execution history across all webhooks newest first,
// each entry joined with its owner's name and URL.
func (s *WebhookService) AllLogs(ctx context.Context, limit, offset int) (*dto.LogPageDTO, error) {
	if err := ctx.Err(); err != nil {
		return nil, common.Errf(http.StatusRequestTimeout, "request timed out")
	}

	limit, offset = clampPage(limit, offset)
	details, total, err := s.logs.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, mapStorageErr(err, "failed to list logs")
	}

	page := dto.LogPageDTO{
		Data:       make([]dto.LogResponseDTO, len(details)),
		Pagination: dto.PaginationDTO{Total: total, Limit: limit, Offset: offset},
	}
	for i, d := range details {
		page.Data[i] = toLogDTO(&d.WebhookLog, d.WebhookName, d.WebhookURL)
	}
	return &page, nil
}

// audit appends an informational log entry for an administrative action.
// A failed audit write is logged but never fails the action itself.
func (s *WebhookService) audit(ctx context.Context, webhookID, message string) {
	entry := models.WebhookLog{
		ID:        uuid.NewString(),
		WebhookID: webhookID,
		Timestamp: time.Now(),
		Status:    config.LogStatusInfo,
		Message:   message,
	}
	if err := s.logs.Create(ctx, &entry); err != nil {
		s.logger.Warn("audit entry failed",
			zap.String("webhook_id", webhookID),
			zap.String("action", message),
			zap.Error(err),
		)
	}
}

func validateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return common.Errf(http.StatusBadRequest, "target_url must be a valid absolute URL")
	}
	return nil
}

func validateSchedule(kind string, scheduledAt *time.Time, intervalMinutes int) error {
	switch kind {
	case config.ScheduleOnce:
		if scheduledAt == nil {
			return common.Errf(http.StatusBadRequest, "scheduled_at is required for a one-shot schedule")
		}
	case config.ScheduleInterval:
		if intervalMinutes <= 0 {
			return common.Errf(http.StatusBadRequest, "interval_minutes must be positive for an interval schedule")
		}
	default:
		return common.NewAPIError(
			http.StatusBadRequest,
			"invalid schedule kind",
			map[string]any{
				"provided": kind,
				"allowed":  config.AllowedScheduleKinds,
			},
		)
	}
	return nil
}

// mapStorageErr translates repository errors into typed API errors.
func mapStorageErr(err error, fallback string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return common.Errf(http.StatusRequestTimeout, "request timed out")
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.Errf(http.StatusNotFound, "webhook not found")
	default:
		return common.Errf(http.StatusInternalServerError, "%s", fallback)
	}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func leadsJSON(leads []dto.LeadDTO) (datatypes.JSON, error) {
	b, err := json.Marshal(leads)
	if err != nil {
		return nil, fmt.Errorf("marshal leads: %w", err)
	}
	return datatypes.JSON(b), nil
}

// tagsJSON canonicalizes an absent tag set to an empty JSON array.
func tagsJSON(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return datatypes.JSON(b)
}

func (s *WebhookService) toResponse(ctx context.Context, wh *models.Webhook) *dto.WebhookResponseDTO {
	return toResponseDTO(wh, s.nextRunAt(ctx, wh))
}

func (s *WebhookService) toResponses(ctx context.Context, webhooks []models.Webhook) []dto.WebhookResponseDTO {
	out := make([]dto.WebhookResponseDTO, len(webhooks))
	for i := range webhooks {
		out[i] = *s.toResponse(ctx, &webhooks[i])
	}
	return out
}

func toResponseDTO(wh *models.Webhook, nextRunAt *time.Time) *dto.WebhookResponseDTO {
	var leads []dto.LeadDTO
	_ = json.Unmarshal(wh.Leads, &leads)

	tags := []string{}
	_ = json.Unmarshal(wh.Tags, &tags)

	return &dto.WebhookResponseDTO{
		ID:              wh.ID,
		Name:            wh.Name,
		TargetURL:       wh.TargetURL,
		Message:         wh.Message,
		Leads:           leads,
		Tags:            tags,
		ScheduleKind:    wh.ScheduleKind,
		ScheduledAt:     wh.ScheduledAt,
		IntervalMinutes: wh.IntervalMinutes,
		Status:          wh.Status,
		RetryCount:      wh.RetryCount,
		MaxRetries:      wh.MaxRetries,
		LastError:       wh.LastError,
		NextRunAt:       nextRunAt,
		ExecutedAt:      wh.ExecutedAt,
		IsDeleted:       wh.IsDeleted,
		DeletedAt:       wh.DeletedAt,
		CreatedAt:       wh.CreatedAt,
		UpdatedAt:       wh.UpdatedAt,
	}
}

// nextRunAt resolves when a webhook is next expected to fire. Terminal and
// trashed webhooks have no next run. Interval schedules anchor on the
// newest log entry, the same anchor the scheduler uses for due-selection,
// so the advertised time matches actual firing even after failed attempts.
func (s *WebhookService) nextRunAt(ctx context.Context, wh *models.Webhook) *time.Time {
	if wh.IsDeleted || wh.Status != string(config.StatusPending) {
		return nil
	}
	switch wh.ScheduleKind {
	case config.ScheduleOnce:
		return wh.ScheduledAt
	case config.ScheduleInterval:
		if wh.IntervalMinutes <= 0 {
			return nil
		}
		anchor := wh.CreatedAt
		if last, err := s.logs.LastAttemptAt(ctx, wh.ID); err == nil && last != nil {
			anchor = *last
		}
		next := anchor.Add(time.Duration(wh.IntervalMinutes) * time.Minute)
		return &next
	default:
		return nil
	}
}

func toLogDTO(entry *models.WebhookLog, webhookName, webhookURL string) dto.LogResponseDTO {
	return dto.LogResponseDTO{
		ID:           entry.ID,
		WebhookID:    entry.WebhookID,
		Timestamp:    entry.Timestamp,
		Status:       entry.Status,
		Message:      entry.Message,
		Response:     json.RawMessage(entry.Response),
		ErrorMessage: entry.ErrorMessage,
		DurationMs:   entry.DurationMs,
		WebhookName:  webhookName,
		WebhookURL:   webhookURL,
	}
}
