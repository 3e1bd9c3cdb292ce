package webhook

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/croakcroak22/webhook/common"
	"github.com/croakcroak22/webhook/internal/dto"
	"github.com/croakcroak22/webhook/middleware"
)

type WebhookHandler struct {
	service WebhookServiceInterface
}

func NewWebhookHandler(s WebhookServiceInterface) *WebhookHandler {
	return &WebhookHandler{service: s}
}

var _ WebhookHandlerInterface = (*WebhookHandler)(nil)

// Create handles HTTP requests for registering a new webhook. It validates
// and binds the request body, delegates to the service, and returns the
// stored webhook with HTTP 201.
func (h *WebhookHandler) Create(c *gin.Context) {
	var req dto.WebhookCreateDTO

	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	resp, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get returns one webhook by ID.
func (h *WebhookHandler) Get(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List returns the non-deleted webhooks, optionally filtered by the
// status query parameter.
func (h *WebhookHandler) List(c *gin.Context) {
	webhooks, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, webhooks)
}

// ListTrash returns the soft-deleted webhooks.
func (h *WebhookHandler) ListTrash(c *gin.Context) {
	webhooks, err := h.service.ListTrash(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, webhooks)
}

// Update replaces the mutable fields of a webhook.
func (h *WebhookHandler) Update(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	var req dto.WebhookUpdateDTO
	if !middleware.Bind(c, &req) {
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Execute runs a webhook immediately and returns the delivery result.
func (h *WebhookHandler) Execute(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	result, err := h.service.ExecuteNow(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Cancel administratively terminates a pending webhook.
func (h *WebhookHandler) Cancel(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete soft-deletes a webhook (moves it to the trash).
func (h *WebhookHandler) Delete(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore takes a webhook out of the trash.
func (h *WebhookHandler) Restore(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Purge permanently removes a webhook and its log history.
func (h *WebhookHandler) Purge(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	if err := h.service.Purge(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAll soft-deletes every active webhook; the request body must carry
// the confirmation token.
func (h *WebhookHandler) DeleteAll(c *gin.Context) {
	var req dto.BulkConfirmDTO
	if !middleware.Bind(c, &req) {
		return
	}

	result, err := h.service.SoftDeleteAll(c.Request.Context(), req.Confirm)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// EmptyTrash permanently purges every soft-deleted webhook; the request
// body must carry the trash confirmation token.
func (h *WebhookHandler) EmptyTrash(c *gin.Context) {
	var req dto.BulkConfirmDTO
	if !middleware.Bind(c, &req) {
		return
	}

	result, err := h.service.EmptyTrash(c.Request.Context(), req.Confirm)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Logs returns one webhook's execution history, newest first, paginated
// via limit/offset query parameters.
func (h *WebhookHandler) Logs(c *gin.Context) {
	id, ok := webhookID(c)
	if !ok {
		return
	}

	page, err := h.service.Logs(c.Request.Context(), id, queryInt(c, "limit"), queryInt(c, "offset"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// AllLogs returns the execution history across all webhooks.
func (h *WebhookHandler) AllLogs(c *gin.Context) {
	page, err := h.service.AllLogs(c.Request.Context(), queryInt(c, "limit"), queryInt(c, "offset"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func webhookID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.Error(common.Errf(http.StatusBadRequest, "invalid webhook ID"))
		return "", false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
