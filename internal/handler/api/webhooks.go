package api

import (
	"net/http"

	reqdto "rental-hunter/internal/handler/dto/request"
	"rental-hunter/internal/handler/httperr"
	"rental-hunter/internal/pkg/clock"
	"rental-hunter/internal/pkg/errs"
	"rental-hunter/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errMissingResponseKey = errs.New("correlation_id or target_id is required")

type WebhookHandler struct {
	cmds  usecase.ResponseCommands
	clock clock.Clock
}

func NewWebhookHandler(cmds usecase.ResponseCommands, clk clock.Clock) *WebhookHandler {
	return &WebhookHandler{cmds: cmds, clock: clk}
}

// Response ingests an inbound reply signal. Matching by correlation id is
// preferred; a bare target id covers manual marking from the dashboard.
func (h *WebhookHandler) Response(c *gin.Context) {
	var req reqdto.ResponseWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	at := h.clock.Now()
	if req.ReceivedAt != nil {
		at = *req.ReceivedAt
	}

	var err error
	switch {
	case req.CorrelationID != "":
		err = h.cmds.RecordResponseByCorrelation(c.Request.Context(), req.CorrelationID, at)
	case req.TargetID != "":
		var targetID uuid.UUID
		targetID, err = uuid.Parse(req.TargetID)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid target_id", nil)
			return
		}
		err = h.cmds.MarkResponded(c.Request.Context(), targetID)
	default:
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingResponseKey, "Invalid request", nil)
		return
	}

	if err != nil {
		if usecase.IsNotFound(err) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to record response", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// Delivery ingests a provider delivery receipt.
func (h *WebhookHandler) Delivery(c *gin.Context) {
	var req reqdto.DeliveryWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	at := h.clock.Now()
	if req.DeliveredAt != nil {
		at = *req.DeliveredAt
	}

	if err := h.cmds.RecordDeliveryByCorrelation(c.Request.Context(), req.CorrelationID, at); err != nil {
		if usecase.IsNotFound(err) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to record delivery", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
