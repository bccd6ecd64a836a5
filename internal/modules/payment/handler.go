package payment

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	reconciler *Reconciler
	validator  *WebhookValidator
	loggerf    func(format string, args ...interface{})
}

func NewHandler(reconciler *Reconciler, validator *WebhookValidator, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{reconciler: reconciler, validator: validator, loggerf: loggerf}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/webhooks/payment", h.Webhook)
}

// Webhook verifies the provider signature against the raw body, then hands
// the event to the reconciler. 200 covers success and already-processed
// replays; 500 tells the provider to retry.
func (h *Handler) Webhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	signature := c.GetHeader("X-Provider-Signature")
	if !h.validator.ValidateSignature(signature, rawBody) {
		h.loggerf("level=error msg=webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
		return
	}

	var env WebhookEnvelope
	if err := json.Unmarshal(rawBody, &env); err != nil || env.ID == "" || env.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed event"})
		return
	}

	if err := h.reconciler.HandleEvent(c.Request.Context(), env.ID, env.Type, env.Data); err != nil {
		h.loggerf("level=error msg=webhook processing failed event_id=%s type=%s err=%v", env.ID, env.Type, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
