package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/webstatus/digestmail/app/channels"
	"github.com/webstatus/digestmail/app/database"
	"github.com/webstatus/digestmail/app/digest"
	"github.com/webstatus/digestmail/app/mailer"
	"github.com/webstatus/digestmail/app/tasks"
)

func NewHandler(configCache *channels.ConfigCache, channelRepo database.ChannelRepository,
	deliveryRepo database.DeliveryRepository, renderer *digest.Renderer,
	sender mailer.Sender, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		channelRepo:  channelRepo,
		deliveryRepo: deliveryRepo,
		configCache:  configCache,
		renderer:     renderer,
		sender:       sender,
		scheduler:    scheduler,
	}
}

// SubmitJob queues a digest delivery and enqueues the task that sends it.
func (h *Handler) SubmitJob(c *gin.Context) {
	var req SubmitJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	for _, trigger := range req.Triggers {
		if !digest.KnownTrigger(digest.JobTrigger(trigger)) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown trigger", "trigger": trigger})
			return
		}
	}

	if _, err := h.configCache.GetConfig(req.ChannelID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found", "channel_id": req.ChannelID})
		return
	}

	if err := h.validateSummary(req.Summary); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event summary", "details": err.Error()})
		return
	}

	delivery := database.Delivery{
		ID:             uuid.NewString(),
		ChannelID:      req.ChannelID,
		SubscriptionID: req.SubscriptionID,
		RecipientEmail: req.RecipientEmail,
		SearchQuery:    req.SearchQuery,
		Frequency:      req.Frequency,
		EventID:        req.EventID,
		SearchID:       req.SearchID,
		GeneratedAt:    req.GeneratedAt,
		Triggers:       req.Triggers,
		SummaryPayload: []byte(req.Summary),
		UnsubscribeURL: req.UnsubscribeURL,
		ManageURL:      req.ManageURL,
	}

	if err := h.deliveryRepo.InsertDelivery(delivery); err != nil {
		slog.Error("Database error", "operation", "insert_delivery", "channel", req.ChannelID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue delivery"})
		return
	}

	deliverTask := tasks.NewDeliverDigestTask(delivery.ID, h.configCache, h.deliveryRepo, h.renderer, h.sender)
	if err := h.scheduler.EnqueueTask(deliverTask); err != nil {
		slog.Error("Error enqueueing delivery task", "delivery", delivery.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue delivery task"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"delivery_id": delivery.ID,
		"status":      database.DeliveryStatusQueued,
		"task": gin.H{
			"id":   deliverTask.ID,
			"type": deliverTask.Type,
		},
	})
}

// PreviewJob renders a digest from the request payload without persisting a
// delivery or sending an email.
func (h *Handler) PreviewJob(c *gin.Context) {
	var req PreviewJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	triggers := make([]digest.JobTrigger, 0, len(req.Triggers))
	for _, trigger := range req.Triggers {
		t := digest.JobTrigger(trigger)
		if !digest.KnownTrigger(t) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown trigger", "trigger": trigger})
			return
		}
		triggers = append(triggers, t)
	}

	job := digest.Job{
		SearchQuery:    req.SearchQuery,
		Frequency:      req.Frequency,
		GeneratedAt:    req.GeneratedAt,
		Triggers:       triggers,
		SummaryPayload: []byte(req.Summary),
		UnsubscribeURL: req.UnsubscribeURL,
		ManageURL:      req.ManageURL,
	}

	subject, body, err := h.renderer.Run(job)
	if err != nil {
		if errors.Is(err, digest.ErrDecode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event summary", "details": err.Error()})
			return
		}
		slog.Error("Digest rendering error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render digest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": subject,
		"body":    body,
	})
}

func (h *Handler) GetDelivery(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing delivery id parameter"})
		return
	}

	delivery, err := h.deliveryRepo.GetDelivery(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_delivery", "delivery", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if delivery == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Delivery not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":              delivery.ID,
		"channel_id":      delivery.ChannelID,
		"subscription_id": delivery.SubscriptionID,
		"recipient_email": delivery.RecipientEmail,
		"search_query":    delivery.SearchQuery,
		"frequency":       delivery.Frequency,
		"event_id":        delivery.EventID,
		"status":          delivery.Status,
		"subject":         delivery.Subject,
		"last_error":      delivery.LastError,
		"attempts":        delivery.Attempts,
		"created_at":      delivery.CreatedAt,
		"sent_at":         delivery.SentAt,
	})
}

func (h *Handler) ListChannels(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	channelList := make([]map[string]interface{}, 0, len(configs))

	for _, channelConfig := range configs {
		channelInfo := map[string]interface{}{
			"id":        channelConfig.ID,
			"name":      channelConfig.Name,
			"frequency": channelConfig.Frequency,
			"enabled":   channelConfig.Settings.Enabled,
			"triggers":  channelConfig.Triggers,
		}

		if channel, err := h.channelRepo.GetChannel(channelConfig.ID); err == nil && channel != nil {
			channelInfo["created_at"] = channel.CreatedAt
			channelInfo["updated_at"] = channel.UpdatedAt
		}

		channelList = append(channelList, channelInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"channels": channelList,
		"total":    len(channelList),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if channelCount, err := h.channelRepo.GetChannelCount(); err == nil {
		health["channels"] = channelCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.deliveryRepo.GetDeliveryStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_delivery_stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deliveries": gin.H{
			"queued": stats.Queued,
			"sent":   stats.Sent,
			"failed": stats.Failed,
		},
	})
}

func (h *Handler) validateSummary(payload []byte) error {
	parser := digest.NewParser()
	_, err := parser.Run(payload)
	return err
}
