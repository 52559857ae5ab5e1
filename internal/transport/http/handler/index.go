package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"graidea-reviews/internal/app"
	"graidea-reviews/internal/platform/rabbitmq"
	"graidea-reviews/internal/transport/http/response"
)

type IndexHandler struct {
	indexer   *app.IndexerService
	publisher *rabbitmq.ReindexPublisher
}

type ReloadAsyncRequest struct {
	Reason string `json:"reason"`
}

func NewIndexHandler(indexer *app.IndexerService, publisher *rabbitmq.ReindexPublisher) *IndexHandler {
	return &IndexHandler{indexer: indexer, publisher: publisher}
}

// Reload rebuilds the index synchronously and reports what was indexed.
func (h *IndexHandler) Reload(c *gin.Context) {
	result, err := h.indexer.Reload(c.Request.Context())
	if err != nil {
		if errors.Is(err, app.ErrUpstreamUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "reload index failed")
		}
		return
	}
	response.OK(c, result)
}

// ReloadAsync enqueues a reindex request for the background worker.
func (h *IndexHandler) ReloadAsync(c *gin.Context) {
	// Body is optional; an absent payload means an unspecified reason.
	var req ReloadAsyncRequest
	_ = c.ShouldBindJSON(&req)

	if err := h.publisher.Publish(c.Request.Context(), rabbitmq.ReindexRequest{Reason: req.Reason}); err != nil {
		response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, "enqueue reindex request failed")
		return
	}
	response.OK(c, gin.H{"enqueued": true})
}

func (h *IndexHandler) Stats(c *gin.Context) {
	response.OK(c, h.indexer.Stats())
}
