package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"graidea-reviews/internal/app"
	"graidea-reviews/internal/transport/http/response"
)

type RecommendHandler struct {
	recommendService *app.RecommendService
}

type RecommendationsRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

func NewRecommendHandler(recommendService *app.RecommendService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

func (h *RecommendHandler) Recommend(c *gin.Context) {
	var req RecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.recommendService.Recommend(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrIndexNotReady):
			response.Error(c, http.StatusConflict, response.CodeIndexNotReady, err.Error())
		case errors.Is(err, app.ErrUpstreamUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get recommendations failed")
		}
		return
	}
	response.OK(c, result)
}
