package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"graidea-reviews/internal/app"
	"graidea-reviews/internal/transport/http/response"
)

type ReviewHandler struct {
	reviewService *app.ReviewService
}

type SearchReviewsRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

func NewReviewHandler(reviewService *app.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// GetTeacherReviews returns the aggregated summary for one teacher.
func (h *ReviewHandler) GetTeacherReviews(c *gin.Context) {
	summary, err := h.reviewService.GetTeacherReviews(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidTeacherID):
			response.Error(c, http.StatusBadRequest, response.CodeInvalidTeacherID, err.Error())
		case errors.Is(err, app.ErrTeacherNotFound):
			response.Error(c, http.StatusNotFound, response.CodeTeacherNotFound, err.Error())
		case errors.Is(err, app.ErrUpstreamUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get teacher reviews failed")
		}
		return
	}
	response.OK(c, summary)
}

// Search runs a similarity search over the indexed reviews.
func (h *ReviewHandler) Search(c *gin.Context) {
	var req SearchReviewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	results, err := h.reviewService.SearchReviews(c.Request.Context(), req.Query, req.Limit)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrIndexNotReady):
			response.Error(c, http.StatusConflict, response.CodeIndexNotReady, err.Error())
		case errors.Is(err, app.ErrEmptyResult):
			response.Error(c, http.StatusNotFound, response.CodeEmptyIndex, err.Error())
		case errors.Is(err, app.ErrUpstreamUnavailable):
			response.Error(c, http.StatusServiceUnavailable, response.CodeUpstreamUnavailable, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "search reviews failed")
		}
		return
	}
	response.OK(c, results)
}
