package http

import (
	"github.com/gin-gonic/gin"

	"graidea-reviews/internal/bootstrap"
	"graidea-reviews/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	indexHandler := handler.NewIndexHandler(app.Indexer, app.ReindexPublisher)
	reviewHandler := handler.NewReviewHandler(app.Reviews)
	recommendHandler := handler.NewRecommendHandler(app.Recommender)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")
	v1.POST("/index/reload", indexHandler.Reload)
	v1.POST("/index/reload-async", indexHandler.ReloadAsync)
	v1.GET("/index/stats", indexHandler.Stats)
	v1.GET("/teachers/:id/reviews", reviewHandler.GetTeacherReviews)
	v1.POST("/reviews/search", reviewHandler.Search)
	v1.POST("/recommendations", recommendHandler.Recommend)

	return router
}
