package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/model"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Coordinator interface {
	State() coordinator.State
	Refresh(ctx context.Context) bool
	LoadMore(ctx context.Context) bool
	SetSelectedCategory(category string) bool
	SearchArticles(ctx context.Context, query string) []model.Article
	ClearSearch()
	AddBookmark(ctx context.Context, article model.Article) bool
	RemoveBookmark(ctx context.Context, url string) bool
	Bookmarks() []model.Article
	FindArticle(url string) (model.Article, bool)
}

func NewRouter(c Coordinator) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(config))

	h := &handler{coordinator: c}

	api := r.Group("/api/v1")
	{
		api.GET("/health", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
		})
		api.GET("/news", h.getNews)
		api.POST("/news/refresh", h.refresh)
		api.POST("/news/more", h.loadMore)
		api.GET("/search", h.search)
		api.DELETE("/search", h.clearSearch)
		api.GET("/recent-searches", h.recentSearches)
		api.GET("/bookmarks", h.getBookmarks)
		api.POST("/bookmarks", h.addBookmark)
		api.DELETE("/bookmarks", h.removeBookmark)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
