package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kovalyov-valentin/news-reader/internal/coordinator"
	"github.com/kovalyov-valentin/news-reader/internal/model"
)

type handler struct {
	coordinator Coordinator
}

type newsResponse struct {
	Category        string          `json:"category"`
	FeaturedArticle *model.Article  `json:"featuredArticle"`
	Articles        []model.Article `json:"articles"`
	Page            int             `json:"page"`
	HasMore         bool            `json:"hasMore"`
	Loading         bool            `json:"loading"`
	Error           string          `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type bookmarkRequest struct {
	URL string `json:"url" binding:"required"`
}

func newNewsResponse(st coordinator.State) newsResponse {
	articles := st.Articles
	if articles == nil {
		articles = []model.Article{}
	}

	return newsResponse{
		Category:        st.SelectedCategory,
		FeaturedArticle: st.FeaturedArticle,
		Articles:        articles,
		Page:            st.Page,
		HasMore:         st.HasMore,
		Loading:         st.Loading,
		Error:           st.Error,
	}
}

func nonNil(articles []model.Article) []model.Article {
	if articles == nil {
		return []model.Article{}
	}
	return articles
}

// GET /news?category=Science переключает категорию и загружает ее с первой страницы
func (h *handler) getNews(c *gin.Context) {
	if raw := c.Query("category"); raw != "" {
		category, ok := model.ParseCategory(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown category"})
			return
		}

		if category != h.coordinator.State().SelectedCategory {
			h.coordinator.SetSelectedCategory(category)
			h.coordinator.Refresh(c.Request.Context())
		}
	}

	c.JSON(http.StatusOK, newNewsResponse(h.coordinator.State()))
}

func (h *handler) refresh(c *gin.Context) {
	if !h.coordinator.Refresh(c.Request.Context()) {
		c.JSON(http.StatusConflict, errorResponse{Error: "fetch already in progress"})
		return
	}

	c.JSON(http.StatusOK, newNewsResponse(h.coordinator.State()))
}

func (h *handler) loadMore(c *gin.Context) {
	if !h.coordinator.State().HasMore {
		c.JSON(http.StatusOK, newNewsResponse(h.coordinator.State()))
		return
	}

	if !h.coordinator.LoadMore(c.Request.Context()) {
		c.JSON(http.StatusConflict, errorResponse{Error: "fetch already in progress"})
		return
	}

	c.JSON(http.StatusOK, newNewsResponse(h.coordinator.State()))
}

func (h *handler) search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	results := h.coordinator.SearchArticles(c.Request.Context(), query)

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": nonNil(results),
	})
}

func (h *handler) clearSearch(c *gin.Context) {
	h.coordinator.ClearSearch()
	c.Status(http.StatusNoContent)
}

func (h *handler) recentSearches(c *gin.Context) {
	recent := h.coordinator.State().RecentSearches
	if recent == nil {
		recent = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"recentSearches": recent})
}

func (h *handler) getBookmarks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"bookmarks": nonNil(h.coordinator.Bookmarks())})
}

func (h *handler) addBookmark(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	article, ok := h.coordinator.FindArticle(req.URL)
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "article not found"})
		return
	}

	status := http.StatusOK
	if h.coordinator.AddBookmark(c.Request.Context(), article) {
		status = http.StatusCreated
	}

	c.JSON(status, gin.H{"bookmarks": nonNil(h.coordinator.Bookmarks())})
}

func (h *handler) removeBookmark(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "url is required"})
		return
	}

	if !h.coordinator.RemoveBookmark(c.Request.Context(), url) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "bookmark not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
