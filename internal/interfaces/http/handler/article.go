package handler

import (
	planningapp "github.com/alessandrv/FEC-mrp/internal/application/planning"
	"github.com/gin-gonic/gin"
)

// ArticleHandler handles single-article lookups
type ArticleHandler struct {
	BaseHandler
	articleService *planningapp.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *planningapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
	}
}

// GetDescription handles GET /api/v1/articles/:code/description
func (h *ArticleHandler) GetDescription(c *gin.Context) {
	resp, err := h.articleService.GetDescription(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}

// GetAvailability handles GET /api/v1/articles/:code/availability
// It returns the netted stock position for every period, focused on
// time_period (default today).
func (h *ArticleHandler) GetAvailability(c *gin.Context) {
	resp, err := h.articleService.GetAvailability(c.Request.Context(), c.Param("code"), c.Query("time_period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, resp)
}
