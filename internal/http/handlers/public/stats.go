package public

import (
	"github.com/marron-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetStats 获取论坛统计汇总
func (h *Handler) GetStats(c *gin.Context) {
	summary, err := h.StatsService.Summary()
	if err != nil {
		respondError(c, response.CodeInternal, "error.stats_fetch_failed", err)
		return
	}
	response.Success(c, summary)
}
