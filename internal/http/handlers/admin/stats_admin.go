package admin

import (
	"github.com/marron-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAdminStats 获取论坛统计汇总
func (h *Handler) GetAdminStats(c *gin.Context) {
	summary, err := h.StatsService.Summary()
	if err != nil {
		respondError(c, response.CodeInternal, "error.stats_fetch_failed", err)
		return
	}
	response.Success(c, summary)
}

// ReconcileCounters 手动触发一轮计数对账
func (h *Handler) ReconcileCounters(c *gin.Context) {
	result, err := h.CounterService.Reconcile()
	if err != nil {
		respondError(c, response.CodeInternal, "error.reconcile_failed", err)
		return
	}
	response.Success(c, result)
}
