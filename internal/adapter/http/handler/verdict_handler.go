package handler

import (
	"commercial-paper-verifier/internal/adapter/http/dto"
	"commercial-paper-verifier/internal/core/ports"
	"commercial-paper-verifier/pkg/response"

	"github.com/gin-gonic/gin"
)

// VerdictHandler serves recorded verdicts and their statistics.
type VerdictHandler struct {
	reportingSvc ports.ReportingService
}

// NewVerdictHandler creates a new VerdictHandler.
func NewVerdictHandler(reportingSvc ports.ReportingService) *VerdictHandler {
	return &VerdictHandler{reportingSvc: reportingSvc}
}

// Get handles GET /api/v1/verdicts/:id.
func (h *VerdictHandler) Get(c *gin.Context) {
	verdict, err := h.reportingSvc.GetVerdict(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToVerdictResponse(verdict))
}

// Stats handles GET /api/v1/verdicts/stats.
func (h *VerdictHandler) Stats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ToVerdictStatsResponse(period, stats))
}
