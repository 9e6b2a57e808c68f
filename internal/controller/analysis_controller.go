package controller

import (
	"lumo_backend/internal/service"
	"lumo_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalysisController struct {
	analysis *service.AnalysisService
}

func NewAnalysisController(analysis *service.AnalysisService) *AnalysisController {
	return &AnalysisController{analysis: analysis}
}

// Swot returns the SWOT performance summary for the current user.
// Always responds 200: the pipeline degrades to a fallback result
// instead of failing.
// @Summary SWOT analysis of chat history
// @Tags Analysis
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/analysis/swot [get]
func (c *AnalysisController) Swot(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result := c.analysis.Analyze(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, result)
}
