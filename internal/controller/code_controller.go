package controller

import (
	"errors"
	"fmt"
	"net/http"

	"lumo_backend/internal/service"
	"lumo_backend/internal/util"
	"lumo_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CodeController struct {
	executor *service.ExecutorService
}

func NewCodeController(executor *service.ExecutorService) *CodeController {
	return &CodeController{executor: executor}
}

type runCodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Run executes user-submitted code via the sandboxed execution service.
// @Summary Run code
// @Description Executes a code snippet in a remote sandbox and returns its output
// @Tags Code
// @Accept json
// @Produce json
// @Param request body runCodeRequest true "Code and language"
// @Success 200 {object} map[string]string
// @Router /api/code/run [post]
func (c *CodeController) Run(ctx *gin.Context) {
	var req runCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if req.Language == "" {
		req.Language = "python"
	}

	result, err := c.executor.Execute(ctx.Request.Context(), req.Language, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUnsupportedLanguage):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Language %s not supported yet.", req.Language)})
		case errors.Is(err, util.ErrExecTimeout):
			ctx.JSON(http.StatusGatewayTimeout, gin.H{"error": "Compiler request timed out."})
		case errors.Is(err, util.ErrUpstream):
			// The upstream body is logged, never echoed to the client.
			logger.Log.Error("code execution upstream failure", zap.Error(err))
			ctx.JSON(http.StatusBadGateway, gin.H{
				"error":   "External compiler service failed.",
				"details": "The execution service returned an unexpected response.",
			})
		default:
			logger.Log.Error("code execution failed", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"output": result.Output})
}
