package controller

import (
	"context"
	"errors"
	"net/http"

	"lumo_backend/internal/model"
	"lumo_backend/internal/util"
	"lumo_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type chatResponder interface {
	Respond(ctx context.Context, userID uint, year model.StudyYear, level model.CoachLevel, message string) (string, error)
}

type chatWindow interface {
	Hydrate(ctx context.Context, userID uint) ([]model.ChatTurn, error)
	Reset(ctx context.Context, userID uint) error
}

type profileSource interface {
	GetProfile(userID uint) (*model.User, error)
}

type ChatController struct {
	chatService   chatResponder
	conversations chatWindow
	userService   profileSource
}

func NewChatController(chatService chatResponder, conversations chatWindow, userService profileSource) *ChatController {
	return &ChatController{
		chatService:   chatService,
		conversations: conversations,
		userService:   userService,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// SendMessage handles one interview coach turn.
// @Summary Interview coach chat
// @Description Sends one message to the AI interview coach and returns its reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body chatRequest true "User message"
// @Success 200 {object} map[string]string
// @Router /api/chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req chatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	year := model.YearFirst
	level := model.LevelMedium
	if user, err := c.userService.GetProfile(claims.UserID); err == nil {
		year = user.Year
		level = user.Level
	}

	reply, err := c.chatService.Respond(ctx.Request.Context(), claims.UserID, year, level, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyMessage):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		case errors.Is(err, util.ErrMisconfigured):
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Server misconfiguration: API Key missing."})
		case errors.Is(err, util.ErrServiceUnavailable):
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service temporarily unavailable. Please try again."})
		default:
			logger.Log.Error("chat request failed", zap.Error(err))
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"bot_response": reply,
	})
}

// History returns the hydrated session window for display.
// @Summary Chat history
// @Tags Chat
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	turns, err := c.conversations.Hydrate(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, turns)
}

// Logout drops the session chat window. Durable history is kept.
// @Summary Logout
// @Tags Chat
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/logout [post]
func (c *ChatController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.conversations.Reset(ctx.Request.Context(), claims.UserID); err != nil {
		logger.Log.Warn("failed to clear chat window on logout",
			zap.Uint("userId", claims.UserID), zap.Error(err))
	}

	util.Success(ctx, nil)
}
