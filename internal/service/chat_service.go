package service

import (
	"context"
	"fmt"
	"strings"

	"lumo_backend/internal/model"
	"lumo_backend/internal/util"
	"lumo_backend/pkg/logger"

	"go.uber.org/zap"
)

type conversationStore interface {
	Hydrate(ctx context.Context, userID uint) ([]model.ChatTurn, error)
	Append(ctx context.Context, userID uint, input, reply string) model.ChatTurn
}

// ChatService answers one user turn of the interview coach. Unlike the
// generation and analysis pipelines, gateway failures here are
// user-visible: interactive chat has no sensible silent fallback.
type ChatService struct {
	conversations conversationStore
	ai            textGenerator
}

func NewChatService(conversations conversationStore, ai textGenerator) *ChatService {
	return &ChatService{
		conversations: conversations,
		ai:            ai,
	}
}

// Respond builds the model context from the coach system prompt and the
// recent window, calls the model, records the new turn and returns the
// reply.
func (s *ChatService) Respond(ctx context.Context, userID uint, year model.StudyYear, level model.CoachLevel, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", util.ErrEmptyMessage
	}

	if !s.ai.Configured() {
		return "", util.ErrMisconfigured
	}

	window, err := s.conversations.Hydrate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("hydrating conversation: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(CoachSystemPrompt(year, level))
	sb.WriteString("\n\nConversation History:\n")
	for _, turn := range Recent(window, contextWindow) {
		fmt.Fprintf(&sb, "User: %s\nAssistant: %s\n", turn.UserInput, turn.BotReply)
	}
	fmt.Fprintf(&sb, "User: %s\nAssistant:", message)

	reply, err := s.ai.Generate(ctx, sb.String())
	if err != nil {
		logger.Log.Error("chat model call failed",
			zap.Uint("userId", userID), zap.Error(err))
		return "", util.ErrServiceUnavailable
	}

	s.conversations.Append(ctx, userID, message, reply)

	return reply, nil
}
