package service

import (
	"context"
	"fmt"
	"strings"

	"lumo_backend/internal/model"
	"lumo_backend/pkg/logger"

	"go.uber.org/zap"
)

type historySource interface {
	FullHistory(userID uint) ([]model.ChatTurn, error)
}

// AnalysisService produces the SWOT performance summary from a user's
// full chat history. It never returns an error: every failure inside
// the pipeline degrades to the fixed fallback result.
type AnalysisService struct {
	history historySource
	ai      textGenerator
}

func NewAnalysisService(history historySource, ai textGenerator) *AnalysisService {
	return &AnalysisService{
		history: history,
		ai:      ai,
	}
}

// Analyze returns the 5-field SWOT summary. Users with no history get
// the canned "no history" result without a model call.
func (s *AnalysisService) Analyze(ctx context.Context, userID uint) SwotResult {
	turns, err := s.history.FullHistory(userID)
	if err != nil {
		logger.Log.Error("failed to load chat history for analysis",
			zap.Uint("userId", userID), zap.Error(err))
		return FallbackSwotResult()
	}

	if len(turns) == 0 {
		return NoHistorySwotResult()
	}

	var lines []string
	for _, turn := range turns {
		lines = append(lines, fmt.Sprintf("User: %s\nAI: %s", turn.UserInput, turn.BotReply))
	}
	conversation := strings.Join(lines, "\n\n")

	raw, err := s.ai.Generate(ctx, AnalysisPrompt(conversation))
	if err != nil {
		logger.Log.Error("analysis model call failed",
			zap.Uint("userId", userID), zap.Error(err))
		return FallbackSwotResult()
	}

	result, err := ParseSwotList(raw)
	if err != nil {
		logger.Log.Error("analysis output malformed",
			zap.Uint("userId", userID), zap.Error(err))
		return FallbackSwotResult()
	}

	return result
}
