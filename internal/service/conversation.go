package service

import (
	"context"
	"time"

	"lumo_backend/internal/model"
	"lumo_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	// hydrateWindow bounds how many turns are loaded into the session
	// window; contextWindow bounds how many of those are serialized
	// into the model prompt to keep token usage in check.
	hydrateWindow = 50
	contextWindow = 10
)

// chatTurnStore is the slice of repository.ChatRepository the
// conversation service consumes.
type chatTurnStore interface {
	CreateTurn(turn *model.ChatTurn) error
	RecentTurns(userID uint, limit int) ([]model.ChatTurn, error)
	AllTurns(userID uint) ([]model.ChatTurn, error)
	CachedWindow(ctx context.Context, userID uint) ([]model.ChatTurn, bool)
	PrimeWindow(ctx context.Context, userID uint, turns []model.ChatTurn) error
	PushTurn(ctx context.Context, userID uint, turn model.ChatTurn, cap int) error
	ClearWindow(ctx context.Context, userID uint) error
}

// ConversationService is the single abstraction over a user's chat
// history: the database is the source of truth, the redis window is a
// read-through cache of the most recent turns.
type ConversationService struct {
	chatRepo chatTurnStore
}

func NewConversationService(chatRepo chatTurnStore) *ConversationService {
	return &ConversationService{chatRepo: chatRepo}
}

// Hydrate returns the user's session window in chronological order.
// On a cache miss the most recent turns are loaded from the database
// and primed into the cache; repeated hydration before any append
// returns the same content.
func (s *ConversationService) Hydrate(ctx context.Context, userID uint) ([]model.ChatTurn, error) {
	if turns, ok := s.chatRepo.CachedWindow(ctx, userID); ok {
		return turns, nil
	}

	turns, err := s.chatRepo.RecentTurns(userID, hydrateWindow)
	if err != nil {
		return nil, err
	}

	if len(turns) > 0 {
		if err := s.chatRepo.PrimeWindow(ctx, userID, turns); err != nil {
			logger.Log.Warn("failed to prime chat window cache",
				zap.Uint("userId", userID), zap.Error(err))
		}
	}
	return turns, nil
}

// Recent returns the trailing n turns of a window in original order.
func Recent(window []model.ChatTurn, n int) []model.ChatTurn {
	if n <= 0 || len(window) == 0 {
		return nil
	}
	if len(window) <= n {
		return window
	}
	return window[len(window)-n:]
}

// Append durably persists a new turn and mirrors it into the session
// window. Persistence failure is logged but not surfaced: the chat
// reply must still reach the user even if history logging fails.
func (s *ConversationService) Append(ctx context.Context, userID uint, input, reply string) model.ChatTurn {
	turn := model.ChatTurn{
		UserID:    userID,
		UserInput: input,
		BotReply:  reply,
		CreatedAt: time.Now(),
	}

	if err := s.chatRepo.CreateTurn(&turn); err != nil {
		logger.Log.Error("failed to persist chat turn",
			zap.Uint("userId", userID), zap.Error(err))
	}

	if err := s.chatRepo.PushTurn(ctx, userID, turn, hydrateWindow); err != nil {
		logger.Log.Warn("failed to update chat window cache",
			zap.Uint("userId", userID), zap.Error(err))
	}

	return turn
}

// FullHistory returns every persisted turn for the user, chronological.
// Only the analysis pipeline uses this.
func (s *ConversationService) FullHistory(userID uint) ([]model.ChatTurn, error) {
	return s.chatRepo.AllTurns(userID)
}

// Reset drops the session window, e.g. on logout. History in the
// database is untouched.
func (s *ConversationService) Reset(ctx context.Context, userID uint) error {
	return s.chatRepo.ClearWindow(ctx, userID)
}
