package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lumo_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ChatRepository persists chat turns in MySQL and mirrors a bounded
// per-user window of recent turns in redis. The database is the source
// of truth; the redis window is only a session cache and may be rebuilt
// from the database at any time.
type ChatRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

const windowTTL = 2 * time.Hour

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{DB: db, Redis: rdb}
}

func windowKey(userID uint) string {
	return fmt.Sprintf("chat:window:%d", userID)
}

func (r *ChatRepository) CreateTurn(turn *model.ChatTurn) error {
	return r.DB.Create(turn).Error
}

// RecentTurns returns the most recent limit turns in chronological order.
func (r *ChatRepository) RecentTurns(userID uint, limit int) ([]model.ChatTurn, error) {
	var turns []model.ChatTurn
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&turns).Error
	if err != nil {
		return nil, err
	}

	// Reverse back to chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// AllTurns returns the user's full history in chronological order.
func (r *ChatRepository) AllTurns(userID uint) ([]model.ChatTurn, error) {
	var turns []model.ChatTurn
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&turns).Error
	return turns, err
}

// CachedWindow reads the redis-mirrored window. ok is false on a cache
// miss or when redis is not configured.
func (r *ChatRepository) CachedWindow(ctx context.Context, userID uint) ([]model.ChatTurn, bool) {
	if r.Redis == nil {
		return nil, false
	}

	items, err := r.Redis.LRange(ctx, windowKey(userID), 0, -1).Result()
	if err != nil || len(items) == 0 {
		return nil, false
	}

	turns := make([]model.ChatTurn, 0, len(items))
	for _, item := range items {
		var turn model.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Corrupt cache entry: drop the whole window and rebuild
			// from the database next time.
			r.Redis.Del(ctx, windowKey(userID))
			return nil, false
		}
		turns = append(turns, turn)
	}
	return turns, true
}

// PrimeWindow replaces the cached window with the given turns.
func (r *ChatRepository) PrimeWindow(ctx context.Context, userID uint, turns []model.ChatTurn) error {
	if r.Redis == nil {
		return nil
	}

	key := windowKey(userID)
	pipe := r.Redis.TxPipeline()
	pipe.Del(ctx, key)
	for _, turn := range turns {
		data, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.Expire(ctx, key, windowTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// PushTurn appends a turn to the cached window and trims it to cap.
// Last writer wins on concurrent appends; the database stays the source
// of truth for history reconstruction.
func (r *ChatRepository) PushTurn(ctx context.Context, userID uint, turn model.ChatTurn, cap int) error {
	if r.Redis == nil {
		return nil
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	key := windowKey(userID)
	pipe := r.Redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-cap), -1)
	pipe.Expire(ctx, key, windowTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// ClearWindow drops the cached window, e.g. on logout.
func (r *ChatRepository) ClearWindow(ctx context.Context, userID uint) error {
	if r.Redis == nil {
		return nil
	}
	return r.Redis.Del(ctx, windowKey(userID)).Err()
}
