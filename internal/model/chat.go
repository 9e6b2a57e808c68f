package model

import (
	"time"
)

// ChatTurn is one (user input, coach reply) pair. Turns are immutable
// once written; the database is the source of truth for history, the
// redis window is only a read-through mirror of the most recent turns.
type ChatTurn struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;index:idx_user_created" json:"userId"`
	UserInput string    `gorm:"type:text;not null" json:"userInput"`
	BotReply  string    `gorm:"type:text;not null" json:"botReply"`
	CreatedAt time.Time `gorm:"index:idx_user_created" json:"createdAt"`
}

func (ChatTurn) TableName() string {
	return "chat_turns"
}
