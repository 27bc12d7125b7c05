package db_models

import (
	"time"

	"github.com/lib/pq"
)

// Conversation stages driven by the orchestrator.
const (
	StageInitial           = "initial"
	StagePayloadCollection = "payload_collection"
	StageQuoteGeneration   = "quote_generation"
)

// ChatSession is one user conversation. Payload holds the insurance
// application draft (or the finalized payload once collection is done) as
// JSON. LastQuestionKey is the field the bot is waiting on; nil means no
// question is pending.
type ChatSession struct {
	ID              string         `gorm:"type:text;primaryKey"`
	Stage           string         `gorm:"type:text;not null;default:'initial'"`
	Payload         []byte         `gorm:"type:jsonb"`
	LastQuestionKey *string        `gorm:"type:text"`
	History         pq.StringArray `gorm:"type:text[]"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
}
