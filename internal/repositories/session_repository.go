package repositories

import (
	"context"
	"errors"
	"fmt"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"tripsure/internal/models/db_models"
)

// SessionStoreInterface is the per-conversation state store. The payload
// agent and orchestrator are written against this interface so a Postgres
// store and the in-memory store are interchangeable.
type SessionStoreInterface interface {
	GetOrCreateSession(id string, ctx context.Context) (*db_models.ChatSession, error)
	SavePayload(id string, payload []byte, ctx context.Context) error
	UpdateLastQuestionKey(id string, key *string, ctx context.Context) error
	SetStage(id string, stage string, ctx context.Context) error
	AppendHistory(id string, userMessage string, botMessage string, ctx context.Context) error
	ResetSession(id string, ctx context.Context) error
}

func NewSessionRepository(db *gorm.DB) SessionStoreInterface {
	return &SessionRepository{db: db}
}

type SessionRepository struct {
	db *gorm.DB
}

func (s *SessionRepository) GetOrCreateSession(id string, ctx context.Context) (*db_models.ChatSession, error) {
	var session db_models.ChatSession
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		session = db_models.ChatSession{
			ID:      id,
			Stage:   db_models.StageInitial,
			History: pq.StringArray{},
		}
		if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
			return nil, err
		}
	}
	return &session, nil
}

func (s *SessionRepository) SavePayload(id string, payload []byte, ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&db_models.ChatSession{}).
		Where("id = ?", id).
		Update("payload", payload).Error
}

func (s *SessionRepository) UpdateLastQuestionKey(id string, key *string, ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&db_models.ChatSession{}).
		Where("id = ?", id).
		Update("last_question_key", key).Error
}

func (s *SessionRepository) SetStage(id string, stage string, ctx context.Context) error {
	return s.db.WithContext(ctx).
		Model(&db_models.ChatSession{}).
		Where("id = ?", id).
		Update("stage", stage).Error
}

func (s *SessionRepository) AppendHistory(id string, userMessage string, botMessage string, ctx context.Context) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var session db_models.ChatSession
		if err := tx.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
			return err
		}
		session.History = append(session.History,
			fmt.Sprintf("user: %s", userMessage),
			fmt.Sprintf("bot: %s", botMessage),
		)
		return tx.WithContext(ctx).
			Model(&db_models.ChatSession{}).
			Where("id = ?", id).
			Update("history", session.History).Error
	})
}

func (s *SessionRepository) ResetSession(id string, ctx context.Context) error {
	if _, err := s.GetOrCreateSession(id, ctx); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&db_models.ChatSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"payload":           nil,
			"last_question_key": nil,
			"history":           pq.StringArray{},
			"stage":             db_models.StageInitial,
		}).Error
}
