package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/lib/pq"
	"tripsure/internal/models/db_models"
)

// MemorySessionStore keeps sessions in a process-local map. Used when no
// database is configured and by the test suites.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*db_models.ChatSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*db_models.ChatSession),
	}
}

// GetOrCreateSession returns a copy so callers never mutate stored state
// directly; writes go back through the store methods.
func (s *MemorySessionStore) GetOrCreateSession(id string, ctx context.Context) (*db_models.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		session = &db_models.ChatSession{
			ID:      id,
			Stage:   db_models.StageInitial,
			History: pq.StringArray{},
		}
		s.sessions[id] = session
	}
	return copySession(session), nil
}

func (s *MemorySessionStore) SavePayload(id string, payload []byte, ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	session.Payload = append([]byte(nil), payload...)
	return nil
}

func (s *MemorySessionStore) UpdateLastQuestionKey(id string, key *string, ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	if key == nil {
		session.LastQuestionKey = nil
	} else {
		k := *key
		session.LastQuestionKey = &k
	}
	return nil
}

func (s *MemorySessionStore) SetStage(id string, stage string, ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	session.Stage = stage
	return nil
}

func (s *MemorySessionStore) AppendHistory(id string, userMessage string, botMessage string, ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	session.History = append(session.History,
		fmt.Sprintf("user: %s", userMessage),
		fmt.Sprintf("bot: %s", botMessage),
	)
	return nil
}

func (s *MemorySessionStore) ResetSession(id string, ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = &db_models.ChatSession{
		ID:      id,
		Stage:   db_models.StageInitial,
		History: pq.StringArray{},
	}
	return nil
}

func copySession(session *db_models.ChatSession) *db_models.ChatSession {
	out := *session
	out.Payload = append([]byte(nil), session.Payload...)
	out.History = append(pq.StringArray{}, session.History...)
	if session.LastQuestionKey != nil {
		k := *session.LastQuestionKey
		out.LastQuestionKey = &k
	}
	return &out
}
