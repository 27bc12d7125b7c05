package services

import (
	"context"
	"log"
	"tripsure/internal/models/db_models"
	"tripsure/internal/repositories"
)

const criticalErrorReply = "I'm sorry, a critical error occurred."

type OrchestratorServiceInterface interface {
	HandleChat(ctx context.Context, sessionID string, userMessage string) string
}

// OrchestratorService routes each chat message by conversation stage and
// is the error boundary for a turn: collaborator faults are logged and
// collapse into one generic apology.
type OrchestratorService struct {
	sessions     repositories.SessionStoreInterface
	payloadAgent PayloadAgentInterface
	quotes       QuoteServiceInterface
}

func NewOrchestratorService(
	sessions repositories.SessionStoreInterface,
	payloadAgent PayloadAgentInterface,
	quotes QuoteServiceInterface,
) OrchestratorServiceInterface {
	return &OrchestratorService{
		sessions:     sessions,
		payloadAgent: payloadAgent,
		quotes:       quotes,
	}
}

func (o *OrchestratorService) HandleChat(ctx context.Context, sessionID string, userMessage string) string {
	reply, err := o.dispatch(ctx, sessionID, userMessage)
	if err != nil {
		log.Printf("Critical error in chat orchestration for session %s: %v", sessionID, err)
		return criticalErrorReply
	}

	if err := o.sessions.AppendHistory(sessionID, userMessage, reply, ctx); err != nil {
		log.Printf("Failed to record history for session %s: %v", sessionID, err)
	}
	return reply
}

func (o *OrchestratorService) dispatch(ctx context.Context, sessionID string, userMessage string) (string, error) {
	// A greeting always restarts the conversation from a clean session.
	if isGreeting(userMessage) {
		if err := o.sessions.ResetSession(sessionID, ctx); err != nil {
			return "", err
		}
		if err := o.sessions.SetStage(sessionID, db_models.StagePayloadCollection, ctx); err != nil {
			return "", err
		}
		return o.payloadAgent.RunPayloadCollectionTurn(ctx, userMessage, nil, sessionID)
	}

	session, err := o.sessions.GetOrCreateSession(sessionID, ctx)
	if err != nil {
		return "", err
	}
	log.Printf("Current stage for session %s: %s", sessionID, session.Stage)

	switch session.Stage {
	case db_models.StagePayloadCollection:
		return o.payloadAgent.RunPayloadCollectionTurn(ctx, userMessage, session.History, sessionID)
	case db_models.StageQuoteGeneration:
		return o.quotes.GenerateQuote(ctx, sessionID)
	default:
		if err := o.sessions.SetStage(sessionID, db_models.StagePayloadCollection, ctx); err != nil {
			return "", err
		}
		return o.payloadAgent.RunPayloadCollectionTurn(ctx, userMessage, session.History, sessionID)
	}
}
