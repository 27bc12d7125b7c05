package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"tripsure/internal/models/db_models"
	"tripsure/internal/models/request_models"
	"tripsure/internal/repositories"
	"tripsure/pkg/utils"
)

const (
	invalidDateReply    = "That doesn't look like a valid date format. Please use YYYY-MM-DD.\n\n%s"
	collectionDoneReply = "Thank you, I have all the information. Generating your quote now..."
)

type PayloadAgentInterface interface {
	RunPayloadCollectionTurn(ctx context.Context, userMessage string, chatHistory []string, sessionID string) (string, error)
}

// PayloadAgent drives one collection turn: it applies the pending answer
// to the session's application draft, then either asks the next question
// or finalizes the payload and hands the session over to quoting.
type PayloadAgent struct {
	sessions repositories.SessionStoreInterface
}

func NewPayloadAgent(sessions repositories.SessionStoreInterface) PayloadAgentInterface {
	return &PayloadAgent{
		sessions: sessions,
	}
}

func isGreeting(message string) bool {
	switch strings.ToLower(strings.TrimSpace(message)) {
	case "hi", "hello":
		return true
	}
	return false
}

func (a *PayloadAgent) RunPayloadCollectionTurn(ctx context.Context, userMessage string, chatHistory []string, sessionID string) (string, error) {
	// chatHistory is accepted but not consulted; the collection flow is
	// fully scripted by the question catalog.
	_ = chatHistory

	session, err := a.sessions.GetOrCreateSession(sessionID, ctx)
	if err != nil {
		return "", utils.ErrDatabaseError
	}

	payload := request_models.NewTravelPayload()
	if len(session.Payload) > 0 {
		if err := json.Unmarshal(session.Payload, payload); err != nil {
			log.Printf("Corrupt payload for session %s, starting from template: %v", sessionID, err)
			payload = request_models.NewTravelPayload()
		}
	}

	if session.LastQuestionKey != nil && !isGreeting(userMessage) {
		binding := findBinding(*session.LastQuestionKey)
		if binding == nil {
			log.Printf("Unknown question key %q for session %s", *session.LastQuestionKey, sessionID)
		} else {
			value, err := normalizeAnswer(binding.Key, userMessage)
			switch {
			case errors.Is(err, utils.ErrInvalidDate):
				// Re-ask the same question verbatim; neither the payload
				// nor the pending-question marker changes.
				log.Printf("Invalid date format received: %s", userMessage)
				return fmt.Sprintf(invalidDateReply, binding.Prompt), nil
			case err != nil:
				log.Printf("Failed to normalize answer for key %s: %v", binding.Key, err)
			default:
				if err := binding.apply(payload, value); err != nil {
					// Swallowed: the field stays unanswered and the same
					// question surfaces again below.
					log.Printf("Failed to set key %s with value %q: %v", binding.Key, userMessage, err)
				} else {
					log.Printf("Payload updated for key '%s'", binding.Key)
				}
			}
		}
	}

	next := nextMissingField(payload)
	if next != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return "", utils.ErrPayloadEncoding
		}
		if err := a.sessions.SavePayload(sessionID, raw, ctx); err != nil {
			return "", utils.ErrDatabaseError
		}
		if err := a.sessions.UpdateLastQuestionKey(sessionID, &next.Key, ctx); err != nil {
			return "", utils.ErrDatabaseError
		}
		return next.Prompt, nil
	}

	return a.finalize(ctx, sessionID, payload)
}

// finalize derives the trip length, strips the internal date group and
// moves the session to the quoting stage.
func (a *PayloadAgent) finalize(ctx context.Context, sessionID string, payload *request_models.TravelPayload) (string, error) {
	if payload.Internal != nil && payload.Internal.StartDate != nil && payload.Internal.EndDate != nil {
		days, err := utils.TripDays(*payload.Internal.StartDate, *payload.Internal.EndDate)
		if err != nil {
			log.Printf("Failed to compute trip length for session %s: %v", sessionID, err)
		} else {
			payload.Travel.NumberOfDays = &days
			log.Printf("Final calculation: number_of_days set to %d", days)
		}
	}
	payload.Internal = nil

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", utils.ErrPayloadEncoding
	}
	if err := a.sessions.SavePayload(sessionID, raw, ctx); err != nil {
		return "", utils.ErrDatabaseError
	}

	log.Printf("--- FINAL POPULATED PAYLOAD ---")
	log.Printf("%s", raw)
	log.Printf("--- END OF PAYLOAD ---")

	if err := a.sessions.SetStage(sessionID, db_models.StageQuoteGeneration, ctx); err != nil {
		return "", utils.ErrDatabaseError
	}
	if err := a.sessions.UpdateLastQuestionKey(sessionID, nil, ctx); err != nil {
		return "", utils.ErrDatabaseError
	}
	return collectionDoneReply, nil
}
