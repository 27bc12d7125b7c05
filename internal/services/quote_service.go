package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"tripsure/internal/models/db_models"
	"tripsure/internal/models/request_models"
	"tripsure/internal/repositories"
	"tripsure/pkg/utils"
)

const (
	lostDetailsReply = "I seem to have lost your details. Let's start over."
	quoteErrorReply  = "Sorry, there was an error getting the quote: %s"
	quoteResultReply = "Your quote for the **%s Plan** has been generated. The premium is **%s**."
	quoteFaultReply  = "I'm sorry, I ran into an error while generating your quote."
	priceUnavailable = "Price not available"
)

type QuoteServiceInterface interface {
	GenerateQuote(ctx context.Context, sessionID string) (string, error)
}

// QuoteService submits a finalized application payload to the quotation
// API and renders the premium for the user. Every failure path ends in a
// user-facing message; the session stage is reset so the conversation can
// start over.
type QuoteService struct {
	sessions repositories.SessionStoreInterface
	client   utils.QuoteClientInterface
}

func NewQuoteService(sessions repositories.SessionStoreInterface, client utils.QuoteClientInterface) QuoteServiceInterface {
	return &QuoteService{
		sessions: sessions,
		client:   client,
	}
}

func (q *QuoteService) GenerateQuote(ctx context.Context, sessionID string) (string, error) {
	session, err := q.sessions.GetOrCreateSession(sessionID, ctx)
	if err != nil {
		log.Printf("Error in quote generation for session %s: %v", sessionID, err)
		q.resetStage(ctx, sessionID, db_models.StageInitial)
		return quoteFaultReply, nil
	}

	if len(session.Payload) == 0 {
		// Collected info went missing between stages; send the user back
		// to the start of the collection flow.
		q.resetStage(ctx, sessionID, db_models.StagePayloadCollection)
		return lostDetailsReply, nil
	}

	response, err := q.client.GenerateQuote(ctx, session.Payload)
	if err != nil {
		log.Printf("Error in quote generation for session %s: %v", sessionID, err)
		q.resetStage(ctx, sessionID, db_models.StageInitial)
		return quoteFaultReply, nil
	}

	if !response.Succeeded() {
		message := "Unknown API error"
		if len(response.Errors) > 0 {
			message = response.Errors[0]
		}
		return fmt.Sprintf(quoteErrorReply, message), nil
	}

	plan := "basic"
	var payload request_models.TravelPayload
	if err := json.Unmarshal(session.Payload, &payload); err == nil && payload.Travel.Plan != "" {
		plan = payload.Travel.Plan
	}

	price := priceUnavailable
	if response.Data != nil {
		if premium, ok := response.Data.Premiums[strings.ToLower(plan)]; ok {
			price = fmt.Sprintf("S$%.2f", premium.DiscountedPremium)
		} else {
			log.Printf("No premium found for plan %q", plan)
		}
	}

	// Quote delivered; reset for a new conversation.
	q.resetStage(ctx, sessionID, db_models.StageInitial)
	return fmt.Sprintf(quoteResultReply, capitalize(plan), price), nil
}

func (q *QuoteService) resetStage(ctx context.Context, sessionID string, stage string) {
	if err := q.sessions.SetStage(sessionID, stage, ctx); err != nil {
		log.Printf("Failed to reset stage for session %s: %v", sessionID, err)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
