package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripsure/internal/models/db_models"
	"tripsure/internal/models/request_models"
	"tripsure/internal/repositories"
)

func newTestAgent() (PayloadAgentInterface, *repositories.MemorySessionStore) {
	store := repositories.NewMemorySessionStore()
	return NewPayloadAgent(store), store
}

func runTurn(t *testing.T, agent PayloadAgentInterface, sessionID, message string) string {
	t.Helper()
	reply, err := agent.RunPayloadCollectionTurn(context.Background(), message, nil, sessionID)
	require.NoError(t, err)
	return reply
}

func sessionPayload(t *testing.T, store *repositories.MemorySessionStore, sessionID string) *request_models.TravelPayload {
	t.Helper()
	session, err := store.GetOrCreateSession(sessionID, context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, session.Payload)

	payload := &request_models.TravelPayload{}
	require.NoError(t, json.Unmarshal(session.Payload, payload))
	return payload
}

// fullAnswers walks the whole script in catalog order.
var fullAnswers = []string{
	"s",
	"2024-03-01",
	"2024-03-05",
	"mal",
	"2",
	"1",
	"true",
	"false",
	"true",
	"user@example.com",
	"81234567",
	"no",
}

func TestFirstTurnAsksPolicyType(t *testing.T) {
	agent, store := newTestAgent()

	reply := runTurn(t, agent, "s1", "hello")
	assert.Equal(t, "To start, what is the policy type? (Enter 'S' for Single Trip or 'A' for Annual)", reply)

	session, err := store.GetOrCreateSession("s1", context.Background())
	require.NoError(t, err)
	require.NotNil(t, session.LastQuestionKey)
	assert.Equal(t, fieldPolicyType, *session.LastQuestionKey)
}

func TestAnswersAdvanceThroughCatalog(t *testing.T) {
	agent, store := newTestAgent()

	runTurn(t, agent, "s1", "hi")
	reply := runTurn(t, agent, "s1", "s")
	assert.Equal(t, "What is your travel start date (YYYY-MM-DD)?", reply)

	payload := sessionPayload(t, store, "s1")
	require.NotNil(t, payload.Travel.PolicyType)
	assert.Equal(t, "single", *payload.Travel.PolicyType)

	session, err := store.GetOrCreateSession("s1", context.Background())
	require.NoError(t, err)
	require.NotNil(t, session.LastQuestionKey)
	assert.Equal(t, fieldStartDate, *session.LastQuestionKey)
}

func TestInvalidDateReAsksWithoutMutation(t *testing.T) {
	agent, store := newTestAgent()

	runTurn(t, agent, "s1", "hi")
	runTurn(t, agent, "s1", "s")

	before, err := store.GetOrCreateSession("s1", context.Background())
	require.NoError(t, err)

	reply := runTurn(t, agent, "s1", "tomorrow")
	assert.Contains(t, reply, "That doesn't look like a valid date format. Please use YYYY-MM-DD.")
	assert.Contains(t, reply, "What is your travel start date (YYYY-MM-DD)?")

	after, err := store.GetOrCreateSession("s1", context.Background())
	require.NoError(t, err)
	require.NotNil(t, after.LastQuestionKey)
	assert.Equal(t, fieldStartDate, *after.LastQuestionKey)
	assert.Equal(t, string(before.Payload), string(after.Payload))

	payload := sessionPayload(t, store, "s1")
	require.NotNil(t, payload.Internal)
	assert.Nil(t, payload.Internal.StartDate)
}

func TestSlashDateNormalizedOnWrite(t *testing.T) {
	agent, store := newTestAgent()

	runTurn(t, agent, "s1", "hi")
	runTurn(t, agent, "s1", "s")
	runTurn(t, agent, "s1", "2024/03/05")

	payload := sessionPayload(t, store, "s1")
	require.NotNil(t, payload.Internal)
	require.NotNil(t, payload.Internal.StartDate)
	assert.Equal(t, "2024-03-05", *payload.Internal.StartDate)
}

func TestNonNumericCountReAsksSameQuestion(t *testing.T) {
	agent, store := newTestAgent()

	runTurn(t, agent, "s1", "hi")
	for _, answer := range fullAnswers[:4] {
		runTurn(t, agent, "s1", answer)
	}

	reply := runTurn(t, agent, "s1", "two")
	assert.Equal(t, "How many adults are traveling?", reply)

	session, err := store.GetOrCreateSession("s1", context.Background())
	require.NoError(t, err)
	require.NotNil(t, session.LastQuestionKey)
	assert.Equal(t, fieldAdultCount, *session.LastQuestionKey)

	payload := sessionPayload(t, store, "s1")
	assert.Empty(t, payload.Travel.NumberOfTravellers.Adult)
}

func TestFullConversationFinalizesPayload(t *testing.T) {
	agent, store := newTestAgent()

	reply := runTurn(t, agent, "s1", "hello")
	for _, answer := range fullAnswers {
		reply = runTurn(t, agent, "s1", answer)
	}
	assert.Equal(t, collectionDoneReply, reply)

	session, err := store.GetOrCreateSession("s1", context.Background())
	require.NoError(t, err)
	assert.Equal(t, db_models.StageQuoteGeneration, session.Stage)
	assert.Nil(t, session.LastQuestionKey)

	// The internal date group must not survive finalization.
	var generic map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(session.Payload, &generic))
	assert.NotContains(t, generic, "_internal")

	payload := sessionPayload(t, store, "s1")
	require.NotNil(t, payload.Travel.NumberOfDays)
	assert.Equal(t, 5, *payload.Travel.NumberOfDays)
	require.NotNil(t, payload.Travel.NumberOfTravellers.Total)
	assert.Equal(t, 3, *payload.Travel.NumberOfTravellers.Total)
	assert.Equal(t, []string{"MAL"}, payload.Travel.CountryCode)
	require.NotNil(t, payload.Promotion.CouponCode)
	assert.Equal(t, "", *payload.Promotion.CouponCode)
	require.NotNil(t, payload.Leads.ContactMobile)
	assert.Equal(t, "81234567", *payload.Leads.ContactMobile)
}

// Known behavior: an inverted range is floored to a one-day trip rather
// than rejected.
func TestInvertedDatesFloorToOneDay(t *testing.T) {
	agent, store := newTestAgent()

	answers := append([]string{}, fullAnswers...)
	answers[1] = "2024-03-05"
	answers[2] = "2024-03-01"

	runTurn(t, agent, "s1", "hello")
	for _, answer := range answers {
		runTurn(t, agent, "s1", answer)
	}

	payload := sessionPayload(t, store, "s1")
	require.NotNil(t, payload.Travel.NumberOfDays)
	assert.Equal(t, 1, *payload.Travel.NumberOfDays)
}

func TestSessionsDoNotShareDrafts(t *testing.T) {
	agent, store := newTestAgent()

	runTurn(t, agent, "s1", "hi")
	runTurn(t, agent, "s1", "s")
	runTurn(t, agent, "s2", "hi")

	first := sessionPayload(t, store, "s1")
	second := sessionPayload(t, store, "s2")

	require.NotNil(t, first.Travel.PolicyType)
	assert.Nil(t, second.Travel.PolicyType)
}
