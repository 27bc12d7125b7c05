package chat_fx

import (
	"log"
	"os"
	"strings"

	"go.uber.org/fx"
	"tripsure/internal/api/controllers"
	"tripsure/internal/repositories"
	"tripsure/internal/services"
	"tripsure/pkg/utils"
)

var Module = fx.Provide(
	ProvideQuoteClient,
	ProvidePayloadAgent,
	ProvideQuoteService,
	ProvideOrchestratorService,
	ProvideChatController)

// ProvideQuoteClient creates the quotation API client. QUOTE_TEST_MODE
// (default on) swaps in the mock so the flow works without the sandbox.
func ProvideQuoteClient() utils.QuoteClientInterface {
	testMode := getEnvWithDefault("QUOTE_TEST_MODE", "true")
	if strings.ToLower(testMode) == "true" {
		log.Println("QUOTE_TEST_MODE enabled, using mock quotation client")
		return utils.NewMockQuoteClient()
	}

	baseURL := getEnvWithDefault("QUOTE_API_BASE_URL", "https://api-sandbox.hlas.com.sg")
	log.Printf("Using quotation API at %s", baseURL)
	return utils.NewQuoteAPIClient(baseURL)
}

func ProvidePayloadAgent(sessions repositories.SessionStoreInterface) services.PayloadAgentInterface {
	return services.NewPayloadAgent(sessions)
}

func ProvideQuoteService(
	sessions repositories.SessionStoreInterface,
	client utils.QuoteClientInterface,
) services.QuoteServiceInterface {
	return services.NewQuoteService(sessions, client)
}

func ProvideOrchestratorService(
	sessions repositories.SessionStoreInterface,
	payloadAgent services.PayloadAgentInterface,
	quotes services.QuoteServiceInterface,
) services.OrchestratorServiceInterface {
	return services.NewOrchestratorService(sessions, payloadAgent, quotes)
}

func ProvideChatController(
	orchestrator services.OrchestratorServiceInterface,
) *controllers.ChatController {
	return controllers.NewChatController(orchestrator)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
