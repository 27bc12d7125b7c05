package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

const quoteEndpoint = "/api/v2/quotation/generate"

// QuoteAPIResponse is the quotation service response envelope.
type QuoteAPIResponse struct {
	Timestamp string        `json:"timestamp"`
	Success   string        `json:"success"`
	Warnings  []string      `json:"warnings"`
	Errors    []string      `json:"errors"`
	Data      *QuoteAPIData `json:"data"`
}

type QuoteAPIData struct {
	Premiums map[string]QuotePremium `json:"premiums"`
}

type QuotePremium struct {
	DiscountedPremium float64 `json:"discounted_premium"`
}

// Succeeded reports whether the API accepted the request. The service
// answers "ok" or "true" on success depending on the endpoint version.
func (r *QuoteAPIResponse) Succeeded() bool {
	return r.Success == "ok" || r.Success == "true"
}

// QuoteClientInterface generates a quote for a finalized application
// payload. The payload is passed through opaquely; the client never
// inspects it beyond what the mock needs for plan lookup.
type QuoteClientInterface interface {
	GenerateQuote(ctx context.Context, payload json.RawMessage) (*QuoteAPIResponse, error)
}

type QuoteAPIClient struct {
	baseURL string
	client  *http.Client
}

func NewQuoteAPIClient(baseURL string) *QuoteAPIClient {
	return &QuoteAPIClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GenerateQuote posts the payload to the quotation endpoint. Transport and
// HTTP-level failures are folded into a success:"false" response so the
// caller has a single error-reporting path, matching the API's own shape.
func (q *QuoteAPIClient) GenerateQuote(ctx context.Context, payload json.RawMessage) (*QuoteAPIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, q.baseURL+quoteEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuoteAPIError, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := q.client.Do(req)
	if err != nil {
		log.Printf("Error calling quote API: %v", err)
		return &QuoteAPIResponse{Success: "false", Errors: []string{fmt.Sprintf("Unknown error: %v", err)}}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("HTTP error calling quote API: %d", resp.StatusCode)
		return &QuoteAPIResponse{Success: "false", Errors: []string{fmt.Sprintf("HTTP error: %d", resp.StatusCode)}}, nil
	}

	var out QuoteAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Printf("Error decoding quote API response: %v", err)
		return &QuoteAPIResponse{Success: "false", Errors: []string{fmt.Sprintf("Unknown error: %v", err)}}, nil
	}
	return &out, nil
}

// MockQuoteClient fakes the quotation API for test mode. It answers with a
// fixed premium keyed by the payload's plan.
type MockQuoteClient struct{}

func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{}
}

func (m *MockQuoteClient) GenerateQuote(ctx context.Context, payload json.RawMessage) (*QuoteAPIResponse, error) {
	log.Println("--- MOCK API CALL to /api/v2/quotation/generate ---")

	plan := "gold"
	var body struct {
		Travel struct {
			Plan string `json:"plan"`
		} `json:"travel"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Travel.Plan != "" {
		plan = body.Travel.Plan
	}

	return &QuoteAPIResponse{
		Timestamp: time.Now().Format(time.RFC3339),
		Success:   "true",
		Warnings:  []string{},
		Errors:    []string{},
		Data: &QuoteAPIData{
			Premiums: map[string]QuotePremium{
				plan: {DiscountedPremium: 40.5},
			},
		},
	}, nil
}
