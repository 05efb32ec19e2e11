// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-tracker/coach/internal/application/adapter"
	"github.com/finance-tracker/coach/internal/domain/entity"
)

// DefaultGeminiModel is the multimodal model used for receipt extraction.
const DefaultGeminiModel = "gemini-2.5-flash"

const receiptPrompt = `Analyze this document and extract ALL transactions. It could be a single receipt, a bill or a bank statement with multiple transactions.
For bank statements extract each transaction separately with its date, merchant or payee, amount and type: income for credits and deposits, expense for debits and withdrawals.

Rules:
- amount is a positive number without currency symbols
- date uses the YYYY-MM-DD format
- category is one of: %s
- description is a brief summary of the transaction
- if nothing can be read, return an empty transactions array

Respond only with JSON matching the response schema.`

// GeminiReceiptExtractor implements adapter.ReceiptExtractor using Google Gemini.
type GeminiReceiptExtractor struct {
	apiKey    string
	modelName string
}

// NewGeminiReceiptExtractor creates a new extractor. An empty model name
// selects DefaultGeminiModel.
func NewGeminiReceiptExtractor(apiKey, modelName string) *GeminiReceiptExtractor {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	return &GeminiReceiptExtractor{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the extractor has credentials.
func (e *GeminiReceiptExtractor) IsAvailable() bool {
	return e.apiKey != ""
}

// Extract sends the document to Gemini and decodes the structured answer.
func (e *GeminiReceiptExtractor) Extract(ctx context.Context, document adapter.ReceiptDocument) ([]adapter.ExtractedRecord, error) {
	if !e.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(e.modelName)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = receiptSchema()

	prompt := fmt.Sprintf(receiptPrompt, strings.Join(entity.ReceiptCategoryNames, ", "))
	resp, err := model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: document.MIMEType, Data: document.Data},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	records, err := parseExtraction(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return records, nil
}

func receiptSchema() *genai.Schema {
	str := func(description string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: description}
	}
	category := str("Transaction category")
	category.Enum = entity.ReceiptCategoryNames
	kind := str("income for credits or deposits, expense for debits or withdrawals")
	kind.Enum = []string{string(entity.TransactionTypeIncome), string(entity.TransactionTypeExpense)}

	item := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"merchant":    str("Store, vendor or payee name"),
			"amount":      {Type: genai.TypeNumber, Description: "Transaction amount"},
			"date":        str("Date in YYYY-MM-DD format"),
			"category":    category,
			"description": str("Brief description of the transaction"),
			"type":        kind,
		},
		Required: []string{"merchant", "amount", "date", "category", "description", "type"},
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"transactions": {Type: genai.TypeArray, Description: "Transactions found in the document", Items: item},
		},
		Required: []string{"transactions"},
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && strings.TrimSpace(string(text)) != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type extraction struct {
	Transactions []adapter.ExtractedRecord `json:"transactions"`
}

// parseExtraction decodes the model answer, tolerating markdown fences.
func parseExtraction(text string) ([]adapter.ExtractedRecord, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var out extraction
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if out.Transactions == nil {
		return []adapter.ExtractedRecord{}, nil
	}
	return out.Transactions, nil
}
