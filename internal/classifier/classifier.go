package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/dvloznov/txnsheet/internal/domain"
)

// Classifier labels one free-text notification message against the
// TransactionRecord schema. Implementations make exactly one attempt; the
// caller decides what to do with a failure.
type Classifier interface {
	Classify(ctx context.Context, message string) (domain.TransactionRecord, error)
}

// Gemini is the concrete Classifier backed by the Gemini API. The response
// schema forces the model to emit schema-conformant JSON, so the only local
// parsing is a single unmarshal.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini classifier for the given model name.
func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{apiKey: apiKey, model: model}
}

// Classify sends the message with the fixed schema and system instruction and
// returns the parsed record. Every failure is tagged KindClassification.
func (g *Gemini) Classify(ctx context.Context, message string) (domain.TransactionRecord, error) {
	var record domain.TransactionRecord

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return record, domain.NewError(domain.KindClassification, fmt.Errorf("create genai client: %w", err))
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: message},
			},
		},
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType:  "application/json",
		ResponseSchema:    recordSchema(),
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		return record, domain.NewError(domain.KindClassification, fmt.Errorf("generate content: %w", err))
	}

	rawText := resp.Text()
	if rawText == "" {
		return record, domain.Errorf(domain.KindClassification, "empty response from model")
	}

	if err := json.Unmarshal([]byte(rawText), &record); err != nil {
		return record, domain.NewError(domain.KindClassification,
			fmt.Errorf("unmarshal model output: %w\nraw response: %s", err, rawText))
	}

	return record, nil
}
