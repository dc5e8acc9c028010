package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	m "github.com/tienduong-21/extract-infor/internal/model"
	"github.com/tyler-sommer/stick"
)

//go:embed templates/extraction.twig
var extractionTemplate string

// PromptProvider renders the extraction prompt. The example JSON structure
// shown to the model is generated from the schema dictionary, so prompt and
// validator can never drift apart.
type PromptProvider struct {
	env     *stick.Env
	example string
}

// NewPromptProvider builds the provider, pre-rendering the empty example
// document once.
func NewPromptProvider(schema m.Schema) (*PromptProvider, error) {
	example := schema.EmptyDocument()
	example.LineItems = []m.LineItem{schema.EmptyLineItem()}

	encoded, err := json.MarshalIndent(example.Encode(schema), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("render example document: %w", err)
	}

	return &PromptProvider{
		env:     stick.New(nil),
		example: string(encoded),
	}, nil
}

// ExtractionPrompt renders the full prompt for one email body.
func (p *PromptProvider) ExtractionPrompt(email string) (string, error) {
	var out strings.Builder

	err := p.env.Execute(extractionTemplate, &out, map[string]stick.Value{
		"example": p.example,
		"email":   email,
	})
	if err != nil {
		return "", fmt.Errorf("execute extraction template: %w", err)
	}

	return out.String(), nil
}
