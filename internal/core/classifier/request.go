package classifier

import (
	"fmt"
	"strings"
)

// DefaultCategories is the closed label set offered to the model.
var DefaultCategories = []string{
	"Food & Dining",
	"Groceries",
	"Transport",
	"Entertainment",
	"Shopping",
	"Utilities",
	"Health",
	"Tech",
	"Transfer",
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

func newGenerateRequest(prompt string) generateRequest {
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
}

func buildPrompt(reference, amount string, categories []string) string {
	return fmt.Sprintf(
		"You are a banking AI. Classify this transaction: '%s' (Amount: %s). "+
			"Strictly choose ONE category from this exact list: [%s]. "+
			"Reply ONLY with the category name. Do not explain.",
		reference, amount, strings.Join(categories, ", "),
	)
}
