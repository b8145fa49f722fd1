package classifier

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const maxResponseBytes = 1 << 20

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *content `json:"content"`
}

// extractText follows candidates[0].content.parts[0].text.
func extractText(body io.Reader) (string, error) {
	var resp generateResponse
	if err := json.NewDecoder(io.LimitReader(body, maxResponseBytes)).Decode(&resp); err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrMalformedResponse, err)
	}

	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	first := resp.Candidates[0]
	if first.Content == nil || len(first.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: first candidate has no parts", ErrMalformedResponse)
	}

	text := strings.ReplaceAll(strings.TrimSpace(first.Content.Parts[0].Text), "\n", "")
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" {
		return "", fmt.Errorf("%w: empty text", ErrNoCandidates)
	}

	return text, nil
}
