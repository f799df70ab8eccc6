// Package enhance wraps the external text-transform collaborator that
// polishes feedback content. The collaborator may fail or be unavailable;
// callers degrade to storing the original content only and never block
// feedback creation on it.
package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/qri-io/jsonschema"
)

// ErrUnavailable is returned when the collaborator cannot be reached or the
// circuit breaker is open.
var ErrUnavailable = errors.New("enhancer unavailable")

// Enhancer polishes a piece of feedback text while preserving its meaning.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (string, error)
}

// Disabled is an Enhancer that always reports the collaborator as
// unavailable. It is used when no enhancer endpoint is configured.
type Disabled struct{}

func (Disabled) Enhance(ctx context.Context, text string) (string, error) {
	return "", ErrUnavailable
}

const promptTemplate = `Polish and improve the following workplace feedback while keeping its original meaning and length. Respond with a single JSON object of the form {"polished": "<improved text>"} and nothing else.

Feedback: %s`

// responseSchema validates the model output before we trust it: a single
// object carrying a non-empty polished string.
var responseSchema = jsonschema.Must(`{
	"type": "object",
	"required": ["polished"],
	"properties": {
		"polished": {"type": "string", "minLength": 1}
	}
}`)

type enhanceResponse struct {
	Polished string `json:"polished"`
}

func buildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// parsePolished extracts and validates the polished text from raw model
// output. Models tend to wrap the JSON object in prose, so the first
// balanced object in the output is used.
func parsePolished(ctx context.Context, raw string) (string, error) {
	j := extractJSON(raw)
	if j == "" {
		return "", fmt.Errorf("no JSON object found in response")
	}

	errs, err := responseSchema.ValidateBytes(ctx, []byte(j))
	if err != nil {
		return "", fmt.Errorf("validate response: %w", err)
	}
	if len(errs) > 0 {
		return "", fmt.Errorf("response does not match schema: %s", errs[0].Error())
	}

	var resp enhanceResponse
	if err := json.Unmarshal([]byte(j), &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if strings.TrimSpace(resp.Polished) == "" {
		return "", fmt.Errorf("empty polished text")
	}

	return resp.Polished, nil
}

func extractJSON(s string) string {
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last == -1 || last < first {
		return ""
	}
	return s[first : last+1]
}
