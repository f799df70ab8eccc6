package models

import (
	"strings"
	"unicode/utf8"
)

// MaxFeedbackLen caps feedback content at 500 characters.
const MaxFeedbackLen = 500

// ValidateFeedbackContent checks the feedback creation preconditions.
func ValidateFeedbackContent(content string) *ValidationError {
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(content) > MaxFeedbackLen {
		return &ValidationError{Field: "content", Reason: "must be at most 500 characters"}
	}
	return nil
}
