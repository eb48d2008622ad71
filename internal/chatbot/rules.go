package chatbot

import (
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/shopbot-service/internal/domain"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// NewRule builds a responder rule from merchant input. Question and answer
// must be non-empty after trimming. rawTriggers is the comma-separated
// keyword field from the admin form: segments are trimmed, lowercased and
// empty segments dropped. Duplicates are kept; matching is containment
// based, so they are harmless.
func NewRule(question, answer, rawTriggers string) (domain.ResponderRule, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return domain.ResponderRule{}, apperrors.NewValidationError("question required", nil)
	}
	if answer == "" {
		return domain.ResponderRule{}, apperrors.NewValidationError("answer required", nil)
	}
	return domain.ResponderRule{
		ID:       uuid.NewString(),
		Question: question,
		Answer:   answer,
		Triggers: ParseTriggers(rawTriggers),
	}, nil
}

// ParseTriggers splits a comma-separated keyword list into lowercase
// trigger keywords. An input with no usable segments yields an empty set,
// which is accepted: such a rule simply never fires.
func ParseTriggers(raw string) []string {
	parts := strings.Split(raw, ",")
	triggers := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		triggers = append(triggers, strings.ToLower(trimmed))
	}
	return triggers
}
