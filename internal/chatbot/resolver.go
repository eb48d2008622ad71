package chatbot

import (
	"strings"
	"time"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// DecisionKind classifies the outcome of resolving an inbound message.
type DecisionKind string

const (
	// DecisionDisabled is returned when the bot is switched off. The
	// surrounding surface should not have invoked the resolver at all, but
	// the contract stays explicit in case the caller forgets.
	DecisionDisabled DecisionKind = "disabled"
	// DecisionOutOfHours is returned when now falls outside the attended
	// window of an active bot.
	DecisionOutOfHours DecisionKind = "out_of_hours"
	// DecisionAutoReply carries the canned answer of the first matching rule.
	DecisionAutoReply DecisionKind = "auto_reply"
	// DecisionEscalate signals that no rule matched and a human should take
	// over. Opening a ticket is the caller's call, not the resolver's.
	DecisionEscalate DecisionKind = "escalate"
)

// Decision is the resolver's verdict for one inbound message.
type Decision struct {
	Kind   DecisionKind
	Answer string
	RuleID string
}

// Resolve decides how the bot should handle an inbound customer message.
// It is a pure function of its inputs: the config snapshot must not be
// mutated while a call is in progress, but independent calls may run
// concurrently.
//
// Matching lowercases the message once, then scans rules in stored order
// and each rule's triggers in order, testing substring containment. The
// first rule with at least one matching trigger wins; ties between rules
// are broken by insertion order, never by trigger length or specificity.
func Resolve(message string, cfg *domain.ChatbotConfig, now time.Time) Decision {
	if !cfg.Active() {
		return Decision{Kind: DecisionDisabled}
	}
	if !IsAttended(cfg.Schedule, now) {
		return Decision{Kind: DecisionOutOfHours}
	}

	lowered := strings.ToLower(message)
	for _, rule := range cfg.Responses {
		for _, trigger := range rule.Triggers {
			if trigger == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(trigger)) {
				return Decision{
					Kind:   DecisionAutoReply,
					Answer: rule.Answer,
					RuleID: rule.ID,
				}
			}
		}
	}
	return Decision{Kind: DecisionEscalate}
}
