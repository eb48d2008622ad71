package domain

import "time"

// BotStatus enumerates whether the chatbot answers customers.
type BotStatus string

const (
	BotStatusActive   BotStatus = "active"
	BotStatusInactive BotStatus = "inactive"
)

// ParseBotStatus validates a raw status value.
func ParseBotStatus(raw string) (BotStatus, bool) {
	switch BotStatus(raw) {
	case BotStatusActive, BotStatusInactive:
		return BotStatus(raw), true
	default:
		return "", false
	}
}

// Personality is an advisory tone tag shown in the merchant UI. It does not
// influence rule matching.
type Personality string

const (
	PersonalityFriendly     Personality = "friendly"
	PersonalityProfessional Personality = "professional"
	PersonalityEnthusiastic Personality = "enthusiastic"
	PersonalityDirect       Personality = "direct"
)

// ParsePersonality validates a raw personality value.
func ParsePersonality(raw string) (Personality, bool) {
	switch Personality(raw) {
	case PersonalityFriendly, PersonalityProfessional, PersonalityEnthusiastic, PersonalityDirect:
		return Personality(raw), true
	default:
		return "", false
	}
}

// Schedule is the attended window during which the shop is staffed.
// Start and End are local times of day ("HH:MM") in the given IANA zone.
type Schedule struct {
	Start    string
	End      string
	Timezone string
}

// IsZero reports whether no attended window has been configured.
func (s Schedule) IsZero() bool {
	return s.Start == "" && s.End == ""
}

// ResponderRule is a merchant-configured canned answer. Triggers are
// lowercase keywords whose presence in an inbound message fires the rule.
type ResponderRule struct {
	ID        string
	Question  string
	Answer    string
	Triggers  []string
	Position  int
	CreatedAt time.Time
}

// ChatbotConfig is the per-shop chatbot aggregate. Responses keep their
// insertion order; the resolver scans them front to back.
type ChatbotConfig struct {
	ID             string
	ShopID         string
	Name           string
	Status         BotStatus
	WelcomeMessage string
	Personality    Personality
	Schedule       Schedule
	Responses      []ResponderRule
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Active reports whether the bot may answer at all.
func (c *ChatbotConfig) Active() bool {
	return c.Status == BotStatusActive
}
