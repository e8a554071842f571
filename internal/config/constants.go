package config

import "time"

const (
	// Reference numbers
	ReferencePrefix       = "LC-"
	ReferenceDigits       = 8
	ReferenceMaxAttempts  = 5
	ReferenceJitterMillis = 1000

	// Listing
	DefaultListLimit = 50
	MaxListLimit     = 200

	// Chat widget
	MaxChatMessageRunes = 2000
	MaxChatHistoryTurns = 10
	ChatRequestTimeout  = 30 * time.Second
	DefaultGeminiModel  = "gemini-2.5-flash"

	// Notifications
	NotifyQueueKey       = "notify:jobs"
	NotifyMaxAttempts    = 3
	NotifyPollTimeout    = 5 * time.Second
	NotifyDispatchWindow = 10 * time.Second

	// Staff tokens
	StaffTokenIssuer = "labourdesk-backend"
	StaffTokenTTL    = 12 * time.Hour
)

// ComplaintTypes is the closed category list offered by the intake form.
var ComplaintTypes = []string{
	"Wage & Payment Issues",
	"Workplace Safety",
	"Discrimination",
	"Unfair Dismissal",
	"Working Hours",
	"Child Labour",
	"Sexual Harassment",
	"Union Rights",
	"Other",
}

// TriagePriorities maps a complaint category to the priority suggested to staff
// in alerts. Categories not listed fall back to "medium".
var TriagePriorities = map[string]string{
	"Child Labour":          "urgent",
	"Sexual Harassment":     "urgent",
	"Workplace Safety":      "high",
	"Discrimination":        "high",
	"Wage & Payment Issues": "medium",
	"Unfair Dismissal":      "medium",
	"Working Hours":         "low",
	"Union Rights":          "low",
}

// NewsletterTopics are the topics a subscriber may opt into.
var NewsletterTopics = []string{
	"announcements",
	"labour-law",
	"job-fairs",
	"publications",
}
