package models

// Status is the two-value conversation lifecycle.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Tier is the fan subscription tier.
type Tier string

const (
	TierFree  Tier = "Free"
	TierBasic Tier = "Basic"
	TierVIP   Tier = "VIP"
)

// Conversation is the canonical shape exposed to API consumers,
// independent of how the raw record encodes its fields.
type Conversation struct {
	ID            string   `json:"id"`
	Fan           Fan      `json:"fan"`
	LastMessage   *Message `json:"lastMessage"`
	UnreadCount   int      `json:"unreadCount"`
	TotalMessages int      `json:"totalMessages"`
	Status        Status   `json:"status"`
}

// Fan is the canonical fan identity attached to a conversation.
type Fan struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Avatar           string   `json:"avatar"`
	TotalSpent       float64  `json:"totalSpent"`
	SubscriptionTier Tier     `json:"subscriptionTier"`
	MemberSince      string   `json:"memberSince"`
	Tags             []string `json:"tags"`
	IsOnline         bool     `json:"isOnline"`
}

// FanSummary is the reduced fan view carried in a detail response. Tags
// are included so clients never have to re-derive them from list caches.
type FanSummary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Avatar string   `json:"avatar"`
	Tags   []string `json:"tags"`
}

// ConversationDetail is the reply-view payload: fan summary plus the full
// chronological message history.
type ConversationDetail struct {
	ConversationID string     `json:"conversationId"`
	Fan            FanSummary `json:"fan"`
	Messages       []Message  `json:"messages"`
}
