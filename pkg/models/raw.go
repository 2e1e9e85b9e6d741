package models

import "encoding/json"

// StorageStrategy says where a conversation keeps its message history.
// It is fixed at seed time and resolved once when the record is decoded,
// so every consumer can switch on it exhaustively instead of sniffing
// which JSON field happens to be present.
type StorageStrategy int

const (
	// StorageInline embeds the history in the conversation record.
	StorageInline StorageStrategy = iota
	// StorageReferenced keeps the history in a side batch keyed by
	// conversation id.
	StorageReferenced
)

func (s StorageStrategy) String() string {
	if s == StorageReferenced {
		return "referenced"
	}
	return "inline"
}

// RawFan mirrors the stored fan_data object. Historical records disagree
// on field spelling: name appears as "Name" or "name" and lifetime spend
// as "TotalSpent" or "total_spent", so both spellings are decoded and
// reconciled by the normalizer. member_since may be an epoch number or a
// string in one of several formats.
type RawFan struct {
	FanID            string   `json:"fanId"`
	Name             string   `json:"Name,omitempty"`
	NameAlt          string   `json:"name,omitempty"`
	Avatar           string   `json:"avatar,omitempty"`
	TotalSpent       *float64 `json:"TotalSpent,omitempty"`
	TotalSpentAlt    *float64 `json:"total_spent,omitempty"`
	SubscriptionTier string   `json:"subscription_tier,omitempty"`
	MemberSince      any      `json:"member_since,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	IsOnline         bool     `json:"is_online,omitempty"`
}

// RawMessage mirrors a stored message record. sent_at may be an epoch
// number or a string.
type RawMessage struct {
	MsgID       string          `json:"msg_id"`
	Body        string          `json:"body"`
	From        string          `json:"from"`
	SentAt      any             `json:"sent_at"`
	Attachments []RawAttachment `json:"attachments,omitempty"`
}

// RawAttachment is the stored attachment record. The type tag is trusted
// but re-checked during normalization; anything unrecognized is dropped.
type RawAttachment struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount,omitempty"`
	Price  float64 `json:"price,omitempty"`
	Label  string  `json:"label,omitempty"`
}

// RawConversation mirrors a stored conversation record. A record carries
// either an inline_messages list or a message_refs marker pointing at the
// referenced side table, never both.
type RawConversation struct {
	ConversationID string       `json:"conversation_id"`
	FanData        RawFan       `json:"fan_data"`
	Status         string       `json:"Status,omitempty"`
	Unread         int          `json:"unread,omitempty"`
	TotalMessages  int          `json:"total_messages,omitempty"`
	LastMessage    *RawMessage  `json:"last_message,omitempty"`
	InlineMessages []RawMessage `json:"inline_messages,omitempty"`
	MessageRefs    bool         `json:"message_refs,omitempty"`

	// Storage is derived from the wire shape when the record is decoded.
	Storage StorageStrategy `json:"-"`
}

// UnmarshalJSON decodes the stored shape and pins the storage strategy.
func (c *RawConversation) UnmarshalJSON(b []byte) error {
	type alias RawConversation
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = RawConversation(a)
	if c.MessageRefs {
		c.Storage = StorageReferenced
	} else {
		c.Storage = StorageInline
	}
	return nil
}

// SeedDocument is the persisted seed layout: an ordered list of raw
// conversation records plus the referenced-message side table.
type SeedDocument struct {
	RawConversations   []json.RawMessage       `json:"raw_conversations"`
	ReferencedMessages map[string][]RawMessage `json:"referenced_messages"`
}
