package models

// Direction tells which side of the conversation sent a message.
type Direction string

const (
	FromCreator Direction = "creator"
	FromFan     Direction = "fan"
)

// Message is the canonical immutable chat message. SentAt is always an
// ISO-8601 instant regardless of how the raw record encoded it.
type Message struct {
	ID          string       `json:"id"`
	Body        string       `json:"body"`
	From        Direction    `json:"from"`
	SentAt      string       `json:"sentAt"`
	Attachments []Attachment `json:"attachments"`
}

// AttachmentType tags the attachment variant.
type AttachmentType string

const (
	AttachmentTip AttachmentType = "tip"
	AttachmentPPV AttachmentType = "ppv"
)

// Attachment is a tagged variant: a tip carries Amount, a pay-per-view
// unlock carries Price and Label. No other variants exist.
type Attachment struct {
	Type   AttachmentType `json:"type"`
	Amount float64        `json:"amount,omitempty"`
	Price  float64        `json:"price,omitempty"`
	Label  string         `json:"label,omitempty"`
}
