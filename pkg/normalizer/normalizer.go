// Package normalizer maps raw, inconsistently-shaped conversation records
// into the canonical dashboard shape. Everything here is deterministic and
// side-effect-free given the same inputs and clock.
package normalizer

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"fandash/pkg/models"
)

var whitespace = regexp.MustCompile(`\s+`)

// AvatarFallback builds a deterministic placeholder avatar URL seeded by
// the lower-cased, whitespace-stripped fan name.
func AvatarFallback(name string) string {
	seed := whitespace.ReplaceAllString(strings.ToLower(name), "")
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

// Fan reconciles the case-variant raw fan fields into the canonical Fan.
func Fan(raw models.RawFan) models.Fan {
	name := raw.Name
	if name == "" {
		name = raw.NameAlt
	}
	avatar := raw.Avatar
	if avatar == "" {
		avatar = AvatarFallback(name)
	}
	var spent float64
	switch {
	case raw.TotalSpent != nil:
		spent = *raw.TotalSpent
	case raw.TotalSpentAlt != nil:
		spent = *raw.TotalSpentAlt
	}
	tags := raw.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.Fan{
		ID:               raw.FanID,
		Name:             name,
		Avatar:           avatar,
		TotalSpent:       spent,
		SubscriptionTier: tier(raw.SubscriptionTier),
		MemberSince:      Timestamp(raw.MemberSince),
		Tags:             tags,
		IsOnline:         raw.IsOnline,
	}
}

func tier(s string) models.Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return models.TierBasic
	case "vip":
		return models.TierVIP
	default:
		return models.TierFree
	}
}

func status(s string) models.Status {
	if strings.ToLower(s) == string(models.StatusExpired) {
		return models.StatusExpired
	}
	return models.StatusActive
}

// Message maps a raw message to its canonical shape, dropping attachments
// whose type tag or amounts are malformed.
func Message(raw models.RawMessage) models.Message {
	return models.Message{
		ID:          raw.MsgID,
		Body:        raw.Body,
		From:        models.Direction(raw.From),
		SentAt:      Timestamp(raw.SentAt),
		Attachments: attachments(raw.Attachments),
	}
}

func attachments(raw []models.RawAttachment) []models.Attachment {
	return lo.FilterMap(raw, func(a models.RawAttachment, _ int) (models.Attachment, bool) {
		switch models.AttachmentType(a.Type) {
		case models.AttachmentTip:
			if a.Amount <= 0 {
				return models.Attachment{}, false
			}
			return models.Attachment{Type: models.AttachmentTip, Amount: a.Amount}, true
		case models.AttachmentPPV:
			if a.Price <= 0 {
				return models.Attachment{}, false
			}
			return models.Attachment{Type: models.AttachmentPPV, Price: a.Price, Label: a.Label}, true
		}
		return models.Attachment{}, false
	})
}

// Conversation maps a single raw conversation record to canonical shape.
func Conversation(raw models.RawConversation) models.Conversation {
	var last *models.Message
	if raw.LastMessage != nil {
		m := Message(*raw.LastMessage)
		last = &m
	}
	return models.Conversation{
		ID:            raw.ConversationID,
		Fan:           Fan(raw.FanData),
		LastMessage:   last,
		UnreadCount:   raw.Unread,
		TotalMessages: raw.TotalMessages,
		Status:        status(raw.Status),
	}
}

// Conversations maps a raw record list in order.
func Conversations(raws []models.RawConversation) []models.Conversation {
	return lo.Map(raws, func(r models.RawConversation, _ int) models.Conversation {
		return Conversation(r)
	})
}

// Messages resolves the conversation's storage strategy, maps its history
// to canonical shape and returns it in chronological read order
// regardless of how the underlying storage ordered insertions. The refs
// argument is the conversation's referenced side-table batch; it is only
// consulted for referenced storage.
func Messages(conv models.RawConversation, refs []models.RawMessage) []models.Message {
	var raws []models.RawMessage
	switch conv.Storage {
	case models.StorageInline:
		raws = conv.InlineMessages
	case models.StorageReferenced:
		raws = refs
	}
	msgs := lo.Map(raws, func(m models.RawMessage, _ int) models.Message {
		return Message(m)
	})
	sortMessagesChronological(msgs)
	return msgs
}
