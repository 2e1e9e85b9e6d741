// Package dashboard implements the read and mutation operations behind
// the creator inbox: list views, conversation detail, message append, tag
// replacement and the demo reset. It composes the store, the normalizer
// and the response cache; handlers stay thin.
package dashboard

import (
	"errors"
	"fmt"
	"time"

	"fandash/pkg/cache"
	"fandash/pkg/logger"
	"fandash/pkg/models"
	"fandash/pkg/normalizer"
	"fandash/pkg/store"
	"fandash/pkg/telemetry"
	"fandash/pkg/utils"
	"fandash/pkg/validation"
)

// Service wires the cache in front of the store+normalizer pipeline.
type Service struct {
	cache *cache.Cache

	// now stamps appended messages; swapped by tests.
	now func() time.Time
}

// New builds a Service around the given cache.
func New(c *cache.Cache) *Service {
	return &Service{cache: c, now: time.Now}
}

// ListResult carries a list view plus whether it came from cache.
type ListResult struct {
	Conversations []models.Conversation
	Cached        bool
}

// DetailResult carries a detail view plus whether it came from cache.
type DetailResult struct {
	Detail models.ConversationDetail
	Cached bool
}

// ListConversations returns the filtered, searched and sorted list view.
// Distinct parameter combinations cache independently.
func (s *Service) ListConversations(statusFilter, search, sortBy string) (ListResult, error) {
	key := cache.ListKey(statusFilter, search, sortBy)
	if v, ok := s.cache.Get(key); ok {
		telemetry.ObserveCacheHit("list")
		return ListResult{Conversations: v.([]models.Conversation), Cached: true}, nil
	}
	telemetry.ObserveCacheMiss("list")

	raws, err := store.ListConversations()
	if err != nil {
		return ListResult{}, err
	}
	convs := normalizer.Query(normalizer.Conversations(raws), statusFilter, search, sortBy)
	s.cache.Set(key, convs)
	return ListResult{Conversations: convs}, nil
}

// GetConversationDetail returns the fan summary and the full chronological
// message history for one conversation.
func (s *Service) GetConversationDetail(id string) (DetailResult, error) {
	key := cache.DetailKey(id)
	if v, ok := s.cache.Get(key); ok {
		telemetry.ObserveCacheHit("detail")
		return DetailResult{Detail: v.(models.ConversationDetail), Cached: true}, nil
	}
	telemetry.ObserveCacheMiss("detail")

	raw, err := store.FindConversation(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DetailResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return DetailResult{}, err
	}

	var refs []models.RawMessage
	if raw.Storage == models.StorageReferenced {
		refs, err = store.ReferencedMessages(id)
		if err != nil {
			return DetailResult{}, err
		}
	}

	fan := normalizer.Fan(raw.FanData)
	detail := models.ConversationDetail{
		ConversationID: raw.ConversationID,
		Fan: models.FanSummary{
			ID:     fan.ID,
			Name:   fan.Name,
			Avatar: fan.Avatar,
			Tags:   fan.Tags,
		},
		Messages: normalizer.Messages(raw, refs),
	}
	s.cache.Set(key, detail)
	return DetailResult{Detail: detail}, nil
}

// AppendMessage validates and appends a message to a conversation,
// stamping a generated id and the current time. The conversation's detail
// entry is dropped and every list entry is flushed, since the new last
// message can reorder or re-rank any cached list view.
func (s *Service) AppendMessage(id string, req validation.AppendMessage) (models.Message, error) {
	if err := validation.Struct(req); err != nil {
		return models.Message{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	raw := models.RawMessage{
		MsgID:  utils.GenMessageID(),
		Body:   req.Body,
		From:   req.From,
		SentAt: s.now().UTC().Format(normalizer.ISOMillis),
	}
	stored, err := store.AppendMessage(id, raw)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Message{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return models.Message{}, err
	}

	s.cache.Delete(cache.DetailKey(id))
	s.cache.Flush()
	logger.Debug("cache_invalidated", "reason", "append", "conversation", id)
	return normalizer.Message(stored), nil
}

// ReplaceTags overwrites the fan's tags and returns the refreshed
// canonical conversation. Tag changes surface in list views, so the whole
// cache is flushed.
func (s *Service) ReplaceTags(id string, req validation.ReplaceTags) (models.Conversation, error) {
	if err := validation.Struct(req); err != nil {
		return models.Conversation{}, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	updated, err := store.ReplaceTags(id, *req.Tags)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Conversation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return models.Conversation{}, err
	}

	s.cache.Flush()
	logger.Debug("cache_invalidated", "reason", "tags", "conversation", id)
	return normalizer.Conversation(updated), nil
}

// ResetStore restores the seed dataset and clears the cache, so the next
// read observes pristine data.
func (s *Service) ResetStore() error {
	if err := store.Reset(); err != nil {
		return err
	}
	s.cache.Flush()
	logger.Info("store_reset")
	return nil
}
