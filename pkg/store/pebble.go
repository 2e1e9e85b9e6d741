package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"fandash/pkg/logger"
	"fandash/pkg/models"
)

// ErrNotFound is returned when no conversation has the requested id.
var ErrNotFound = errors.New("conversation not found")

// MemoryPath selects the in-memory VFS. The store is volatile by design:
// every process start reseeds it from the seed document.
const MemoryPath = "memory"

var (
	db *pebble.DB

	// mu serializes read-modify-write sequences (append, tag replace,
	// reseed). Plain reads go through pebble's own snapshot isolation.
	mu sync.Mutex

	// seq disambiguates referenced-message keys sharing a nanosecond.
	seq uint64

	// seedDoc is the document Reset restores. Records are re-decoded on
	// every reseed, so mutations can never corrupt the seed itself.
	seedDoc []byte
)

const (
	convPrefix = "conv:"
	msgsPrefix = "msgs:"
)

// Open opens a Pebble database and keeps a global handle for simple usage
// in this package. An empty path or MemoryPath opens an in-memory VFS.
func Open(path string) error {
	opts := &pebble.Options{}
	if path == "" || path == MemoryPath {
		opts.FS = vfs.NewMem()
		path = MemoryPath
	}
	var err error
	db, err = pebble.Open(path, opts)
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "error", err)
		return err
	}
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// Seed wipes the store and loads the given seed document, keeping it for
// later Reset calls. The document layout is models.SeedDocument.
func Seed(doc []byte) error {
	mu.Lock()
	defer mu.Unlock()
	if err := loadLocked(doc); err != nil {
		return err
	}
	seedDoc = append([]byte(nil), doc...)
	return nil
}

// Reset restores the conversation collection and the referenced-message
// side table to the seed content.
func Reset() error {
	mu.Lock()
	defer mu.Unlock()
	if seedDoc == nil {
		return fmt.Errorf("store not seeded; call store.Seed first")
	}
	return loadLocked(seedDoc)
}

func loadLocked(doc []byte) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	var sd models.SeedDocument
	if err := json.Unmarshal(doc, &sd); err != nil {
		return fmt.Errorf("invalid seed document: %w", err)
	}

	if err := db.DeleteRange([]byte{0x00}, []byte{0xff}, pebble.Sync); err != nil {
		return err
	}

	for i, rec := range sd.RawConversations {
		// decode once to fail fast on malformed records and to learn the id
		var rc models.RawConversation
		if err := json.Unmarshal(rec, &rc); err != nil {
			return fmt.Errorf("invalid raw conversation at index %d: %w", i, err)
		}
		if rc.ConversationID == "" {
			return fmt.Errorf("raw conversation at index %d has no conversation_id", i)
		}
		// the padded sequence keeps iteration in seed order
		key := fmt.Sprintf("%s%06d", convPrefix, i)
		if err := db.Set([]byte(key), rec, pebble.Sync); err != nil {
			return err
		}
	}

	for convID, msgs := range sd.ReferencedMessages {
		for j, m := range msgs {
			b, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("invalid referenced message for %s: %w", convID, err)
			}
			key := refMsgKey(convID, int64(j), atomic.AddUint64(&seq, 1))
			if err := db.Set([]byte(key), b, pebble.Sync); err != nil {
				return err
			}
		}
	}

	logger.Info("store_seeded", "conversations", len(sd.RawConversations), "referenced_batches", len(sd.ReferencedMessages))
	return nil
}

func refMsgKey(convID string, ts int64, s uint64) string {
	return fmt.Sprintf("%s%s:%020d-%06d", msgsPrefix, convID, ts, s)
}

// ListConversations returns every raw conversation record in seed order.
func ListConversations() ([]models.RawConversation, error) {
	_, convs, err := scanConversations()
	return convs, err
}

// FindConversation scans for a conversation by id. Dataset sizes are
// dashboard-scale, so a linear scan is deliberate.
func FindConversation(id string) (models.RawConversation, error) {
	_, conv, err := findWithKey(id)
	return conv, err
}

// ReferencedMessages returns the side-table message batch for a
// conversation, in insertion order. Missing batches yield an empty slice.
func ReferencedMessages(convID string) ([]models.RawMessage, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte(msgsPrefix + convID + ":")
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []models.RawMessage
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		var m models.RawMessage
		if err := json.Unmarshal(iter.Value(), &m); err != nil {
			return nil, fmt.Errorf("corrupt referenced message under %q: %w", iter.Key(), err)
		}
		out = append(out, m)
	}
	return out, nil
}

// AppendMessage appends a raw message to the conversation's storage,
// updates its last-message summary and bumps total_messages. The storage
// strategy is fixed per conversation at seed time and never changes.
func AppendMessage(convID string, msg models.RawMessage) (models.RawMessage, error) {
	mu.Lock()
	defer mu.Unlock()

	key, conv, err := findWithKey(convID)
	if err != nil {
		return models.RawMessage{}, err
	}

	switch conv.Storage {
	case models.StorageInline:
		conv.InlineMessages = append(conv.InlineMessages, msg)
	case models.StorageReferenced:
		b, merr := json.Marshal(msg)
		if merr != nil {
			return models.RawMessage{}, merr
		}
		mk := refMsgKey(convID, time.Now().UTC().UnixNano(), atomic.AddUint64(&seq, 1))
		if err := db.Set([]byte(mk), b, pebble.Sync); err != nil {
			return models.RawMessage{}, err
		}
	}

	conv.LastMessage = &models.RawMessage{
		MsgID:  msg.MsgID,
		Body:   msg.Body,
		From:   msg.From,
		SentAt: msg.SentAt,
	}
	conv.TotalMessages++

	if err := writeConversation(key, conv); err != nil {
		return models.RawMessage{}, err
	}
	logger.Info("message_appended", "conversation", convID, "msg_id", msg.MsgID, "storage", conv.Storage.String())
	return msg, nil
}

// ReplaceTags overwrites the fan's tag list wholesale and returns the
// updated raw record. Merge semantics belong to the caller.
func ReplaceTags(convID string, tags []string) (models.RawConversation, error) {
	mu.Lock()
	defer mu.Unlock()

	key, conv, err := findWithKey(convID)
	if err != nil {
		return models.RawConversation{}, err
	}
	conv.FanData.Tags = append([]string(nil), tags...)
	if err := writeConversation(key, conv); err != nil {
		return models.RawConversation{}, err
	}
	logger.Info("tags_replaced", "conversation", convID, "tags", len(tags))
	return conv, nil
}

func writeConversation(key string, conv models.RawConversation) error {
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return db.Set([]byte(key), b, pebble.Sync)
}

func findWithKey(id string) (string, models.RawConversation, error) {
	keys, convs, err := scanConversations()
	if err != nil {
		return "", models.RawConversation{}, err
	}
	for i, c := range convs {
		if c.ConversationID == id {
			return keys[i], c, nil
		}
	}
	return "", models.RawConversation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func scanConversations() ([]string, []models.RawConversation, error) {
	if db == nil {
		return nil, nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte(convPrefix)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, nil, err
	}
	defer iter.Close()
	var keys []string
	var convs []models.RawConversation
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		var c models.RawConversation
		if err := json.Unmarshal(iter.Value(), &c); err != nil {
			return nil, nil, fmt.Errorf("corrupt conversation under %q: %w", iter.Key(), err)
		}
		keys = append(keys, string(iter.Key()))
		convs = append(convs, c)
	}
	return keys, convs, nil
}
