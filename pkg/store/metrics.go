package store

import (
	"bytes"

	"github.com/cockroachdb/pebble"
)

// Stats is a compact view of the store used by readiness checks and the
// telemetry collectors.
type Stats struct {
	Conversations      int
	ReferencedMessages int
	ApproxBytes        uint64
}

// GetStats walks the keyspace and returns best-effort counts and sizes.
// The dataset is dashboard-scale, so a full walk is cheap.
func GetStats() Stats {
	var s Stats
	if db == nil {
		return s
	}
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return s
	}
	defer iter.Close()
	for iter.First(); iter.Valid(); iter.Next() {
		s.ApproxBytes += uint64(len(iter.Key()) + len(iter.Value()))
		switch {
		case bytes.HasPrefix(iter.Key(), []byte(convPrefix)):
			s.Conversations++
		case bytes.HasPrefix(iter.Key(), []byte(msgsPrefix)):
			s.ReferencedMessages++
		}
	}
	return s
}
