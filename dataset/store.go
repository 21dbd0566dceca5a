package dataset

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Sharon-codes/UIDAI-Hackathon/schema"
)

// DefaultRetryDelay is the pause before the single bootstrap retry.
const DefaultRetryDelay = 500 * time.Millisecond

// Loader produces the dataset. An error and an empty result are both
// treated as "not available yet".
type Loader func(ctx context.Context) ([]schema.Record, error)

// SourceLoader adapts a Source into a Loader.
func SourceLoader(src Source) Loader {
	return func(ctx context.Context) ([]schema.Record, error) {
		return Load(ctx, src)
	}
}

// Store holds the current dataset snapshot. Snapshots are replaced, never
// mutated, so readers may keep the slice they were handed.
type Store struct {
	mu       sync.RWMutex
	records  []schema.Record
	loadedAt time.Time
	attempts int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Records returns the current snapshot (nil before a successful load).
func (s *Store) Records() []schema.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Ready reports whether a non-empty dataset is loaded.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) > 0
}

// Status returns the record count, load time and bootstrap attempt count.
func (s *Store) Status() (count int, loadedAt time.Time, attempts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), s.loadedAt, s.attempts
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(records []schema.Record) {
	s.mu.Lock()
	s.records = records
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// Bootstrap runs loader, and if it yields nothing waits delay and tries
// exactly once more. Failures are logged; the store then stays empty and
// consumers render their no-data state. Returns whether data was loaded.
func (s *Store) Bootstrap(ctx context.Context, loader Loader, delay time.Duration) bool {
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	for attempt := 1; attempt <= 2; attempt++ {
		if attempt == 2 {
			log.Printf("⏳ Pulse: dataset not available, retrying in %s", delay)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Printf("⚠️ Pulse: bootstrap cancelled: %v", ctx.Err())
				return false
			case <-timer.C:
			}
		}

		s.mu.Lock()
		s.attempts = attempt
		s.mu.Unlock()

		records, err := loader(ctx)
		if err != nil {
			log.Printf("⚠️ Pulse: load attempt %d failed: %v", attempt, err)
			continue
		}
		if len(records) == 0 {
			log.Printf("⚠️ Pulse: load attempt %d returned no records", attempt)
			continue
		}
		s.Replace(records)
		log.Printf("✅ Pulse: dataset ready (%d records, attempt %d)", len(records), attempt)
		return true
	}

	log.Printf("❌ Pulse: dataset unavailable; dashboard will stay empty")
	return false
}
