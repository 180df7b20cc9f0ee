package store

import (
	"log"
	"sync"
	"time"
)

// Record is the immutable composed outcome of one analysis run
type Record struct {
	ID            string    `json:"id"`
	Transcript    string    `json:"transcript"`
	Feedback      string    `json:"feedback"`
	CorrectedText string    `json:"correctedText"`
	Audio         []byte    `json:"audio"`
	CreatedAt     time.Time `json:"createdAt"`
}

type entry struct {
	record    *Record
	expiresAt time.Time
}

// Store maps analysis ids to records with per-entry expiry. Expiry is a
// deadline checked lazily on every read plus a periodic background sweep, so
// no timer object accumulates per record.
type Store struct {
	mu      sync.Mutex
	records map[string]entry

	closeOnce sync.Once
	done      chan struct{}
}

const sweepInterval = time.Minute

// New creates a store and starts its background sweeper
func New() *Store {
	return newStore(sweepInterval)
}

func newStore(interval time.Duration) *Store {
	s := &Store{
		records: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go s.sweep(interval)
	return s
}

// Put inserts a record that expires ttl from now. Ids are generated to be
// unique per run; overwriting is not a supported operation.
func (s *Store) Put(rec *Record, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = entry{
		record:    rec,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get retrieves a record by id. Expired records are treated as absent and
// dropped on the spot.
func (s *Store) Get(id string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.records[id]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(s.records, id)
		return nil, false
	}
	return e.record, true
}

// GetAudio retrieves the audio bytes for a record. It also reports absence
// when the record exists but carries no audio.
func (s *Store) GetAudio(id string) ([]byte, bool) {
	rec, ok := s.Get(id)
	if !ok || len(rec.Audio) == 0 {
		return nil, false
	}
	return rec.Audio, true
}

// Remove deletes a record. Removing a non-existent id is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
}

// Len returns the number of live records
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Close stops the background sweeper. Safe to call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Store) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			removed := 0
			for id, e := range s.records {
				if now.After(e.expiresAt) {
					delete(s.records, id)
					removed++
				}
			}
			s.mu.Unlock()
			if removed > 0 {
				log.Printf("[store] swept %d expired result(s)", removed)
			}
		}
	}
}
