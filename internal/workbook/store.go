package workbook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"fleetpulse/internal/fleet"
	"fleetpulse/pkg/contracts/domain"
)

// Entry is a loaded workbook held in the store.
type Entry struct {
	ID       string           `json:"id"`
	Hash     string           `json:"hash"`
	Filename string           `json:"filename"`
	LoadedAt time.Time        `json:"loaded_at"`
	Workbook *domain.Workbook `json:"-"`
}

// Store keeps parsed workbooks in memory. Workbooks are memoized on the
// SHA-256 of the uploaded bytes: re-uploading an identical file returns the
// already-parsed entry, and concurrent identical uploads share a single
// parse through singleflight.
type Store struct {
	mu     sync.RWMutex
	byID   map[string]*Entry
	byHash map[string]string

	group  singleflight.Group
	logger *slog.Logger

	// clampNegative is the duration policy handed to the preprocessor.
	clampNegative bool
}

// NewStore creates an empty workbook store.
func NewStore(logger *slog.Logger, clampNegativeDurations bool) *Store {
	return &Store{
		byID:          make(map[string]*Entry),
		byHash:        make(map[string]string),
		logger:        logger.With(slog.String("component", "workbook_store")),
		clampNegative: clampNegativeDurations,
	}
}

// Load parses the uploaded bytes (or returns the cached entry for
// identical bytes), runs the trip preprocessor, and registers the workbook
// under a fresh ID.
func (s *Store) Load(ctx context.Context, filename string, data []byte) (*Entry, error) {
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	cached := false
	v, err, shared := s.group.Do(hash, func() (interface{}, error) {
		s.mu.RLock()
		if id, ok := s.byHash[hash]; ok {
			entry := s.byID[id]
			s.mu.RUnlock()
			cached = true
			return entry, nil
		}
		s.mu.RUnlock()

		wb, err := Parse(bytes.NewReader(data), s.logger)
		if err != nil {
			return nil, fmt.Errorf("parse workbook %q: %w", filename, err)
		}
		if wb.HasTrips() {
			wb.Trips = fleet.Preprocess(wb.Trips, s.clampNegative)
		}

		entry := &Entry{
			ID:       uuid.New().String(),
			Hash:     hash,
			Filename: filename,
			LoadedAt: time.Now(),
			Workbook: wb,
		}

		s.mu.Lock()
		s.byID[entry.ID] = entry
		s.byHash[hash] = entry.ID
		s.mu.Unlock()

		return entry, nil
	})
	if err != nil {
		return nil, err
	}

	entry := v.(*Entry)
	s.logger.InfoContext(ctx, "workbook loaded",
		slog.String("workbook_id", entry.ID),
		slog.String("filename", filename),
		slog.Bool("cache_hit", cached || shared),
	)
	return entry, nil
}

// Get returns the entry for a workbook ID.
func (s *Store) Get(id string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.byID[id]
	return entry, ok
}

// Len returns the number of distinct workbooks held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
