// Package roster holds the canonical goalie database for a slate.
package roster

import (
	"sort"
	"sync"

	"github.com/pucklab/nhl-totals/internal/models"
)

// Store is the canonical set of known goalies. Writes are first-wins: a
// second Upsert with an existing name is dropped, matching the dedup rule
// for the upstream goalie feed. Entries are never removed during a run.
type Store struct {
	mu      sync.RWMutex
	records map[string]models.GoalieRecord
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]models.GoalieRecord)}
}

// FromRecords builds a store from a fetched goalie list, keeping the first
// occurrence of each name.
func FromRecords(recs []models.GoalieRecord) *Store {
	s := NewStore()
	for _, r := range recs {
		s.Upsert(r)
	}
	return s
}

// Lookup returns the record for name, if present.
func (s *Store) Lookup(name string) (models.GoalieRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	return rec, ok
}

// Upsert inserts rec unless a record with the same name already exists.
func (s *Store) Upsert(rec models.GoalieRecord) {
	if rec.Name == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[rec.Name]; exists {
		return
	}
	s.records[rec.Name] = rec
}

// AllNames returns every goalie name, deduplicated and sorted.
func (s *Store) AllNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns a name-ordered snapshot of the store for display surfaces.
func (s *Store) Records() []models.GoalieRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]models.GoalieRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	return recs
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// EnsureSentinels guarantees the two generic fallback entries exist exactly
// once. Safe to call any number of times.
func (s *Store) EnsureSentinels() {
	s.Upsert(models.GoalieRecord{Name: models.AverageGoalieName, Team: models.SentinelTeam, Skill: 0.00})
	s.Upsert(models.GoalieRecord{Name: models.BackupRookieName, Team: models.SentinelTeam, Skill: models.BackupRookieSkill})
}
