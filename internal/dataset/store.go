package dataset

import (
	"context"
	"sync"
	"time"

	"mbtidash/adapters/excel"
	"mbtidash/internal/logging"

	"golang.org/x/sync/singleflight"
)

// Load reads and normalizes the file at path.
func Load(path string) (*Table, error) {
	start := time.Now()
	defer logging.TimeTrack(start, "[Load] "+path)

	records, err := excel.NewDataReader(path).ReadRecords()
	if err != nil {
		return nil, err
	}
	table, err := NewTable(records)
	if err != nil {
		return nil, err
	}

	logging.Infof("[Load] %s loaded: %d rows, %d countries by %q, %d value columns, %d warning(s)",
		path, table.Nrow(), len(table.Countries()), table.Label(), len(table.Columns()), len(table.Warnings()))
	return table, nil
}

// Store hands out the table for one data file, reloading it once the cached
// copy is older than ttl. A ttl of zero reloads on every call. Failed loads
// are not cached, so a file that appears later is picked up on the next call.
type Store struct {
	path string
	ttl  time.Duration
	load func(string) (*Table, error)
	now  func() time.Time

	mu       sync.RWMutex
	table    *Table
	loadedAt time.Time

	group singleflight.Group
}

// NewStore creates a store for the data file at path.
func NewStore(path string, ttl time.Duration) *Store {
	return &Store{
		path: path,
		ttl:  ttl,
		load: Load,
		now:  time.Now,
	}
}

// Path returns the data file the store reads.
func (s *Store) Path() string { return s.path }

// Table returns the cached table or loads it. Concurrent callers share one load.
func (s *Store) Table(ctx context.Context) (*Table, error) {
	s.mu.RLock()
	if s.table != nil && s.ttl > 0 && s.now().Sub(s.loadedAt) < s.ttl {
		table := s.table
		s.mu.RUnlock()
		return table, nil
	}
	s.mu.RUnlock()

	ch := s.group.DoChan(s.path, func() (interface{}, error) {
		table, err := s.load(s.path)
		if err != nil {
			logging.Errorf("[Store] load of %s failed: %v", s.path, err)
			return nil, err
		}
		s.mu.Lock()
		s.table = table
		s.loadedAt = s.now()
		s.mu.Unlock()
		return table, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Table), nil
	}
}
