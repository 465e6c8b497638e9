package scores

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	scoresObject   = "scores"
	scoresProperty = "table"

	DefaultLimit = 10
)

type Entry struct {
	Points  int       `yaml:"points"`
	Enemies int       `yaml:"enemies"`
	Seed    uint64    `yaml:"seed"`
	At      time.Time `yaml:"at"`
}

type table struct {
	Entries []Entry `yaml:"entries"`
}

// Store keeps the best rounds, highest first. With a nil manager it only
// lives in memory.
type Store struct {
	manager *gdata.Manager
	limit   int
	entries []Entry
	logger  *log.Logger
}

// Open creates a gdata manager for appName. When no data directory can be
// opened the store degrades to memory and the error is logged.
func Open(appName string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		logger.Warn("scores: persistent storage unavailable", "err", err)
		manager = nil
	}
	s := NewStore(manager, DefaultLimit, logger)
	if err := s.Load(); err != nil {
		logger.Warn("scores: load failed, starting empty", "err", err)
	}
	return s
}

func NewStore(manager *gdata.Manager, limit int, logger *log.Logger) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Store{manager: manager, limit: limit, logger: logger}
}

func (s *Store) Persistent() bool {
	return s != nil && s.manager != nil
}

func (s *Store) Load() error {
	if s == nil || s.manager == nil {
		return nil
	}
	if !s.manager.ObjectPropExists(scoresObject, scoresProperty) {
		s.entries = nil
		return nil
	}
	data, err := s.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return fmt.Errorf("scores: load: %w", err)
	}
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("scores: unmarshal: %w", err)
	}
	s.entries = nil
	for _, e := range t.Entries {
		s.insert(e)
	}
	return nil
}

func (s *Store) Save() error {
	if s == nil || s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(table{Entries: s.entries})
	if err != nil {
		return fmt.Errorf("scores: marshal: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("scores: save: %w", err)
	}
	return nil
}

// Record inserts e and persists the table. It returns the 1-based rank, or 0
// when e did not make the table.
func (s *Store) Record(e Entry) (int, error) {
	if s == nil {
		return 0, nil
	}
	rank := s.insert(e)
	if rank == 0 {
		return 0, nil
	}
	s.logger.Info("new high score", "points", e.Points, "rank", rank)
	return rank, s.Save()
}

func (s *Store) insert(e Entry) int {
	idx := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Points < e.Points
	})
	if idx >= s.limit {
		return 0
	}
	s.entries = append(s.entries, Entry{})
	copy(s.entries[idx+1:], s.entries[idx:])
	s.entries[idx] = e
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return idx + 1
}

// Entries returns a copy of the table, highest first.
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

func (s *Store) Best() int {
	if s == nil || len(s.entries) == 0 {
		return 0
	}
	return s.entries[0].Points
}
