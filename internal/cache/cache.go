// ABOUTME: Badger-backed local cache for day snapshots and user preferences.
// ABOUTME: Strictly best-effort; the remote API stays the single source of truth.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v3"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

// Key layout mirrors the original client's AsyncStorage keys so both read
// the same semantics: one day snapshot per (user, date), one preferences
// record per user.
const (
	dayLogPrefix        = "exerciseSets_"
	notificationsPrefix = "notifications_"
	sessionPrefix       = "session_"
)

// Store is the local key-value cache. It never carries edits the remote
// doesn't know about: every successful remote fetch overwrites the matching
// day snapshot wholesale.
type Store struct {
	mu sync.RWMutex
	db *badger.DB
}

// Open opens or creates the cache database under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	opts := badger.DefaultOptions(filepath.Join(dir, "cache")).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DayLogKey builds the snapshot key for one (user, ISO date) pair.
func DayLogKey(userID int, date string) string {
	return fmt.Sprintf("%s%d_%s", dayLogPrefix, userID, date)
}

// NotificationsKey builds the preferences key for one user.
func NotificationsKey(userID int) string {
	return fmt.Sprintf("%s%d", notificationsPrefix, userID)
}

// SessionKey builds the login-session key for one user.
func SessionKey(userID int) string {
	return fmt.Sprintf("%s%d", sessionPrefix, userID)
}

// SaveDayLog overwrites the snapshot for (userID, date) wholesale.
func (s *Store) SaveDayLog(userID int, date string, d models.DayLog) error {
	return s.setJSON(DayLogKey(userID, date), d)
}

// LoadDayLog reads the snapshot for (userID, date). The second return is
// false when no entry exists, which is not an error.
func (s *Store) LoadDayLog(userID int, date string) (models.DayLog, bool, error) {
	var d models.DayLog
	found, err := s.getJSON(DayLogKey(userID, date), &d)
	return d, found, err
}

// SaveJSON stores an arbitrary record under key. Used for preferences and
// session state.
func (s *Store) SaveJSON(key string, v any) error {
	return s.setJSON(key, v)
}

// LoadJSON reads an arbitrary record. Returns false when absent.
func (s *Store) LoadJSON(key string, v any) (bool, error) {
	return s.getJSON(key, v)
}

// ClearUser removes every record belonging to one user: all day snapshots,
// notification preferences, and the login session. This is the force-logout
// path.
func (s *Store) ClearUser(userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := []byte(fmt.Sprintf("%s%d_", dayLogPrefix, userID))
	var doomed [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			doomed = append(doomed, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan user keys: %w", err)
	}

	doomed = append(doomed,
		[]byte(NotificationsKey(userID)),
		[]byte(SessionKey(userID)),
	)

	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range doomed {
			if err := txn.Delete(key); err != nil && err != badger.ErrKeyNotFound {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// HistoryEntry is one prior day found to contain a logged workout.
type HistoryEntry struct {
	Date string
	Log  models.DayLog
}

// RecentWorkoutDays scans the previous `days` calendar days before `from`
// and returns the cached snapshots that contain at least one entered weight,
// most recent first.
func (s *Store) RecentWorkoutDays(userID int, from time.Time, days int) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for i := 1; i <= days; i++ {
		date := from.AddDate(0, 0, -i).Format("2006-01-02")
		d, found, err := s.LoadDayLog(userID, date)
		if err != nil {
			return nil, err
		}
		if found && d.HasWorkout() {
			entries = append(entries, HistoryEntry{Date: date, Log: d})
		}
	}
	return entries, nil
}

func (s *Store) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) getJSON(key string, v any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}
