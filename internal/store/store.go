// Package store owns the per-month partition files of a quill diary.
//
// Each partition lives at <root>/<YYYY>/<Month>_<YYYY><ext> and holds the
// month's records sorted by header date, separated by one blank line.
// Append is a whole-file read-merge-rewrite. Concurrent writers from
// separate processes are serialised by an advisory lock file next to the
// partition when locking is enabled; without it the last writer wins. Lock
// files are hidden (.<Month>_<YYYY><ext>.lock) and persist between writes.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"

	"github.com/gorewood/quill/internal/catalog"
	"github.com/gorewood/quill/internal/diary"
)

// partitionPerm is the mode for partition files.
const partitionPerm = 0o644

// lockSuffix is appended to a partition path to name its lock file.
const lockSuffix = ".lock"

// LockPath returns the lock file guarding the partition at path: a hidden
// sibling named .<partition>.lock. Lock files are left in place after use.
func LockPath(path string) string {
	return filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+lockSuffix)
}

// lockRetryDelay is the poll interval while waiting for a held lock.
const lockRetryDelay = 25 * time.Millisecond

// IOError reports a filesystem failure while reading or writing a partition.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause for errors.Is/errors.As support.
func (e *IOError) Unwrap() error {
	return e.Err
}

// ErrLocked is returned when the partition lock is held by another process.
var ErrLocked = errors.New("partition is locked by another writer")

// Rebuilder regenerates derived artifacts after a partition changes.
type Rebuilder interface {
	Rebuild() error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRebuilder sets the hook run after every successful Append.
func WithRebuilder(r Rebuilder) Option {
	return func(s *Store) {
		s.rebuilder = r
	}
}

// WithLocking enables the advisory partition lock. timeout bounds the wait
// for a lock held by another process; zero waits indefinitely.
func WithLocking(enabled bool, timeout time.Duration) Option {
	return func(s *Store) {
		s.locking = enabled
		s.lockTimeout = timeout
	}
}

// Store reads and rewrites partition files under a catalog root.
type Store struct {
	catalog     *catalog.Catalog
	logger      *zap.Logger
	rebuilder   Rebuilder
	locking     bool
	lockTimeout time.Duration
}

// New creates a Store over the catalog's root and extension.
func New(cat *catalog.Catalog, opts ...Option) *Store {
	s := &Store{catalog: cat, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the store writes into.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// PartitionPath returns the partition file owning date.
func (s *Store) PartitionPath(date time.Time) string {
	return s.catalog.PartitionPath(date.Year(), date.Month())
}

// ReadAll returns the records of a partition in file order. A missing or
// empty partition yields no records.
func (s *Store) ReadAll(year int, month time.Month) ([]string, error) {
	records, _, err := s.read(s.catalog.PartitionPath(year, month))
	return records, err
}

// AppendEntry encodes entry and appends it to its partition.
func (s *Store) AppendEntry(entry *diary.Entry) (string, error) {
	record, err := diary.Encode(entry)
	if err != nil {
		return "", err
	}
	return s.Append(record, entry.Date)
}

// Append merges record into the partition for date and returns the
// partition path. A record whose trimmed content already exists is not
// added again. Records are re-sorted by header date with undated records
// last, and the whole file is rewritten atomically.
func (s *Store) Append(record string, date time.Time) (string, error) {
	record = strings.TrimSpace(record)
	if record == "" || !strings.Contains(record, diary.HeaderMarker) {
		return "", &diary.ValidationError{
			Fields:  []string{"record"},
			Message: "record has no diary header",
		}
	}

	path := s.PartitionPath(date)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &IOError{Op: "create directory", Path: dir, Err: err}
	}

	unlock, err := s.lock(path)
	if err != nil {
		return "", err
	}
	defer unlock()

	existing, trailing, err := s.read(path)
	if err != nil {
		return "", err
	}
	if trailing != "" {
		s.logger.Warn("dropping text without a record header after last record",
			zap.String("path", path),
			zap.Int("bytes", len(trailing)))
	}

	merged, added := mergeRecords(existing, record)
	SortRecords(merged)

	if err := WriteFileAtomic(path, []byte(diary.JoinRecords(merged)), partitionPerm); err != nil {
		return "", &IOError{Op: "write partition", Path: path, Err: err}
	}

	s.logger.Debug("partition rewritten",
		zap.String("path", path),
		zap.Int("records", len(merged)),
		zap.Bool("added", added))

	if s.rebuilder != nil {
		if err := s.rebuilder.Rebuild(); err != nil {
			s.logger.Warn("rebuild after append failed", zap.Error(err))
		}
	}
	return path, nil
}

// read loads and splits a partition file.
func (s *Store) read(path string) ([]string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", nil
		}
		return nil, "", &IOError{Op: "read partition", Path: path, Err: err}
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", nil
	}
	records, trailing := diary.SplitRecords(string(data))
	return records, trailing, nil
}

// lock takes the advisory lock for path when locking is enabled and
// returns the matching release func.
func (s *Store) lock(path string) (func(), error) {
	if !s.locking {
		return func() {}, nil
	}
	fileLock := flock.New(LockPath(path))

	if s.lockTimeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
		defer cancel()
		locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
		if errors.Is(err, context.DeadlineExceeded) || (err == nil && !locked) {
			return nil, ErrLocked
		}
		if err != nil {
			return nil, &IOError{Op: "lock partition", Path: path, Err: err}
		}
	} else if err := fileLock.Lock(); err != nil {
		return nil, &IOError{Op: "lock partition", Path: path, Err: err}
	}

	return func() {
		if unlockErr := fileLock.Unlock(); unlockErr != nil {
			s.logger.Warn("releasing partition lock failed",
				zap.String("path", path), zap.Error(unlockErr))
		}
	}, nil
}

// mergeRecords deduplicates existing records by trimmed content and adds
// record unless an identical one is already present.
func mergeRecords(existing []string, record string) ([]string, bool) {
	seen := make(map[uint64][]string, len(existing)+1)
	merged := make([]string, 0, len(existing)+1)

	insert := func(r string) bool {
		r = strings.TrimSpace(r)
		h := xxh3.HashString(r)
		for _, other := range seen[h] {
			if other == r {
				return false
			}
		}
		seen[h] = append(seen[h], r)
		merged = append(merged, r)
		return true
	}

	for _, r := range existing {
		insert(r)
	}
	added := insert(record)
	return merged, added
}

// SortRecords orders records ascending by header date. Records without a
// decodable date sort after all dated ones; ties keep their current order.
func SortRecords(records []string) {
	type keyed struct {
		date time.Time
		ok   bool
	}
	keys := make(map[string]keyed, len(records))
	for _, r := range records {
		date, ok := diary.DecodeDate(r)
		keys[r] = keyed{date: date, ok: ok}
	}
	sort.SliceStable(records, func(i, j int) bool {
		a, b := keys[records[i]], keys[records[j]]
		if a.ok != b.ok {
			return a.ok
		}
		return a.date.Before(b.date)
	})
}
