package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jeffcwolf/metadata-explorer/pkg/profile"
)

// ErrNoDataset is returned when an analysis is requested before any
// dataset was loaded.
var ErrNoDataset = errors.New("no dataset loaded")

// Snapshot is a loaded dataset with its catalog and quality scan. It is
// never mutated after construction, apart from the per-field cache.
type Snapshot struct {
	Dataset    *Dataset
	Fields     []profile.FieldInfo
	FieldNames []string
	Issues     []profile.RecordIssue
	Elapsed    time.Duration

	fields sync.Map // field name -> profile.FieldProfile
}

// NewSnapshot analyzes ds with the given quality ceiling.
func NewSnapshot(ds *Dataset, qualityCeiling int) *Snapshot {
	start := time.Now()
	fields, names := profile.InferSchema(ds.Records)
	issues := profile.ScanQualityLimit(ds.Records, qualityCeiling)

	return &Snapshot{
		Dataset:    ds,
		Fields:     fields,
		FieldNames: names,
		Issues:     issues,
		Elapsed:    time.Since(start),
	}
}

// Field returns the facet and pattern analysis of one field, computing it
// on first use.
func (s *Snapshot) Field(name string) profile.FieldProfile {
	if cached, ok := s.fields.Load(name); ok {
		fp, _ := cached.(profile.FieldProfile)

		return fp
	}

	fp := profile.AnalyzeFieldFull(s.Dataset.Records, name)
	actual, _ := s.fields.LoadOrStore(name, fp)
	stored, _ := actual.(profile.FieldProfile)

	return stored
}

// HasField reports whether name is in the catalog.
func (s *Snapshot) HasField(name string) bool {
	for _, f := range s.FieldNames {
		if f == name {
			return true
		}
	}

	return false
}

// LoadFunc loads a dataset. It is replaceable for tests.
type LoadFunc func(ctx context.Context, path string) (*Dataset, error)

// Session holds the active snapshot. A failed load leaves the previous
// snapshot in place. Loads run one at a time, so the most recently started
// successful load is the one that stays active.
type Session struct {
	loadMu   sync.Mutex
	mu       sync.RWMutex
	current  *Snapshot
	ceiling  int
	load     LoadFunc
	logger   *slog.Logger
	onLoaded []func(*Snapshot)
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithQualityCeiling sets the number of records the quality scan inspects.
func WithQualityCeiling(n int) SessionOption {
	return func(s *Session) { s.ceiling = n }
}

// WithMaxFileSize rejects sources larger than n bytes.
func WithMaxFileSize(n int64) SessionOption {
	return func(s *Session) {
		s.load = func(ctx context.Context, path string) (*Dataset, error) {
			return LoadLimited(ctx, path, n)
		}
	}
}

// WithLoader replaces the dataset loader.
func WithLoader(fn LoadFunc) SessionOption {
	return func(s *Session) { s.load = fn }
}

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// OnLoaded registers a callback run after every successful load.
func OnLoaded(fn func(*Snapshot)) SessionOption {
	return func(s *Session) { s.onLoaded = append(s.onLoaded, fn) }
}

// NewSession creates an empty session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		ceiling: profile.DefaultQualityCeiling,
		load:    Load,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads path, analyzes it and makes it the active snapshot.
func (s *Session) Load(ctx context.Context, path string) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	ds, err := s.load(ctx, path)
	if err != nil {
		s.logger.WarnContext(ctx, "dataset load failed, keeping previous state",
			"path", path, "error", err)

		return nil, err
	}

	snap := NewSnapshot(ds, s.ceiling)

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "dataset loaded",
		"path", path,
		"id", ds.ID,
		"records", len(ds.Records),
		"fields", len(snap.FieldNames),
		"issues", len(snap.Issues),
		"elapsed", snap.Elapsed,
	)

	for _, fn := range s.onLoaded {
		fn(snap)
	}

	return snap, nil
}

// Ensure returns the active snapshot when it was loaded from path, and
// loads path otherwise.
func (s *Session) Ensure(ctx context.Context, path string) (*Snapshot, error) {
	if cur, err := s.Current(); err == nil && cur.Dataset.Path == path {
		return cur, nil
	}

	return s.Load(ctx, path)
}

// Current returns the active snapshot.
func (s *Session) Current() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrNoDataset
	}

	return s.current, nil
}

// Ready is a readiness check that passes once a dataset is loaded.
func (s *Session) Ready(_ context.Context) error {
	_, err := s.Current()

	return err
}
