// internal/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Config selects where the store lives.
type Config struct {
	Path     string
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives badger's internal messages. nil disables them.
	Logger *zerolog.Logger
}

// Store is a segment/record store with transactional writes.
// Safe for concurrent use; badger's conflict detection is the only lock.
type Store struct {
	db       *badger.DB
	inMemory bool
}

// Open opens (or creates) the store described by cfg.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, &Error{Op: "open", Err: errors.New("path required")}
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, &Error{Op: "open", Err: err}
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{l: *cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, &Error{Op: "open", Err: err}
	}
	return &Store{db: db, inMemory: cfg.InMemory}, nil
}

// OpenInMemory opens a throwaway store. Data is lost on Close.
func OpenInMemory() (*Store, error) {
	return Open(Config{InMemory: true})
}

func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return &Error{Op: "close", Err: err}
	}
	return nil
}

// Begin starts a read-write transaction.
// The caller must Commit or Discard it.
func (s *Store) Begin() *Tx {
	return &Tx{txn: s.db.NewTransaction(true)}
}

// Scan lists the records of segment in a read-only view.
func (s *Store) Scan(segment string) ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		out, err = scan(txn, segment)
		return err
	})
	if err != nil {
		return nil, wrap("scan", err)
	}
	return out, nil
}

// RunGC compacts the value log every interval until ctx is done.
// No-op for in-memory stores.
func (s *Store) RunGC(ctx context.Context, interval time.Duration, log zerolog.Logger) {
	if s.inMemory || interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				err := s.db.RunValueLogGC(0.5)
				if err == nil {
					continue
				}
				if !errors.Is(err, badger.ErrNoRewrite) {
					log.Warn().Err(err).Msg("store gc failed")
				}
				break
			}
		}
	}
}

// ---- badger logger bridge ----

type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(f string, a ...interface{})   { b.l.Error().Msg(fmt.Sprintf(f, a...)) }
func (b badgerLogger) Warningf(f string, a ...interface{}) { b.l.Warn().Msg(fmt.Sprintf(f, a...)) }
func (b badgerLogger) Infof(f string, a ...interface{})    { b.l.Debug().Msg(fmt.Sprintf(f, a...)) }
func (b badgerLogger) Debugf(f string, a ...interface{})   { b.l.Trace().Msg(fmt.Sprintf(f, a...)) }
