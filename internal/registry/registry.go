// internal/registry/registry.go
package registry

import (
	"bytes"
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tamzrod/wififailover/internal/store"
)

// Segment holds one record per trusted SSID; the value is the raw SSID.
const Segment = "ssids"

// maxAttempts bounds retries of a write that lost a commit race.
const maxAttempts = 3

// ErrEmptySSID rejects blank keys.
var ErrEmptySSID = errors.New("registry: empty ssid")

// Registry is the persisted set of SSIDs eligible as failover targets.
// Credentials are not stored here.
type Registry struct {
	st  *store.Store
	log zerolog.Logger
}

func New(st *store.Store, log zerolog.Logger) *Registry {
	return &Registry{st: st, log: log}
}

// List returns trusted SSIDs in storage scan order.
// A registry that was never written to is empty, not an error.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	recs, err := r.st.Scan(Segment)
	if errors.Is(err, store.ErrSegmentNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, string(rec.Data))
	}
	return out, nil
}

// Contains reports whether ssid is trusted.
func (r *Registry) Contains(ctx context.Context, ssid string) (bool, error) {
	list, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for _, s := range list {
		if s == ssid {
			return true, nil
		}
	}
	return false, nil
}

// Add marks ssid as trusted. Adding a present SSID succeeds without writing.
func (r *Registry) Add(ctx context.Context, ssid string) error {
	if ssid == "" {
		return ErrEmptySSID
	}

	return r.update(ctx, "add", ssid, func(tx *store.Tx) (bool, error) {
		if err := tx.EnsureSegment(Segment); err != nil {
			return false, err
		}

		recs, err := tx.Scan(Segment)
		if err != nil {
			return false, err
		}
		if _, ok := find(recs, ssid); ok {
			return false, nil
		}

		_, err = tx.Insert(Segment, []byte(ssid))
		return err == nil, err
	})
}

// Remove drops ssid from the trusted set. Removing an absent SSID is a no-op.
func (r *Registry) Remove(ctx context.Context, ssid string) error {
	if ssid == "" {
		return ErrEmptySSID
	}

	return r.update(ctx, "remove", ssid, func(tx *store.Tx) (bool, error) {
		ok, err := tx.SegmentExists(Segment)
		if err != nil || !ok {
			return false, err
		}

		recs, err := tx.Scan(Segment)
		if err != nil {
			return false, err
		}
		id, found := find(recs, ssid)
		if !found {
			return false, nil
		}

		return true, tx.Delete(Segment, id)
	})
}

// update runs fn in a fresh transaction and commits only when fn reports a
// write. Commit conflicts are retried.
func (r *Registry) update(ctx context.Context, op, ssid string, fn func(*store.Tx) (bool, error)) error {
	var err error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}

		tx := r.st.Begin()
		wrote, ferr := fn(tx)
		if ferr != nil {
			tx.Discard()
			return ferr
		}
		if !wrote {
			tx.Discard()
			r.log.Debug().Str("op", op).Str("ssid", ssid).Msg("registry unchanged")
			return nil
		}

		err = tx.Commit()
		if err == nil {
			r.log.Info().Str("op", op).Str("ssid", ssid).Msg("registry updated")
			return nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return err
		}

		r.log.Debug().Str("op", op).Str("ssid", ssid).Int("attempt", attempt).Msg("registry commit conflict, retrying")
	}

	return err
}

func find(recs []store.Record, ssid string) (store.RecordID, bool) {
	want := []byte(ssid)
	for _, rec := range recs {
		if bytes.Equal(rec.Data, want) {
			return rec.ID, true
		}
	}
	return "", false
}
