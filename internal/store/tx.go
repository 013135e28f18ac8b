// internal/store/tx.go
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// RecordID identifies a record inside its segment.
// IDs are UUIDv7, so key order is insertion order.
type RecordID string

// Record is one stored value.
type Record struct {
	ID   RecordID
	Data []byte
}

// Tx is a read-write transaction.
// Readers outside it observe either the pre- or post-commit state.
type Tx struct {
	txn  *badger.Txn
	done bool
}

// ---- key layout ----
//
//   s/<segment>            segment marker (empty value)
//   r/<segment>/<id>       record

func segmentKey(name string) []byte { return []byte("s/" + name) }
func recordPrefix(name string) []byte { return []byte("r/" + name + "/") }
func recordKey(name string, id RecordID) []byte {
	return append(recordPrefix(name), id...)
}

func checkSegment(name string) error {
	if name == "" || strings.Contains(name, "/") {
		return fmt.Errorf("store: invalid segment name %q", name)
	}
	return nil
}

func (tx *Tx) live() error {
	if tx.done {
		return ErrTxDone
	}
	return nil
}

// SegmentExists reports whether segment has been created.
func (tx *Tx) SegmentExists(name string) (bool, error) {
	if err := tx.live(); err != nil {
		return false, wrap("segment_exists", err)
	}
	if err := checkSegment(name); err != nil {
		return false, wrap("segment_exists", err)
	}
	ok, err := segmentExists(tx.txn, name)
	return ok, wrap("segment_exists", err)
}

// EnsureSegment creates segment if missing. Idempotent.
func (tx *Tx) EnsureSegment(name string) error {
	ok, err := tx.SegmentExists(name)
	if err != nil || ok {
		return err
	}
	return wrap("ensure_segment", tx.txn.Set(segmentKey(name), nil))
}

// Insert stores data as a new record and returns its id.
func (tx *Tx) Insert(segment string, data []byte) (RecordID, error) {
	ok, err := tx.SegmentExists(segment)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &Error{Op: "insert", Err: fmt.Errorf("%w: %s", ErrSegmentNotFound, segment)}
	}

	u, err := uuid.NewV7()
	if err != nil {
		return "", &Error{Op: "insert", Err: err}
	}
	id := RecordID(u.String())

	buf := make([]byte, len(data))
	copy(buf, data)
	if err := tx.txn.Set(recordKey(segment, id), buf); err != nil {
		return "", &Error{Op: "insert", Err: err}
	}
	if err := tx.touch(segment); err != nil {
		return "", &Error{Op: "insert", Err: err}
	}
	return id, nil
}

// Delete removes a record. A missing record is ErrRecordNotFound.
func (tx *Tx) Delete(segment string, id RecordID) error {
	if err := tx.live(); err != nil {
		return wrap("delete", err)
	}
	if err := checkSegment(segment); err != nil {
		return wrap("delete", err)
	}

	key := recordKey(segment, id)
	if _, err := tx.txn.Get(key); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return &Error{Op: "delete", Err: fmt.Errorf("%w: %s/%s", ErrRecordNotFound, segment, id)}
		}
		return &Error{Op: "delete", Err: err}
	}
	if err := tx.txn.Delete(key); err != nil {
		return &Error{Op: "delete", Err: err}
	}
	return wrap("delete", tx.touch(segment))
}

// touch rewrites the segment marker. Every writer of a segment has read the
// marker, so two overlapping writers conflict and the later commit fails.
func (tx *Tx) touch(segment string) error {
	return tx.txn.Set(segmentKey(segment), nil)
}

// Scan lists segment as seen by this transaction, pending writes included.
func (tx *Tx) Scan(segment string) ([]Record, error) {
	if err := tx.live(); err != nil {
		return nil, wrap("scan", err)
	}
	recs, err := scan(tx.txn, segment)
	return recs, wrap("scan", err)
}

// Commit applies the transaction. ErrConflict means nothing was written.
func (tx *Tx) Commit() error {
	if err := tx.live(); err != nil {
		return wrap("commit", err)
	}
	tx.done = true
	return wrap("commit", tx.txn.Commit())
}

// Discard drops the transaction. Safe after Commit.
func (tx *Tx) Discard() {
	if tx.done {
		return
	}
	tx.done = true
	tx.txn.Discard()
}

// ---- shared read helpers ----

func segmentExists(txn *badger.Txn, name string) (bool, error) {
	_, err := txn.Get(segmentKey(name))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

func scan(txn *badger.Txn, segment string) ([]Record, error) {
	if err := checkSegment(segment); err != nil {
		return nil, err
	}
	ok, err := segmentExists(txn, segment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSegmentNotFound, segment)
	}

	prefix := recordPrefix(segment)
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var out []Record
	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		out = append(out, Record{
			ID:   RecordID(item.Key()[len(prefix):]),
			Data: val,
		})
	}
	return out, nil
}
