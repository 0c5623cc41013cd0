package draft

import (
	"errors"
	"fmt"

	"github.com/roach88/pitchshare/internal/alloc"
)

// ProtectedRowError reports an attempt to remove the PRIMARY row.
//
// The PRIMARY row is the protected anchor of the allocation; the draft is
// left unchanged and the host surfaces the rejection to the user.
type ProtectedRowError struct {
	// Key identifies the row whose removal was refused.
	Key alloc.RowKey
}

// Error implements the error interface.
func (e *ProtectedRowError) Error() string {
	return fmt.Sprintf("PROTECTED_ROW: primary allocation row cannot be removed (key=%s)", e.Key)
}

// IsProtectedRowError returns true if the error is a protected-row rejection.
// Uses errors.As to handle wrapped errors.
func IsProtectedRowError(err error) bool {
	var pe *ProtectedRowError
	return errors.As(err, &pe)
}

// Store owns the in-memory draft of one resource's allocation.
//
// The zero value is not usable; create stores with NewStore. A store holds
// rows in display order, keyed uniquely by session-scoped row keys, and
// tracks a monotonic dirty flag that only a Seed resets.
type Store struct {
	resourceID string
	rows       []alloc.Row
	dirty      bool
	keys       KeyGenerator
	closed     bool
}

// NewStore creates an empty draft store for the given resource.
//
// The store is clean and has no rows until the first Seed.
func NewStore(resourceID string, keys KeyGenerator) *Store {
	return &Store{resourceID: resourceID, keys: keys}
}

// ResourceID returns the resource this draft edits.
func (s *Store) ResourceID() string {
	return s.resourceID
}

// Seed replaces the entire draft with server-provided rows and marks the
// draft clean.
//
// Every row receives a fresh key: server rows carry no client identity, and
// reusing keys across seeds would let a stale key from before the seed
// silently address an unrelated row after it.
func (s *Store) Seed(rows []alloc.ServerRow) {
	next := make([]alloc.Row, 0, len(rows))
	for _, r := range rows {
		next = append(next, alloc.Row{
			Key:          s.keys.Next(),
			SubjectCode:  r.SubjectCode,
			SubjectName:  r.SubjectName,
			SharePercent: r.SharePercent,
			Kind:         r.Kind,
		})
	}
	s.rows = next
	s.dirty = false
}

// AddRow appends one empty SECONDARY row and marks the draft dirty.
//
// The new row starts with no subject and a zero share; the host shows a
// beneficiary picker for it (DraftAddition). No upper bound on row count is
// enforced here.
func (s *Store) AddRow() alloc.RowKey {
	key := s.keys.Next()
	s.rows = append(s.rows, alloc.Row{
		Key:           key,
		Kind:          alloc.KindSecondary,
		DraftAddition: true,
	})
	s.dirty = true
	return key
}

// SelectSubject updates the subject of the row with the given key and marks
// the draft dirty.
//
// A key that matches no row is a silent no-op: the row may have been removed
// by an earlier edit the picker has not caught up with. Duplicate subject
// detection is the validator's job, not the store's.
func (s *Store) SelectSubject(key alloc.RowKey, code, name string) {
	for i := range s.rows {
		if s.rows[i].Key == key {
			s.rows[i].SubjectCode = code
			s.rows[i].SubjectName = name
			s.dirty = true
			return
		}
	}
}

// SetShare updates the share of the row with the given key and marks the
// draft dirty.
//
// Values outside [0, 100] are rejected as a no-op without touching the dirty
// flag - an out-of-range value can never become part of a valid draft, so
// there is nothing to record. Unknown keys are a silent no-op like
// SelectSubject.
func (s *Store) SetShare(key alloc.RowKey, value int) {
	if value < 0 || value > 100 {
		return
	}
	for i := range s.rows {
		if s.rows[i].Key == key {
			s.rows[i].SharePercent = value
			s.dirty = true
			return
		}
	}
}

// RemoveRow deletes the row with the given key and marks the draft dirty.
//
// Removing the PRIMARY row fails with ProtectedRowError and leaves the draft
// unchanged. Removing an unknown key is a silent no-op. A removed row's key
// is never reused.
func (s *Store) RemoveRow(key alloc.RowKey) error {
	for i := range s.rows {
		if s.rows[i].Key != key {
			continue
		}
		if s.rows[i].Kind == alloc.KindPrimary {
			return &ProtectedRowError{Key: key}
		}
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
		s.dirty = true
		return nil
	}
	return nil
}

// Dirty reports whether the draft has been mutated since the last Seed.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Len returns the current row count.
func (s *Store) Len() int {
	return len(s.rows)
}

// Snapshot returns an immutable copy of the current draft.
//
// Validation and commit operate on snapshots so that further edits cannot
// change what was judged or what is being submitted.
func (s *Store) Snapshot() alloc.Snapshot {
	rows := make([]alloc.Row, len(s.rows))
	copy(rows, s.rows)
	return alloc.Snapshot{
		ResourceID: s.resourceID,
		Rows:       rows,
		Dirty:      s.dirty,
	}
}

// Close marks the store as torn down.
//
// A closed store refuses reseeding: an in-flight commit whose session was
// torn down must discard its result rather than resurrect a dead draft.
func (s *Store) Close() {
	s.closed = true
}

// Closed reports whether the hosting session tore this store down.
func (s *Store) Closed() bool {
	return s.closed
}
