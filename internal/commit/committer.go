package commit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/roach88/pitchshare/internal/alloc"
	"github.com/roach88/pitchshare/internal/draft"
)

// Fetcher retrieves the authoritative allocation of one resource.
type Fetcher interface {
	// FetchAllocation returns the current server-side allocation.
	// Returns an error wrapping ErrNotFound when the resource is unknown.
	FetchAllocation(ctx context.Context, resourceID string) (alloc.Allocation, error)
}

// Submitter performs the atomic batch write.
type Submitter interface {
	// SubmitBatch writes the full ordered batch in one request.
	// Either all records are accepted or the whole batch fails.
	SubmitBatch(ctx context.Context, resourceID string, records []alloc.CommitRecord) error
}

// Directory lists candidate subjects for the beneficiary picker.
// The engine treats this as a read-only lookup table.
type Directory interface {
	ListSubjects(ctx context.Context, filter string) ([]alloc.Subject, error)
}

// Backend bundles the collaborator interfaces a full editing session needs.
type Backend interface {
	Fetcher
	Submitter
	Directory
}

// ErrNotFound reports that a resource has no allocation on the backend.
// The host shows an empty or error state; no draft is seeded.
var ErrNotFound = errors.New("allocation not found")

// ErrCommitInFlight rejects a save requested while another commit for the
// same draft is still pending. The request is dropped, not queued: a queued
// save could commit a draft that has since been edited further.
var ErrCommitInFlight = errors.New("COMMIT_IN_FLIGHT: a commit for this draft is already pending")

// CommitError reports a failed batch submit. Recoverable: the draft is
// preserved exactly as it was pre-submit and the caller may retry with the
// unchanged or a re-edited draft.
type CommitError struct {
	// ResourceID identifies the allocation whose commit failed.
	ResourceID string

	// Err is the underlying transport or server failure.
	Err error
}

// Error implements the error interface.
func (e *CommitError) Error() string {
	return fmt.Sprintf("COMMIT_FAILED: resource %s: %v", e.ResourceID, e.Err)
}

// Unwrap returns the underlying failure.
func (e *CommitError) Unwrap() error {
	return e.Err
}

// IsCommitError returns true if the error is a recoverable commit failure.
// Uses errors.As to handle wrapped errors.
func IsCommitError(err error) bool {
	var ce *CommitError
	return errors.As(err, &ce)
}

// Committer submits approved drafts and resynchronizes the draft store.
//
// One Committer guards one draft store. The zero value is not usable;
// create committers with NewCommitter.
type Committer struct {
	store    *draft.Store
	fetcher  Fetcher
	submit   Submitter
	inFlight sync.Mutex // held for the duration of one commit
}

// NewCommitter creates a committer for the given draft store and backend.
func NewCommitter(store *draft.Store, fetcher Fetcher, submitter Submitter) *Committer {
	return &Committer{store: store, fetcher: fetcher, submit: submitter}
}

// Records converts a snapshot into the backend's batch-write shape.
//
// Rows with an empty subject are filtered out as a final safety net; the
// caller's validation has already rejected drafts where that matters. Order
// is preserved - the backend receives rows in display order.
func Records(snap alloc.Snapshot) []alloc.CommitRecord {
	records := make([]alloc.CommitRecord, 0, len(snap.Rows))
	for _, row := range snap.Rows {
		if alloc.SubjectCodeEmpty(row.SubjectCode) {
			continue
		}
		records = append(records, alloc.CommitRecord{
			ResourceID:   snap.ResourceID,
			SubjectCode:  alloc.NormalizeSubjectCode(row.SubjectCode),
			SharePercent: row.SharePercent,
			Kind:         row.Kind,
		})
	}
	return records
}

// Commit submits an approved snapshot and re-seeds the draft store from a
// fresh authoritative fetch.
//
// Preconditions: the snapshot has been approved by the validator. The
// committer does not re-validate beyond the empty-subject safety net.
//
// Outcomes:
//   - success: the draft store is re-seeded from the post-write fetch and
//     Commit returns nil. If the hosting session tore the store down while
//     the request was in flight, the result is discarded instead - the
//     write stands on the server, but no dead draft is resurrected.
//   - failure (submit or re-fetch, including timeout): the draft store is
//     left untouched and a recoverable *CommitError is returned.
//   - concurrent save: ErrCommitInFlight, no state change.
func (c *Committer) Commit(ctx context.Context, snap alloc.Snapshot) error {
	if !c.inFlight.TryLock() {
		return ErrCommitInFlight
	}
	defer c.inFlight.Unlock()

	if err := c.submit.SubmitBatch(ctx, snap.ResourceID, Records(snap)); err != nil {
		return &CommitError{ResourceID: snap.ResourceID, Err: err}
	}

	// The write succeeded; the server is now the source of truth. Reconcile
	// by re-fetching rather than trusting the submitted snapshot.
	refreshed, err := c.fetcher.FetchAllocation(ctx, snap.ResourceID)
	if err != nil {
		return &CommitError{ResourceID: snap.ResourceID, Err: fmt.Errorf("post-commit fetch: %w", err)}
	}

	if c.store.Closed() {
		return nil
	}
	c.store.Seed(refreshed.Rows)
	return nil
}
