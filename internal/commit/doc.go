// Package commit reconciles an approved allocation draft against the
// authoritative backend.
//
// The committer performs exactly one atomic batch write per save and then
// discards the local draft in favor of a full authoritative re-fetch. The
// client never trusts its own optimistic state after a write: the server may
// apply normalization or side effects not visible in the request payload,
// and re-seeding from a fresh fetch guarantees the displayed allocation is
// what was actually persisted.
//
// Failure is all-or-nothing. The backend contract has no partial
// application, so the committer never retries per row and never rolls back
// per row: on any failure (network, server, timeout) the draft is preserved
// exactly as it was pre-submit and a recoverable CommitError is returned.
//
// The network call is the draft's only suspension point. While a commit is
// in flight the draft is guarded: a second save is rejected with
// ErrCommitInFlight rather than queued, because a queued save could commit a
// draft that has since been edited further. Reads of the draft and edits to
// a different draft instance are never blocked.
//
// Known limitation: there is no optimistic-lock version token between fetch
// and commit. The backend is last-writer-wins with a single author per
// session; two sessions editing the same resource will silently overwrite
// each other.
package commit
