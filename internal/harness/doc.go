// Package harness executes allocation edit-session scenarios for
// conformance testing.
//
// A scenario is a yaml file describing one editing session end to end: the
// backend fixtures (resource, subject directory, starting allocation), a
// sequence of edit steps, and the expected outcomes. The harness drives the
// real engine - draft store, validator, committer - against a real SQLite
// backend, so a passing scenario exercises the same code paths a host UI
// would.
//
// Scenario outcomes (save verdicts, protected-row rejections, the final
// server-side allocation) are captured in a Result that tests compare
// against golden files with goldie. Row keys never appear in results:
// scripts address rows by 1-based position, keeping scenarios and goldens
// independent of session-generated identity.
package harness
