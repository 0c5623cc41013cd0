// Package validate decides commit-eligibility for allocation drafts.
//
// Evaluate is a pure function from a draft snapshot to a verdict. It has no
// side effects, reads no ambient state, and is called exactly once per save
// attempt - never on every keystroke - so a draft may transiently violate
// every rule while being edited without the user seeing errors.
//
// All rules are evaluated on every call and every violation is reported in
// rule order. Presentation may choose to show one violation at a time, but
// the engine never short-circuits: a draft with an empty row AND a bad sum
// reports both.
//
// The core invariant lives in rule SHARE_SUM_MISMATCH: shares over the
// committed rows must sum to exactly 100. There is no tolerance band and no
// auto-normalization - the producer of the draft makes the shares balance,
// the way a ledger must balance before a transaction posts. Shares are
// integer-only, so floating-point drift cannot exist as a hazard.
package validate
