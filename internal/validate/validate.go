package validate

import (
	"fmt"

	"github.com/roach88/pitchshare/internal/alloc"
)

// ViolationKind categorizes validation failures.
type ViolationKind string

const (
	// ViolationDraftUnchanged indicates the draft is unchanged since the
	// last seed - there is nothing to commit.
	ViolationDraftUnchanged ViolationKind = "DRAFT_UNCHANGED"

	// ViolationEmptySubject indicates a row has an empty or whitespace-only
	// subject code.
	ViolationEmptySubject ViolationKind = "EMPTY_SUBJECT"

	// ViolationNoRows indicates that no rows with a subject remain - the
	// commit would be empty.
	ViolationNoRows ViolationKind = "NO_ROWS"

	// ViolationDuplicateSubject indicates the same subject appears on more
	// than one row.
	ViolationDuplicateSubject ViolationKind = "DUPLICATE_SUBJECT"

	// ViolationShareSumMismatch indicates the shares over rows with a
	// subject do not sum to exactly 100.
	ViolationShareSumMismatch ViolationKind = "SHARE_SUM_MISMATCH"
)

// Verdict is the outcome of validating one draft snapshot.
//
// Verdicts are transient: produced fresh on every save attempt, never
// persisted, and never reused across edits.
type Verdict struct {
	// Violations lists the violated rules in evaluation order.
	// Empty means the draft is approved for commit.
	Violations []ViolationKind `json:"violations"`
}

// Approved reports whether the draft may be committed.
func (v Verdict) Approved() bool {
	return len(v.Violations) == 0
}

// String renders the verdict for logs and CLI output.
func (v Verdict) String() string {
	if v.Approved() {
		return "approved"
	}
	return fmt.Sprintf("rejected %v", v.Violations)
}

// Evaluate judges a draft snapshot against all commit rules.
//
// Rules, in order:
//  1. DRAFT_UNCHANGED - the draft must differ from the last seed.
//  2. EMPTY_SUBJECT - every row must have a subject selected.
//  3. NO_ROWS - at least one row with a subject must remain.
//  4. DUPLICATE_SUBJECT - no subject may appear twice among rows with one.
//  5. SHARE_SUM_MISMATCH - shares over rows with a subject must sum to 100.
//
// Subject codes are compared after normalization (trim + NFC), so "P1" and
// " P1 " count as the same subject and a whitespace-only code counts as
// empty.
func Evaluate(snap alloc.Snapshot) Verdict {
	var violations []ViolationKind

	if !snap.Dirty {
		violations = append(violations, ViolationDraftUnchanged)
	}

	filled := 0
	sum := 0
	seen := make(map[string]bool, len(snap.Rows))
	duplicate := false
	empty := false

	for _, row := range snap.Rows {
		code := alloc.NormalizeSubjectCode(row.SubjectCode)
		if code == "" {
			empty = true
			continue
		}
		filled++
		sum += row.SharePercent
		if seen[code] {
			duplicate = true
		}
		seen[code] = true
	}

	if empty {
		violations = append(violations, ViolationEmptySubject)
	}
	if filled == 0 {
		violations = append(violations, ViolationNoRows)
	}
	if duplicate {
		violations = append(violations, ViolationDuplicateSubject)
	}
	if filled > 0 && sum != 100 {
		violations = append(violations, ViolationShareSumMismatch)
	}

	return Verdict{Violations: violations}
}
