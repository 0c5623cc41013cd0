package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pitchshare/internal/alloc"
)

// dirtySnap builds a dirty snapshot with one row per (code, share) pair.
// The first row is PRIMARY, the rest SECONDARY.
func dirtySnap(rows ...alloc.Row) alloc.Snapshot {
	return alloc.Snapshot{ResourceID: "match-1", Rows: rows, Dirty: true}
}

func row(code string, share int, kind alloc.Kind) alloc.Row {
	return alloc.Row{
		Key:          alloc.RowKey(fmt.Sprintf("k-%s-%d", code, share)),
		SubjectCode:  code,
		SubjectName:  code,
		SharePercent: share,
		Kind:         kind,
	}
}

func TestEvaluate_Approved(t *testing.T) {
	v := Evaluate(dirtySnap(
		row("P1", 70, alloc.KindPrimary),
		row("S1", 30, alloc.KindSecondary),
	))

	assert.True(t, v.Approved())
	assert.Empty(t, v.Violations)
	assert.Equal(t, "approved", v.String())
}

func TestEvaluate_DraftUnchanged(t *testing.T) {
	snap := alloc.Snapshot{
		ResourceID: "match-1",
		Rows:       []alloc.Row{row("P1", 100, alloc.KindPrimary)},
		Dirty:      false,
	}

	v := Evaluate(snap)

	require.False(t, v.Approved())
	assert.Equal(t, []ViolationKind{ViolationDraftUnchanged}, v.Violations)
}

func TestEvaluate_ShareSumGrid(t *testing.T) {
	// Sums of 99, 100, 101 split across 1, 2, and 5 rows.
	split := func(total, n int) []alloc.Row {
		rows := make([]alloc.Row, 0, n)
		remaining := total
		for i := 0; i < n; i++ {
			share := total / n
			if i == n-1 {
				share = remaining
			}
			remaining -= share
			kind := alloc.KindSecondary
			if i == 0 {
				kind = alloc.KindPrimary
			}
			rows = append(rows, row(fmt.Sprintf("B%d", i+1), share, kind))
		}
		return rows
	}

	for _, n := range []int{1, 2, 5} {
		for _, total := range []int{99, 100, 101} {
			name := fmt.Sprintf("sum=%d/rows=%d", total, n)
			t.Run(name, func(t *testing.T) {
				v := Evaluate(dirtySnap(split(total, n)...))
				if total == 100 {
					assert.True(t, v.Approved(), "sum of exactly 100 must pass")
				} else {
					require.False(t, v.Approved())
					assert.Equal(t, []ViolationKind{ViolationShareSumMismatch}, v.Violations)
				}
			})
		}
	}
}

func TestEvaluate_EmptySubject(t *testing.T) {
	v := Evaluate(dirtySnap(
		row("P1", 100, alloc.KindPrimary),
		row("", 0, alloc.KindSecondary),
	))

	require.False(t, v.Approved())
	assert.Equal(t, []ViolationKind{ViolationEmptySubject}, v.Violations)
}

func TestEvaluate_WhitespaceSubjectCountsAsEmpty(t *testing.T) {
	v := Evaluate(dirtySnap(
		row("P1", 100, alloc.KindPrimary),
		row("   ", 0, alloc.KindSecondary),
	))

	require.False(t, v.Approved())
	assert.Contains(t, v.Violations, ViolationEmptySubject)
}

func TestEvaluate_SoleEmptyRow(t *testing.T) {
	v := Evaluate(dirtySnap(row("", 0, alloc.KindSecondary)))

	require.False(t, v.Approved())
	assert.Equal(t, []ViolationKind{ViolationEmptySubject, ViolationNoRows}, v.Violations)
}

func TestEvaluate_NoRowsAtAll(t *testing.T) {
	v := Evaluate(alloc.Snapshot{ResourceID: "match-1", Dirty: true})

	require.False(t, v.Approved())
	assert.Equal(t, []ViolationKind{ViolationNoRows}, v.Violations)
}

func TestEvaluate_DuplicateSubject(t *testing.T) {
	// Duplicates reject even across PRIMARY and SECONDARY kinds.
	v := Evaluate(dirtySnap(
		row("P1", 50, alloc.KindPrimary),
		row("P1", 50, alloc.KindSecondary),
	))

	require.False(t, v.Approved())
	assert.Equal(t, []ViolationKind{ViolationDuplicateSubject}, v.Violations)
}

func TestEvaluate_DuplicateAfterNormalization(t *testing.T) {
	v := Evaluate(dirtySnap(
		row("P1", 50, alloc.KindPrimary),
		row(" P1 ", 50, alloc.KindSecondary),
	))

	require.False(t, v.Approved())
	assert.Contains(t, v.Violations, ViolationDuplicateSubject)
}

func TestEvaluate_ReportsAllViolationsInRuleOrder(t *testing.T) {
	// Clean draft with an empty row, a duplicate, and a bad sum: every rule
	// fires, in declaration order.
	snap := alloc.Snapshot{
		ResourceID: "match-1",
		Rows: []alloc.Row{
			row("P1", 60, alloc.KindPrimary),
			row("P1", 60, alloc.KindSecondary),
			row("", 0, alloc.KindSecondary),
		},
		Dirty: false,
	}

	v := Evaluate(snap)

	assert.Equal(t, []ViolationKind{
		ViolationDraftUnchanged,
		ViolationEmptySubject,
		ViolationDuplicateSubject,
		ViolationShareSumMismatch,
	}, v.Violations)
}

func TestEvaluate_IsPure(t *testing.T) {
	snap := dirtySnap(
		row("P1", 70, alloc.KindPrimary),
		row("S1", 30, alloc.KindSecondary),
	)

	first := Evaluate(snap)
	second := Evaluate(snap)

	assert.Equal(t, first, second)
	require.Len(t, snap.Rows, 2, "evaluation must not mutate the snapshot")
	assert.Equal(t, "P1", snap.Rows[0].SubjectCode)
}
