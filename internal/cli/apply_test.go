package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pitchshare/internal/alloc"
	"github.com/roach88/pitchshare/internal/store"
)

// newClubDB creates a backend database with one match, a small directory,
// and a 100% primary allocation.
func newClubDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "club.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	require.NoError(t, st.PutResource(ctx, "match-1", "League Match 1", "2026-05-02"))
	require.NoError(t, st.PutSubject(ctx, "P1", "Primary One", true))
	require.NoError(t, st.PutSubject(ctx, "S1", "Second One", true))
	require.NoError(t, st.SubmitBatch(ctx, "match-1", []alloc.CommitRecord{
		{ResourceID: "match-1", SubjectCode: "P1", SharePercent: 100, Kind: alloc.KindPrimary},
	}))
	return path
}

func writeSession(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestApply_ApprovedSessionCommits(t *testing.T) {
	db := newClubDB(t)
	session := writeSession(t, `
name: rebalance
resource: match-1
steps:
  - op: add
  - op: select
    row: 2
    subject: S1
    name: Second One
  - op: share
    row: 2
    value: 30
  - op: share
    row: 1
    value: 70
  - op: save
`)

	out, err := execute(t, "apply", "--db", db, session)

	require.NoError(t, err, "output: %s", out)
	assert.Contains(t, out, "save: approved")
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "30%")

	// The commit is visible to a fresh fetch.
	showOut, err := execute(t, "show", "--db", db, "match-1")
	require.NoError(t, err)
	assert.Contains(t, showOut, "70%")
	assert.Contains(t, showOut, "total: 100%")
}

func TestApply_RejectedSessionExitsNonZero(t *testing.T) {
	db := newClubDB(t)
	session := writeSession(t, `
name: overcommit
resource: match-1
steps:
  - op: add
  - op: select
    row: 2
    subject: S1
    name: Second One
  - op: share
    row: 2
    value: 30
  - op: save
`)

	out, err := execute(t, "apply", "--db", db, session)

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "SHARE_SUM_MISMATCH")

	// Rejected saves leave the backend untouched.
	showOut, err := execute(t, "show", "--db", db, "match-1")
	require.NoError(t, err)
	assert.Contains(t, showOut, "100%")
}

func TestApply_MissingSessionFile(t *testing.T) {
	db := newClubDB(t)

	_, err := execute(t, "apply", "--db", db, "no-such-file.yaml")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShow_UnknownResource(t *testing.T) {
	db := newClubDB(t)

	_, err := execute(t, "show", "--db", db, "no-such-match")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestShow_JSONFormat(t *testing.T) {
	db := newClubDB(t)

	out, err := execute(t, "--format", "json", "show", "--db", db, "match-1")

	require.NoError(t, err)
	assert.Contains(t, out, `"resource_id": "match-1"`)
	assert.Contains(t, out, `"share_percent": 100`)
}

func TestSubjects_ListsDirectory(t *testing.T) {
	db := newClubDB(t)

	out, err := execute(t, "subjects", "--db", db)

	require.NoError(t, err)
	assert.Contains(t, out, "Primary One")
	assert.Contains(t, out, "Second One")
	assert.Contains(t, out, "2 subject(s)")

	filtered, err := execute(t, "subjects", "--db", db, "--filter", "Second")
	require.NoError(t, err)
	assert.NotContains(t, filtered, "Primary One")
	assert.Contains(t, filtered, "1 subject(s)")
}
