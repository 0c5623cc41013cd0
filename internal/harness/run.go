package harness

import (
	"context"
	"fmt"

	"github.com/roach88/pitchshare/internal/alloc"
	"github.com/roach88/pitchshare/internal/commit"
	"github.com/roach88/pitchshare/internal/draft"
	"github.com/roach88/pitchshare/internal/store"
	"github.com/roach88/pitchshare/internal/validate"
)

// Event records one observable outcome of a scenario step.
//
// Only steps with an outcome produce events: saves (verdict, violations,
// commit errors) and removes that were rejected. Silent mutations leave no
// event - their effect shows up in the final allocation.
type Event struct {
	Step       int      `json:"step"`
	Op         string   `json:"op"`
	Verdict    string   `json:"verdict,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Result captures everything a scenario observed.
type Result struct {
	Scenario string           `json:"scenario"`
	Events   []Event          `json:"events"`
	Final    alloc.Allocation `json:"final"`
}

// SeedBackend loads the scenario's fixtures into a backend store.
func SeedBackend(ctx context.Context, st *store.Store, sc *Scenario) error {
	title := sc.Title
	if title == "" {
		title = sc.Resource
	}
	if err := st.PutResource(ctx, sc.Resource, title, ""); err != nil {
		return err
	}
	for _, sub := range sc.Subjects {
		if err := st.PutSubject(ctx, sub.Code, sub.Name, true); err != nil {
			return err
		}
	}

	batch := make([]alloc.CommitRecord, 0, len(sc.Allocation))
	for _, row := range sc.Allocation {
		batch = append(batch, alloc.CommitRecord{
			ResourceID:   sc.Resource,
			SubjectCode:  row.Subject,
			SharePercent: row.Share,
			Kind:         alloc.Kind(row.Kind),
		})
	}
	if len(batch) == 0 {
		return nil
	}
	return st.SubmitBatch(ctx, sc.Resource, batch)
}

// Run executes a scenario against a seeded backend.
//
// The session is driven exactly the way a host UI drives the engine: seed
// the draft from a fetch, apply edit steps, and route every save through
// validate-then-commit. Expect clauses are checked as steps run; a mismatch
// aborts with an error naming the step.
func Run(ctx context.Context, backend commit.Backend, sc *Scenario) (*Result, error) {
	fetched, err := backend.FetchAllocation(ctx, sc.Resource)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: initial fetch: %w", sc.Name, err)
	}

	session := draft.NewStore(sc.Resource, draft.NewSessionKeyGenerator())
	session.Seed(fetched.Rows)
	committer := commit.NewCommitter(session, backend, backend)

	result := &Result{Scenario: sc.Name, Events: []Event{}}

	for i, step := range sc.Steps {
		num := i + 1
		switch step.Op {
		case "add":
			session.AddRow()

		case "select":
			key, err := rowKeyAt(session, step.Row)
			if err != nil {
				return nil, fmt.Errorf("scenario %s step %d: %w", sc.Name, num, err)
			}
			session.SelectSubject(key, step.Subject, step.Name)

		case "share":
			key, err := rowKeyAt(session, step.Row)
			if err != nil {
				return nil, fmt.Errorf("scenario %s step %d: %w", sc.Name, num, err)
			}
			session.SetShare(key, step.Value)

		case "remove":
			key, err := rowKeyAt(session, step.Row)
			if err != nil {
				return nil, fmt.Errorf("scenario %s step %d: %w", sc.Name, num, err)
			}
			removeErr := session.RemoveRow(key)
			if removeErr != nil {
				code := "REMOVE_FAILED"
				if draft.IsProtectedRowError(removeErr) {
					code = "PROTECTED_ROW"
				}
				result.Events = append(result.Events, Event{Step: num, Op: "remove", Error: code})
			}
			if err := checkRemoveExpect(step.Expect, removeErr); err != nil {
				return nil, fmt.Errorf("scenario %s step %d: %w", sc.Name, num, err)
			}

		case "save":
			event := Event{Step: num, Op: "save"}
			snap := session.Snapshot()
			verdict := validate.Evaluate(snap)
			if verdict.Approved() {
				event.Verdict = "approved"
				if err := committer.Commit(ctx, snap); err != nil {
					event.Verdict = ""
					event.Error = "COMMIT_FAILED"
				}
			} else {
				event.Verdict = "rejected"
				for _, v := range verdict.Violations {
					event.Violations = append(event.Violations, string(v))
				}
			}
			result.Events = append(result.Events, event)
			if err := checkSaveExpect(step.Expect, event); err != nil {
				return nil, fmt.Errorf("scenario %s step %d: %w", sc.Name, num, err)
			}
		}
	}

	final, err := backend.FetchAllocation(ctx, sc.Resource)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: final fetch: %w", sc.Name, err)
	}
	if final.Rows == nil {
		final.Rows = []alloc.ServerRow{}
	}
	result.Final = final

	return result, nil
}

// rowKeyAt resolves a 1-based display position to the row's key.
func rowKeyAt(session *draft.Store, pos int) (alloc.RowKey, error) {
	snap := session.Snapshot()
	if pos < 1 || pos > len(snap.Rows) {
		return "", fmt.Errorf("row %d out of range (draft has %d rows)", pos, len(snap.Rows))
	}
	return snap.Rows[pos-1].Key, nil
}

func checkSaveExpect(expect *Expect, event Event) error {
	if expect == nil {
		return nil
	}
	if expect.Verdict != "" && expect.Verdict != event.Verdict {
		return fmt.Errorf("expected verdict %q, got %q", expect.Verdict, event.Verdict)
	}
	if len(expect.Violations) > 0 {
		if len(expect.Violations) != len(event.Violations) {
			return fmt.Errorf("expected violations %v, got %v", expect.Violations, event.Violations)
		}
		for i, want := range expect.Violations {
			if event.Violations[i] != want {
				return fmt.Errorf("expected violations %v, got %v", expect.Violations, event.Violations)
			}
		}
	}
	return nil
}

func checkRemoveExpect(expect *Expect, removeErr error) error {
	if expect == nil {
		return nil
	}
	if expect.Error == "" {
		if removeErr != nil {
			return fmt.Errorf("expected remove to succeed, got: %v", removeErr)
		}
		return nil
	}
	if removeErr == nil {
		return fmt.Errorf("expected remove to fail with %s, but it succeeded", expect.Error)
	}
	if expect.Error == "PROTECTED_ROW" && !draft.IsProtectedRowError(removeErr) {
		return fmt.Errorf("expected PROTECTED_ROW, got: %v", removeErr)
	}
	return nil
}
