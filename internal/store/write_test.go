package store

import (
	"context"
	"testing"

	"github.com/roach88/pitchshare/internal/alloc"
)

func TestSubmitBatch_ReplacesAllocation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	batch := []alloc.CommitRecord{
		{ResourceID: "match-1", SubjectCode: "P1", SharePercent: 70, Kind: alloc.KindPrimary},
		{ResourceID: "match-1", SubjectCode: "S1", SharePercent: 30, Kind: alloc.KindSecondary},
	}
	if err := s.SubmitBatch(ctx, "match-1", batch); err != nil {
		t.Fatalf("SubmitBatch() failed: %v", err)
	}

	got, err := s.FetchAllocation(ctx, "match-1")
	if err != nil {
		t.Fatalf("FetchAllocation() failed: %v", err)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(got.Rows))
	}
	// Batch order is preserved as position order.
	if got.Rows[0].SubjectCode != "P1" || got.Rows[0].SharePercent != 70 {
		t.Errorf("row 0 = %+v, want P1/70", got.Rows[0])
	}
	if got.Rows[1].SubjectCode != "S1" || got.Rows[1].SharePercent != 30 {
		t.Errorf("row 1 = %+v, want S1/30", got.Rows[1])
	}
	if got.Rows[1].SubjectName != "Second One" {
		t.Errorf("subject name = %q, want directory name", got.Rows[1].SubjectName)
	}
}

func TestSubmitBatch_AllOrNothing(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// Last record references a subject the directory doesn't know; the
	// whole batch must fail and the stored allocation must be untouched.
	batch := []alloc.CommitRecord{
		{ResourceID: "match-1", SubjectCode: "P1", SharePercent: 50, Kind: alloc.KindPrimary},
		{ResourceID: "match-1", SubjectCode: "GHOST", SharePercent: 50, Kind: alloc.KindSecondary},
	}
	if err := s.SubmitBatch(ctx, "match-1", batch); err == nil {
		t.Fatal("SubmitBatch() with unknown subject should fail")
	}

	got, err := s.FetchAllocation(ctx, "match-1")
	if err != nil {
		t.Fatalf("FetchAllocation() failed: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0].SharePercent != 100 {
		t.Errorf("allocation changed after failed batch: %+v", got.Rows)
	}
}

func TestSubmitBatch_RejectsDuplicateSubjectInBatch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	batch := []alloc.CommitRecord{
		{ResourceID: "match-1", SubjectCode: "P1", SharePercent: 50, Kind: alloc.KindPrimary},
		{ResourceID: "match-1", SubjectCode: "P1", SharePercent: 50, Kind: alloc.KindSecondary},
	}
	if err := s.SubmitBatch(ctx, "match-1", batch); err == nil {
		t.Fatal("SubmitBatch() with duplicate subject should fail")
	}
}

func TestSubmitBatch_UnknownResource(t *testing.T) {
	s := testStore(t)

	err := s.SubmitBatch(context.Background(), "no-such-match", nil)
	if err == nil {
		t.Fatal("SubmitBatch() for unknown resource should fail")
	}
}

func TestPutSubject_Upsert(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.PutSubject(ctx, "S1", "Renamed", true); err != nil {
		t.Fatalf("PutSubject() failed: %v", err)
	}

	subs, err := s.ListSubjects(ctx, "S1")
	if err != nil {
		t.Fatalf("ListSubjects() failed: %v", err)
	}
	if len(subs) != 1 || subs[0].Name != "Renamed" {
		t.Errorf("got %+v, want single renamed entry", subs)
	}
}
