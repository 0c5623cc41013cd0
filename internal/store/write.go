package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/pitchshare/internal/alloc"
)

// SubmitBatch replaces a resource's allocation with the given batch in one
// transaction.
//
// All-or-nothing: every existing row of the resource is deleted and every
// record inserted in batch order, or the transaction rolls back and the
// stored allocation is untouched. A record referencing an unknown subject,
// an out-of-range share, or a duplicate subject within the batch fails the
// whole batch via schema constraints.
func (s *Store) SubmitBatch(ctx context.Context, resourceID string, records []alloc.CommitRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("submit batch: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM resources WHERE id = ?`, resourceID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("submit batch: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("submit batch: unknown resource %s", resourceID)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM allocations WHERE resource_id = ?`, resourceID,
	); err != nil {
		return fmt.Errorf("submit batch: clear: %w", err)
	}

	for pos, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO allocations (id, resource_id, subject_code, share_percent, kind, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			uuid.NewString(),
			resourceID,
			rec.SubjectCode,
			rec.SharePercent,
			string(rec.Kind),
			pos,
		)
		if err != nil {
			return fmt.Errorf("submit batch: insert %s: %w", rec.SubjectCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("submit batch: commit: %w", err)
	}

	return nil
}

// PutResource inserts or updates a resource. Used by fixtures and admin
// tooling, not by the engine.
func (s *Store) PutResource(ctx context.Context, id, title, startsAt string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resources (id, title, starts_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET title = excluded.title, starts_at = excluded.starts_at
	`, id, title, startsAt)
	if err != nil {
		return fmt.Errorf("put resource: %w", err)
	}
	return nil
}

// PutSubject inserts or updates a directory entry. Used by fixtures and
// admin tooling, not by the engine.
func (s *Store) PutSubject(ctx context.Context, code, name string, active bool) error {
	act := 0
	if active {
		act = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (code, name, active) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, active = excluded.active
	`, code, name, act)
	if err != nil {
		return fmt.Errorf("put subject: %w", err)
	}
	return nil
}
