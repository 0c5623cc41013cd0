package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/pitchshare/internal/alloc"
	"github.com/roach88/pitchshare/internal/commit"
)

// FetchAllocation returns the authoritative allocation of one resource.
//
// Rows come back in stored position order, joined with the subject directory
// for display names. An unknown resource returns an error wrapping
// commit.ErrNotFound.
func (s *Store) FetchAllocation(ctx context.Context, resourceID string) (alloc.Allocation, error) {
	var out alloc.Allocation

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title FROM resources WHERE id = ?`, resourceID,
	).Scan(&out.ResourceID, &out.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return alloc.Allocation{}, fmt.Errorf("fetch allocation: resource %s: %w", resourceID, commit.ErrNotFound)
	}
	if err != nil {
		return alloc.Allocation{}, fmt.Errorf("fetch allocation: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT a.subject_code, sub.name, a.share_percent, a.kind
		FROM allocations a
		JOIN subjects sub ON sub.code = a.subject_code
		WHERE a.resource_id = ?
		ORDER BY a.position ASC
	`, resourceID)
	if err != nil {
		return alloc.Allocation{}, fmt.Errorf("fetch allocation: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r alloc.ServerRow
		if err := rows.Scan(&r.SubjectCode, &r.SubjectName, &r.SharePercent, &r.Kind); err != nil {
			return alloc.Allocation{}, fmt.Errorf("fetch allocation: scan: %w", err)
		}
		out.Rows = append(out.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return alloc.Allocation{}, fmt.Errorf("fetch allocation: %w", err)
	}

	return out, nil
}

// ListSubjects returns active directory entries whose code or name contains
// the filter, ordered by code for stable output. An empty filter lists the
// whole directory.
func (s *Store) ListSubjects(ctx context.Context, filter string) ([]alloc.Subject, error) {
	pattern := "%" + filter + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name FROM subjects
		WHERE active = 1 AND (code LIKE ? OR name LIKE ?)
		ORDER BY code ASC
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []alloc.Subject
	for rows.Next() {
		var sub alloc.Subject
		if err := rows.Scan(&sub.Code, &sub.Name); err != nil {
			return nil, fmt.Errorf("list subjects: scan: %w", err)
		}
		subjects = append(subjects, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	return subjects, nil
}
