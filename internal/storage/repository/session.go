package repository

import (
	"context"
	"fmt"

	"github.com/tutoriacr/package-ledger/internal/models"
)

// CreateSession inserts a new session row and returns its ID.
func (s *Storage) CreateSession(ctx context.Context, session models.Session) (int, error) {
	const op = "storage.CreateSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO sessions (package_id, scheduled_at, duration_minutes, status, tutor_uid)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		session.PackageID, session.ScheduledAt, session.DurationMinutes,
		session.Status, session.TutorUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadSession returns a session by its ID.
func (s *Storage) ReadSession(ctx context.Context, id int) (*models.Session, error) {
	const op = "storage.ReadSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, package_id, scheduled_at, duration_minutes, status, tutor_uid
			  FROM sessions WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Session
	if err := row.Scan(&result.ID, &result.PackageID, &result.ScheduledAt,
		&result.DurationMinutes, &result.Status, &result.TutorUID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListSessions returns every session of one package ordered by schedule.
func (s *Storage) ListSessions(ctx context.Context, packageID int) ([]*models.Session, error) {
	const op = "storage.ListSessions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, package_id, scheduled_at, duration_minutes, status, tutor_uid
			  FROM sessions
			  WHERE package_id = $1
			  ORDER BY scheduled_at, id`
	rows, err := s.DB.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Session
	for rows.Next() {
		var item models.Session
		if err := rows.Scan(&item.ID, &item.PackageID, &item.ScheduledAt,
			&item.DurationMinutes, &item.Status, &item.TutorUID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSessionStatus sets the status of a session only while it is still
// confirmed; a completed or cancelled session is terminal. Returns the
// number of updated rows, 0 meaning the session was absent or closed.
func (s *Storage) UpdateSessionStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdateSessionStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE sessions SET status = $1
			  WHERE id = $2 AND status = 'confirmed'`
	result, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveSession deletes a session by ID and returns the number of deleted rows.
func (s *Storage) RemoveSession(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveSession"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM sessions WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
