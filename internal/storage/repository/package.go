package repository

import (
	"context"
	"fmt"

	"github.com/tutoriacr/package-ledger/internal/models"
)

// CreatePackage inserts a new package row and returns its ID.
func (s *Storage) CreatePackage(ctx context.Context, pkg models.Package) (int, error) {
	const op = "storage.CreatePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO packages (student_uid, subject_id, package_hours, preference,
			      total_price, amount_paid, payment_status, status, tutor_uid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		pkg.StudentUID, pkg.SubjectID, pkg.PackageHours, pkg.Preference,
		pkg.TotalPrice, pkg.AmountPaid, pkg.PaymentStatus, pkg.Status, pkg.TutorUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPackage returns a package by its ID.
func (s *Storage) ReadPackage(ctx context.Context, id int) (*models.Package, error) {
	const op = "storage.ReadPackage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, subject_id, package_hours, preference,
			      total_price, amount_paid, payment_status, status, tutor_uid, created_at
			  FROM packages WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Package
	if err := row.Scan(&result.ID, &result.StudentUID, &result.SubjectID, &result.PackageHours,
		&result.Preference, &result.TotalPrice, &result.AmountPaid, &result.PaymentStatus,
		&result.Status, &result.TutorUID, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// RemovePackage deletes a package by ID and returns the number of deleted
// rows. Sessions and payments go with it through the FK cascade.
func (s *Storage) RemovePackage(ctx context.Context, id int) (int, error) {
	const op = "storage.RemovePackage"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM packages WHERE id = $1`
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

// ListPackages returns the packages of one student with pagination.
func (s *Storage) ListPackages(ctx context.Context, studentUID string, limit, offset int) ([]*models.Package, error) {
	const op = "storage.ListPackages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, subject_id, package_hours, preference,
			      total_price, amount_paid, payment_status, status, tutor_uid, created_at
			  FROM packages
			  WHERE student_uid = $1
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, studentUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Package
	for rows.Next() {
		var item models.Package
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.SubjectID, &item.PackageHours,
			&item.Preference, &item.TotalPrice, &item.AmountPaid, &item.PaymentStatus,
			&item.Status, &item.TutorUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllPackages returns every package with pagination, for admin listings.
func (s *Storage) ListAllPackages(ctx context.Context, limit, offset int) ([]*models.Package, error) {
	const op = "storage.ListAllPackages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, subject_id, package_hours, preference,
			      total_price, amount_paid, payment_status, status, tutor_uid, created_at
			  FROM packages
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Package
	for rows.Next() {
		var item models.Package
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.SubjectID, &item.PackageHours,
			&item.Preference, &item.TotalPrice, &item.AmountPaid, &item.PaymentStatus,
			&item.Status, &item.TutorUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListOpenPackages returns the packages not yet completed. The flag
// scheduler scans these for delivery/payment mismatches.
func (s *Storage) ListOpenPackages(ctx context.Context) ([]*models.Package, error) {
	const op = "storage.ListOpenPackages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, student_uid, subject_id, package_hours, preference,
			      total_price, amount_paid, payment_status, status, tutor_uid, created_at
			  FROM packages
			  WHERE status <> 'completed'
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Package
	for rows.Next() {
		var item models.Package
		if err := rows.Scan(&item.ID, &item.StudentUID, &item.SubjectID, &item.PackageHours,
			&item.Preference, &item.TotalPrice, &item.AmountPaid, &item.PaymentStatus,
			&item.Status, &item.TutorUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePackageStatus sets the lifecycle status of a package and returns
// the number of updated rows.
func (s *Storage) UpdatePackageStatus(ctx context.Context, id int, status string) (int, error) {
	const op = "storage.UpdatePackageStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE packages SET status = $1 WHERE id = $2`
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

// AssignTutor sets the tutor of a package and moves it to matched.
func (s *Storage) AssignTutor(ctx context.Context, id int, tutorUID string) (int, error) {
	const op = "storage.AssignTutor"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE packages SET tutor_uid = $1, status = 'matched'
			  WHERE id = $2 AND status <> 'completed'`
	result, err := s.DB.ExecContext(ctx, query, tutorUID, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
