package repository

import (
	"context"
	"fmt"

	"github.com/tutoriacr/package-ledger/internal/models"
)

// RegisterPayment records a payment against a package. The increment of
// amount_paid and the payment_status recompute happen server-side in a
// single UPDATE, so concurrent registrations cannot lose each other; the
// audit row goes into the same transaction. Returns the updated amount_paid
// and payment_status. sql.ErrNoRows is wrapped when the package is absent.
func (s *Storage) RegisterPayment(ctx context.Context, payment models.Payment) (int, string, error) {
	const op = "storage.RegisterPayment"
	select {
	case <-ctx.Done():
		return 0, "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE packages
			  SET amount_paid = amount_paid + $1,
			      payment_status = CASE
			          WHEN amount_paid + $1 >= total_price THEN 'paid'
			          WHEN amount_paid + $1 > 0 THEN 'partial'
			          ELSE 'pending'
			      END
			  WHERE id = $2
			  RETURNING amount_paid, payment_status`
	var amountPaid int
	var paymentStatus string
	if err := tx.QueryRowContext(ctx, query, payment.Amount, payment.PackageID).
		Scan(&amountPaid, &paymentStatus); err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	query = `INSERT INTO payments (package_id, amount, reference, paid_at)
			 VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query,
		payment.PackageID, payment.Amount, payment.Reference, payment.PaidAt); err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, "", fmt.Errorf("%s: %w", op, err)
	}
	return amountPaid, paymentStatus, nil
}

// ListPayments returns the payment history of a package, newest first.
func (s *Storage) ListPayments(ctx context.Context, packageID int) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, package_id, amount, reference, paid_at
			  FROM payments
			  WHERE package_id = $1
			  ORDER BY paid_at DESC, id DESC`
	rows, err := s.DB.QueryContext(ctx, query, packageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		if err := rows.Scan(&item.ID, &item.PackageID, &item.Amount,
			&item.Reference, &item.PaidAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
