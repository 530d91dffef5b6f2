package readstore

import (
	"context"
	"time"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentReadStore struct{}

func NewPaymentReadStore() *PaymentReadStore {
	return &PaymentReadStore{}
}

// ListByRange returns payments created in [from, to] with their lines,
// newest first. A nil userID returns all users' payments.
func (r *PaymentReadStore) ListByRange(ctx context.Context, dbtx db.DBTX, from, to time.Time, userID *uuid.UUID) ([]*queries.PaymentView, error) {
	const query = `
		SELECT p.id, p.session_id, p.user_id, u.email, p.tier, p.total, p.created_at
		FROM payments p
		JOIN users u ON u.id = p.user_id
		WHERE p.created_at >= $1 AND p.created_at <= $2
		  AND ($3::uuid IS NULL OR p.user_id = $3)
		ORDER BY p.created_at DESC`

	rows, err := dbtx.Query(ctx, query, from, to, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	var views []*queries.PaymentView
	index := make(map[uuid.UUID]*queries.PaymentView)
	for rows.Next() {
		var v queries.PaymentView
		if err := rows.Scan(&v.ID, &v.SessionID, &v.UserID, &v.UserEmail, &v.Tier, &v.Total, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		views = append(views, &v)
		index[v.ID] = &v
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read payment rows", err)
	}
	if len(views) == 0 {
		return views, nil
	}

	if err := r.attachLines(ctx, dbtx, from, to, userID, index); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *PaymentReadStore) attachLines(ctx context.Context, dbtx db.DBTX, from, to time.Time, userID *uuid.UUID, index map[uuid.UUID]*queries.PaymentView) error {
	const query = `
		SELECT l.payment_id, l.line_type, l.quantity, l.unit_price, l.total
		FROM payment_lines l
		JOIN payments p ON p.id = l.payment_id
		WHERE p.created_at >= $1 AND p.created_at <= $2
		  AND ($3::uuid IS NULL OR p.user_id = $3)
		ORDER BY l.payment_id, l.line_type`

	rows, err := dbtx.Query(ctx, query, from, to, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to list payment lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			paymentID uuid.UUID
			line      queries.PaymentLineView
		)
		if err := rows.Scan(&paymentID, &line.Type, &line.Quantity, &line.UnitPrice, &line.Total); err != nil {
			return infra.WrapRepoErr("failed to scan payment line row", err)
		}
		if v, ok := index[paymentID]; ok {
			v.Lines = append(v.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read payment line rows", err)
	}
	return nil
}
