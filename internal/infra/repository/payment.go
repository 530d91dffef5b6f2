package repository

import (
	"context"

	"smartpark/internal/infra"
	"smartpark/internal/infra/db"
	"smartpark/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

// Create inserts the payment header and all its lines in one go. Runs
// inside the checkout transaction, so a failed line insert rolls the
// whole settlement back.
func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, p shared.NewPayment) (uuid.UUID, error) {
	const headerQuery = `
		INSERT INTO payments (id, session_id, user_id, tier, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	paymentID := uuid.New()
	if err := tx.QueryRow(ctx, headerQuery, paymentID, p.SessionID, p.UserID, p.Tier, p.Total, p.CreatedAt).Scan(&paymentID); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}

	const lineQuery = `
		INSERT INTO payment_lines (id, payment_id, line_type, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, line := range p.Lines {
		_, err := tx.Exec(ctx, lineQuery, uuid.New(), paymentID, line.Type, line.Quantity, line.UnitPrice, line.Total)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create payment line", err)
		}
	}
	return paymentID, nil
}
