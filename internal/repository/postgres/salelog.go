package postgres

import (
	"context"
	"fmt"

	"github.com/krestenlaust/fappen/internal/domain"
	"github.com/krestenlaust/fappen/pkg/database"
)

// SaleLogRepository implements repository.SaleLogRepository using PostgreSQL.
type SaleLogRepository struct {
	pool database.DBTX
}

// NewSaleLogRepository creates a PostgreSQL-backed sale receipt journal.
func NewSaleLogRepository(pool database.DBTX) *SaleLogRepository {
	return &SaleLogRepository{pool: pool}
}

// Insert records a completed checkout.
func (r *SaleLogRepository) Insert(ctx context.Context, receipt *domain.SaleReceipt) error {
	query := `
		INSERT INTO sale_receipts (id, session_id, member_id, room_id, buy_string, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		receipt.ID,
		receipt.SessionID,
		receipt.MemberID,
		receipt.RoomID,
		receipt.BuyString,
		receipt.Cost,
		receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale receipt: %w", err)
	}

	return nil
}

// ListByMember returns receipts for a member, newest first.
func (r *SaleLogRepository) ListByMember(ctx context.Context, memberID, limit, offset int) ([]domain.SaleReceipt, error) {
	query := `
		SELECT id, session_id, member_id, room_id, buy_string, cost, created_at
		FROM sale_receipts
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, memberID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sale receipts: %w", err)
	}
	defer rows.Close()

	var receipts []domain.SaleReceipt
	for rows.Next() {
		var receipt domain.SaleReceipt
		if err := rows.Scan(
			&receipt.ID,
			&receipt.SessionID,
			&receipt.MemberID,
			&receipt.RoomID,
			&receipt.BuyString,
			&receipt.Cost,
			&receipt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sale receipts: %w", err)
	}

	return receipts, nil
}

// CountByMember returns the total number of receipts for a member.
func (r *SaleLogRepository) CountByMember(ctx context.Context, memberID int) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM sale_receipts WHERE member_id = $1`,
		memberID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sale receipts: %w", err)
	}

	return count, nil
}
