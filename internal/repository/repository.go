package repository

import (
	"context"

	"github.com/krestenlaust/fappen/internal/domain"
)

// CartRepository defines persistence for per-session carts.
type CartRepository interface {
	// Get retrieves the cart for a session.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists the cart, overwriting any existing cart for the session
	// and refreshing its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the session's cart.
	Delete(ctx context.Context, sessionID string) error
}

// SaleLogRepository defines the sale receipt journal.
type SaleLogRepository interface {
	// Insert records a completed checkout.
	Insert(ctx context.Context, receipt *domain.SaleReceipt) error

	// ListByMember returns receipts for a member, newest first.
	ListByMember(ctx context.Context, memberID, limit, offset int) ([]domain.SaleReceipt, error)

	// CountByMember returns the total number of receipts for a member.
	CountByMember(ctx context.Context, memberID int) (int, error)
}
