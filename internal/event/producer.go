package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/krestenlaust/fappen/internal/domain"
	pkgkafka "github.com/krestenlaust/fappen/pkg/kafka"
)

// Kafka topic constants for widget domain events.
const (
	TopicCartUpdated       = "fappen.cart.updated"
	TopicPurchaseCompleted = "fappen.purchase.completed"
)

// Aggregate type constant.
const AggregateTypeCart = "cart"

// Source identifier for events originating from this service.
const SourceFappen = "fappen"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID string            `json:"session_id"`
	RoomID    int               `json:"room_id"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	BuyString string            `json:"buy_string"`
}

// PurchaseCompletedData is the payload for a purchase.completed event.
type PurchaseCompletedData struct {
	SessionID string `json:"session_id"`
	MemberID  int    `json:"member_id"`
	RoomID    int    `json:"room_id"`
	BuyString string `json:"buy_string"`
	Cost      int64  `json:"cost"`
}

// Producer publishes widget domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		SessionID: cart.SessionID,
		RoomID:    cart.RoomID,
		Lines:     cart.Lines,
		ItemCount: cart.ItemCount(),
		BuyString: cart.BuyString(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, AggregateTypeCart, SourceFappen, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	return nil
}

// PublishPurchaseCompleted publishes a purchase.completed event.
func (p *Producer) PublishPurchaseCompleted(ctx context.Context, receipt *domain.SaleReceipt) error {
	data := PurchaseCompletedData{
		SessionID: receipt.SessionID,
		MemberID:  receipt.MemberID,
		RoomID:    receipt.RoomID,
		BuyString: receipt.BuyString,
		Cost:      receipt.Cost,
	}

	event, err := pkgkafka.NewEvent(TopicPurchaseCompleted, receipt.SessionID, AggregateTypeCart, SourceFappen, data)
	if err != nil {
		return fmt.Errorf("create purchase.completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicPurchaseCompleted, event); err != nil {
		return fmt.Errorf("publish purchase.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published purchase.completed event",
		slog.String("session_id", receipt.SessionID),
		slog.Int64("cost", receipt.Cost),
	)

	return nil
}
