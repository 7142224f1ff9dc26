package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/krestenlaust/fappen/internal/domain"
	"github.com/krestenlaust/fappen/internal/repository"
	apperrors "github.com/krestenlaust/fappen/pkg/errors"
	"github.com/krestenlaust/fappen/pkg/pagination"
)

// StregsystemAPI is the upstream client surface the service depends on.
type StregsystemAPI interface {
	MemberID(ctx context.Context, username string) (int, error)
	Member(ctx context.Context, memberID int) (*domain.Member, error)
	Balance(ctx context.Context, memberID int) (int64, error)
	ActiveProducts(ctx context.Context, roomID int) (*domain.Catalogue, error)
	SubmitSale(ctx context.Context, buyString string, roomID, memberID int) (*domain.SaleResult, error)
}

// AccessProber reports upstream availability.
type AccessProber interface {
	Check(ctx context.Context) domain.AccessStatus
}

// EventPublisher publishes widget domain events. Publish failures are
// logged by the service, never surfaced to the caller.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, cart *domain.Cart) error
	PublishPurchaseCompleted(ctx context.Context, receipt *domain.SaleReceipt) error
}

// Session is the result of starting a widget session.
type Session struct {
	SessionID string              `json:"session_id,omitempty"`
	Status    domain.AccessStatus `json:"status"`
	Catalogue *domain.Catalogue   `json:"catalogue,omitempty"`
}

// CartSummary is the rendered view of a session cart.
type CartSummary struct {
	SessionID string            `json:"session_id"`
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Total     int64             `json:"total"`
	BuyString string            `json:"buy_string"`
}

// KioskService orchestrates the access probe, catalogue, session carts,
// and checkout against the stregsystem.
type KioskService struct {
	api     StregsystemAPI
	prober  AccessProber
	carts   repository.CartRepository
	saleLog repository.SaleLogRepository
	events  EventPublisher
	logger  *slog.Logger
	roomID  int

	mu        sync.RWMutex
	catalogue *domain.Catalogue
}

// NewKioskService creates the widget service for the given default room.
func NewKioskService(
	api StregsystemAPI,
	prober AccessProber,
	carts repository.CartRepository,
	saleLog repository.SaleLogRepository,
	events EventPublisher,
	logger *slog.Logger,
	roomID int,
) *KioskService {
	return &KioskService{
		api:     api,
		prober:  prober,
		carts:   carts,
		saleLog: saleLog,
		events:  events,
		logger:  logger,
		roomID:  roomID,
	}
}

// StartSession probes the upstream and, when the API is available, loads
// the catalogue and creates a fresh session with an empty cart. Starting a
// new session is the only cart-clearing path in the widget flow.
func (s *KioskService) StartSession(ctx context.Context) (*Session, error) {
	status := s.prober.Check(ctx)
	if status != domain.AccessAPIAvailable {
		return &Session{Status: status}, nil
	}

	catalogue, err := s.RefreshCatalogue(ctx)
	if err != nil {
		// The probe just saw the API; treat a failed fetch as degraded.
		s.logger.WarnContext(ctx, "catalogue fetch failed after successful probe",
			slog.String("error", err.Error()),
		)
		return &Session{Status: domain.AccessServiceOnly}, nil
	}

	sessionID := uuid.New().String()
	cart := domain.NewCart(sessionID, s.roomID)
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save new cart: %w", err)
	}

	return &Session{
		SessionID: sessionID,
		Status:    status,
		Catalogue: catalogue,
	}, nil
}

// RefreshCatalogue fetches the active-product list for the default room and
// replaces the cached catalogue wholesale.
func (s *KioskService) RefreshCatalogue(ctx context.Context) (*domain.Catalogue, error) {
	catalogue, err := s.api.ActiveProducts(ctx, s.roomID)
	if err != nil {
		return nil, fmt.Errorf("refresh catalogue: %w", err)
	}

	s.mu.Lock()
	s.catalogue = catalogue
	s.mu.Unlock()

	return catalogue, nil
}

func (s *KioskService) cachedCatalogue(ctx context.Context) (*domain.Catalogue, error) {
	s.mu.RLock()
	catalogue := s.catalogue
	s.mu.RUnlock()

	if catalogue != nil {
		return catalogue, nil
	}
	return s.RefreshCatalogue(ctx)
}

// Catalogue returns the cached catalogue, fetching it on first use.
func (s *KioskService) Catalogue(ctx context.Context) (*domain.Catalogue, error) {
	return s.cachedCatalogue(ctx)
}

// AddItem increments the quantity of a product in the session cart. The
// product must exist in the current catalogue; the cart never holds ids
// the catalogue cannot price.
func (s *KioskService) AddItem(ctx context.Context, sessionID string, productID int) (*CartSummary, error) {
	catalogue, err := s.cachedCatalogue(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := catalogue.Find(productID); !ok {
		return nil, apperrors.NotFound("product", fmt.Sprintf("%d", productID))
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.Increment(productID)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	return s.summarize(cart, catalogue)
}

// SetItemQuantity overwrites a line's quantity. Zero and negative values
// are stored as-is; they vanish from the buy string but still count toward
// the displayed item count.
func (s *KioskService) SetItemQuantity(ctx context.Context, sessionID string, productID, quantity int) (*CartSummary, error) {
	catalogue, err := s.cachedCatalogue(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := catalogue.Find(productID); !ok {
		return nil, apperrors.NotFound("product", fmt.Sprintf("%d", productID))
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(productID, quantity)

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishCartUpdated(ctx, cart)

	return s.summarize(cart, catalogue)
}

// CartSummary returns the session cart with its count, total, and buy string.
func (s *KioskService) CartSummary(ctx context.Context, sessionID string) (*CartSummary, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	catalogue, err := s.cachedCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	return s.summarize(cart, catalogue)
}

// Checkout submits the session cart as a sale for the given username,
// journals a receipt, publishes the purchase event, and clears the cart.
func (s *KioskService) Checkout(ctx context.Context, sessionID, username string) (*domain.SaleResult, error) {
	if username == "" {
		return nil, apperrors.InvalidInput("username is required")
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	buyString := cart.BuyString()
	if buyString == "" {
		return nil, apperrors.InvalidInput("cart has no purchasable items")
	}

	memberID, err := s.api.MemberID(ctx, username)
	if err != nil {
		return nil, err
	}

	result, err := s.api.SubmitSale(ctx, buyString, cart.RoomID, memberID)
	if err != nil {
		return nil, err
	}

	receipt := &domain.SaleReceipt{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		MemberID:  memberID,
		RoomID:    cart.RoomID,
		BuyString: buyString,
		Cost:      result.Cost,
		CreatedAt: time.Now().UTC(),
	}

	// The sale is already committed upstream; journal and cleanup failures
	// must not fail the checkout.
	if err := s.saleLog.Insert(ctx, receipt); err != nil {
		s.logger.ErrorContext(ctx, "failed to journal sale receipt",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.events.PublishPurchaseCompleted(ctx, receipt); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish purchase.completed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	return result, nil
}

// MemberProfile composes the id-by-username and info-by-id lookups into a
// profile. The two requests are sequential: the second needs the first's
// result. Profiles are never cached.
func (s *KioskService) MemberProfile(ctx context.Context, username string) (*domain.Member, error) {
	if username == "" {
		return nil, apperrors.InvalidInput("username is required")
	}

	memberID, err := s.api.MemberID(ctx, username)
	if err != nil {
		return nil, err
	}

	member, err := s.api.Member(ctx, memberID)
	if err != nil {
		return nil, err
	}

	member.Username = username
	return member, nil
}

// MemberBalance resolves the username and returns the balance in øre.
func (s *KioskService) MemberBalance(ctx context.Context, username string) (int64, error) {
	if username == "" {
		return 0, apperrors.InvalidInput("username is required")
	}

	memberID, err := s.api.MemberID(ctx, username)
	if err != nil {
		return 0, err
	}

	return s.api.Balance(ctx, memberID)
}

// Receipts lists a member's sale receipts, newest first.
func (s *KioskService) Receipts(ctx context.Context, memberID int, params pagination.Params) (*pagination.Result[domain.SaleReceipt], error) {
	receipts, err := s.saleLog.ListByMember(ctx, memberID, params.PerPage, params.Offset)
	if err != nil {
		return nil, err
	}

	total, err := s.saleLog.CountByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	result := pagination.NewResult(receipts, total, params)
	return &result, nil
}

// AccessStatus runs the prober once and returns the current status.
func (s *KioskService) AccessStatus(ctx context.Context) domain.AccessStatus {
	return s.prober.Check(ctx)
}

func (s *KioskService) summarize(cart *domain.Cart, catalogue *domain.Catalogue) (*CartSummary, error) {
	total, err := cart.Total(catalogue)
	if err != nil {
		// The cart referenced an id the current catalogue cannot price.
		return nil, apperrors.InvalidInput(err.Error())
	}

	return &CartSummary{
		SessionID: cart.SessionID,
		Lines:     cart.Lines,
		ItemCount: cart.ItemCount(),
		Total:     total,
		BuyString: cart.BuyString(),
	}, nil
}

func (s *KioskService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.events.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.WarnContext(ctx, "failed to publish cart.updated",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}
