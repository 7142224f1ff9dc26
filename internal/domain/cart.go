package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownProduct is returned when a cart line references a product id
// absent from the catalogue used for pricing.
var ErrUnknownProduct = errors.New("product not in catalogue")

// CartLine is a single cart entry. Quantities may transiently be zero or
// negative; they are excluded at serialization, not clamped at mutation.
type CartLine struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart is a per-session product-id → quantity mapping with insertion order
// preserved. It holds no pricing data and no rendering handles; totals are
// computed against an externally supplied catalogue.
type Cart struct {
	SessionID string     `json:"session_id"`
	RoomID    int        `json:"room_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for a session.
func NewCart(sessionID string, roomID int) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		RoomID:    roomID,
		Lines:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) lineIndex(productID int) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Increment sets the quantity for the product to 1 if absent, otherwise
// adds 1. This is the only mutator the click path uses.
func (c *Cart) Increment(productID int) {
	if i := c.lineIndex(productID); i >= 0 {
		c.Lines[i].Quantity++
	} else {
		c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: 1})
	}
	c.UpdatedAt = time.Now().UTC()
}

// SetQuantity overwrites the quantity for the product, appending a new line
// if absent. Zero and negative quantities are stored as-is and filtered out
// at serialization time.
func (c *Cart) SetQuantity(productID, quantity int) {
	if i := c.lineIndex(productID); i >= 0 {
		c.Lines[i].Quantity = quantity
	} else {
		c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
	}
	c.UpdatedAt = time.Now().UTC()
}

// Quantity returns the quantity for the product; absent means 0.
func (c *Cart) Quantity(productID int) int {
	if i := c.lineIndex(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

// ItemCount returns the sum of all quantities, irrespective of price.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Total computes the cart total in øre against the given catalogue. A line
// referencing a product absent from the catalogue fails fast with
// ErrUnknownProduct.
func (c *Cart) Total(catalogue *Catalogue) (int64, error) {
	var total int64
	for _, line := range c.Lines {
		product, ok := catalogue.Find(line.ProductID)
		if !ok {
			return 0, fmt.Errorf("product %d: %w", line.ProductID, ErrUnknownProduct)
		}
		total += product.Price * int64(line.Quantity)
	}
	return total, nil
}

// BuyString serializes the cart to the stregsystem purchase format: one
// "<id>:<quantity>" token per line with quantity > 0, joined by single
// spaces, in insertion order. Non-positive lines are omitted entirely.
func (c *Cart) BuyString() string {
	tokens := make([]string, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Quantity <= 0 {
			continue
		}
		tokens = append(tokens, fmt.Sprintf("%d:%d", line.ProductID, line.Quantity))
	}
	return strings.Join(tokens, " ")
}
